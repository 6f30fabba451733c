package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ostwick/RPG-Imperium/internal/game/ruleset"
)

type checkQuery struct {
	Difficulty int `form:"difficulty" binding:"min=1,max=5"`
	Attribute  int `form:"attribute" binding:"min=0"`
}

func (h *Handler) getCheck(c *gin.Context) {
	var q checkQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.fail(c, badInput(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"difficulty": q.Difficulty,
		"attribute":  q.Attribute,
		"target":     h.checks.Target(q.Difficulty, q.Attribute),
	})
}

func (h *Handler) postRoll(c *gin.Context) {
	var q checkQuery
	if err := c.ShouldBind(&q); err != nil {
		h.fail(c, badInput(err))
		return
	}
	c.JSON(http.StatusOK, h.checks.Roll(q.Difficulty, q.Attribute))
}

func (h *Handler) getActions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"actions": ruleset.GameActions})
}
