// Package web exposes the campaign, character and combat services over HTTP.
// Reads return JSON; form posts answer with a 303 redirect carrying ?error=
// or ?msg=.
package web

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ostwick/RPG-Imperium/internal/gameserver"
	"github.com/Ostwick/RPG-Imperium/internal/observability"
)

// Handler holds the services behind the routes.
type Handler struct {
	campaigns  *gameserver.CampaignService
	characters *gameserver.CharacterService
	combat     *gameserver.CombatService
	checks     *gameserver.CheckService
	health     func(context.Context) error
	logger     *zap.Logger
}

// Services bundles the dependencies of a Handler.
type Services struct {
	Campaigns  *gameserver.CampaignService
	Characters *gameserver.CharacterService
	Combat     *gameserver.CombatService
	Checks     *gameserver.CheckService
	// Health reports storage reachability. Nil means always healthy.
	Health func(context.Context) error
}

// NewHandler creates a Handler.
//
// Precondition: every service in s and logger must be non-nil.
func NewHandler(s Services, logger *zap.Logger) *Handler {
	return &Handler{
		campaigns:  s.Campaigns,
		characters: s.Characters,
		combat:     s.Combat,
		checks:     s.Checks,
		health:     s.Health,
		logger:     logger,
	}
}

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(h *Handler, auth *Authenticator, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(observability.GinRecovery(logger), observability.GinLogger(logger))

	r.GET("/health", h.getHealth)

	rules := r.Group("/rules")
	rules.GET("/check", h.getCheck)
	rules.POST("/roll", h.postRoll)
	rules.GET("/actions", h.getActions)

	authed := r.Group("/", auth.Required())

	campaigns := authed.Group("/campaigns")
	campaigns.POST("", h.postCampaign)
	campaigns.GET("/:id", h.getCampaign)
	campaigns.POST("/:id/join", h.postJoin)
	campaigns.POST("/:id/members/status", h.postMemberStatus)
	campaigns.POST("/:id/gold/transfer", h.postTransfer)
	campaigns.POST("/:id/gold/pay_upkeep", h.postPayUpkeep)
	campaigns.POST("/:id/settings", h.postSettings)

	fight := campaigns.Group("/:id/combat")
	fight.GET("", h.getCombat)
	fight.POST("/start", h.postCombatStart)
	fight.POST("/next", h.postCombatNext)
	fight.POST("/action", h.postCombatAction)
	fight.POST("/end", h.postCombatEnd)

	characters := authed.Group("/characters")
	characters.GET("", h.getCharacters)
	characters.POST("", h.postCharacter)
	characters.GET("/:id", h.getCharacter)
	characters.POST("/:id/equip", h.postEquip)
	characters.POST("/:id/unequip", h.postUnequip)
	characters.POST("/:id/skills/unlock", h.postUnlock)
	characters.POST("/:id/attributes/save", h.postAttributes)
	characters.POST("/:id/notes", h.postNotes)
	characters.POST("/:id/levelup", h.postLevelUp)
	characters.POST("/:id/inventory/add", h.postAddItem)
	characters.POST("/:id/inventory/delete", h.postDeleteItem)
	characters.POST("/:id/status/update", h.postStatus)
	characters.POST("/:id/gold/update", h.postGold)
	characters.POST("/:id/fiefs/add", h.postAddFief)
	characters.POST("/:id/fiefs/collect", h.postCollectFief)
	characters.POST("/:id/fiefs/delete", h.postDeleteFief)

	return r
}

func (h *Handler) getHealth(c *gin.Context) {
	if h.health != nil {
		if err := h.health(c.Request.Context()); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
