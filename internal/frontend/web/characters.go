package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/game/ruleset"
)

func characterPath(id string) string { return "/characters/" + id }

func (h *Handler) getCharacters(c *gin.Context) {
	list, err := h.characters.List(c.Request.Context(), identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if list == nil {
		list = []*character.Character{}
	}
	c.JSON(http.StatusOK, gin.H{"characters": list})
}

type creationForm struct {
	Name      string `form:"name"`
	Archetype string `form:"archetype"`
	Culture   string `form:"culture"`
	Bio       string `form:"bio"`
}

func (h *Handler) postCharacter(c *gin.Context) {
	var f creationForm
	if err := c.ShouldBind(&f); err != nil {
		h.done(c, "/characters", badInput(err), "")
		return
	}
	if f.Name == "" {
		h.done(c, "/characters", fmt.Errorf("%w: name is required", errBadInput), "")
		return
	}
	ch, err := h.characters.Create(c.Request.Context(), identity(c), character.Creation{
		Name:      f.Name,
		Archetype: f.Archetype,
		Culture:   f.Culture,
		Bio:       f.Bio,
	})
	if err != nil {
		h.done(c, "/characters", err, "")
		return
	}
	h.done(c, characterPath(ch.ID), nil, "")
}

func (h *Handler) getCharacter(c *gin.Context) {
	sheet, err := h.characters.Sheet(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sheet)
}

func (h *Handler) postEquip(c *gin.Context) {
	id := c.Param("id")
	hand := inventory.Hand(c.DefaultPostForm("slot", string(inventory.HandMain)))
	_, err := h.characters.Equip(c.Request.Context(), identity(c), id, c.PostForm("item_id"), hand)
	h.done(c, characterPath(id), err, "")
}

func (h *Handler) postUnequip(c *gin.Context) {
	id := c.Param("id")
	slot, err := inventory.ParseSlot(c.PostForm("slot"))
	if err == nil {
		err = h.characters.Unequip(c.Request.Context(), identity(c), id, slot)
	}
	h.done(c, characterPath(id), err, "")
}

type unlockForm struct {
	Attribute string `form:"attribute" binding:"required"`
	Skill     string `form:"skill" binding:"required"`
	Tier      int    `form:"tier" binding:"required"`
	Choice    *int   `form:"choice_index" binding:"required"`
}

func (h *Handler) postUnlock(c *gin.Context) {
	id := c.Param("id")
	var f unlockForm
	if err := c.ShouldBind(&f); err != nil {
		h.done(c, characterPath(id), badInput(err), "")
		return
	}
	err := h.characters.UnlockNode(c.Request.Context(), identity(c), id, f.Attribute, f.Skill, f.Tier, *f.Choice)
	h.done(c, characterPath(id), err, "")
}

// postAttributes reads one form value per attribute; absent attributes keep
// their value.
func (h *Handler) postAttributes(c *gin.Context) {
	id := c.Param("id")
	target := make(map[string]int)
	for _, attr := range ruleset.Attributes {
		raw, ok := c.GetPostForm(attr)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.done(c, characterPath(id), badInput(fmt.Errorf("%s: %w", attr, err)), "")
			return
		}
		target[attr] = v
	}
	err := h.characters.SpendAttributes(c.Request.Context(), identity(c), id, target)
	h.done(c, characterPath(id), err, "")
}

func (h *Handler) postNotes(c *gin.Context) {
	id := c.Param("id")
	err := h.characters.SaveNotes(c.Request.Context(), identity(c), id, c.PostForm("notes"))
	h.done(c, characterPath(id), err, "")
}

func (h *Handler) postLevelUp(c *gin.Context) {
	id := c.Param("id")
	err := h.characters.LevelUp(c.Request.Context(), identity(c), id)
	h.done(c, characterPath(id), err, "")
}

type itemForm struct {
	Name       string  `form:"name" binding:"required"`
	Weight     float64 `form:"weight"`
	Quantity   int     `form:"qty,default=1"`
	Category   string  `form:"category" binding:"required"`
	WeaponType string  `form:"weapon_type"`
	Damage     int     `form:"damage"`
	Defense    int     `form:"defense"`
	CarryBonus float64 `form:"carry_bonus"`
	TwoHanded  bool    `form:"is_two_handed"`
}

func (h *Handler) postAddItem(c *gin.Context) {
	id := c.Param("id")
	var f itemForm
	if err := c.ShouldBind(&f); err != nil {
		h.done(c, characterPath(id), badInput(err), "")
		return
	}
	item := inventory.NewItem(f.Name, inventory.Category(f.Category), inventory.WeaponType(f.WeaponType), f.Quantity, f.Weight)
	item.Damage = f.Damage
	item.Defense = f.Defense
	item.CarryBonusKg = f.CarryBonus
	item.TwoHanded = f.TwoHanded
	if err := item.Validate(); err != nil {
		h.done(c, characterPath(id), badInput(err), "")
		return
	}
	err := h.characters.AddItem(c.Request.Context(), identity(c), id, item)
	h.done(c, characterPath(id), err, "")
}

func (h *Handler) postDeleteItem(c *gin.Context) {
	id := c.Param("id")
	err := h.characters.RemoveItem(c.Request.Context(), identity(c), id, c.PostForm("item_id"))
	h.done(c, characterPath(id), err, "")
}

type statusForm struct {
	HP      int `form:"hp_current"`
	Stamina int `form:"stamina_current"`
}

func (h *Handler) postStatus(c *gin.Context) {
	id := c.Param("id")
	var f statusForm
	if err := c.ShouldBind(&f); err != nil {
		h.done(c, characterPath(id), badInput(err), "")
		return
	}
	err := h.characters.UpdateStatus(c.Request.Context(), identity(c), id, f.HP, f.Stamina)
	h.done(c, characterPath(id), err, "")
}

type goldForm struct {
	Amount *int `form:"amount" binding:"required"`
}

func (h *Handler) postGold(c *gin.Context) {
	id := c.Param("id")
	var f goldForm
	if err := c.ShouldBind(&f); err != nil {
		h.done(c, characterPath(id), badInput(err), "")
		return
	}
	err := h.characters.UpdateGold(c.Request.Context(), identity(c), id, *f.Amount)
	h.done(c, characterPath(id), err, "")
}

type fiefForm struct {
	Name   string `form:"name" binding:"required"`
	Type   string `form:"type"`
	Income *int   `form:"income" binding:"required"`
}

func (h *Handler) postAddFief(c *gin.Context) {
	id := c.Param("id")
	var f fiefForm
	if err := c.ShouldBind(&f); err != nil {
		h.done(c, characterPath(id), badInput(err), "")
		return
	}
	_, err := h.characters.AddFief(c.Request.Context(), identity(c), id, f.Name, f.Type, *f.Income)
	h.done(c, characterPath(id), err, "")
}

func (h *Handler) postCollectFief(c *gin.Context) {
	id := c.Param("id")
	income, err := h.characters.CollectFief(c.Request.Context(), identity(c), id, c.PostForm("fief_id"))
	var msg string
	if err == nil {
		msg = fmt.Sprintf("Collected %d gold", income)
	}
	h.done(c, characterPath(id), err, msg)
}

func (h *Handler) postDeleteFief(c *gin.Context) {
	id := c.Param("id")
	err := h.characters.RemoveFief(c.Request.Context(), identity(c), id, c.PostForm("fief_id"))
	h.done(c, characterPath(id), err, "")
}
