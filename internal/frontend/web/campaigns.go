package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ostwick/RPG-Imperium/internal/game/campaign"
	"github.com/Ostwick/RPG-Imperium/internal/game/combat"
	"github.com/Ostwick/RPG-Imperium/internal/gameserver"
)

type campaignForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
}

func (h *Handler) postCampaign(c *gin.Context) {
	var f campaignForm
	if err := c.ShouldBind(&f); err != nil {
		h.done(c, "/campaigns", badInput(err), "")
		return
	}
	if f.Name == "" {
		h.done(c, "/campaigns", fmt.Errorf("%w: name is required", errBadInput), "")
		return
	}
	camp, err := h.campaigns.Create(c.Request.Context(), identity(c), f.Name, f.Description)
	if err != nil {
		h.done(c, "/campaigns", err, "")
		return
	}
	h.done(c, campaignPath(camp.ID), nil, "")
}

func (h *Handler) getCampaign(c *gin.Context) {
	camp, err := h.campaigns.Get(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, camp)
}

func (h *Handler) postJoin(c *gin.Context) {
	err := h.campaigns.Join(c.Request.Context(), identity(c), c.Param("id"), c.PostForm("char_id"))
	h.done(c, "/campaigns", err, "Request sent")
}

func (h *Handler) postMemberStatus(c *gin.Context) {
	id := c.Param("id")
	status := campaign.MemberStatus(c.PostForm("new_status"))
	err := h.campaigns.SetMemberStatus(c.Request.Context(), identity(c), id, c.PostForm("char_id"), status)
	h.done(c, campaignPath(id), err, "")
}

func campaignPath(id string) string { return "/campaigns/" + id }

type transferForm struct {
	CharacterID string `form:"char_id" binding:"required"`
	Amount      *int   `form:"amount" binding:"required"`
}

// postTransfer moves gold between a member and the treasury. A positive
// amount pays into the treasury.
func (h *Handler) postTransfer(c *gin.Context) {
	id := c.Param("id")
	var f transferForm
	if err := c.ShouldBind(&f); err != nil {
		h.done(c, campaignPath(id), badInput(err), "")
		return
	}
	err := h.campaigns.TransferGold(c.Request.Context(), identity(c), id, f.CharacterID, *f.Amount)
	h.done(c, campaignPath(id), err, "")
}

type settingsForm struct {
	MapURL string `form:"map_url"`
	Upkeep *int   `form:"upkeep" binding:"required"`
}

func (h *Handler) postSettings(c *gin.Context) {
	id := c.Param("id")
	var f settingsForm
	if err := c.ShouldBind(&f); err != nil {
		h.done(c, campaignPath(id), badInput(err), "")
		return
	}
	err := h.campaigns.UpdateSettings(c.Request.Context(), identity(c), id, f.MapURL, *f.Upkeep)
	h.done(c, campaignPath(id), err, "")
}

func (h *Handler) postPayUpkeep(c *gin.Context) {
	id := c.Param("id")
	_, err := h.campaigns.PayUpkeep(c.Request.Context(), identity(c), id)
	h.done(c, campaignPath(id), err, "Upkeep Paid")
}

func (h *Handler) getCombat(c *gin.Context) {
	camp, err := h.combat.State(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"combat_active": camp.CombatActive,
		"combatants":    camp.Combatants,
		"combat_log":    camp.Log,
		"next":          combat.NextActor(camp.Combatants),
	})
}

type startForm struct {
	PlayerIDs []string `form:"player_ids"`
	EnemyIDs  []string `form:"enemy_ids"`
}

func combatPath(id string) string { return "/campaigns/" + id + "/combat" }

func (h *Handler) postCombatStart(c *gin.Context) {
	id := c.Param("id")
	var f startForm
	if err := c.ShouldBind(&f); err != nil {
		h.done(c, combatPath(id), badInput(err), "")
		return
	}
	err := h.combat.StartCombat(c.Request.Context(), identity(c), id, f.PlayerIDs, f.EnemyIDs)
	h.done(c, combatPath(id), err, "")
}

func (h *Handler) postCombatNext(c *gin.Context) {
	id := c.Param("id")
	res, err := h.combat.AdvanceClock(c.Request.Context(), identity(c), id)
	var msg string
	switch {
	case err != nil:
	case res.Stalled:
		msg = "Nobody can act: every living combatant has zero speed."
	case res.Ready != nil:
		msg = fmt.Sprintf("%s is ready.", res.Ready.Name)
	}
	h.done(c, combatPath(id), err, msg)
}

type actionForm struct {
	ActorIdx     *int   `form:"actor_idx" binding:"required"`
	TargetIdx    *int   `form:"target_idx" binding:"required"`
	Action       string `form:"action" binding:"required"`
	BonusDamage  int    `form:"bonus_dmg"`
	BonusDefense int    `form:"bonus_def"`
	Crit         bool   `form:"is_crit"`
}

func (h *Handler) postCombatAction(c *gin.Context) {
	id := c.Param("id")
	var f actionForm
	if err := c.ShouldBind(&f); err != nil {
		h.done(c, combatPath(id), badInput(err), "")
		return
	}
	req := gameserver.ActionRequest{
		ActorIdx:  *f.ActorIdx,
		TargetIdx: *f.TargetIdx,
		Action: combat.Action{
			Kind:         combat.ActionKind(f.Action),
			BonusDamage:  f.BonusDamage,
			BonusDefense: f.BonusDefense,
			Crit:         f.Crit,
		},
	}
	res, err := h.combat.ResolveAction(c.Request.Context(), identity(c), id, req)
	h.done(c, combatPath(id), err, res.Message)
}

func (h *Handler) postCombatEnd(c *gin.Context) {
	id := c.Param("id")
	err := h.combat.EndCombat(c.Request.Context(), identity(c), id)
	h.done(c, combatPath(id), err, "Combat ended")
}
