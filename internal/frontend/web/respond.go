package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ostwick/RPG-Imperium/internal/game/campaign"
	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/combat"
	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/gameserver"
	"github.com/Ostwick/RPG-Imperium/internal/storage"
)

// errBadInput marks a form or query value that could not be parsed.
var errBadInput = errors.New("bad input")

func badInput(err error) error { return fmt.Errorf("%w: %v", errBadInput, err) }

// clientErrors are shown to the user verbatim; anything else is logged and
// replaced by a generic message.
var clientErrors = []struct {
	err    error
	status int
}{
	{storage.ErrNotFound, http.StatusNotFound},
	{gameserver.ErrForbidden, http.StatusForbidden},
	{gameserver.ErrInvalidReference, http.StatusBadRequest},
	{gameserver.ErrCombatNotActive, http.StatusConflict},
	{gameserver.ErrOverburdened, http.StatusUnprocessableEntity},
	{combat.ErrActorDown, http.StatusConflict},
	{combat.ErrOutOfAmmo, http.StatusConflict},
	{combat.ErrUnknownAction, http.StatusBadRequest},
	{character.ErrItemNotFound, http.StatusBadRequest},
	{character.ErrNoSkillPoints, http.StatusUnprocessableEntity},
	{character.ErrAttributeTooLow, http.StatusUnprocessableEntity},
	{character.ErrUnknownSkill, http.StatusBadRequest},
	{character.ErrMaxLevel, http.StatusUnprocessableEntity},
	{character.ErrNotEnoughAttributePoints, http.StatusUnprocessableEntity},
	{inventory.ErrSlotOccupied, http.StatusConflict},
	{inventory.ErrHandsFull, http.StatusConflict},
	{inventory.ErrMainHandBusy, http.StatusConflict},
	{inventory.ErrNotEquippable, http.StatusBadRequest},
	{inventory.ErrUnknownSlot, http.StatusBadRequest},
	{campaign.ErrAlreadyMember, http.StatusConflict},
	{campaign.ErrNotMember, http.StatusBadRequest},
	{campaign.ErrInsufficientGold, http.StatusUnprocessableEntity},
	{campaign.ErrNoUpkeep, http.StatusUnprocessableEntity},
	{campaign.ErrNegativeUpkeep, http.StatusBadRequest},
	{character.ErrFiefNotFound, http.StatusBadRequest},
	{character.ErrNegativeGold, http.StatusBadRequest},
	{character.ErrInvalidFief, http.StatusBadRequest},
	{errBadInput, http.StatusBadRequest},
}

func classify(err error) int {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.err) {
			return ce.status
		}
	}
	return http.StatusInternalServerError
}

// message returns the text shown for err, logging server faults.
func (h *Handler) message(c *gin.Context, err error) (int, string) {
	status := classify(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		_ = c.Error(err)
		return status, "something went wrong"
	}
	return status, err.Error()
}

// fail writes err as a JSON error body.
func (h *Handler) fail(c *gin.Context, err error) {
	status, msg := h.message(c, err)
	c.JSON(status, gin.H{"error": msg})
}

// done answers a form post with a 303 to path carrying either ?error= or ?msg=.
func (h *Handler) done(c *gin.Context, path string, err error, msg string) {
	q := url.Values{}
	switch {
	case err != nil:
		_, text := h.message(c, err)
		q.Set("error", text)
	case msg != "":
		q.Set("msg", msg)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	c.Redirect(http.StatusSeeOther, path)
}
