package gameserver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/combat"
	"github.com/Ostwick/RPG-Imperium/internal/storage"
)

// SheetSync writes combat side effects to stored character sheets. A sheet
// deleted mid-encounter is skipped with a warning.
type SheetSync struct {
	characters CharacterStore
	logger     *zap.Logger
}

// NewSheetSync creates a SheetSync.
//
// Precondition: characters and logger must be non-nil.
func NewSheetSync(characters CharacterStore, logger *zap.Logger) *SheetSync {
	return &SheetSync{characters: characters, logger: logger}
}

// SyncStamina implements combat.Sheets.
func (s *SheetSync) SyncStamina(ctx context.Context, characterID string, stamina int) error {
	return s.set(ctx, characterID, character.FieldStamina, stamina)
}

// SyncHP implements combat.Sheets.
func (s *SheetSync) SyncHP(ctx context.Context, characterID string, hp int) error {
	return s.set(ctx, characterID, character.FieldHPCurrent, hp)
}

func (s *SheetSync) set(ctx context.Context, characterID string, field character.StatusField, value int) error {
	err := s.characters.SetStatus(ctx, characterID, field, value)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn("sheet sync skipped",
			zap.String("character", characterID),
			zap.String("field", string(field)),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("syncing %s for %s: %w", field, characterID, err)
	}
	return nil
}

// ConsumeAmmo implements combat.Sheets. Throwing weapons spend themselves and
// bows or crossbows spend the Ammo item held in the other hand. Melee
// loadouts spend nothing.
//
// Postcondition: Returns combat.ErrOutOfAmmo when a ranged weapon has no
// unit left to spend.
func (s *SheetSync) ConsumeAmmo(ctx context.Context, characterID string) error {
	c, err := s.characters.Get(ctx, characterID)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn("ammo check skipped", zap.String("character", characterID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", characterID, err)
	}

	slot, ranged := c.Equipment.AmmoSource()
	if !ranged {
		return nil
	}
	if slot == "" {
		return combat.ErrOutOfAmmo
	}
	ok, err := s.characters.DecrementEquipped(ctx, characterID, slot)
	if err != nil {
		return fmt.Errorf("spending ammo for %s: %w", characterID, err)
	}
	if !ok {
		return combat.ErrOutOfAmmo
	}
	return nil
}
