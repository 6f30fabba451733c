package gameserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/game/ruleset"
	"github.com/Ostwick/RPG-Imperium/internal/game/stats"
)

// Sheet is a character with its derived stats, as shown to one caller.
type Sheet struct {
	Character *character.Character `json:"character"`
	Derived   stats.Derived        `json:"derived"`
	// Editable is true for the owner and for GMs.
	Editable bool `json:"editable"`
}

// CharacterService exposes sheet editing. Owners edit their own sheets; GMs
// edit any sheet and alone may level up, grant items and set vitals.
type CharacterService struct {
	characters CharacterStore
	catalog    *ruleset.Catalog
	calc       *stats.Calculator
	logger     *zap.Logger
}

// NewCharacterService creates a CharacterService.
//
// Precondition: characters, calc and logger must be non-nil. A nil catalog
// serves the generic skill tree.
func NewCharacterService(characters CharacterStore, catalog *ruleset.Catalog, calc *stats.Calculator, logger *zap.Logger) *CharacterService {
	return &CharacterService{characters: characters, catalog: catalog, calc: calc, logger: logger}
}

// Create builds a level-1 character owned by the caller.
func (s *CharacterService) Create(ctx context.Context, id Identity, in character.Creation) (*character.Character, error) {
	c, err := character.New(uuid.NewString(), id.ID, in)
	if err != nil {
		return nil, err
	}
	if err := s.characters.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating character: %w", err)
	}
	s.logger.Info("character created",
		zap.String("character", c.ID),
		zap.String("user", id.ID),
	)
	return c, nil
}

// List returns the caller's characters.
func (s *CharacterService) List(ctx context.Context, id Identity) ([]*character.Character, error) {
	return s.characters.ListByUser(ctx, id.ID)
}

// Sheet loads a character with derived stats. Private notes are blanked for
// callers who cannot edit the sheet. When an editor views a sheet whose
// hp_max no longer matches its skill bonuses, the stored value is corrected
// and hp_current is lowered to fit under it.
func (s *CharacterService) Sheet(ctx context.Context, id Identity, characterID string) (*Sheet, error) {
	c, err := s.characters.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}
	d := s.calc.Compute(c)
	editable := canEdit(id, c)

	if !editable {
		c.PrivateNotes = ""
		return &Sheet{Character: c, Derived: d}, nil
	}
	if hpMax := d.HPMax(); c.Status.HPMax != hpMax {
		if err := s.characters.SetStatus(ctx, c.ID, character.FieldHPMax, hpMax); err != nil {
			return nil, fmt.Errorf("correcting hp_max: %w", err)
		}
		_ = c.Status.Set(character.FieldHPMax, hpMax)
	}
	return &Sheet{Character: c, Derived: d, Editable: true}, nil
}

// Equip moves an inventory item into its slot. Hand picks the slot for
// weapons and ammunition.
func (s *CharacterService) Equip(ctx context.Context, id Identity, characterID, itemID string, hand inventory.Hand) (inventory.Slot, error) {
	var slot inventory.Slot
	err := s.edit(ctx, id, characterID, false, func(c *character.Character) error {
		var err error
		slot, err = c.Equip(itemID, hand)
		return err
	})
	return slot, err
}

// Unequip returns the item in slot to the inventory. An empty slot is a no-op.
func (s *CharacterService) Unequip(ctx context.Context, id Identity, characterID string, slot inventory.Slot) error {
	return s.edit(ctx, id, characterID, false, func(c *character.Character) error {
		if c.Unequip(slot) == nil {
			return errUnchanged
		}
		return nil
	})
}

// UnlockNode selects choice at tier of skill.
//
// Postcondition: Returns ErrInvalidReference when the skill is not one of
// attribute's skills or the tree has no such tier and choice.
func (s *CharacterService) UnlockNode(ctx context.Context, id Identity, characterID, attribute, skill string, tier, choice int) error {
	if attr, ok := ruleset.AttributeOf(skill); !ok || attr != attribute {
		return fmt.Errorf("%w: skill %q under %q", ErrInvalidReference, skill, attribute)
	}
	if _, ok := s.catalog.Choice(skill, tier, choice); !ok {
		return fmt.Errorf("%w: %s tier %d choice %d", ErrInvalidReference, skill, tier, choice)
	}
	return s.edit(ctx, id, characterID, false, func(c *character.Character) error {
		return c.UnlockNode(attribute, skill, tier, choice, id.IsGM())
	})
}

// SpendAttributes raises attributes to the requested values.
func (s *CharacterService) SpendAttributes(ctx context.Context, id Identity, characterID string, target map[string]int) error {
	return s.edit(ctx, id, characterID, false, func(c *character.Character) error {
		return c.SpendAttributes(target)
	})
}

// LevelUp advances the character one level. GM only.
func (s *CharacterService) LevelUp(ctx context.Context, id Identity, characterID string) error {
	return s.edit(ctx, id, characterID, true, func(c *character.Character) error {
		return c.LevelUp()
	})
}

// AddItem grants item to the character. GM only.
//
// Postcondition: Returns ErrOverburdened when the item's total weight would
// carry the load past the maximum.
func (s *CharacterService) AddItem(ctx context.Context, id Identity, characterID string, item inventory.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return s.edit(ctx, id, characterID, true, func(c *character.Character) error {
		d := s.calc.Compute(c)
		if d.CurrentLoad+item.Weight*float64(item.Quantity) > d.MaxLoad {
			return fmt.Errorf("%w: %.1f of %.1f kg carried", ErrOverburdened, d.CurrentLoad, d.MaxLoad)
		}
		c.AddItem(item)
		return nil
	})
}

// RemoveItem discards an inventory item. GM only.
func (s *CharacterService) RemoveItem(ctx context.Context, id Identity, characterID, itemID string) error {
	return s.edit(ctx, id, characterID, true, func(c *character.Character) error {
		return c.RemoveItem(itemID)
	})
}

// SaveNotes replaces the private notes.
func (s *CharacterService) SaveNotes(ctx context.Context, id Identity, characterID, notes string) error {
	return s.edit(ctx, id, characterID, false, func(c *character.Character) error {
		c.PrivateNotes = notes
		return nil
	})
}

// UpdateStatus overwrites current HP and stamina. GM only.
func (s *CharacterService) UpdateStatus(ctx context.Context, id Identity, characterID string, hp, stamina int) error {
	return s.edit(ctx, id, characterID, true, func(c *character.Character) error {
		c.SetVitals(hp, stamina)
		return nil
	})
}

// UpdateGold overwrites the character's purse. GM only.
func (s *CharacterService) UpdateGold(ctx context.Context, id Identity, characterID string, amount int) error {
	return s.edit(ctx, id, characterID, true, func(c *character.Character) error {
		return c.SetGold(amount)
	})
}

// AddFief grants a new fief to the character. GM only.
func (s *CharacterService) AddFief(ctx context.Context, id Identity, characterID, name, kind string, income int) (character.Fief, error) {
	f, err := character.NewFief(name, kind, income)
	if err != nil {
		return character.Fief{}, err
	}
	err = s.edit(ctx, id, characterID, true, func(c *character.Character) error {
		c.AddFief(f)
		return nil
	})
	if err != nil {
		return character.Fief{}, err
	}
	return f, nil
}

// CollectFief pays one fief's income into the purse and returns the amount.
// GM only.
func (s *CharacterService) CollectFief(ctx context.Context, id Identity, characterID, fiefID string) (int, error) {
	var income int
	err := s.edit(ctx, id, characterID, true, func(c *character.Character) error {
		var err error
		income, err = c.CollectFief(fiefID)
		return err
	})
	return income, err
}

// RemoveFief drops a fief from the character. GM only.
func (s *CharacterService) RemoveFief(ctx context.Context, id Identity, characterID, fiefID string) error {
	return s.edit(ctx, id, characterID, true, func(c *character.Character) error {
		return c.RemoveFief(fiefID)
	})
}

// errUnchanged lets an edit finish without a write.
var errUnchanged = errors.New("unchanged")

// edit loads a sheet, checks the caller may change it, applies fn and
// saves the result.
func (s *CharacterService) edit(ctx context.Context, id Identity, characterID string, gmOnly bool, fn func(*character.Character) error) error {
	c, err := s.characters.Get(ctx, characterID)
	if err != nil {
		return err
	}
	if (gmOnly && !id.IsGM()) || !canEdit(id, c) {
		return ErrForbidden
	}
	if err := fn(c); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	if err := s.characters.Save(ctx, c); err != nil {
		return fmt.Errorf("saving character: %w", err)
	}
	s.logger.Debug("character updated",
		zap.String("character", c.ID),
		zap.String("by", id.ID),
	)
	return nil
}

func canEdit(id Identity, c *character.Character) bool {
	return id.IsGM() || c.UserID == id.ID
}
