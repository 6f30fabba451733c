// Package character defines the persistent character sheet and the pure rules
// that mutate it: equipping, skill unlocks, levelling and attribute spending.
package character

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/game/ruleset"
)

// SkillProgress records the chosen option index per unlocked tier. Keys are
// tier numbers rendered as decimal strings.
type SkillProgress struct {
	NodesUnlocked map[string]int `json:"nodes_unlocked"`
}

// AttributeData is one attribute's value and its skills.
type AttributeData struct {
	Value  int                      `json:"value"`
	Skills map[string]SkillProgress `json:"skills"`
}

// Status holds the live vitals shown on the sheet.
type Status struct {
	HPCurrent  int `json:"hp_current"`
	HPMax      int `json:"hp_max"`
	Stamina    int `json:"stamina"`
	StaminaMax int `json:"stamina_max"`
	Speed      int `json:"speed"`
	Gold       int `json:"gold"`
	Level      int `json:"level"`
}

// StatusField names a single vital that storage can update in place.
type StatusField string

const (
	FieldHPCurrent StatusField = "hp_current"
	FieldHPMax     StatusField = "hp_max"
	FieldStamina   StatusField = "stamina"
)

// Set assigns value to the named field.
//
// Postcondition: Returns an error for any field not listed above.
// Lowering hp_max below hp_current also lowers hp_current to match.
func (s *Status) Set(field StatusField, value int) error {
	switch field {
	case FieldHPCurrent:
		s.HPCurrent = value
	case FieldHPMax:
		s.HPMax = value
		s.HPCurrent = min(s.HPCurrent, value)
	case FieldStamina:
		s.Stamina = value
	default:
		return fmt.Errorf("unknown status field %q", field)
	}
	return nil
}

// Points are unspent progression points.
type Points struct {
	AttributePoints int `json:"attribute_points"`
	SkillPoints     int `json:"skill_points"`
}

// Character is a player character sheet.
type Character struct {
	ID             string                   `json:"id"`
	UserID         string                   `json:"user_id"`
	Name           string                   `json:"name"`
	ClassArchetype string                   `json:"class_archetype"`
	Culture        string                   `json:"culture"`
	PublicBio      string                   `json:"public_bio"`
	PrivateNotes   string                   `json:"private_notes"`
	ImageURL       string                   `json:"image_url"`
	Stats          map[string]AttributeData `json:"stats"`
	Status         Status                   `json:"status"`
	Points         Points                   `json:"points"`
	Inventory      []inventory.Item         `json:"inventory"`
	Equipment      inventory.Equipment      `json:"equipment"`
	Fiefs          []Fief                   `json:"fiefs"`
}

// UnlockedNode is one (attribute, skill, tier, choice) selection.
type UnlockedNode struct {
	Attribute string
	Skill     string
	Tier      int
	Choice    int
}

// UnlockedNodes lists every unlocked node. Keys that are not integers are skipped.
func (c *Character) UnlockedNodes() []UnlockedNode {
	var nodes []UnlockedNode
	for _, attr := range ruleset.Attributes {
		data, ok := c.Stats[attr]
		if !ok {
			continue
		}
		for skill, prog := range data.Skills {
			for key, choice := range prog.NodesUnlocked {
				tier, err := strconv.Atoi(key)
				if err != nil {
					continue
				}
				nodes = append(nodes, UnlockedNode{Attribute: attr, Skill: skill, Tier: tier, Choice: choice})
			}
		}
	}
	return nodes
}

// AttributeValue returns the value of attr, or 0 when absent.
func (c *Character) AttributeValue(attr string) int {
	return c.Stats[attr].Value
}

// Validate checks the sheet's structural invariants.
//
// Postcondition: returns nil iff id and name are set, all six attributes are
// present, vitals and gold are non-negative, and every item and slot is valid.
func (c *Character) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	for _, attr := range ruleset.Attributes {
		if _, ok := c.Stats[attr]; !ok {
			errs = append(errs, fmt.Errorf("missing attribute %q", attr))
		}
	}
	for attr := range c.Stats {
		if !ruleset.IsAttribute(attr) {
			errs = append(errs, fmt.Errorf("unknown attribute %q", attr))
		}
	}
	s := c.Status
	if s.HPCurrent < 0 || s.HPMax < 0 || s.Stamina < 0 || s.StaminaMax < 0 || s.Gold < 0 {
		errs = append(errs, errors.New("status values must not be negative"))
	}
	if s.Level < 1 || s.Level > ruleset.MaxLevel {
		errs = append(errs, fmt.Errorf("level must be 1-%d, got %d", ruleset.MaxLevel, s.Level))
	}
	for i := range c.Inventory {
		if err := c.Inventory[i].Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.Equipment.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("character %q: %w", c.ID, errors.Join(errs...))
	}
	return nil
}
