package character

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/game/ruleset"
)

var (
	// ErrItemNotFound is returned when an item id is not in the inventory.
	ErrItemNotFound = errors.New("item not found")
	// ErrNoSkillPoints is returned when an unlock is attempted without a skill point.
	ErrNoSkillPoints = errors.New("not enough skill points")
	// ErrAttributeTooLow is returned when the attribute is below the tier requirement.
	ErrAttributeTooLow = errors.New("attribute too low")
	// ErrUnknownSkill is returned for an attribute/skill pair that does not exist on the sheet.
	ErrUnknownSkill = errors.New("unknown skill")
	// ErrMaxLevel is returned when levelling past the cap.
	ErrMaxLevel = errors.New("max level reached")
	// ErrNotEnoughAttributePoints is returned when a spend exceeds the available points.
	ErrNotEnoughAttributePoints = errors.New("not enough attribute points")
)

func (c *Character) itemIndex(id string) int {
	for i := range c.Inventory {
		if c.Inventory[i].ID == id {
			return i
		}
	}
	return -1
}

// Equip moves an inventory item into the slot its category dictates. Hand is
// only consulted for weapons and ammo.
//
// Postcondition: on success the item is removed from Inventory and held by
// the returned slot; on error nothing changes.
func (c *Character) Equip(itemID string, hand inventory.Hand) (inventory.Slot, error) {
	idx := c.itemIndex(itemID)
	if idx < 0 {
		return "", ErrItemNotFound
	}
	item := c.Inventory[idx]
	slot, err := inventory.TargetSlot(item, hand)
	if err != nil {
		return "", err
	}
	if err := c.Equipment.Place(slot, item); err != nil {
		return "", err
	}
	c.Inventory = append(c.Inventory[:idx], c.Inventory[idx+1:]...)
	return slot, nil
}

// Unequip returns the item in slot to the inventory.
//
// Postcondition: returns nil when the slot is already empty.
func (c *Character) Unequip(slot inventory.Slot) *inventory.Item {
	it := c.Equipment.Remove(slot)
	if it != nil {
		c.Inventory = append(c.Inventory, *it)
	}
	return it
}

// AddItem appends item to the inventory.
func (c *Character) AddItem(item inventory.Item) {
	c.Inventory = append(c.Inventory, item)
}

// RemoveItem drops an inventory item.
//
// Postcondition: returns ErrItemNotFound when no item has the id.
func (c *Character) RemoveItem(itemID string) error {
	idx := c.itemIndex(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}
	c.Inventory = append(c.Inventory[:idx], c.Inventory[idx+1:]...)
	return nil
}

// UnlockNode records choice at tier for skill. Point checks are waived when
// exempt is true, but a point is still spent and the balance floors at zero.
//
// Precondition: tier and choice have been validated against the skill tree.
// Postcondition: on success nodes_unlocked[tier] == choice.
func (c *Character) UnlockNode(attribute, skill string, tier, choice int, exempt bool) error {
	data, ok := c.Stats[attribute]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownSkill, attribute, skill)
	}
	prog, ok := data.Skills[skill]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownSkill, attribute, skill)
	}
	if c.Points.SkillPoints < 1 && !exempt {
		return ErrNoSkillPoints
	}
	if need := ruleset.TierRequirement(tier); data.Value < need {
		return fmt.Errorf("%w: need %d", ErrAttributeTooLow, need)
	}
	if prog.NodesUnlocked == nil {
		prog.NodesUnlocked = make(map[string]int)
	}
	prog.NodesUnlocked[strconv.Itoa(tier)] = choice
	data.Skills[skill] = prog
	c.Stats[attribute] = data
	c.Points.SkillPoints = max(0, c.Points.SkillPoints-1)
	return nil
}

// LevelUp advances one level and grants two attribute points and one skill point.
//
// Postcondition: returns ErrMaxLevel and changes nothing at the level cap.
func (c *Character) LevelUp() error {
	if c.Status.Level >= ruleset.MaxLevel {
		return ErrMaxLevel
	}
	c.Status.Level++
	c.Points.AttributePoints += 2
	c.Points.SkillPoints++
	return nil
}

// SpendAttributes raises attributes to the requested values, paying one
// attribute point per increase. Requested values below the current value are
// ignored.
//
// Postcondition: on error nothing changes.
func (c *Character) SpendAttributes(target map[string]int) error {
	cost := 0
	for attr, v := range target {
		data, ok := c.Stats[attr]
		if !ok {
			return fmt.Errorf("unknown attribute %q", attr)
		}
		if v > data.Value {
			cost += v - data.Value
		}
	}
	if cost > c.Points.AttributePoints {
		return ErrNotEnoughAttributePoints
	}
	for attr, v := range target {
		data := c.Stats[attr]
		if v > data.Value {
			data.Value = v
			c.Stats[attr] = data
		}
	}
	c.Points.AttributePoints -= cost
	return nil
}

// SetVitals overwrites current HP and stamina, clamping HP to [0, hp_max]
// and stamina to >= 0.
func (c *Character) SetVitals(hp, stamina int) {
	c.Status.HPCurrent = min(max(0, hp), c.Status.HPMax)
	c.Status.Stamina = max(0, stamina)
}
