package inventory

import (
	"errors"
	"fmt"
)

// Slot names one of the four equipment slots.
type Slot string

const (
	SlotArmor    Slot = "armor"
	SlotHorse    Slot = "horse"
	SlotHandMain Slot = "hand_main"
	SlotHandOff  Slot = "hand_off"
)

// Hand selects the hand a weapon or ammo item is equipped into.
type Hand string

const (
	HandMain Hand = "main"
	HandOff  Hand = "off"
)

// Equipped types synthesized in addition to hand weapon types.
const (
	TypeShield = string(WeaponShield)
	TypeHorse  = "Horse"
)

var (
	// ErrSlotOccupied is returned when the target slot already holds an item.
	ErrSlotOccupied = errors.New("slot full")
	// ErrHandsFull is returned when a two-handed item would share hands with an off-hand item.
	ErrHandsFull = errors.New("hands full")
	// ErrMainHandBusy is returned when the main hand holds a two-handed item.
	ErrMainHandBusy = errors.New("main hand busy")
	// ErrNotEquippable is returned for General items.
	ErrNotEquippable = errors.New("item cannot be equipped")
	// ErrUnknownSlot is returned for a slot or hand name outside the four slots.
	ErrUnknownSlot = errors.New("unknown slot")
)

// ParseSlot accepts a slot name or a hand shorthand ("main", "off").
func ParseSlot(s string) (Slot, error) {
	switch s {
	case string(SlotArmor), string(SlotHorse), string(SlotHandMain), string(SlotHandOff):
		return Slot(s), nil
	case string(HandMain):
		return SlotHandMain, nil
	case string(HandOff):
		return SlotHandOff, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, s)
}

// Equipment holds the four slots. A nil slot is empty.
//
// Invariant: a two-handed item in HandMain implies HandOff is nil.
type Equipment struct {
	Armor    *Item `json:"armor"`
	Horse    *Item `json:"horse"`
	HandMain *Item `json:"hand_main"`
	HandOff  *Item `json:"hand_off"`
}

// Get returns the item in slot, or nil.
func (e *Equipment) Get(slot Slot) *Item {
	switch slot {
	case SlotArmor:
		return e.Armor
	case SlotHorse:
		return e.Horse
	case SlotHandMain:
		return e.HandMain
	case SlotHandOff:
		return e.HandOff
	}
	return nil
}

func (e *Equipment) set(slot Slot, it *Item) {
	switch slot {
	case SlotArmor:
		e.Armor = it
	case SlotHorse:
		e.Horse = it
	case SlotHandMain:
		e.HandMain = it
	case SlotHandOff:
		e.HandOff = it
	}
}

// TargetSlot resolves where item would go. Armor and horses ignore hand;
// weapons and ammo go into the requested hand.
func TargetSlot(item Item, hand Hand) (Slot, error) {
	switch item.Category {
	case CategoryArmor:
		return SlotArmor, nil
	case CategoryHorse:
		return SlotHorse, nil
	case CategoryWeapon, CategoryAmmo:
		switch hand {
		case HandMain:
			return SlotHandMain, nil
		case HandOff:
			return SlotHandOff, nil
		}
		return "", fmt.Errorf("%w: hand %q", ErrUnknownSlot, hand)
	}
	return "", ErrNotEquippable
}

// CanEquip checks whether item may go into slot given the current equipment.
//
// Postcondition: returns nil iff Place(slot, item) would keep every invariant.
func (e *Equipment) CanEquip(slot Slot, item Item) error {
	if e.Get(slot) != nil {
		return fmt.Errorf("%s: %w", slot, ErrSlotOccupied)
	}
	switch slot {
	case SlotHandMain:
		if item.TwoHanded && e.HandOff != nil {
			return ErrHandsFull
		}
	case SlotHandOff:
		if e.HandMain != nil && e.HandMain.TwoHanded {
			return ErrMainHandBusy
		}
		if item.TwoHanded {
			return ErrHandsFull
		}
	}
	return nil
}

// Place puts item into slot after CanEquip succeeds.
func (e *Equipment) Place(slot Slot, item Item) error {
	if err := e.CanEquip(slot, item); err != nil {
		return err
	}
	it := item
	e.set(slot, &it)
	return nil
}

// Remove empties slot and returns what it held, or nil.
func (e *Equipment) Remove(slot Slot) *Item {
	it := e.Get(slot)
	e.set(slot, nil)
	return it
}

// Validate checks slot categories and the two-handed invariant.
func (e *Equipment) Validate() error {
	check := func(slot Slot, allowed ...Category) error {
		it := e.Get(slot)
		if it == nil {
			return nil
		}
		if err := it.Validate(); err != nil {
			return fmt.Errorf("%s: %w", slot, err)
		}
		for _, c := range allowed {
			if it.Category == c {
				return nil
			}
		}
		return fmt.Errorf("%s: category %q not allowed", slot, it.Category)
	}
	if err := errors.Join(
		check(SlotArmor, CategoryArmor),
		check(SlotHorse, CategoryHorse),
		check(SlotHandMain, CategoryWeapon, CategoryAmmo),
		check(SlotHandOff, CategoryWeapon, CategoryAmmo),
	); err != nil {
		return err
	}
	if e.HandMain != nil && e.HandMain.TwoHanded && e.HandOff != nil {
		return fmt.Errorf("equipment: %w", ErrHandsFull)
	}
	return nil
}

// Weight returns the carried weight of equipped items. Horses carry themselves.
func (e *Equipment) Weight() float64 {
	var w float64
	for _, it := range []*Item{e.Armor, e.HandMain, e.HandOff} {
		if it != nil {
			w += it.Weight
		}
	}
	return w
}

// Types returns the set of equipped item types used by "equip:<type>"
// conditions: each hand item's weapon type, "Shield" when either hand holds
// a shield, and "Horse" when mounted.
func (e *Equipment) Types() map[string]bool {
	types := make(map[string]bool)
	for _, it := range []*Item{e.HandMain, e.HandOff} {
		if it == nil {
			continue
		}
		if it.WeaponType != "" && it.WeaponType != WeaponNone {
			types[string(it.WeaponType)] = true
		}
		if it.WeaponType == WeaponShield {
			types[TypeShield] = true
		}
	}
	if e.Horse != nil {
		types[TypeHorse] = true
	}
	return types
}

// AmmoSource locates the ammunition for a ranged attack. The main hand is
// inspected first. Throwing weapons are their own ammunition; bows and
// crossbows draw from an Ammo item in the other hand.
//
// Postcondition: ranged is false when neither hand holds a ranged weapon.
// When ranged is true, slot is empty iff no ammunition is available.
func (e *Equipment) AmmoSource() (slot Slot, ranged bool) {
	pairs := [][2]Slot{{SlotHandMain, SlotHandOff}, {SlotHandOff, SlotHandMain}}
	for _, p := range pairs {
		weapon := e.Get(p[0])
		if weapon == nil || !weapon.WeaponType.Ranged() {
			continue
		}
		if weapon.WeaponType == WeaponThrowing {
			if weapon.Quantity > 0 {
				return p[0], true
			}
			return "", true
		}
		ammo := e.Get(p[1])
		if ammo != nil && ammo.Category == CategoryAmmo && ammo.Quantity > 0 {
			return p[1], true
		}
		return "", true
	}
	return "", false
}
