// Package inventory defines carried items, the four equipment slots, and the
// rules for moving items between a pack and those slots.
package inventory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Category classifies what an item is and which slot it may occupy.
type Category string

const (
	CategoryGeneral Category = "General"
	CategoryWeapon  Category = "Weapon"
	CategoryArmor   Category = "Armor"
	CategoryHorse   Category = "Horse"
	CategoryAmmo    Category = "Ammo"
)

var validCategories = map[Category]bool{
	CategoryGeneral: true, CategoryWeapon: true, CategoryArmor: true,
	CategoryHorse: true, CategoryAmmo: true,
}

// WeaponType is the weapon family of an item. It doubles as the equipped
// type matched by "equip:<type>" skill conditions.
type WeaponType string

const (
	WeaponNone      WeaponType = "None"
	WeaponOneHanded WeaponType = "One-Handed"
	WeaponTwoHanded WeaponType = "Two-Handed"
	WeaponPolearm   WeaponType = "Polearm"
	WeaponBow       WeaponType = "Bow"
	WeaponCrossbow  WeaponType = "Crossbow"
	WeaponThrowing  WeaponType = "Throwing"
	WeaponShield    WeaponType = "Shield"
)

var validWeaponTypes = map[WeaponType]bool{
	WeaponNone: true, WeaponOneHanded: true, WeaponTwoHanded: true, WeaponPolearm: true,
	WeaponBow: true, WeaponCrossbow: true, WeaponThrowing: true, WeaponShield: true,
}

// Ranged reports whether attacks with this weapon type consume ammunition.
func (w WeaponType) Ranged() bool {
	return w == WeaponBow || w == WeaponCrossbow || w == WeaponThrowing
}

// Item is a concrete carried item. Quantity counts stacked units, which for
// Ammo and Throwing weapons is the remaining ammunition.
type Item struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Quantity     int        `json:"quantity"`
	Weight       float64    `json:"weight"`
	Category     Category   `json:"category"`
	WeaponType   WeaponType `json:"weapon_type"`
	Damage       int        `json:"damage"`
	Defense      int        `json:"defense"`
	TwoHanded    bool       `json:"is_two_handed"`
	CarryBonusKg float64    `json:"carry_bonus_kg"`
}

// NewItem returns an Item with a fresh id. Empty category and weapon type
// default to General and None.
//
// Postcondition: result.ID is a non-empty UUID string.
func NewItem(name string, category Category, weaponType WeaponType, quantity int, weight float64) Item {
	if category == "" {
		category = CategoryGeneral
	}
	if weaponType == "" {
		weaponType = WeaponNone
	}
	return Item{
		ID:         uuid.NewString(),
		Name:       name,
		Quantity:   quantity,
		Weight:     weight,
		Category:   category,
		WeaponType: weaponType,
	}
}

// Validate checks the item's invariants.
//
// Postcondition: returns nil iff id and name are non-empty, quantity >= 0,
// weight >= 0, and category/weapon type are known values.
func (i *Item) Validate() error {
	var errs []error
	if i.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if i.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if i.Quantity < 0 {
		errs = append(errs, fmt.Errorf("quantity must be >= 0, got %d", i.Quantity))
	}
	if i.Weight < 0 {
		errs = append(errs, fmt.Errorf("weight must be >= 0, got %v", i.Weight))
	}
	if !validCategories[i.Category] {
		errs = append(errs, fmt.Errorf("unknown category %q", i.Category))
	}
	if !validWeaponTypes[i.WeaponType] {
		errs = append(errs, fmt.Errorf("unknown weapon_type %q", i.WeaponType))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q: %w", i.ID, errors.Join(errs...))
	}
	return nil
}

// PackWeight returns the total weight of items, counting every stacked unit.
func PackWeight(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.Weight * float64(it.Quantity)
	}
	return total
}
