package character

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrFiefNotFound is returned when a fief id is not held by the character.
	ErrFiefNotFound = errors.New("fief not found")
	// ErrNegativeGold is returned when a gold balance would drop below zero.
	ErrNegativeGold = errors.New("gold must not be negative")
	// ErrInvalidFief is returned for a fief with no name or a negative income.
	ErrInvalidFief = errors.New("invalid fief")
)

// Fief is a holding that pays its income into the owner's purse when
// collected.
type Fief struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Income int    `json:"income"`
}

// NewFief builds a fief with a fresh id.
//
// Postcondition: Returns ErrInvalidFief when name is empty or income is negative.
func NewFief(name, kind string, income int) (Fief, error) {
	if name == "" {
		return Fief{}, fmt.Errorf("%w: name must not be empty", ErrInvalidFief)
	}
	if income < 0 {
		return Fief{}, fmt.Errorf("%w: income must not be negative, got %d", ErrInvalidFief, income)
	}
	return Fief{ID: uuid.NewString(), Name: name, Type: kind, Income: income}, nil
}

func (c *Character) fiefIndex(id string) int {
	for i := range c.Fiefs {
		if c.Fiefs[i].ID == id {
			return i
		}
	}
	return -1
}

// SetGold overwrites the purse.
//
// Postcondition: Returns ErrNegativeGold and changes nothing when amount < 0.
func (c *Character) SetGold(amount int) error {
	if amount < 0 {
		return ErrNegativeGold
	}
	c.Status.Gold = amount
	return nil
}

// AddFief grants f to the character.
func (c *Character) AddFief(f Fief) {
	c.Fiefs = append(c.Fiefs, f)
}

// CollectFief pays the income of the fief with id into the purse and
// returns the amount paid.
func (c *Character) CollectFief(id string) (int, error) {
	idx := c.fiefIndex(id)
	if idx < 0 {
		return 0, ErrFiefNotFound
	}
	income := c.Fiefs[idx].Income
	c.Status.Gold += income
	return income, nil
}

// RemoveFief drops the fief with id.
func (c *Character) RemoveFief(id string) error {
	idx := c.fiefIndex(id)
	if idx < 0 {
		return ErrFiefNotFound
	}
	c.Fiefs = append(c.Fiefs[:idx], c.Fiefs[idx+1:]...)
	return nil
}
