// Package stats computes the combat-usable numbers of a character sheet from
// its equipment and unlocked skill choices.
package stats

import (
	"math"

	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/game/ruleset"
)

// SkillTreeLookup resolves a skill name to its tiers. Unknown skills yield nil.
type SkillTreeLookup interface {
	SkillTree(skill string) []ruleset.Tier
}

// Derived is the computed view of a sheet. It is never persisted.
type Derived struct {
	MaxLoad      float64 `json:"max_load"`
	CurrentLoad  float64 `json:"current_load"`
	Attack       int     `json:"attack"`
	Defense      int     `json:"defense"`
	MaxSpeed     int     `json:"max_speed"`
	CurrentSpeed int     `json:"current_speed"`
	BonusHP      int     `json:"bonus_hp"`
	BonusStamina int     `json:"bonus_stamina"`
	CritBonus    int     `json:"crit_bonus"`
}

// HPMax is the sheet maximum implied by the skill bonuses.
func (d Derived) HPMax() int { return ruleset.BaseHP + d.BonusHP }

// StaminaMax is the sheet stamina maximum implied by the skill bonuses.
func (d Derived) StaminaMax() int { return ruleset.BaseStamina + d.BonusStamina }

// overburdenedRatio stands in for the load ratio when max load is zero.
const overburdenedRatio = 1.1

// SpeedMultiplier maps a load ratio to the speed multiplier. Thresholds are inclusive.
func SpeedMultiplier(ratio float64) float64 {
	switch {
	case ratio <= 0.30:
		return 1.0
	case ratio <= 0.60:
		return 0.8
	case ratio <= 0.90:
		return 0.6
	default:
		return 0.4
	}
}

// Calculator derives stats using an injected skill tree lookup.
type Calculator struct {
	lookup SkillTreeLookup
}

// NewCalculator returns a Calculator backed by lookup.
//
// Precondition: lookup must be non-nil.
func NewCalculator(lookup SkillTreeLookup) *Calculator {
	return &Calculator{lookup: lookup}
}

// Compute derives the stats of c. Empty slots contribute nothing and
// unlocked nodes whose skill, tier, or choice no longer exist are skipped.
//
// Precondition: c must be non-nil.
// Postcondition: CurrentSpeed == floor(MaxSpeed * SpeedMultiplier(CurrentLoad/MaxLoad)).
func (calc *Calculator) Compute(c *character.Character) Derived {
	eq := &c.Equipment
	d := Derived{
		MaxLoad:   ruleset.BaseCarryWeight,
		CritBonus: ruleset.BaseCritBonus,
	}
	if eq.Horse != nil {
		d.MaxLoad += eq.Horse.CarryBonusKg
	}
	if eq.Armor != nil {
		d.Defense += eq.Armor.Defense
	}
	if eq.HandMain != nil {
		d.Attack += eq.HandMain.Damage
		d.Defense += eq.HandMain.Defense
	}
	if eq.HandOff != nil {
		d.Attack += eq.HandOff.Damage
		d.Defense += eq.HandOff.Defense
	}

	speedBonus := 0
	equipped := eq.Types()
	for _, node := range c.UnlockedNodes() {
		choice, ok := calc.choice(node.Skill, node.Tier, node.Choice)
		if !ok {
			continue
		}
		for _, m := range choice.Modifiers {
			if !applies(m, equipped) {
				continue
			}
			switch m.Stat {
			case ruleset.StatDamage:
				d.Attack += m.Value
			case ruleset.StatDefense:
				d.Defense += m.Value
			case ruleset.StatSpeed:
				speedBonus += m.Value
			case ruleset.StatMaxLoad:
				d.MaxLoad += float64(m.Value)
			case ruleset.StatHPMax:
				d.BonusHP += m.Value
			case ruleset.StatStamina:
				d.BonusStamina += m.Value
			case ruleset.StatCriticalDamage:
				d.CritBonus += m.Value
			}
		}
	}

	d.CurrentLoad = roundTenth(inventory.PackWeight(c.Inventory) + eq.Weight())

	ratio := overburdenedRatio
	if d.MaxLoad != 0 {
		ratio = d.CurrentLoad / d.MaxLoad
	}
	d.MaxSpeed = ruleset.BaseSpeed + speedBonus
	d.CurrentSpeed = int(math.Floor(float64(d.MaxSpeed) * SpeedMultiplier(ratio)))
	return d
}

func (calc *Calculator) choice(skill string, tier, index int) (ruleset.Choice, bool) {
	for _, t := range calc.lookup.SkillTree(skill) {
		if t.Tier != tier {
			continue
		}
		if index < 0 || index >= len(t.Choices) {
			return ruleset.Choice{}, false
		}
		return t.Choices[index], true
	}
	return ruleset.Choice{}, false
}

func applies(m ruleset.Modifier, equipped map[string]bool) bool {
	if m.Unconditional() {
		return true
	}
	t, ok := m.EquipType()
	return ok && equipped[t]
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
