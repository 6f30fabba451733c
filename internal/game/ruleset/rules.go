// Package ruleset holds the read-only rules of the Empire: attributes and their
// skills, skill trees, difficulty classes, and the standard action list.
package ruleset

// Base values every character starts from before equipment and skills.
const (
	BaseHP          = 100
	BaseStamina     = 100
	BaseSpeed       = 100
	BaseCarryWeight = 30.0 // kg
	BaseCritBonus   = 50

	MaxLevel = 20
)

// Attributes lists the six attributes in sheet order.
var Attributes = []string{"Vigor", "Control", "Endurance", "Cunning", "Social", "Intelligence"}

var skillCategories = map[string][]string{
	"Vigor":        {"One-Handed", "Two-Handed", "Polearm"},
	"Control":      {"Bow", "Crossbow", "Throwing"},
	"Endurance":    {"Riding", "Athletics", "Smithing"},
	"Cunning":      {"Scouting", "Tactics", "Roguery"},
	"Social":       {"Charm", "Leadership", "Trade"},
	"Intelligence": {"Steward", "Medicine", "Engineering"},
}

// SkillsOf returns the skills governed by attribute, or nil for an unknown attribute.
//
// Postcondition: the returned slice is a copy.
func SkillsOf(attribute string) []string {
	skills, ok := skillCategories[attribute]
	if !ok {
		return nil
	}
	return append([]string(nil), skills...)
}

// AttributeOf returns the attribute governing skill.
//
// Postcondition: ok is false iff skill is not a known skill.
func AttributeOf(skill string) (attribute string, ok bool) {
	for attr, skills := range skillCategories {
		for _, s := range skills {
			if s == skill {
				return attr, true
			}
		}
	}
	return "", false
}

// IsAttribute reports whether name is one of the six attributes.
func IsAttribute(name string) bool {
	_, ok := skillCategories[name]
	return ok
}

// TierRequirement returns the attribute value needed to unlock tier.
//
// Postcondition: result == tier*2.
func TierRequirement(tier int) int {
	return tier * 2
}
