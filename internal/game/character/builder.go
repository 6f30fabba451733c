package character

import (
	"errors"

	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/game/ruleset"
)

// DefaultImageURL is the portrait assigned to new characters.
const DefaultImageURL = "https://cdn-icons-png.flaticon.com/512/53/53625.png"

// Starting progression points.
const (
	StartingAttributePoints = 2
	StartingSkillPoints     = 1
)

// Creation holds the player-supplied fields for a new character.
type Creation struct {
	Name      string
	Archetype string
	Culture   string
	Bio       string
}

// New builds a fresh level-1 character: every attribute at 1 with its three
// skills and nothing unlocked, full vitals, and starting points.
//
// Precondition: id and userID must be non-empty.
// Postcondition: Returns a Character passing Validate, or an error if Name is empty.
func New(id, userID string, in Creation) (*Character, error) {
	if in.Name == "" {
		return nil, errors.New("character name must not be empty")
	}
	stats := make(map[string]AttributeData, len(ruleset.Attributes))
	for _, attr := range ruleset.Attributes {
		skills := make(map[string]SkillProgress)
		for _, s := range ruleset.SkillsOf(attr) {
			skills[s] = SkillProgress{NodesUnlocked: map[string]int{}}
		}
		stats[attr] = AttributeData{Value: 1, Skills: skills}
	}
	return &Character{
		ID:             id,
		UserID:         userID,
		Name:           in.Name,
		ClassArchetype: in.Archetype,
		Culture:        in.Culture,
		PublicBio:      in.Bio,
		ImageURL:       DefaultImageURL,
		Stats:          stats,
		Status: Status{
			HPCurrent:  ruleset.BaseHP,
			HPMax:      ruleset.BaseHP,
			Stamina:    ruleset.BaseStamina,
			StaminaMax: ruleset.BaseStamina,
			Speed:      ruleset.BaseSpeed,
			Level:      1,
		},
		Points: Points{
			AttributePoints: StartingAttributePoints,
			SkillPoints:     StartingSkillPoints,
		},
		Inventory: []inventory.Item{},
		Fiefs:     []Fief{},
	}, nil
}
