package combat

import (
	"fmt"

	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/dice"
	"github.com/Ostwick/RPG-Imperium/internal/game/npc"
	"github.com/Ostwick/RPG-Imperium/internal/game/stats"
)

// StaminaHeadroom is added to a character's stored stamina maximum when it
// enters an encounter.
const StaminaHeadroom = 50

// FromCharacter snapshots a character sheet with its derived stats.
//
// Precondition: c must not be nil; d must be the derived stats of c.
// Postcondition: ActionPoints is zero, ID is the character id and HPCurrent
// lies in [0, HPMax].
func FromCharacter(c *character.Character, d stats.Derived) *Combatant {
	return &Combatant{
		ID:             c.ID,
		Name:           c.Name,
		Type:           TypePlayer,
		HPCurrent:      max(0, min(c.Status.HPCurrent, c.Status.HPMax)),
		HPMax:          c.Status.HPMax,
		StaminaCurrent: c.Status.Stamina,
		StaminaMax:     c.Status.StaminaMax + StaminaHeadroom,
		Speed:          d.CurrentSpeed,
		Damage:         d.Attack,
		Defense:        d.Defense,
		CritBonus:      d.CritBonus,
	}
}

// FromTemplate instantiates a bestiary enemy under the given combatant id.
//
// Precondition: t must not be nil.
func FromTemplate(t *npc.Template, id string) *Combatant {
	return &Combatant{
		ID:             id,
		Name:           t.Name,
		Type:           TypeEnemy,
		HPCurrent:      t.HPMax,
		HPMax:          t.HPMax,
		StaminaCurrent: t.Stamina,
		StaminaMax:     t.Stamina,
		Speed:          t.Speed,
		Damage:         t.Damage,
		Defense:        t.Defense,
		CritBonus:      t.CritBonus,
	}
}

// suffixSpace is the number of distinct four-digit suffixes (1000-9999).
const suffixSpace = 9000

// EnemyIDs hands out "{template}_{NNNN}" combatant ids that are unique
// within one encounter.
type EnemyIDs struct {
	src  dice.Source
	used map[string]bool
}

// NewEnemyIDs creates a generator seeded with ids already present in the
// encounter.
//
// Precondition: src must not be nil.
func NewEnemyIDs(src dice.Source, existing ...string) *EnemyIDs {
	used := make(map[string]bool, len(existing))
	for _, id := range existing {
		used[id] = true
	}
	return &EnemyIDs{src: src, used: used}
}

// Next returns a fresh id for templateID. A suffix already handed out for the
// same template is drawn again.
//
// Postcondition: Returns an error only when all suffixes for templateID are taken.
func (g *EnemyIDs) Next(templateID string) (string, error) {
	for range suffixSpace * 4 {
		id := fmt.Sprintf("%s_%04d", templateID, g.src.Intn(suffixSpace)+1000)
		if !g.used[id] {
			g.used[id] = true
			return id, nil
		}
	}
	return "", fmt.Errorf("no free combatant id for template %q", templateID)
}
