// Package combat implements the turn-based encounter engine: combatant
// snapshots, the speed-driven initiative clock, action resolution, and the
// narrative combat log.
package combat

// Type distinguishes combatants backed by a character sheet from bestiary enemies.
type Type string

const (
	TypePlayer Type = "Player"
	TypeEnemy  Type = "Enemy"
)

// ReadyThreshold is the action point total at which a combatant may act.
const ReadyThreshold = 100.0

// Combatant is one participant of an encounter.
//
// For TypePlayer the ID is the source character id.
type Combatant struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Type           Type    `json:"type"`
	HPCurrent      int     `json:"hp_current"`
	HPMax          int     `json:"hp_max"`
	StaminaCurrent int     `json:"stamina_current"`
	StaminaMax     int     `json:"stamina_max"`
	Speed          int     `json:"speed"`
	ActionPoints   float64 `json:"action_points"`
	Damage         int     `json:"damage"`
	Defense        int     `json:"defense"`
	CritBonus      int     `json:"crit_bonus"`
}

// IsPlayer reports whether the combatant mirrors a character sheet.
func (c *Combatant) IsPlayer() bool { return c.Type == TypePlayer }

// Alive reports whether the combatant is Active rather than Down.
//
// Postcondition: Returns true iff HPCurrent > 0.
func (c *Combatant) Alive() bool { return c.HPCurrent > 0 }

// Ready reports whether a living combatant has reached the action threshold.
func (c *Combatant) Ready() bool { return c.Alive() && c.ActionPoints >= ReadyThreshold }

// ApplyDamage reduces HPCurrent by amount, flooring at zero. A combatant
// brought to zero also loses all action points.
//
// Precondition: amount >= 0.
// Postcondition: HPCurrent >= 0; returns true iff this call took the combatant Down.
func (c *Combatant) ApplyDamage(amount int) bool {
	wasAlive := c.Alive()
	c.HPCurrent -= amount
	if c.HPCurrent <= 0 {
		c.HPCurrent = 0
		c.ActionPoints = 0
	}
	return wasAlive && !c.Alive()
}

// SpendStamina deducts cost, flooring at zero.
func (c *Combatant) SpendStamina(cost int) {
	c.StaminaCurrent = max(0, c.StaminaCurrent-cost)
}

// Encounter is the combat state persisted with a campaign.
type Encounter struct {
	Combatants []*Combatant `json:"combatants"`
	Log        Log          `json:"combat_log"`
}

// Combatant returns the combatant at idx, or nil when idx is out of range.
func (e *Encounter) Combatant(idx int) *Combatant {
	if idx < 0 || idx >= len(e.Combatants) {
		return nil
	}
	return e.Combatants[idx]
}

// Reset clears the roster and the log.
//
// Postcondition: Combatants and Log are empty, non-nil slices.
func (e *Encounter) Reset() {
	e.Combatants = []*Combatant{}
	e.Log = Log{}
}
