package combat

// MaxClockIterations bounds a single clock advance.
const MaxClockIterations = 1000

// ClockResult describes what one AdvanceClock call did.
type ClockResult struct {
	// Ticks is the number of clock iterations applied.
	Ticks int `json:"ticks"`
	// Ready is the living combatant with the most action points once the
	// clock stops, or nil when nobody reached the threshold.
	Ready *Combatant `json:"ready,omitempty"`
	// Stalled is true when the iteration bound was hit without anyone
	// becoming ready, e.g. every living combatant has zero speed.
	Stalled bool `json:"stalled"`
}

// AdvanceClock ticks the shared game clock until a living combatant is ready.
// Each tick adds every living combatant's speed to its action points. Down
// combatants never accumulate.
//
// Postcondition: No-op when nobody is alive or somebody is already ready.
// Otherwise either Ready is set or Stalled is true after MaxClockIterations
// ticks; the roster is left as last computed in both cases.
func AdvanceClock(cs []*Combatant) ClockResult {
	living := make([]*Combatant, 0, len(cs))
	for _, c := range cs {
		if c.Alive() {
			living = append(living, c)
		}
	}
	if len(living) == 0 {
		return ClockResult{}
	}
	if next := NextActor(living); next != nil {
		return ClockResult{Ready: next}
	}

	var res ClockResult
	for res.Ticks < MaxClockIterations {
		res.Ticks++
		for _, c := range living {
			c.ActionPoints += float64(c.Speed)
		}
		if next := NextActor(living); next != nil {
			res.Ready = next
			return res
		}
	}
	res.Stalled = true
	return res
}

// NextActor returns the ready living combatant with the most action points.
// Ties go to the earlier combatant in roster order.
//
// Postcondition: Returns nil when nobody is ready.
func NextActor(cs []*Combatant) *Combatant {
	var best *Combatant
	for _, c := range cs {
		if !c.Ready() {
			continue
		}
		if best == nil || c.ActionPoints > best.ActionPoints {
			best = c
		}
	}
	return best
}
