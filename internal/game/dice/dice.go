// Package dice provides the randomness abstraction behind difficulty checks
// and enemy instance ids.
package dice

import (
	"fmt"

	"go.uber.org/zap"
)

// Source is the randomness provider.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Roll is one die result with the sides it was rolled on.
type Roll struct {
	Sides int
	Value int
}

// String renders the roll as "d20=14".
func (r Roll) String() string {
	return fmt.Sprintf("d%d=%d", r.Sides, r.Value)
}

// Roller rolls dice from a Source and logs each roll at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller.
//
// Precondition: src and logger must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll rolls one die with the given number of sides. Reason is recorded in the log.
//
// Precondition: sides >= 1.
// Postcondition: 1 <= result.Value <= sides.
func (r *Roller) Roll(sides int, reason string) Roll {
	res := Roll{Sides: sides, Value: r.src.Intn(sides) + 1}
	r.logger.Debug("dice roll",
		zap.String("reason", reason),
		zap.Int("sides", sides),
		zap.Int("value", res.Value),
	)
	return res
}

// D20 rolls a twenty-sided die.
func (r *Roller) D20(reason string) Roll {
	return r.Roll(20, reason)
}
