package gameserver

import (
	"github.com/Ostwick/RPG-Imperium/internal/game/dice"
	"github.com/Ostwick/RPG-Imperium/internal/game/ruleset"
)

// CheckResult is one resolved d20 difficulty check.
type CheckResult struct {
	Difficulty int  `json:"difficulty"`
	Attribute  int  `json:"attribute"`
	Target     int  `json:"target"`
	Roll       int  `json:"roll"`
	Success    bool `json:"success"`
}

// CheckService resolves difficulty checks.
type CheckService struct {
	roller *dice.Roller
}

// NewCheckService creates a CheckService.
//
// Precondition: roller must be non-nil.
func NewCheckService(roller *dice.Roller) *CheckService {
	return &CheckService{roller: roller}
}

// Target returns the roll needed at difficulty with attribute.
func (s *CheckService) Target(difficulty, attribute int) int {
	return ruleset.TargetNumber(difficulty, attribute)
}

// Roll rolls a d20 against the target for difficulty and attribute.
//
// Postcondition: Success is false on a natural 1.
func (s *CheckService) Roll(difficulty, attribute int) CheckResult {
	target := ruleset.TargetNumber(difficulty, attribute)
	roll := s.roller.D20("difficulty check")
	return CheckResult{
		Difficulty: difficulty,
		Attribute:  attribute,
		Target:     target,
		Roll:       roll.Value,
		Success:    ruleset.CheckPasses(roll.Value, target),
	}
}
