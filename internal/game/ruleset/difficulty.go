package ruleset

// difficultyClasses maps difficulty level to the base d20 target.
var difficultyClasses = map[int]int{
	1: 2,  // trivial, fails only on a natural 1
	2: 5,  // easy
	3: 10, // medium
	4: 15, // hard
	5: 20, // legendary
}

const (
	defaultDifficultyClass = 10
	minTargetNumber        = 2
)

// DifficultyClass returns the base target for level; unknown levels are medium.
func DifficultyClass(level int) int {
	if dc, ok := difficultyClasses[level]; ok {
		return dc
	}
	return defaultDifficultyClass
}

// TargetNumber returns the d20 roll needed to pass a check of the given
// difficulty with the given attribute value.
//
// Postcondition: result >= 2.
func TargetNumber(level, attribute int) int {
	target := DifficultyClass(level) - attribute/2
	if target < minTargetNumber {
		return minTargetNumber
	}
	return target
}

// CheckPasses reports whether a natural d20 roll passes against target.
// A natural 1 always fails.
func CheckPasses(roll, target int) bool {
	return roll != 1 && roll >= target
}

// GameAction is a standard check offered by the roll simulator.
type GameAction struct {
	Name      string `json:"name"`
	Attribute string `json:"attribute"`
}

// GameActions lists the standard checks.
var GameActions = []GameAction{
	{Name: "Push/Lift Heavy Object", Attribute: "Vigor"},
	{Name: "Intimidate", Attribute: "Vigor"},
	{Name: "Shoot Target (Long Range)", Attribute: "Control"},
	{Name: "Pick Lock", Attribute: "Cunning"},
	{Name: "Spot Ambush", Attribute: "Cunning"},
	{Name: "Tactical Analysis", Attribute: "Cunning"},
	{Name: "Ride Difficult Mount", Attribute: "Endurance"},
	{Name: "Forced March", Attribute: "Endurance"},
	{Name: "Persuade Noble", Attribute: "Social"},
	{Name: "Barter Prices", Attribute: "Social"},
	{Name: "Rally Troops", Attribute: "Social"},
	{Name: "Treat Wounds", Attribute: "Intelligence"},
	{Name: "Engineer Siege Engine", Attribute: "Intelligence"},
}
