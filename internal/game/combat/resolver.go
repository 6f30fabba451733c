package combat

//go:generate mockgen -destination=mock/mock_sheets.go -package=mockcombat -source=resolver.go

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrActorDown is returned when a combatant with no HP is asked to act.
	ErrActorDown = errors.New("actor is down")
	// ErrOutOfAmmo is returned when a ranged attack has nothing to fire.
	ErrOutOfAmmo = errors.New("out of ammo")
	// ErrUnknownAction is returned for an action kind the resolver does not handle.
	ErrUnknownAction = errors.New("unknown action")
)

// ActionKind selects the branch of the resolver.
type ActionKind string

const (
	ActionAttack ActionKind = "Attack"
	ActionWait   ActionKind = "Wait"
	ActionMiss   ActionKind = "Miss"
)

// ParseActionKind matches s against the known kinds, ignoring case.
//
// Postcondition: Returns ErrUnknownAction when nothing matches.
func ParseActionKind(s string) (ActionKind, error) {
	for _, k := range []ActionKind{ActionAttack, ActionWait, ActionMiss} {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

const (
	// StaminaCost is deducted from the actor for every action.
	StaminaCost = 10
	// WaitCost is the action point cost of waiting.
	WaitCost = 50.0
	// TurnCost is the action point cost of attacking or missing.
	TurnCost = 100.0
	// BaseCritMultiplier is the damage multiplier of a critical hit before
	// the attacker's crit bonus.
	BaseCritMultiplier = 1.5
)

// Action is one GM-adjudicated action. BonusDamage, BonusDefense and Crit are
// narrative modifiers applied at resolution time.
type Action struct {
	Kind         ActionKind
	BonusDamage  int
	BonusDefense int
	Crit         bool
}

// Sheets writes combat side effects back to player character sheets.
type Sheets interface {
	// SyncStamina stores the current stamina on the character sheet.
	SyncStamina(ctx context.Context, characterID string, stamina int) error
	// SyncHP stores the current HP on the character sheet.
	SyncHP(ctx context.Context, characterID string, hp int) error
	// ConsumeAmmo spends one round of ammunition for the character's
	// equipped ranged weapon.
	//
	// Postcondition: Returns ErrOutOfAmmo when the weapon is ranged and no
	// ammunition could be spent; returns nil for melee weapons.
	ConsumeAmmo(ctx context.Context, characterID string) error
}

// Result summarises a resolved action.
type Result struct {
	Message string
	Damage  int
	Downed  bool
}

// Resolver applies actions to an encounter.
type Resolver struct {
	sheets Sheets
	logger *zap.Logger
}

// NewResolver creates a Resolver.
//
// Precondition: sheets and logger must be non-nil.
func NewResolver(sheets Sheets, logger *zap.Logger) *Resolver {
	return &Resolver{sheets: sheets, logger: logger}
}

// FinalDamage computes the damage an attack deals after the target's defense.
//
// Postcondition: Returns max(0, floor(raw × multiplier) − defense).
func FinalDamage(attacker, target *Combatant, a Action) int {
	raw := float64(attacker.Damage + a.BonusDamage)
	mult := 1.0
	if a.Crit {
		mult = BaseCritMultiplier + float64(attacker.CritBonus)/100
	}
	return max(0, int(math.Floor(raw*mult))-(target.Defense+a.BonusDefense))
}

// Resolve applies action a by the combatant at actorIdx against the one at
// targetIdx. Effects are applied in order: stamina cost, player stamina
// sync, the action branch, then the log entry. Nothing is rolled back when a
// later step fails.
//
// Precondition: both indices must address combatants in enc.
// Postcondition: On ErrActorDown nothing changes. On ErrOutOfAmmo only the
// stamina cost has been applied. Otherwise the log has the action's message
// at index 0.
func (r *Resolver) Resolve(ctx context.Context, enc *Encounter, actorIdx, targetIdx int, a Action) (Result, error) {
	actor, target := enc.Combatant(actorIdx), enc.Combatant(targetIdx)
	if actor == nil || target == nil {
		return Result{}, fmt.Errorf("combatant index out of range: actor %d, target %d", actorIdx, targetIdx)
	}
	if !actor.Alive() {
		return Result{}, fmt.Errorf("%s: %w", actor.Name, ErrActorDown)
	}
	kind, err := ParseActionKind(string(a.Kind))
	if err != nil {
		return Result{}, err
	}
	a.Kind = kind

	actor.SpendStamina(StaminaCost)
	if actor.IsPlayer() {
		if err := r.sheets.SyncStamina(ctx, actor.ID, actor.StaminaCurrent); err != nil {
			return Result{}, fmt.Errorf("syncing stamina of %s: %w", actor.Name, err)
		}
	}

	var res Result
	switch a.Kind {
	case ActionWait:
		actor.ActionPoints -= WaitCost
		res.Message = fmt.Sprintf("%s waits/hesitates.", actor.Name)
	case ActionMiss:
		actor.ActionPoints -= TurnCost
		res.Message = fmt.Sprintf("%s attacks %s but MISSES!", actor.Name, target.Name)
	case ActionAttack:
		if actor.IsPlayer() {
			if err := r.sheets.ConsumeAmmo(ctx, actor.ID); err != nil {
				return Result{}, fmt.Errorf("%s: %w", actor.Name, err)
			}
		}
		res.Damage = FinalDamage(actor, target, a)
		res.Downed = target.ApplyDamage(res.Damage)
		if target.IsPlayer() {
			if err := r.sheets.SyncHP(ctx, target.ID, target.HPCurrent); err != nil {
				return Result{}, fmt.Errorf("syncing hp of %s: %w", target.Name, err)
			}
		}
		actor.ActionPoints -= TurnCost
		if !actor.Alive() {
			actor.ActionPoints = 0
		}
		res.Message = fmt.Sprintf("%s hits %s for %d damage.", actor.Name, target.Name, res.Damage)
		if a.Crit {
			res.Message = "CRITICAL! " + res.Message
		}
		if target.HPCurrent == 0 {
			res.Message += fmt.Sprintf(" %s is DOWN!", target.Name)
		}
	}

	enc.Log.Push(res.Message)
	r.logger.Info("combat action resolved",
		zap.String("actor", actor.ID),
		zap.String("target", target.ID),
		zap.String("action", string(a.Kind)),
		zap.Int("damage", res.Damage),
		zap.Bool("downed", res.Downed),
	)
	return res, nil
}
