package gameserver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Ostwick/RPG-Imperium/internal/game/campaign"
	"github.com/Ostwick/RPG-Imperium/internal/game/combat"
	"github.com/Ostwick/RPG-Imperium/internal/game/dice"
	"github.com/Ostwick/RPG-Imperium/internal/game/stats"
	"github.com/Ostwick/RPG-Imperium/internal/storage"
)

// ActionRequest selects the acting and targeted combatants by roster index.
type ActionRequest struct {
	ActorIdx  int
	TargetIdx int
	combat.Action
}

// CombatService runs GM-driven encounters. Every call loads the campaign,
// applies one step and writes the encounter back in a single update.
type CombatService struct {
	campaigns  CampaignStore
	characters CharacterStore
	templates  TemplateStore
	calc       *stats.Calculator
	resolver   *combat.Resolver
	src        dice.Source
	logger     *zap.Logger
}

// NewCombatService creates a CombatService. Player HP and stamina changes
// are written through to the character store as they happen.
//
// Precondition: all arguments must be non-nil.
func NewCombatService(
	campaigns CampaignStore,
	characters CharacterStore,
	templates TemplateStore,
	calc *stats.Calculator,
	src dice.Source,
	logger *zap.Logger,
) *CombatService {
	return &CombatService{
		campaigns:  campaigns,
		characters: characters,
		templates:  templates,
		calc:       calc,
		resolver:   combat.NewResolver(NewSheetSync(characters, logger), logger),
		src:        src,
		logger:     logger,
	}
}

// StartCombat snapshots the listed characters and instantiates the listed
// enemy templates into a fresh encounter, replacing any running one. A
// template listed twice yields two enemies with distinct ids.
//
// Postcondition: on success the campaign is in combat with players first,
// then enemies, each at 0 AP, and an empty log. On error nothing is stored.
func (s *CombatService) StartCombat(ctx context.Context, id Identity, campaignID string, playerIDs, enemyIDs []string) error {
	camp, err := gmCampaign(ctx, s.campaigns, id, campaignID)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(playerIDs))
	for _, cid := range playerIDs {
		if seen[cid] {
			return fmt.Errorf("%w: character %q listed twice", ErrInvalidReference, cid)
		}
		seen[cid] = true
	}

	players := make([]*combat.Combatant, len(playerIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, cid := range playerIDs {
		g.Go(func() error {
			c, err := s.characters.Get(gctx, cid)
			if err != nil {
				return reference("character", cid, err)
			}
			players[i] = combat.FromCharacter(c, s.calc.Compute(c))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	roster := players
	ids := combat.NewEnemyIDs(s.src)
	for _, tid := range enemyIDs {
		t, err := s.templates.Get(ctx, tid)
		if err != nil {
			return reference("enemy template", tid, err)
		}
		eid, err := ids.Next(t.ID)
		if err != nil {
			return err
		}
		roster = append(roster, combat.FromTemplate(t, eid))
	}

	camp.StartEncounter(roster)
	if err := s.campaigns.SaveEncounter(ctx, camp); err != nil {
		return fmt.Errorf("saving encounter: %w", err)
	}
	s.logger.Info("combat started",
		zap.String("campaign", campaignID),
		zap.Int("players", len(players)),
		zap.Int("enemies", len(enemyIDs)),
	)
	return nil
}

// AdvanceClock ticks the initiative clock until some living combatant is
// ready to act. A stalled clock is reported in the result and its partial
// progress is kept.
func (s *CombatService) AdvanceClock(ctx context.Context, id Identity, campaignID string) (combat.ClockResult, error) {
	camp, err := s.activeCampaign(ctx, id, campaignID)
	if err != nil {
		return combat.ClockResult{}, err
	}

	res := combat.AdvanceClock(camp.Combatants)
	if res.Stalled {
		s.logger.Warn("initiative clock stalled",
			zap.String("campaign", campaignID),
			zap.Int("ticks", res.Ticks),
		)
	}
	if res.Ticks == 0 {
		return res, nil
	}
	if err := s.campaigns.SaveEncounter(ctx, camp); err != nil {
		return combat.ClockResult{}, fmt.Errorf("saving encounter: %w", err)
	}
	if res.Ready != nil {
		s.logger.Debug("combatant ready",
			zap.String("campaign", campaignID),
			zap.String("combatant", res.Ready.ID),
			zap.Int("ticks", res.Ticks),
		)
	}
	return res, nil
}

// ResolveAction applies one action and stores the resulting encounter.
//
// Postcondition: Returns ErrInvalidReference for an index outside the
// roster, combat.ErrActorDown for a downed actor and combat.ErrOutOfAmmo for
// an unfed ranged weapon. The encounter is stored only on success.
func (s *CombatService) ResolveAction(ctx context.Context, id Identity, campaignID string, req ActionRequest) (combat.Result, error) {
	camp, err := s.activeCampaign(ctx, id, campaignID)
	if err != nil {
		return combat.Result{}, err
	}
	if camp.Combatant(req.ActorIdx) == nil {
		return combat.Result{}, fmt.Errorf("%w: actor index %d", ErrInvalidReference, req.ActorIdx)
	}
	if camp.Combatant(req.TargetIdx) == nil {
		return combat.Result{}, fmt.Errorf("%w: target index %d", ErrInvalidReference, req.TargetIdx)
	}

	res, err := s.resolver.Resolve(ctx, &camp.Encounter, req.ActorIdx, req.TargetIdx, req.Action)
	if err != nil {
		return combat.Result{}, err
	}
	if err := s.campaigns.SaveEncounter(ctx, camp); err != nil {
		return combat.Result{}, fmt.Errorf("saving encounter: %w", err)
	}
	return res, nil
}

// EndCombat clears the roster and log. Ending a campaign with no combat
// running is allowed.
func (s *CombatService) EndCombat(ctx context.Context, id Identity, campaignID string) error {
	camp, err := gmCampaign(ctx, s.campaigns, id, campaignID)
	if err != nil {
		return err
	}
	camp.EndEncounter()
	if err := s.campaigns.SaveEncounter(ctx, camp); err != nil {
		return fmt.Errorf("saving encounter: %w", err)
	}
	s.logger.Info("combat ended", zap.String("campaign", campaignID))
	return nil
}

// State returns the campaign with its encounter. The GM and players with a
// character in the campaign may read it.
func (s *CombatService) State(ctx context.Context, id Identity, campaignID string) (*campaign.Campaign, error) {
	return viewCampaign(ctx, s.campaigns, id, campaignID)
}

func gmCampaign(ctx context.Context, campaigns CampaignStore, id Identity, campaignID string) (*campaign.Campaign, error) {
	camp, err := campaigns.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !camp.IsGM(id.ID) {
		return nil, ErrForbidden
	}
	return camp, nil
}

func (s *CombatService) activeCampaign(ctx context.Context, id Identity, campaignID string) (*campaign.Campaign, error) {
	camp, err := gmCampaign(ctx, s.campaigns, id, campaignID)
	if err != nil {
		return nil, err
	}
	if !camp.CombatActive {
		return nil, ErrCombatNotActive
	}
	return camp, nil
}

func viewCampaign(ctx context.Context, campaigns CampaignStore, id Identity, campaignID string) (*campaign.Campaign, error) {
	camp, err := campaigns.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !camp.IsGM(id.ID) && !camp.HasPlayer(id.ID) {
		return nil, ErrForbidden
	}
	return camp, nil
}

// reference converts a not-found lookup into ErrInvalidReference.
func reference(kind, id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s %q", ErrInvalidReference, kind, id)
	}
	return fmt.Errorf("loading %s %q: %w", kind, id, err)
}
