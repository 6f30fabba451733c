package gameserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ostwick/RPG-Imperium/internal/game/campaign"
)

// CampaignService manages campaigns and their party rosters.
type CampaignService struct {
	campaigns  CampaignStore
	characters CharacterStore
	logger     *zap.Logger
}

// NewCampaignService creates a CampaignService.
//
// Precondition: all arguments must be non-nil.
func NewCampaignService(campaigns CampaignStore, characters CharacterStore, logger *zap.Logger) *CampaignService {
	return &CampaignService{campaigns: campaigns, characters: characters, logger: logger}
}

// Create starts a campaign run by the caller, who must hold the GM role.
func (s *CampaignService) Create(ctx context.Context, id Identity, name, description string) (*campaign.Campaign, error) {
	if !id.IsGM() {
		return nil, ErrForbidden
	}
	if name == "" {
		return nil, errors.New("campaign name must not be empty")
	}
	c := campaign.New(uuid.NewString(), id.ID, name)
	c.Description = description
	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating campaign: %w", err)
	}
	s.logger.Info("campaign created",
		zap.String("campaign", c.ID),
		zap.String("gm", id.ID),
	)
	return c, nil
}

// Get loads a campaign visible to the caller.
func (s *CampaignService) Get(ctx context.Context, id Identity, campaignID string) (*campaign.Campaign, error) {
	return viewCampaign(ctx, s.campaigns, id, campaignID)
}

// Join requests a place in the party for one of the caller's characters.
func (s *CampaignService) Join(ctx context.Context, id Identity, campaignID, characterID string) error {
	ch, err := s.characters.Get(ctx, characterID)
	if err != nil {
		return reference("character", characterID, err)
	}
	if ch.UserID != id.ID {
		return ErrForbidden
	}
	camp, err := s.campaigns.Get(ctx, campaignID)
	if err != nil {
		return err
	}
	if err := camp.Join(id.ID, ch.ID, ch.Name); err != nil {
		return err
	}
	if err := s.campaigns.Save(ctx, camp); err != nil {
		return fmt.Errorf("saving campaign: %w", err)
	}
	s.logger.Info("join requested",
		zap.String("campaign", campaignID),
		zap.String("character", characterID),
	)
	return nil
}

// SetMemberStatus accepts or rejects a membership. Only the campaign's GM may.
func (s *CampaignService) SetMemberStatus(ctx context.Context, id Identity, campaignID, characterID string, status campaign.MemberStatus) error {
	camp, err := gmCampaign(ctx, s.campaigns, id, campaignID)
	if err != nil {
		return err
	}
	if err := camp.SetMemberStatus(characterID, status); err != nil {
		return err
	}
	if err := s.campaigns.Save(ctx, camp); err != nil {
		return fmt.Errorf("saving campaign: %w", err)
	}
	return nil
}

// UpdateSettings sets the campaign map and upkeep cost. Only the campaign's
// GM may.
func (s *CampaignService) UpdateSettings(ctx context.Context, id Identity, campaignID, mapURL string, upkeep int) error {
	camp, err := gmCampaign(ctx, s.campaigns, id, campaignID)
	if err != nil {
		return err
	}
	if err := camp.UpdateSettings(mapURL, upkeep); err != nil {
		return err
	}
	if err := s.campaigns.Save(ctx, camp); err != nil {
		return fmt.Errorf("saving campaign: %w", err)
	}
	return nil
}

// PayUpkeep charges the upkeep cost to the treasury and returns the amount
// paid. Only the campaign's GM may.
func (s *CampaignService) PayUpkeep(ctx context.Context, id Identity, campaignID string) (int, error) {
	camp, err := gmCampaign(ctx, s.campaigns, id, campaignID)
	if err != nil {
		return 0, err
	}
	if err := camp.PayUpkeep(); err != nil {
		return 0, err
	}
	if err := s.campaigns.Save(ctx, camp); err != nil {
		return 0, fmt.Errorf("saving campaign: %w", err)
	}
	s.logger.Info("upkeep paid",
		zap.String("campaign", campaignID),
		zap.Int("cost", camp.UpkeepCost),
		zap.Int("treasury", camp.PartyGold),
	)
	return camp.UpkeepCost, nil
}

// TransferGold moves amount from a member's purse into the treasury, or out
// of it when amount is negative. Only the campaign's GM may.
//
// Postcondition: The character is written before the campaign. When the
// campaign write fails the character's purse is put back.
func (s *CampaignService) TransferGold(ctx context.Context, id Identity, campaignID, characterID string, amount int) error {
	camp, err := gmCampaign(ctx, s.campaigns, id, campaignID)
	if err != nil {
		return err
	}
	ch, err := s.characters.Get(ctx, characterID)
	if err != nil {
		return reference("character", characterID, err)
	}
	if amount == 0 {
		return nil
	}
	if err := camp.TransferGold(ch, amount); err != nil {
		return err
	}
	if err := s.characters.Save(ctx, ch); err != nil {
		return fmt.Errorf("saving character: %w", err)
	}
	if err := s.campaigns.Save(ctx, camp); err != nil {
		ch.Status.Gold += amount
		if rerr := s.characters.Save(ctx, ch); rerr != nil {
			s.logger.Error("restoring character gold",
				zap.String("character", characterID),
				zap.Int("gold", ch.Status.Gold),
				zap.Error(rerr),
			)
		}
		return fmt.Errorf("saving campaign: %w", err)
	}
	s.logger.Info("gold transferred",
		zap.String("campaign", campaignID),
		zap.String("character", characterID),
		zap.Int("amount", amount),
	)
	return nil
}
