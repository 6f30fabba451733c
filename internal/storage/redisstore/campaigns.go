package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Ostwick/RPG-Imperium/internal/game/campaign"
	"github.com/Ostwick/RPG-Imperium/internal/storage"
)

// CampaignRepository persists campaigns.
type CampaignRepository struct {
	client *redis.Client
	keys   keys
}

// NewCampaignRepository creates a CampaignRepository.
//
// Precondition: client must not be nil.
func NewCampaignRepository(client *redis.Client, prefix string) *CampaignRepository {
	return &CampaignRepository{client: client, keys: keys{prefix: prefix}}
}

// Create stores a new campaign.
//
// Postcondition: Returns ErrDuplicateID when c.ID is taken.
func (r *CampaignRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	doc, err := storage.Encode(c)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, r.keys.campaign(c.ID), string(doc), 0).Result()
	if err != nil {
		return fmt.Errorf("creating campaign: %w", err)
	}
	if !ok {
		return ErrDuplicateID
	}
	return nil
}

// Get loads a campaign by id.
//
// Postcondition: Returns storage.ErrNotFound when the key is absent.
func (r *CampaignRepository) Get(ctx context.Context, id string) (*campaign.Campaign, error) {
	data, err := getDoc(ctx, r.client, r.keys.campaign(id))
	if err != nil {
		return nil, err
	}
	return storage.Decode[campaign.Campaign](data)
}

// Save replaces the stored document.
//
// Postcondition: Returns storage.ErrNotFound when the key is absent.
func (r *CampaignRepository) Save(ctx context.Context, c *campaign.Campaign) error {
	doc, err := storage.Encode(c)
	if err != nil {
		return err
	}
	ok, err := r.client.SetXX(ctx, r.keys.campaign(c.ID), string(doc), 0).Result()
	if err != nil {
		return fmt.Errorf("saving campaign: %w", err)
	}
	if !ok {
		return fmt.Errorf("campaign %q: %w", c.ID, storage.ErrNotFound)
	}
	return nil
}

// SaveEncounter replaces only the combat fields of the stored campaign.
//
// Postcondition: Returns storage.ErrNotFound when the key is absent.
func (r *CampaignRepository) SaveEncounter(ctx context.Context, c *campaign.Campaign) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := update(ctx, r.client, r.keys.campaign(c.ID), func(data []byte) ([]byte, error) {
		stored, err := storage.Decode[campaign.Campaign](data)
		if err != nil {
			return nil, err
		}
		stored.CombatActive = c.CombatActive
		stored.Encounter = c.Encounter
		return storage.Encode(stored)
	})
	return err
}
