package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ostwick/RPG-Imperium/internal/game/campaign"
	"github.com/Ostwick/RPG-Imperium/internal/storage"
)

// CampaignRepository persists campaigns and their embedded encounter.
type CampaignRepository struct {
	db *pgxpool.Pool
}

// NewCampaignRepository creates a CampaignRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCampaignRepository(db *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create inserts a new campaign.
//
// Postcondition: Returns ErrDuplicateID when c.ID is taken.
func (r *CampaignRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	doc, err := storage.Encode(c)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO campaigns (id, gm_id, doc) VALUES ($1, $2, $3)`, c.ID, c.GMID, doc)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("inserting campaign: %w", err)
	}
	return nil
}

// Get loads a campaign by id.
//
// Postcondition: Returns storage.ErrNotFound when no row matches.
func (r *CampaignRepository) Get(ctx context.Context, id string) (*campaign.Campaign, error) {
	var doc []byte
	err := r.db.QueryRow(ctx, `SELECT doc FROM campaigns WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("campaign %q: %w", id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("querying campaign: %w", err)
	}
	return storage.Decode[campaign.Campaign](doc)
}

// Save replaces the stored document.
//
// Postcondition: Returns storage.ErrNotFound when no row matches.
func (r *CampaignRepository) Save(ctx context.Context, c *campaign.Campaign) error {
	doc, err := storage.Encode(c)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE campaigns SET doc = $2, updated_at = NOW() WHERE id = $1`, c.ID, doc)
	if err != nil {
		return fmt.Errorf("saving campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign %q: %w", c.ID, storage.ErrNotFound)
	}
	return nil
}

// SaveEncounter writes combat_active, combatants and combat_log in a single
// update without touching the rest of the document. Concurrent writers are
// last-writer-wins.
//
// Precondition: c must pass Validate.
// Postcondition: Returns storage.ErrNotFound when no row matches.
func (r *CampaignRepository) SaveEncounter(ctx context.Context, c *campaign.Campaign) error {
	if err := c.Validate(); err != nil {
		return err
	}
	combatants, err := json.Marshal(c.Combatants)
	if err != nil {
		return fmt.Errorf("encoding combatants: %w", err)
	}
	log, err := json.Marshal(c.Log)
	if err != nil {
		return fmt.Errorf("encoding combat log: %w", err)
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE campaigns
		SET doc = doc || jsonb_build_object(
				'combat_active', $2::boolean,
				'combatants', $3::jsonb,
				'combat_log', $4::jsonb),
			updated_at = NOW()
		WHERE id = $1`,
		c.ID, c.CombatActive, combatants, log,
	)
	if err != nil {
		return fmt.Errorf("saving encounter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign %q: %w", c.ID, storage.ErrNotFound)
	}
	return nil
}
