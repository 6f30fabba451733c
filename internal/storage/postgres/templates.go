package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ostwick/RPG-Imperium/internal/game/npc"
	"github.com/Ostwick/RPG-Imperium/internal/storage"
)

// TemplateRepository persists the bestiary.
type TemplateRepository struct {
	db *pgxpool.Pool
}

// NewTemplateRepository creates a TemplateRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Get loads an enemy template by id.
//
// Postcondition: Returns storage.ErrNotFound when no row matches.
func (r *TemplateRepository) Get(ctx context.Context, id string) (*npc.Template, error) {
	var doc []byte
	err := r.db.QueryRow(ctx, `SELECT doc FROM enemy_templates WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("enemy template %q: %w", id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("querying enemy template: %w", err)
	}
	return storage.Decode[npc.Template](doc)
}

// List returns all templates ordered by id.
func (r *TemplateRepository) List(ctx context.Context) ([]*npc.Template, error) {
	rows, err := r.db.Query(ctx, `SELECT doc FROM enemy_templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing enemy templates: %w", err)
	}
	docs, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("scanning enemy templates: %w", err)
	}
	out := make([]*npc.Template, 0, len(docs))
	for _, doc := range docs {
		t, err := storage.Decode[npc.Template](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Upsert inserts t or replaces the template with the same id.
func (r *TemplateRepository) Upsert(ctx context.Context, t *npc.Template) error {
	doc, err := storage.Encode(t)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO enemy_templates (id, doc) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`,
		t.ID, doc,
	)
	if err != nil {
		return fmt.Errorf("upserting enemy template: %w", err)
	}
	return nil
}
