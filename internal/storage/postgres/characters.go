package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/storage"
)

// ErrDuplicateID is returned when inserting a document whose id already exists.
var ErrDuplicateID = errors.New("duplicate id")

// CharacterRepository persists character sheets.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a CharacterRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Create inserts a new character.
//
// Precondition: c must pass Validate.
// Postcondition: Returns ErrDuplicateID when c.ID is taken.
func (r *CharacterRepository) Create(ctx context.Context, c *character.Character) error {
	doc, err := storage.Encode(c)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO characters (id, user_id, doc) VALUES ($1, $2, $3)`,
		c.ID, c.UserID, doc,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("inserting character: %w", err)
	}
	return nil
}

// Get loads a character by id.
//
// Postcondition: Returns storage.ErrNotFound when no row matches.
func (r *CharacterRepository) Get(ctx context.Context, id string) (*character.Character, error) {
	var doc []byte
	err := r.db.QueryRow(ctx, `SELECT doc FROM characters WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("character %q: %w", id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("querying character: %w", err)
	}
	return storage.Decode[character.Character](doc)
}

// ListByUser returns every character owned by userID, oldest first.
func (r *CharacterRepository) ListByUser(ctx context.Context, userID string) ([]*character.Character, error) {
	rows, err := r.db.Query(ctx,
		`SELECT doc FROM characters WHERE user_id = $1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	docs, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("scanning characters: %w", err)
	}

	chars := make([]*character.Character, 0, len(docs))
	for _, doc := range docs {
		c, err := storage.Decode[character.Character](doc)
		if err != nil {
			return nil, err
		}
		chars = append(chars, c)
	}
	return chars, nil
}

// Save replaces the stored document.
//
// Postcondition: Returns storage.ErrNotFound when no row matches.
func (r *CharacterRepository) Save(ctx context.Context, c *character.Character) error {
	doc, err := storage.Encode(c)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE characters SET doc = $2, updated_at = NOW() WHERE id = $1`, c.ID, doc)
	if err != nil {
		return fmt.Errorf("saving character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("character %q: %w", c.ID, storage.ErrNotFound)
	}
	return nil
}

// SetStatus updates one status field in place, leaving the rest of the
// document untouched.
//
// Postcondition: Returns storage.ErrNotFound when no row matches.
func (r *CharacterRepository) SetStatus(ctx context.Context, id string, field character.StatusField, value int) error {
	if err := new(character.Status).Set(field, value); err != nil {
		return err
	}
	query := `
		UPDATE characters
		SET doc = jsonb_set(doc, ARRAY['status', $2::text], to_jsonb($3::int)), updated_at = NOW()
		WHERE id = $1`
	if field == character.FieldHPMax {
		// hp_current never stays above a lowered hp_max.
		query = `
		UPDATE characters
		SET doc = jsonb_set(
			jsonb_set(doc, ARRAY['status', $2::text], to_jsonb($3::int)),
			'{status,hp_current}',
			to_jsonb(LEAST((doc->'status'->>'hp_current')::int, $3::int))
		), updated_at = NOW()
		WHERE id = $1`
	}
	tag, err := r.db.Exec(ctx, query, id, string(field), value)
	if err != nil {
		return fmt.Errorf("updating character status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("character %q: %w", id, storage.ErrNotFound)
	}
	return nil
}

// DecrementEquipped takes one unit from the quantity of the item equipped in
// slot. The update only applies while the quantity is positive, so of two
// racing callers for the last unit exactly one succeeds.
//
// Postcondition: Returns true iff a unit was taken.
func (r *CharacterRepository) DecrementEquipped(ctx context.Context, id string, slot inventory.Slot) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE characters
		SET doc = jsonb_set(
				doc,
				ARRAY['equipment', $2::text, 'quantity'],
				to_jsonb((doc->'equipment'->$2::text->>'quantity')::int - 1)),
			updated_at = NOW()
		WHERE id = $1
		  AND jsonb_typeof(doc->'equipment'->$2::text) = 'object'
		  AND (doc->'equipment'->$2::text->>'quantity')::int > 0`,
		id, string(slot),
	)
	if err != nil {
		return false, fmt.Errorf("decrementing equipped quantity: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
