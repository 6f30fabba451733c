package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/storage"
)

// ErrDuplicateID is returned when creating a document whose id already exists.
var ErrDuplicateID = errors.New("duplicate id")

// CharacterRepository persists character sheets.
type CharacterRepository struct {
	client *redis.Client
	keys   keys
}

// NewCharacterRepository creates a CharacterRepository. Every key is prefixed
// with prefix.
//
// Precondition: client must not be nil.
func NewCharacterRepository(client *redis.Client, prefix string) *CharacterRepository {
	return &CharacterRepository{client: client, keys: keys{prefix: prefix}}
}

// Create stores a new character and indexes it under its owner.
//
// Postcondition: Returns ErrDuplicateID when c.ID is taken.
func (r *CharacterRepository) Create(ctx context.Context, c *character.Character) error {
	doc, err := storage.Encode(c)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, r.keys.character(c.ID), string(doc), 0).Result()
	if err != nil {
		return fmt.Errorf("creating character: %w", err)
	}
	if !ok {
		return ErrDuplicateID
	}
	if err := r.client.SAdd(ctx, r.keys.userCharacters(c.UserID), c.ID).Err(); err != nil {
		return fmt.Errorf("indexing character: %w", err)
	}
	return nil
}

// Get loads a character by id.
//
// Postcondition: Returns storage.ErrNotFound when the key is absent.
func (r *CharacterRepository) Get(ctx context.Context, id string) (*character.Character, error) {
	data, err := getDoc(ctx, r.client, r.keys.character(id))
	if err != nil {
		return nil, err
	}
	return storage.Decode[character.Character](data)
}

// ListByUser returns every character owned by userID.
func (r *CharacterRepository) ListByUser(ctx context.Context, userID string) ([]*character.Character, error) {
	ids, err := r.client.SMembers(ctx, r.keys.userCharacters(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}

	chars := make([]*character.Character, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			c, err := r.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("loading character %s: %w", id, err)
			}
			chars[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chars, nil
}

// Save replaces the stored document.
//
// Postcondition: Returns storage.ErrNotFound when the key is absent.
func (r *CharacterRepository) Save(ctx context.Context, c *character.Character) error {
	doc, err := storage.Encode(c)
	if err != nil {
		return err
	}
	ok, err := r.client.SetXX(ctx, r.keys.character(c.ID), string(doc), 0).Result()
	if err != nil {
		return fmt.Errorf("saving character: %w", err)
	}
	if !ok {
		return fmt.Errorf("character %q: %w", c.ID, storage.ErrNotFound)
	}
	return nil
}

// SetStatus updates one status field.
//
// Postcondition: Returns storage.ErrNotFound when the key is absent.
func (r *CharacterRepository) SetStatus(ctx context.Context, id string, field character.StatusField, value int) error {
	if err := new(character.Status).Set(field, value); err != nil {
		return err
	}
	_, err := update(ctx, r.client, r.keys.character(id), func(data []byte) ([]byte, error) {
		c, err := storage.Decode[character.Character](data)
		if err != nil {
			return nil, err
		}
		_ = c.Status.Set(field, value)
		return storage.Encode(c)
	})
	return err
}

// DecrementEquipped takes one unit from the quantity of the item equipped in
// slot. The transaction aborts without writing when the slot is empty or the
// quantity is already zero.
//
// Postcondition: Returns true iff a unit was taken.
func (r *CharacterRepository) DecrementEquipped(ctx context.Context, id string, slot inventory.Slot) (bool, error) {
	return update(ctx, r.client, r.keys.character(id), func(data []byte) ([]byte, error) {
		c, err := storage.Decode[character.Character](data)
		if err != nil {
			return nil, err
		}
		item := c.Equipment.Get(slot)
		if item == nil || item.Quantity <= 0 {
			return nil, errSkip
		}
		item.Quantity--
		return storage.Encode(c)
	})
}
