package redisstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/Ostwick/RPG-Imperium/internal/game/npc"
	"github.com/Ostwick/RPG-Imperium/internal/storage"
)

// TemplateRepository persists the bestiary.
type TemplateRepository struct {
	client *redis.Client
	keys   keys
}

// NewTemplateRepository creates a TemplateRepository.
//
// Precondition: client must not be nil.
func NewTemplateRepository(client *redis.Client, prefix string) *TemplateRepository {
	return &TemplateRepository{client: client, keys: keys{prefix: prefix}}
}

// Get loads an enemy template by id.
//
// Postcondition: Returns storage.ErrNotFound when the key is absent.
func (r *TemplateRepository) Get(ctx context.Context, id string) (*npc.Template, error) {
	data, err := getDoc(ctx, r.client, r.keys.template(id))
	if err != nil {
		return nil, err
	}
	return storage.Decode[npc.Template](data)
}

// List returns all templates ordered by id.
func (r *TemplateRepository) List(ctx context.Context) ([]*npc.Template, error) {
	ids, err := r.client.SMembers(ctx, r.keys.templates()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing enemy templates: %w", err)
	}
	sort.Strings(ids)

	out := make([]*npc.Template, 0, len(ids))
	for _, id := range ids {
		t, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Upsert stores t, replacing any template with the same id.
func (r *TemplateRepository) Upsert(ctx context.Context, t *npc.Template) error {
	doc, err := storage.Encode(t)
	if err != nil {
		return err
	}
	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.keys.template(t.ID), string(doc), 0)
	pipe.SAdd(ctx, r.keys.templates(), t.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("upserting enemy template: %w", err)
	}
	return nil
}
