// Package memory provides process-local repositories for development and
// tests. Documents are held in their encoded form so callers never share
// mutable state with the store.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Ostwick/RPG-Imperium/internal/game/campaign"
	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/game/npc"
	"github.com/Ostwick/RPG-Imperium/internal/storage"
)

// ErrDuplicateID is returned when creating a document whose id already exists.
var ErrDuplicateID = errors.New("duplicate id")

// docs is a mutex-guarded map of encoded documents.
type docs struct {
	mu   sync.Mutex
	data map[string][]byte
	// order records insertion order for listing.
	order []string
}

func newDocs() *docs { return &docs{data: make(map[string][]byte)} }

func (d *docs) create(kind, id string, doc storage.Document) error {
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.data[id]; ok {
		return fmt.Errorf("%s %q: %w", kind, id, ErrDuplicateID)
	}
	d.data[id] = data
	d.order = append(d.order, id)
	return nil
}

func (d *docs) get(kind, id string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	data, ok := d.data[id]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", kind, id, storage.ErrNotFound)
	}
	return data, nil
}

func (d *docs) replace(kind, id string, doc storage.Document) error {
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.data[id]; !ok {
		return fmt.Errorf("%s %q: %w", kind, id, storage.ErrNotFound)
	}
	d.data[id] = data
	return nil
}

// modify runs fn on the stored bytes under the lock and stores the result.
// fn returning nil bytes leaves the document unchanged.
func (d *docs) modify(kind, id string, fn func([]byte) ([]byte, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	data, ok := d.data[id]
	if !ok {
		return fmt.Errorf("%s %q: %w", kind, id, storage.ErrNotFound)
	}
	next, err := fn(data)
	if err != nil {
		return err
	}
	if next != nil {
		d.data[id] = next
	}
	return nil
}

func (d *docs) upsert(id string, doc storage.Document) error {
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.data[id]; !ok {
		d.order = append(d.order, id)
	}
	d.data[id] = data
	return nil
}

func (d *docs) all() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]byte, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.data[id])
	}
	return out
}

// CharacterRepository stores character sheets in memory.
type CharacterRepository struct {
	docs *docs
}

// NewCharacterRepository returns an empty repository.
func NewCharacterRepository() *CharacterRepository {
	return &CharacterRepository{docs: newDocs()}
}

// Create stores a new character.
func (r *CharacterRepository) Create(_ context.Context, c *character.Character) error {
	return r.docs.create("character", c.ID, c)
}

// Get loads a character by id.
func (r *CharacterRepository) Get(_ context.Context, id string) (*character.Character, error) {
	data, err := r.docs.get("character", id)
	if err != nil {
		return nil, err
	}
	return storage.Decode[character.Character](data)
}

// ListByUser returns userID's characters in creation order.
func (r *CharacterRepository) ListByUser(_ context.Context, userID string) ([]*character.Character, error) {
	var out []*character.Character
	for _, data := range r.docs.all() {
		c, err := storage.Decode[character.Character](data)
		if err != nil {
			return nil, err
		}
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Save replaces the stored document.
func (r *CharacterRepository) Save(_ context.Context, c *character.Character) error {
	return r.docs.replace("character", c.ID, c)
}

// SetStatus updates one status field.
func (r *CharacterRepository) SetStatus(_ context.Context, id string, field character.StatusField, value int) error {
	if err := new(character.Status).Set(field, value); err != nil {
		return err
	}
	return r.docs.modify("character", id, func(data []byte) ([]byte, error) {
		c, err := storage.Decode[character.Character](data)
		if err != nil {
			return nil, err
		}
		_ = c.Status.Set(field, value)
		return storage.Encode(c)
	})
}

// DecrementEquipped takes one unit from the item equipped in slot while its
// quantity is positive.
//
// Postcondition: Returns true iff a unit was taken.
func (r *CharacterRepository) DecrementEquipped(_ context.Context, id string, slot inventory.Slot) (bool, error) {
	taken := false
	err := r.docs.modify("character", id, func(data []byte) ([]byte, error) {
		c, err := storage.Decode[character.Character](data)
		if err != nil {
			return nil, err
		}
		item := c.Equipment.Get(slot)
		if item == nil || item.Quantity <= 0 {
			return nil, nil
		}
		item.Quantity--
		taken = true
		return storage.Encode(c)
	})
	if err != nil {
		return false, err
	}
	return taken, nil
}

// CampaignRepository stores campaigns in memory.
type CampaignRepository struct {
	docs *docs
}

// NewCampaignRepository returns an empty repository.
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{docs: newDocs()}
}

// Create stores a new campaign.
func (r *CampaignRepository) Create(_ context.Context, c *campaign.Campaign) error {
	return r.docs.create("campaign", c.ID, c)
}

// Get loads a campaign by id.
func (r *CampaignRepository) Get(_ context.Context, id string) (*campaign.Campaign, error) {
	data, err := r.docs.get("campaign", id)
	if err != nil {
		return nil, err
	}
	return storage.Decode[campaign.Campaign](data)
}

// Save replaces the stored document.
func (r *CampaignRepository) Save(_ context.Context, c *campaign.Campaign) error {
	return r.docs.replace("campaign", c.ID, c)
}

// SaveEncounter replaces only the combat fields of the stored campaign.
func (r *CampaignRepository) SaveEncounter(_ context.Context, c *campaign.Campaign) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return r.docs.modify("campaign", c.ID, func(data []byte) ([]byte, error) {
		stored, err := storage.Decode[campaign.Campaign](data)
		if err != nil {
			return nil, err
		}
		stored.CombatActive = c.CombatActive
		stored.Encounter = c.Encounter
		return storage.Encode(stored)
	})
}

// TemplateRepository stores the bestiary in memory.
type TemplateRepository struct {
	docs *docs
}

// NewTemplateRepository returns a repository seeded with templates.
//
// Postcondition: Returns an error if any template is invalid or repeated.
func NewTemplateRepository(templates ...*npc.Template) (*TemplateRepository, error) {
	r := &TemplateRepository{docs: newDocs()}
	for _, t := range templates {
		if err := r.docs.create("enemy template", t.ID, t); err != nil {
			return nil, fmt.Errorf("seeding template %q: %w", t.ID, err)
		}
	}
	return r, nil
}

// Get loads an enemy template by id.
func (r *TemplateRepository) Get(_ context.Context, id string) (*npc.Template, error) {
	data, err := r.docs.get("enemy template", id)
	if err != nil {
		return nil, err
	}
	return storage.Decode[npc.Template](data)
}

// List returns all templates ordered by id.
func (r *TemplateRepository) List(_ context.Context) ([]*npc.Template, error) {
	var out []*npc.Template
	for _, data := range r.docs.all() {
		t, err := storage.Decode[npc.Template](data)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Upsert stores t, replacing any template with the same id.
func (r *TemplateRepository) Upsert(_ context.Context, t *npc.Template) error {
	return r.docs.upsert(t.ID, t)
}
