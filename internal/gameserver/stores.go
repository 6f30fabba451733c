package gameserver

//go:generate mockgen -destination=mock/mock_stores.go -package=mockgameserver -source=stores.go

import (
	"context"

	"github.com/Ostwick/RPG-Imperium/internal/game/campaign"
	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/game/npc"
)

// CharacterStore persists character sheets. Get returns storage.ErrNotFound
// for unknown ids.
type CharacterStore interface {
	Create(ctx context.Context, c *character.Character) error
	Get(ctx context.Context, id string) (*character.Character, error)
	ListByUser(ctx context.Context, userID string) ([]*character.Character, error)
	Save(ctx context.Context, c *character.Character) error
	// SetStatus updates one vital without rewriting the rest of the sheet.
	SetStatus(ctx context.Context, id string, field character.StatusField, value int) error
	// DecrementEquipped takes one unit from the item in slot while its
	// quantity is positive and reports whether a unit was taken.
	DecrementEquipped(ctx context.Context, id string, slot inventory.Slot) (bool, error)
}

// CampaignStore persists campaigns.
type CampaignStore interface {
	Create(ctx context.Context, c *campaign.Campaign) error
	Get(ctx context.Context, id string) (*campaign.Campaign, error)
	Save(ctx context.Context, c *campaign.Campaign) error
	// SaveEncounter writes the combat flag, roster and log in one update.
	SaveEncounter(ctx context.Context, c *campaign.Campaign) error
}

// TemplateStore persists the bestiary.
type TemplateStore interface {
	Get(ctx context.Context, id string) (*npc.Template, error)
	List(ctx context.Context) ([]*npc.Template, error)
	Upsert(ctx context.Context, t *npc.Template) error
}
