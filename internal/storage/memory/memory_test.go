package memory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ostwick/RPG-Imperium/internal/game/campaign"
	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/combat"
	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/game/npc"
	"github.com/Ostwick/RPG-Imperium/internal/storage"
	"github.com/Ostwick/RPG-Imperium/internal/storage/memory"
)

func thrower(t *testing.T, knives int) *character.Character {
	t.Helper()
	c, err := character.New("char-1", "user-1", character.Creation{Name: "Tova"})
	require.NoError(t, err)
	knife := inventory.NewItem("Throwing Knives", inventory.CategoryWeapon, inventory.WeaponThrowing, knives, 0.3)
	c.Equipment.HandMain = &knife
	return c
}

func TestCharacterRepository_Isolation(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCharacterRepository()
	c := thrower(t, 3)
	require.NoError(t, repo.Create(ctx, c))
	assert.ErrorIs(t, repo.Create(ctx, c), memory.ErrDuplicateID)

	c.Name = "changed after create"
	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tova", got.Name)

	got.Name = "Tova the Swift"
	require.NoError(t, repo.Save(ctx, got))
	again, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tova the Swift", again.Name)

	_, err = repo.Get(ctx, "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	list, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCharacterRepository_SetStatus(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCharacterRepository()
	c := thrower(t, 1)
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.SetStatus(ctx, c.ID, character.FieldHPCurrent, 12))
	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Status.HPCurrent)

	assert.ErrorIs(t, repo.SetStatus(ctx, "nope", character.FieldHPCurrent, 1), storage.ErrNotFound)
}

func TestCharacterRepository_SetStatusLowersHPCurrent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCharacterRepository()
	c := thrower(t, 1)
	c.Status.HPCurrent, c.Status.HPMax = 110, 110
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.SetStatus(ctx, c.ID, character.FieldHPMax, 100))
	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Status.HPMax)
	assert.Equal(t, 100, got.Status.HPCurrent)
}

func TestCharacterRepository_DecrementEquippedRace(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCharacterRepository()
	c := thrower(t, 4)
	require.NoError(t, repo.Create(ctx, c))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.DecrementEquipped(ctx, c.ID, inventory.SlotHandMain)
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(4), wins.Load())
	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Equipment.HandMain.Quantity)
}

func TestCampaignRepository_SaveEncounterKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCampaignRepository()
	camp := campaign.New("camp-1", "gm-1", "Northern March")
	require.NoError(t, repo.Create(ctx, camp))

	// A concurrent edit to the description must survive an encounter write.
	edited := campaign.New("camp-1", "gm-1", "Northern March")
	edited.Description = "Border skirmishes."
	require.NoError(t, repo.Save(ctx, edited))

	camp.StartEncounter([]*combat.Combatant{{ID: "wolf_1000", HPCurrent: 3, HPMax: 3}})
	require.NoError(t, repo.SaveEncounter(ctx, camp))

	got, err := repo.Get(ctx, "camp-1")
	require.NoError(t, err)
	assert.Equal(t, "Border skirmishes.", got.Description)
	assert.True(t, got.CombatActive)
	assert.Len(t, got.Combatants, 1)
}

func TestTemplateRepository(t *testing.T) {
	ctx := context.Background()
	repo, err := memory.NewTemplateRepository(
		&npc.Template{ID: "wolf", Name: "Wolf", HPMax: 30},
		&npc.Template{ID: "bandit", Name: "Bandit", HPMax: 40},
	)
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, &npc.Template{ID: "wolf", Name: "Dire Wolf", HPMax: 50}))
	got, err := repo.Get(ctx, "wolf")
	require.NoError(t, err)
	assert.Equal(t, "Dire Wolf", got.Name)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "bandit", all[0].ID)

	_, err = memory.NewTemplateRepository(&npc.Template{ID: "x"})
	assert.Error(t, err)
}
