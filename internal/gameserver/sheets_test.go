package gameserver_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/combat"
	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/gameserver"
	mockgameserver "github.com/Ostwick/RPG-Imperium/internal/gameserver/mock"
	"github.com/Ostwick/RPG-Imperium/internal/storage"
)

func loadout(t *testing.T, main, off *inventory.Item) *character.Character {
	t.Helper()
	c, err := character.New("char-1", "user-1", character.Creation{Name: "Brena"})
	require.NoError(t, err)
	c.Equipment.HandMain = main
	c.Equipment.HandOff = off
	return c
}

func TestSheetSync_Vitals(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := mockgameserver.NewMockCharacterStore(ctrl)
	core, logs := observer.New(zap.WarnLevel)
	sync := gameserver.NewSheetSync(store, zap.New(core))

	store.EXPECT().SetStatus(ctx, "char-1", character.FieldStamina, 40).Return(nil)
	require.NoError(t, sync.SyncStamina(ctx, "char-1", 40))

	missing := fmt.Errorf("character: %w", storage.ErrNotFound)
	store.EXPECT().SetStatus(ctx, "gone", character.FieldHPCurrent, 0).Return(missing)
	require.NoError(t, sync.SyncHP(ctx, "gone", 0))
	assert.Equal(t, 1, logs.FilterMessage("sheet sync skipped").Len())

	store.EXPECT().SetStatus(ctx, "char-1", character.FieldHPCurrent, 5).Return(errors.New("timeout"))
	assert.ErrorContains(t, sync.SyncHP(ctx, "char-1", 5), "timeout")
}

func TestSheetSync_ConsumeAmmo(t *testing.T) {
	ctx := context.Background()

	knives := func(n int) *inventory.Item {
		it := inventory.NewItem("Throwing Knives", inventory.CategoryWeapon, inventory.WeaponThrowing, n, 0.3)
		return &it
	}

	tests := []struct {
		name      string
		main, off *inventory.Item
		slot      inventory.Slot
		taken     bool
		wantErr   error
	}{
		{name: "melee spends nothing", main: sword()},
		{name: "empty hands spend nothing"},
		{name: "bow with arrows", main: bow(), off: arrows(3), slot: inventory.SlotHandOff, taken: true},
		{name: "arrows lost to a race", main: bow(), off: arrows(1), slot: inventory.SlotHandOff, wantErr: combat.ErrOutOfAmmo},
		{name: "bow without arrows", main: bow(), wantErr: combat.ErrOutOfAmmo},
		{name: "empty quiver", main: bow(), off: arrows(0), wantErr: combat.ErrOutOfAmmo},
		{name: "throwing knives", main: knives(2), slot: inventory.SlotHandMain, taken: true},
		{name: "no knives left", main: knives(0), wantErr: combat.ErrOutOfAmmo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mockgameserver.NewMockCharacterStore(ctrl)
			sync := gameserver.NewSheetSync(store, zap.NewNop())

			store.EXPECT().Get(ctx, "char-1").Return(loadout(t, tt.main, tt.off), nil)
			if tt.slot != "" {
				store.EXPECT().DecrementEquipped(ctx, "char-1", tt.slot).Return(tt.taken, nil)
			}

			err := sync.ConsumeAmmo(ctx, "char-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSheetSync_ConsumeAmmoMissingSheet(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := mockgameserver.NewMockCharacterStore(ctrl)
	sync := gameserver.NewSheetSync(store, zap.NewNop())

	store.EXPECT().Get(ctx, "gone").Return(nil, storage.ErrNotFound)
	assert.NoError(t, sync.ConsumeAmmo(ctx, "gone"))

	store.EXPECT().Get(ctx, "char-1").Return(loadout(t, bow(), arrows(2)), nil)
	store.EXPECT().DecrementEquipped(ctx, "char-1", inventory.SlotHandOff).Return(false, errors.New("conn closed"))
	err := sync.ConsumeAmmo(ctx, "char-1")
	assert.ErrorContains(t, err, "conn closed")
	assert.NotErrorIs(t, err, combat.ErrOutOfAmmo)
}
