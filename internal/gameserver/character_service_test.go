package gameserver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/game/ruleset"
	"github.com/Ostwick/RPG-Imperium/internal/gameserver"
)

func (f *fixture) characterService() *gameserver.CharacterService {
	return gameserver.NewCharacterService(f.characters, ruleset.NewCatalog(), f.calc, f.logger)
}

func TestCharacterService_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.characterService()

	c, err := svc.Create(ctx, owner, character.Creation{Name: "Aldric", Archetype: "Knight"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, owner.ID, c.UserID)
	assert.Equal(t, 100, c.Status.HPMax)
	assert.Equal(t, 2, c.Points.AttributePoints)
	assert.Equal(t, 1, c.Points.SkillPoints)

	_, err = svc.Create(ctx, owner, character.Creation{})
	assert.Error(t, err)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestCharacterService_Sheet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.characterService()

	c, err := character.New("char-1", owner.ID, character.Creation{Name: "Aldric"})
	require.NoError(t, err)
	c.PrivateNotes = "Owes the guild 40 crowns."
	c.Status.HPMax = 90
	c.Status.HPCurrent = 90
	require.NoError(t, f.characters.Create(ctx, c))

	other, err := svc.Sheet(ctx, stranger, "char-1")
	require.NoError(t, err)
	assert.False(t, other.Editable)
	assert.Empty(t, other.Character.PrivateNotes)
	assert.Equal(t, 90, f.sheet(t, "char-1").Status.HPMax, "a stranger's view must not write")

	mine, err := svc.Sheet(ctx, owner, "char-1")
	require.NoError(t, err)
	assert.True(t, mine.Editable)
	assert.Equal(t, "Owes the guild 40 crowns.", mine.Character.PrivateNotes)
	assert.Equal(t, 100, mine.Character.Status.HPMax)
	assert.Equal(t, 100, mine.Derived.CurrentSpeed)
	assert.Equal(t, 100, f.sheet(t, "char-1").Status.HPMax)

	_, err = svc.Sheet(ctx, owner, "char-404")
	assert.Error(t, err)
}

func TestCharacterService_EquipUnequip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.characterService()

	c, err := character.New("char-1", owner.ID, character.Creation{Name: "Aldric"})
	require.NoError(t, err)
	blade := sword()
	c.AddItem(*blade)
	require.NoError(t, f.characters.Create(ctx, c))

	_, err = svc.Equip(ctx, stranger, "char-1", blade.ID, inventory.HandMain)
	assert.ErrorIs(t, err, gameserver.ErrForbidden)

	slot, err := svc.Equip(ctx, owner, "char-1", blade.ID, inventory.HandMain)
	require.NoError(t, err)
	assert.Equal(t, inventory.SlotHandMain, slot)
	stored := f.sheet(t, "char-1")
	assert.Empty(t, stored.Inventory)
	require.NotNil(t, stored.Equipment.HandMain)
	assert.Equal(t, blade.ID, stored.Equipment.HandMain.ID)

	_, err = svc.Equip(ctx, owner, "char-1", blade.ID, inventory.HandMain)
	assert.ErrorIs(t, err, character.ErrItemNotFound)

	require.NoError(t, svc.Unequip(ctx, gm, "char-1", inventory.SlotHandMain))
	stored = f.sheet(t, "char-1")
	assert.Nil(t, stored.Equipment.HandMain)
	assert.Len(t, stored.Inventory, 1)

	assert.NoError(t, svc.Unequip(ctx, owner, "char-1", inventory.SlotArmor))
}

func TestCharacterService_UnlockNode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.characterService()
	f.addCharacter(t, "char-1", owner.ID, "Aldric", nil, nil)

	err := svc.UnlockNode(ctx, owner, "char-1", "Vigor", "One-Handed", 1, 0)
	assert.ErrorIs(t, err, character.ErrAttributeTooLow)

	require.NoError(t, svc.SpendAttributes(ctx, owner, "char-1", map[string]int{"Vigor": 2}))
	require.NoError(t, svc.UnlockNode(ctx, owner, "char-1", "Vigor", "One-Handed", 1, 1))

	stored := f.sheet(t, "char-1")
	assert.Equal(t, 1, stored.Stats["Vigor"].Skills["One-Handed"].NodesUnlocked["1"])
	assert.Zero(t, stored.Points.SkillPoints)
	assert.Equal(t, 1, stored.Points.AttributePoints)

	err = svc.UnlockNode(ctx, owner, "char-1", "Vigor", "Polearm", 1, 0)
	assert.ErrorIs(t, err, character.ErrNoSkillPoints)
	require.NoError(t, svc.UnlockNode(ctx, gm, "char-1", "Vigor", "Polearm", 1, 0))
	assert.Zero(t, f.sheet(t, "char-1").Points.SkillPoints)

	tests := []struct {
		name      string
		attribute string
		skill     string
		tier      int
		choice    int
	}{
		{"skill under wrong attribute", "Control", "Polearm", 1, 0},
		{"unknown skill", "Vigor", "Juggling", 1, 0},
		{"tier beyond tree", "Vigor", "Polearm", 11, 0},
		{"choice beyond tier", "Vigor", "Polearm", 1, 2},
		{"negative choice", "Vigor", "Polearm", 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UnlockNode(ctx, gm, "char-1", tt.attribute, tt.skill, tt.tier, tt.choice)
			assert.ErrorIs(t, err, gameserver.ErrInvalidReference)
		})
	}
}

func TestCharacterService_GMOnlyOperations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.characterService()
	f.addCharacter(t, "char-1", owner.ID, "Aldric", nil, nil)
	pack := inventory.NewItem("Rations", inventory.CategoryGeneral, inventory.WeaponNone, 5, 1.0)

	assert.ErrorIs(t, svc.LevelUp(ctx, owner, "char-1"), gameserver.ErrForbidden)
	assert.ErrorIs(t, svc.AddItem(ctx, owner, "char-1", pack), gameserver.ErrForbidden)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, owner, "char-1", 1, 1), gameserver.ErrForbidden)

	require.NoError(t, svc.LevelUp(ctx, gm, "char-1"))
	require.NoError(t, svc.AddItem(ctx, gm, "char-1", pack))
	require.NoError(t, svc.UpdateStatus(ctx, gm, "char-1", 250, 35))

	stored := f.sheet(t, "char-1")
	assert.Equal(t, 2, stored.Status.Level)
	assert.Equal(t, 4, stored.Points.AttributePoints)
	assert.Equal(t, 2, stored.Points.SkillPoints)
	assert.Len(t, stored.Inventory, 1)
	assert.Equal(t, 100, stored.Status.HPCurrent)
	assert.Equal(t, 35, stored.Status.Stamina)

	anvil := inventory.NewItem("Anvil", inventory.CategoryGeneral, inventory.WeaponNone, 1, 25.5)
	assert.ErrorIs(t, svc.AddItem(ctx, gm, "char-1", anvil), gameserver.ErrOverburdened)

	assert.ErrorIs(t, svc.RemoveItem(ctx, owner, "char-1", pack.ID), gameserver.ErrForbidden)
	require.NoError(t, svc.RemoveItem(ctx, gm, "char-1", pack.ID))
	assert.Empty(t, f.sheet(t, "char-1").Inventory)
	assert.ErrorIs(t, svc.RemoveItem(ctx, gm, "char-1", pack.ID), character.ErrItemNotFound)
}

func TestCharacterService_SaveNotes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.characterService()
	f.addCharacter(t, "char-1", owner.ID, "Aldric", nil, nil)

	assert.ErrorIs(t, svc.SaveNotes(ctx, stranger, "char-1", "peeking"), gameserver.ErrForbidden)
	require.NoError(t, svc.SaveNotes(ctx, owner, "char-1", "Suspects the steward."))
	assert.Equal(t, "Suspects the steward.", f.sheet(t, "char-1").PrivateNotes)
}

func TestCharacterService_GoldAndFiefs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.characterService()
	f.addCharacter(t, "char-1", owner.ID, "Aldric", nil, nil)

	assert.ErrorIs(t, svc.UpdateGold(ctx, owner, "char-1", 500), gameserver.ErrForbidden)
	assert.ErrorIs(t, svc.UpdateGold(ctx, gm, "char-1", -1), character.ErrNegativeGold)
	require.NoError(t, svc.UpdateGold(ctx, gm, "char-1", 40))

	_, err := svc.AddFief(ctx, owner, "char-1", "Pravend", "Town", 25)
	assert.ErrorIs(t, err, gameserver.ErrForbidden)
	_, err = svc.AddFief(ctx, gm, "char-1", "", "Town", 25)
	assert.ErrorIs(t, err, character.ErrInvalidFief)

	fief, err := svc.AddFief(ctx, gm, "char-1", "Pravend", "Town", 25)
	require.NoError(t, err)
	require.Len(t, f.sheet(t, "char-1").Fiefs, 1)

	_, err = svc.CollectFief(ctx, owner, "char-1", fief.ID)
	assert.ErrorIs(t, err, gameserver.ErrForbidden)
	income, err := svc.CollectFief(ctx, gm, "char-1", fief.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, income)
	assert.Equal(t, 65, f.sheet(t, "char-1").Status.Gold)

	assert.ErrorIs(t, svc.RemoveFief(ctx, owner, "char-1", fief.ID), gameserver.ErrForbidden)
	require.NoError(t, svc.RemoveFief(ctx, gm, "char-1", fief.ID))
	assert.Empty(t, f.sheet(t, "char-1").Fiefs)
	_, err = svc.CollectFief(ctx, gm, "char-1", fief.ID)
	assert.ErrorIs(t, err, character.ErrFiefNotFound)
	assert.Equal(t, 65, f.sheet(t, "char-1").Status.Gold)
}
