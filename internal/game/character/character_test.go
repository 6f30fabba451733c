package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/game/ruleset"
)

func newHero(t require.TestingT) *character.Character {
	c, err := character.New("char-1", "user-1", character.Creation{Name: "Aldric", Archetype: "Knight", Culture: "Vlandian"})
	require.NoError(t, err)
	return c
}

func TestNew_StartingSheet(t *testing.T) {
	c := newHero(t)

	require.NoError(t, c.Validate())
	assert.Equal(t, 100, c.Status.HPCurrent)
	assert.Equal(t, 100, c.Status.HPMax)
	assert.Equal(t, 100, c.Status.StaminaMax)
	assert.Equal(t, 1, c.Status.Level)
	assert.Equal(t, 2, c.Points.AttributePoints)
	assert.Equal(t, 1, c.Points.SkillPoints)
	require.Len(t, c.Stats, 6)
	for _, attr := range ruleset.Attributes {
		assert.Equal(t, 1, c.Stats[attr].Value)
		assert.Len(t, c.Stats[attr].Skills, 3)
	}
	assert.Empty(t, c.UnlockedNodes())
}

func TestNew_EmptyNameError(t *testing.T) {
	_, err := character.New("id", "u", character.Creation{})
	assert.Error(t, err)
}

func TestEquip_MovesItemOutOfInventory(t *testing.T) {
	c := newHero(t)
	sword := inventory.NewItem("Arming Sword", inventory.CategoryWeapon, inventory.WeaponOneHanded, 1, 1.2)
	c.AddItem(sword)

	slot, err := c.Equip(sword.ID, inventory.HandMain)
	require.NoError(t, err)
	assert.Equal(t, inventory.SlotHandMain, slot)
	assert.Empty(t, c.Inventory)
	require.NotNil(t, c.Equipment.HandMain)
	assert.Equal(t, sword.ID, c.Equipment.HandMain.ID)

	it := c.Unequip(inventory.SlotHandMain)
	require.NotNil(t, it)
	assert.Nil(t, c.Equipment.HandMain)
	require.Len(t, c.Inventory, 1)
	assert.Nil(t, c.Unequip(inventory.SlotHandMain), "empty slot is a no-op")
}

func TestEquip_FailureLeavesSheetUnchanged(t *testing.T) {
	c := newHero(t)
	shield := inventory.NewItem("Kite Shield", inventory.CategoryWeapon, inventory.WeaponShield, 1, 4)
	polearm := inventory.NewItem("Glaive", inventory.CategoryWeapon, inventory.WeaponPolearm, 1, 3)
	polearm.TwoHanded = true
	c.AddItem(shield)
	c.AddItem(polearm)

	_, err := c.Equip(shield.ID, inventory.HandOff)
	require.NoError(t, err)

	_, err = c.Equip(polearm.ID, inventory.HandMain)
	assert.ErrorIs(t, err, inventory.ErrHandsFull)
	assert.Len(t, c.Inventory, 1)
	assert.Nil(t, c.Equipment.HandMain)

	_, err = c.Equip("nope", inventory.HandMain)
	assert.ErrorIs(t, err, character.ErrItemNotFound)
}

func TestUnlockNode(t *testing.T) {
	c := newHero(t)
	c.Stats["Vigor"] = character.AttributeData{Value: 4, Skills: c.Stats["Vigor"].Skills}

	require.NoError(t, c.UnlockNode("Vigor", "One-Handed", 2, 1, false))
	assert.Equal(t, 1, c.Stats["Vigor"].Skills["One-Handed"].NodesUnlocked["2"])
	assert.Equal(t, 0, c.Points.SkillPoints)

	err := c.UnlockNode("Vigor", "One-Handed", 1, 0, false)
	assert.ErrorIs(t, err, character.ErrNoSkillPoints)

	require.NoError(t, c.UnlockNode("Vigor", "One-Handed", 1, 0, true), "exempt caller skips the point check")
	assert.Equal(t, 0, c.Points.SkillPoints, "balance floors at zero")

	err = c.UnlockNode("Vigor", "One-Handed", 3, 0, true)
	assert.ErrorIs(t, err, character.ErrAttributeTooLow)

	err = c.UnlockNode("Vigor", "Bow", 1, 0, true)
	assert.ErrorIs(t, err, character.ErrUnknownSkill)

	nodes := c.UnlockedNodes()
	assert.Len(t, nodes, 2)
}

func TestLevelUp_Cap(t *testing.T) {
	c := newHero(t)
	for i := 1; i < ruleset.MaxLevel; i++ {
		require.NoError(t, c.LevelUp())
	}
	assert.Equal(t, 20, c.Status.Level)
	assert.Equal(t, 2+19*2, c.Points.AttributePoints)
	assert.Equal(t, 1+19, c.Points.SkillPoints)
	assert.ErrorIs(t, c.LevelUp(), character.ErrMaxLevel)
	assert.Equal(t, 20, c.Status.Level)
}

func TestSpendAttributes(t *testing.T) {
	c := newHero(t)
	require.NoError(t, c.SpendAttributes(map[string]int{"Vigor": 2, "Social": 2, "Cunning": 0}))
	assert.Equal(t, 2, c.Stats["Vigor"].Value)
	assert.Equal(t, 1, c.Stats["Cunning"].Value, "lowering is ignored")
	assert.Equal(t, 0, c.Points.AttributePoints)

	assert.ErrorIs(t, c.SpendAttributes(map[string]int{"Vigor": 3}), character.ErrNotEnoughAttributePoints)
	assert.Equal(t, 2, c.Stats["Vigor"].Value)
	assert.Error(t, c.SpendAttributes(map[string]int{"Luck": 3}))
}

func TestRemoveItem(t *testing.T) {
	c := newHero(t)
	it := inventory.NewItem("Bread", inventory.CategoryGeneral, inventory.WeaponNone, 3, 0.2)
	c.AddItem(it)
	require.NoError(t, c.RemoveItem(it.ID))
	assert.ErrorIs(t, c.RemoveItem(it.ID), character.ErrItemNotFound)
}

func TestValidate_RejectsBrokenSheets(t *testing.T) {
	c := newHero(t)
	delete(c.Stats, "Social")
	c.Status.Level = 0
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Social")
	assert.Contains(t, err.Error(), "level")
}

func TestProperty_SetVitalsClamps(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := newHero(rt)
		c.Status.HPMax = rapid.IntRange(1, 300).Draw(rt, "hp_max")
		hp := rapid.IntRange(-500, 500).Draw(rt, "hp")
		st := rapid.IntRange(-500, 500).Draw(rt, "stamina")
		c.SetVitals(hp, st)
		assert.GreaterOrEqual(rt, c.Status.HPCurrent, 0)
		assert.LessOrEqual(rt, c.Status.HPCurrent, c.Status.HPMax)
		assert.GreaterOrEqual(rt, c.Status.Stamina, 0)
	})
}

func TestStatus_Set(t *testing.T) {
	var s character.Status
	require.NoError(t, s.Set(character.FieldHPCurrent, 40))
	require.NoError(t, s.Set(character.FieldHPMax, 120))
	require.NoError(t, s.Set(character.FieldStamina, 7))
	assert.Equal(t, character.Status{HPCurrent: 40, HPMax: 120, Stamina: 7}, s)
	assert.Error(t, s.Set("gold", 1))
}

func TestStatus_SetHPMaxClampsCurrent(t *testing.T) {
	s := character.Status{HPCurrent: 110, HPMax: 110}
	require.NoError(t, s.Set(character.FieldHPMax, 100))
	assert.Equal(t, 100, s.HPCurrent)

	require.NoError(t, s.Set(character.FieldHPMax, 150))
	assert.Equal(t, 100, s.HPCurrent, "raising the max leaves current alone")
}
