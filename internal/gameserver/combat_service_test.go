package gameserver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/Ostwick/RPG-Imperium/internal/game/campaign"
	"github.com/Ostwick/RPG-Imperium/internal/game/combat"
	"github.com/Ostwick/RPG-Imperium/internal/gameserver"
	mockgameserver "github.com/Ostwick/RPG-Imperium/internal/gameserver/mock"
	"github.com/Ostwick/RPG-Imperium/internal/storage"
)

func attack(actor, target int) gameserver.ActionRequest {
	return gameserver.ActionRequest{ActorIdx: actor, TargetIdx: target, Action: combat.Action{Kind: combat.ActionAttack}}
}

func TestStartCombat_BuildsRoster(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addCharacter(t, "char-1", owner.ID, "Aldric", sword(), nil)
	svc := f.combat(0, 0, 1)

	require.NoError(t, svc.StartCombat(ctx, gm, "camp-1", []string{"char-1"}, []string{"wolf", "wolf"}))

	camp := f.campaign(t)
	assert.True(t, camp.CombatActive)
	assert.Empty(t, camp.Log)
	require.Len(t, camp.Combatants, 3)

	p := camp.Combatants[0]
	assert.Equal(t, "char-1", p.ID)
	assert.Equal(t, combat.TypePlayer, p.Type)
	assert.Equal(t, 150, p.StaminaMax)
	assert.Equal(t, 100, p.Speed)
	assert.Equal(t, 15, p.Damage)

	assert.Equal(t, "wolf_1000", camp.Combatants[1].ID)
	assert.Equal(t, "wolf_1001", camp.Combatants[2].ID)
	for _, c := range camp.Combatants {
		assert.Zero(t, c.ActionPoints)
	}
	assert.Equal(t, 1, f.logs.FilterMessage("combat started").Len())
}

func TestStartCombat_AfterSheetLowersHPMax(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.addCharacter(t, "char-1", owner.ID, "Aldric", sword(), nil)
	c.Status.HPCurrent, c.Status.HPMax = 110, 110
	require.NoError(t, f.characters.Save(ctx, c))

	sheet, err := f.characterService().Sheet(ctx, owner, "char-1")
	require.NoError(t, err)
	assert.Equal(t, 100, sheet.Character.Status.HPMax)
	assert.Equal(t, 100, sheet.Character.Status.HPCurrent)

	stored := f.sheet(t, "char-1")
	assert.Equal(t, 100, stored.Status.HPCurrent)

	require.NoError(t, f.combat(0, 0, 1).StartCombat(ctx, gm, "camp-1", []string{"char-1"}, []string{"wolf"}))
	p := f.campaign(t).Combatants[0]
	assert.Equal(t, 100, p.HPCurrent)
	assert.Equal(t, 100, p.HPMax)
}

func TestStartCombat_RequiresCampaignGM(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.combat()

	otherGM := gameserver.Identity{ID: "gm-2", Role: gameserver.RoleGM}
	assert.ErrorIs(t, svc.StartCombat(ctx, otherGM, "camp-1", nil, []string{"wolf"}), gameserver.ErrForbidden)
	assert.ErrorIs(t, svc.StartCombat(ctx, owner, "camp-1", nil, []string{"wolf"}), gameserver.ErrForbidden)
	assert.False(t, f.campaign(t).CombatActive)

	err := svc.StartCombat(ctx, gm, "camp-404", nil, nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStartCombat_InvalidReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addCharacter(t, "char-1", owner.ID, "Aldric", nil, nil)
	svc := f.combat()

	tests := []struct {
		name    string
		players []string
		enemies []string
	}{
		{"missing character", []string{"char-1", "char-9"}, nil},
		{"missing template", []string{"char-1"}, []string{"wolf", "dragon"}},
		{"repeated character", []string{"char-1", "char-1"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.StartCombat(ctx, gm, "camp-1", tt.players, tt.enemies)
			assert.ErrorIs(t, err, gameserver.ErrInvalidReference)
			assert.False(t, f.campaign(t).CombatActive)
		})
	}
}

func TestStartCombat_LoadFailureIsNotAReferenceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	characters := mockgameserver.NewMockCharacterStore(ctrl)
	campaigns := mockgameserver.NewMockCampaignStore(ctrl)
	templates := mockgameserver.NewMockTemplateStore(ctrl)
	f := newFixture(t)

	campaigns.EXPECT().Get(gomock.Any(), "camp-1").Return(campaign.New("camp-1", gm.ID, "Northern March"), nil)
	characters.EXPECT().Get(gomock.Any(), "char-1").Return(nil, errors.New("connection reset"))

	svc := gameserver.NewCombatService(campaigns, characters, templates, f.calc, &seqSource{vals: []int{0}}, zap.NewNop())
	err := svc.StartCombat(context.Background(), gm, "camp-1", []string{"char-1"}, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, gameserver.ErrInvalidReference)
	assert.ErrorContains(t, err, "connection reset")
}

func TestAdvanceClock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addCharacter(t, "char-1", owner.ID, "Aldric", nil, nil)
	svc := f.combat()

	_, err := svc.AdvanceClock(ctx, gm, "camp-1")
	assert.ErrorIs(t, err, gameserver.ErrCombatNotActive)

	require.NoError(t, svc.StartCombat(ctx, gm, "camp-1", []string{"char-1"}, []string{"wolf"}))

	res, err := svc.AdvanceClock(ctx, gm, "camp-1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Ticks)
	require.NotNil(t, res.Ready)
	assert.Equal(t, "Wolf", res.Ready.Name)

	camp := f.campaign(t)
	assert.Equal(t, 100.0, camp.Combatants[0].ActionPoints)
	assert.Equal(t, 120.0, camp.Combatants[1].ActionPoints)

	again, err := svc.AdvanceClock(ctx, gm, "camp-1")
	require.NoError(t, err)
	assert.Zero(t, again.Ticks)
	assert.Equal(t, "Wolf", again.Ready.Name)

	_, err = svc.AdvanceClock(ctx, owner, "camp-1")
	assert.ErrorIs(t, err, gameserver.ErrForbidden)
}

func TestResolveAction_AttacksWriteThroughToSheets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addCharacter(t, "char-1", owner.ID, "Aldric", sword(), nil)
	svc := f.combat()
	require.NoError(t, svc.StartCombat(ctx, gm, "camp-1", []string{"char-1"}, []string{"wolf"}))

	res, err := svc.ResolveAction(ctx, gm, "camp-1", attack(1, 0))
	require.NoError(t, err)
	assert.Equal(t, 12, res.Damage)
	assert.Equal(t, 88, f.sheet(t, "char-1").Status.HPCurrent)

	res, err = svc.ResolveAction(ctx, gm, "camp-1", attack(0, 1))
	require.NoError(t, err)
	assert.Equal(t, 13, res.Damage)

	sheet := f.sheet(t, "char-1")
	assert.Equal(t, 90, sheet.Status.Stamina)

	camp := f.campaign(t)
	assert.Equal(t, 17, camp.Combatants[1].HPCurrent)
	assert.Equal(t, 40, camp.Combatants[1].StaminaCurrent)
	assert.Equal(t, combat.Log{"Aldric hits Wolf for 13 damage.", "Wolf hits Aldric for 12 damage."}, camp.Log)
}

func TestResolveAction_RangedAmmo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addCharacter(t, "char-1", owner.ID, "Brena", bow(), arrows(1))
	svc := f.combat()
	require.NoError(t, svc.StartCombat(ctx, gm, "camp-1", []string{"char-1"}, []string{"wolf"}))

	_, err := svc.ResolveAction(ctx, gm, "camp-1", attack(0, 1))
	require.NoError(t, err)
	assert.Zero(t, f.sheet(t, "char-1").Equipment.HandOff.Quantity)
	before := f.campaign(t)

	_, err = svc.ResolveAction(ctx, gm, "camp-1", attack(0, 1))
	assert.ErrorIs(t, err, combat.ErrOutOfAmmo)

	after := f.campaign(t)
	assert.Equal(t, before.Combatants, after.Combatants)
	assert.Equal(t, before.Log, after.Log)
	// Stamina is charged before the ammunition check.
	assert.Equal(t, 80, f.sheet(t, "char-1").Status.Stamina)
}

func TestResolveAction_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addCharacter(t, "char-1", owner.ID, "Aldric", sword(), nil)
	svc := f.combat()
	require.NoError(t, svc.StartCombat(ctx, gm, "camp-1", []string{"char-1"}, []string{"rat"}))

	_, err := svc.ResolveAction(ctx, gm, "camp-1", attack(0, 5))
	assert.ErrorIs(t, err, gameserver.ErrInvalidReference)
	_, err = svc.ResolveAction(ctx, gm, "camp-1", attack(-1, 0))
	assert.ErrorIs(t, err, gameserver.ErrInvalidReference)
	_, err = svc.ResolveAction(ctx, owner, "camp-1", attack(0, 1))
	assert.ErrorIs(t, err, gameserver.ErrForbidden)

	res, err := svc.ResolveAction(ctx, gm, "camp-1", attack(0, 1))
	require.NoError(t, err)
	assert.True(t, res.Downed)
	assert.Equal(t, "Aldric hits Rat for 15 damage. Rat is DOWN!", res.Message)

	_, err = svc.ResolveAction(ctx, gm, "camp-1", attack(1, 0))
	assert.ErrorIs(t, err, combat.ErrActorDown)

	wait := gameserver.ActionRequest{ActorIdx: 0, TargetIdx: 0, Action: combat.Action{Kind: "dance"}}
	_, err = svc.ResolveAction(ctx, gm, "camp-1", wait)
	assert.ErrorIs(t, err, combat.ErrUnknownAction)
}

func TestResolveAction_SaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	campaigns := mockgameserver.NewMockCampaignStore(ctrl)
	f := newFixture(t)

	camp := campaign.New("camp-1", gm.ID, "Northern March")
	camp.StartEncounter([]*combat.Combatant{
		{ID: "wolf_1000", Name: "Wolf", Type: combat.TypeEnemy, HPCurrent: 30, HPMax: 30, StaminaCurrent: 50, Speed: 120},
	})
	campaigns.EXPECT().Get(gomock.Any(), "camp-1").Return(camp, nil)
	campaigns.EXPECT().SaveEncounter(gomock.Any(), camp).Return(errors.New("disk full"))

	svc := gameserver.NewCombatService(campaigns, f.characters, f.templates, f.calc, &seqSource{vals: []int{0}}, zap.NewNop())
	req := gameserver.ActionRequest{ActorIdx: 0, TargetIdx: 0, Action: combat.Action{Kind: combat.ActionWait}}
	_, err := svc.ResolveAction(context.Background(), gm, "camp-1", req)
	assert.ErrorContains(t, err, "disk full")
}

func TestEndCombat(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.combat()
	require.NoError(t, svc.StartCombat(ctx, gm, "camp-1", nil, []string{"wolf"}))

	assert.ErrorIs(t, svc.EndCombat(ctx, owner, "camp-1"), gameserver.ErrForbidden)
	require.NoError(t, svc.EndCombat(ctx, gm, "camp-1"))

	camp := f.campaign(t)
	assert.False(t, camp.CombatActive)
	assert.Empty(t, camp.Combatants)
	assert.Empty(t, camp.Log)

	require.NoError(t, svc.EndCombat(ctx, gm, "camp-1"))
}

func TestState_Visibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.combat()

	_, err := svc.State(ctx, gm, "camp-1")
	require.NoError(t, err)
	_, err = svc.State(ctx, owner, "camp-1")
	assert.ErrorIs(t, err, gameserver.ErrForbidden)

	camp := f.campaign(t)
	require.NoError(t, camp.Join(owner.ID, "char-1", "Aldric"))
	require.NoError(t, f.campaigns.Save(ctx, camp))

	got, err := svc.State(ctx, owner, "camp-1")
	require.NoError(t, err)
	assert.Equal(t, "Northern March", got.Name)
}
