package gameserver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Ostwick/RPG-Imperium/internal/game/campaign"
	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/inventory"
	"github.com/Ostwick/RPG-Imperium/internal/game/npc"
	"github.com/Ostwick/RPG-Imperium/internal/game/ruleset"
	"github.com/Ostwick/RPG-Imperium/internal/game/stats"
	"github.com/Ostwick/RPG-Imperium/internal/gameserver"
	"github.com/Ostwick/RPG-Imperium/internal/storage/memory"
)

var (
	gm       = gameserver.Identity{ID: "gm-1", Role: gameserver.RoleGM}
	owner    = gameserver.Identity{ID: "user-1", Role: gameserver.RolePlayer}
	stranger = gameserver.Identity{ID: "user-2", Role: gameserver.RolePlayer}
)

// seqSource replays vals in order, wrapping around.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

type fixture struct {
	campaigns  *memory.CampaignRepository
	characters *memory.CharacterRepository
	templates  *memory.TemplateRepository
	calc       *stats.Calculator
	logs       *observer.ObservedLogs
	logger     *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	templates, err := memory.NewTemplateRepository(
		&npc.Template{ID: "wolf", Name: "Wolf", HPMax: 30, Stamina: 50, Speed: 120, Damage: 12, Defense: 2},
		&npc.Template{ID: "rat", Name: "Rat", HPMax: 1, Stamina: 10, Speed: 90, Damage: 1},
	)
	require.NoError(t, err)

	f := &fixture{
		campaigns:  memory.NewCampaignRepository(),
		characters: memory.NewCharacterRepository(),
		templates:  templates,
		calc:       stats.NewCalculator(ruleset.NewCatalog()),
		logs:       logs,
		logger:     zap.New(core),
	}
	require.NoError(t, f.campaigns.Create(context.Background(), campaign.New("camp-1", gm.ID, "Northern March")))
	return f
}

func (f *fixture) combat(src ...int) *gameserver.CombatService {
	if len(src) == 0 {
		src = []int{0, 0, 1, 2, 3}
	}
	return gameserver.NewCombatService(f.campaigns, f.characters, f.templates, f.calc, &seqSource{vals: src}, f.logger)
}

// addCharacter stores a fresh character owned by userID holding the given
// items in its main and off hands.
func (f *fixture) addCharacter(t *testing.T, id, userID, name string, main, off *inventory.Item) *character.Character {
	t.Helper()
	c, err := character.New(id, userID, character.Creation{Name: name})
	require.NoError(t, err)
	c.Equipment.HandMain = main
	c.Equipment.HandOff = off
	require.NoError(t, f.characters.Create(context.Background(), c))
	return c
}

func (f *fixture) campaign(t *testing.T) *campaign.Campaign {
	t.Helper()
	camp, err := f.campaigns.Get(context.Background(), "camp-1")
	require.NoError(t, err)
	return camp
}

func (f *fixture) sheet(t *testing.T, id string) *character.Character {
	t.Helper()
	c, err := f.characters.Get(context.Background(), id)
	require.NoError(t, err)
	return c
}

func sword() *inventory.Item {
	it := inventory.NewItem("Arming Sword", inventory.CategoryWeapon, inventory.WeaponOneHanded, 1, 1.2)
	it.Damage = 15
	return &it
}

func bow() *inventory.Item {
	it := inventory.NewItem("Hunting Bow", inventory.CategoryWeapon, inventory.WeaponBow, 1, 1.0)
	it.Damage = 10
	return &it
}

func arrows(n int) *inventory.Item {
	it := inventory.NewItem("Arrows", inventory.CategoryAmmo, inventory.WeaponNone, n, 0.05)
	return &it
}
