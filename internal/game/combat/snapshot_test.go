package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ostwick/RPG-Imperium/internal/game/character"
	"github.com/Ostwick/RPG-Imperium/internal/game/combat"
	"github.com/Ostwick/RPG-Imperium/internal/game/npc"
	"github.com/Ostwick/RPG-Imperium/internal/game/stats"
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

func TestFromCharacter(t *testing.T) {
	c, err := character.New("char-1", "user-1", character.Creation{Name: "Aldric"})
	require.NoError(t, err)
	c.Status.HPCurrent = 70
	c.Status.Stamina = 40

	d := stats.Derived{Attack: 18, Defense: 7, CurrentSpeed: 80, CritBonus: 65}
	got := combat.FromCharacter(c, d)

	assert.Equal(t, &combat.Combatant{
		ID:             "char-1",
		Name:           "Aldric",
		Type:           combat.TypePlayer,
		HPCurrent:      70,
		HPMax:          100,
		StaminaCurrent: 40,
		StaminaMax:     150,
		Speed:          80,
		Damage:         18,
		Defense:        7,
		CritBonus:      65,
	}, got)
}

func TestFromCharacter_ClampsHP(t *testing.T) {
	c, err := character.New("char-1", "user-1", character.Creation{Name: "Aldric"})
	require.NoError(t, err)

	c.Status.HPCurrent, c.Status.HPMax = 110, 100
	assert.Equal(t, 100, combat.FromCharacter(c, stats.Derived{}).HPCurrent)

	c.Status.HPCurrent = -5
	assert.Equal(t, 0, combat.FromCharacter(c, stats.Derived{}).HPCurrent)
}

func TestFromTemplate(t *testing.T) {
	tmpl := &npc.Template{ID: "wolf", Name: "Wolf", HPMax: 30, Stamina: 60, Speed: 120, Damage: 8, Defense: 1, CritBonus: 5}
	got := combat.FromTemplate(tmpl, "wolf_1234")

	assert.Equal(t, "wolf_1234", got.ID)
	assert.Equal(t, combat.TypeEnemy, got.Type)
	assert.Equal(t, 30, got.HPCurrent)
	assert.Equal(t, 30, got.HPMax)
	assert.Equal(t, 60, got.StaminaCurrent)
	assert.Equal(t, 120, got.Speed)
	assert.Zero(t, got.ActionPoints)
}

func TestEnemyIDs_FourDigitSuffix(t *testing.T) {
	ids := combat.NewEnemyIDs(&seqSource{vals: []int{0, 8999}})

	first, err := ids.Next("bandit")
	require.NoError(t, err)
	assert.Equal(t, "bandit_1000", first)

	second, err := ids.Next("bandit")
	require.NoError(t, err)
	assert.Equal(t, "bandit_9999", second)
}

func TestEnemyIDs_RedrawsCollision(t *testing.T) {
	ids := combat.NewEnemyIDs(&seqSource{vals: []int{234, 234, 234, 567}}, "wolf_1234")

	got, err := ids.Next("wolf")
	require.NoError(t, err)
	assert.Equal(t, "wolf_1567", got)

	other, err := ids.Next("bear")
	require.NoError(t, err)
	assert.Equal(t, "bear_1234", other)
}

func TestEnemyIDs_Exhausted(t *testing.T) {
	ids := combat.NewEnemyIDs(&seqSource{vals: []int{5}})
	_, err := ids.Next("rat")
	require.NoError(t, err)

	_, err = ids.Next("rat")
	assert.ErrorContains(t, err, "no free combatant id")
}
