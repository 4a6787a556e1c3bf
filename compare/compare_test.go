package compare

import (
	"math"
	"testing"

	"raidlytics/backend"

	"github.com/stretchr/testify/assert"
)

func abilities(kv ...interface{}) []backend.Ability {
	var out []backend.Ability
	for i := 0; i < len(kv); i += 2 {
		out = append(out, backend.Ability{Name: kv[i].(string), Total: float64(kv[i+1].(int))})
	}
	return out
}

func TestMerge(t *testing.T) {
	t.Parallel()

	rows := Merge(
		abilities("Fireball", 500, "Scorch", 100, "Ignite", 300),
		abilities("Fireball", 700, "Pyroblast", 400, "Scorch", 0),
	)

	assert.Equal(t, []Row{
		{Name: "Fireball", Player: 500, Top: 700},
		{Name: "Pyroblast", Player: 0, Top: 400},
		{Name: "Ignite", Player: 300, Top: 0},
		{Name: "Scorch", Player: 100, Top: 0},
	}, rows)
}

func TestMergeCoversUnion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		player []backend.Ability
		top    []backend.Ability
	}{
		{"empty", nil, nil},
		{"player only", abilities("Fireball", 10, "Scorch", 5), nil},
		{"top only", nil, abilities("Frostbolt", 7)},
		{"disjoint", abilities("Fireball", 10, "Scorch", 5), abilities("Frostbolt", 7, "Ice Lance", 3)},
		{"overlapping", abilities("Fireball", 10, "Scorch", 5), abilities("Scorch", 8, "Pyroblast", 20)},
		{"identical", abilities("Fireball", 10, "Scorch", 5), abilities("Fireball", 12, "Scorch", 4)},
		{"case differs", abilities("fireball", 10), abilities("Fireball", 10)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			playerTotals := make(map[string]float64)
			topTotals := make(map[string]float64)
			union := make(map[string]struct{})
			for _, a := range tt.player {
				playerTotals[a.Name] = a.Total
				union[a.Name] = struct{}{}
			}
			for _, a := range tt.top {
				topTotals[a.Name] = a.Total
				union[a.Name] = struct{}{}
			}

			rows := Merge(tt.player, tt.top)
			assert.Len(t, rows, len(union))

			seen := make(map[string]struct{}, len(rows))
			for i, r := range rows {
				_, dup := seen[r.Name]
				assert.False(t, dup, "duplicate row %q", r.Name)
				seen[r.Name] = struct{}{}

				assert.Equal(t, playerTotals[r.Name], r.Player, r.Name)
				assert.Equal(t, topTotals[r.Name], r.Top, r.Name)

				if i > 0 {
					prev := rows[i-1]
					assert.GreaterOrEqual(t, math.Max(prev.Player, prev.Top), math.Max(r.Player, r.Top))
				}
			}
			for name := range union {
				assert.Contains(t, seen, name)
			}
		})
	}
}

func TestMergeEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Merge(nil, nil))

	rows := Merge(nil, abilities("Fireball", 10))
	assert.Equal(t, []Row{{Name: "Fireball", Top: 10}}, rows)
}

func TestMergeTieBreakAndCase(t *testing.T) {
	t.Parallel()

	rows := Merge(abilities("b", 100, "fireball", 50), abilities("a", 100, "Fireball", 50))

	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"a", "b", "Fireball", "fireball"}, names)
}

func TestMergeDuplicateNameLastWins(t *testing.T) {
	t.Parallel()

	rows := Merge(abilities("Melee", 10, "Melee", 30), nil)
	assert.Equal(t, []Row{{Name: "Melee", Player: 30}}, rows)
}

func TestSplit(t *testing.T) {
	t.Parallel()

	p := Split([]Row{
		{Name: "Fireball", Player: 500, Top: 700},
		{Name: "Pyroblast", Top: 400},
		{Name: "Ignite", Player: 300},
		{Name: "Nothing"},
	})

	assert.Equal(t, []Row{{Name: "Fireball", Player: 500, Top: 700}}, p.Shared)
	assert.Equal(t, []Row{{Name: "Ignite", Player: 300}}, p.PlayerOnly)
	assert.Equal(t, []Row{{Name: "Pyroblast", Top: 400}}, p.TopOnly)
}

func TestAbilityShare(t *testing.T) {
	t.Parallel()

	side := backend.Side{Total: 3000}
	assert.Equal(t, 33.3, AbilityShare(backend.Ability{Total: 1000}, side))
	assert.Equal(t, 0.0, AbilityShare(backend.Ability{Total: 1000}, backend.Side{}))
	assert.Equal(t, 7, Hits(backend.Ability{HitCount: 4, TickCount: 3}))
}

func TestPerformance(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		actual, reference float64
		pct               int
		ok                bool
	}{
		{12000, 14000, 86, true},
		{14000, 14000, 100, true},
		{21000, 14000, 150, true},
		{0, 14000, 0, true},
		{12000, 0, 0, false},
		{12000, -5, 0, false},
	} {
		pct, ok := Performance(tc.actual, tc.reference)
		assert.Equal(t, tc.ok, ok, "%v/%v", tc.actual, tc.reference)
		assert.Equal(t, tc.pct, pct, "%v/%v", tc.actual, tc.reference)
	}

	_, ok := PerformanceOf(100, nil)
	assert.False(t, ok)
}

func TestTierOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TierExcellent, TierOf(150))
	assert.Equal(t, TierExcellent, TierOf(95))
	assert.Equal(t, TierGood, TierOf(94))
	assert.Equal(t, TierGood, TierOf(85))
	assert.Equal(t, TierFair, TierOf(75))
	assert.Equal(t, TierPoor, TierOf(74))

	assert.Equal(t, 100, BarWidth(150))
	assert.Equal(t, 86, BarWidth(86))
	assert.Equal(t, 0, BarWidth(-3))
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1.5K", FormatNumber(1500))
	assert.Equal(t, "2.3M", FormatNumber(2300000))
	assert.Equal(t, "1000.0K", FormatNumber(999999))
	assert.Equal(t, "12", FormatNumber(12.4))
	assert.Equal(t, "0", FormatOptional(nil))

	v := 1250.0
	assert.Equal(t, "1.3K", FormatOptional(&v))
}

func TestFormatClock(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "3:03", FormatClock(183.9))
	assert.Equal(t, "0:00", FormatClock(-1))
}

func TestLabels(t *testing.T) {
	t.Parallel()

	pct := 2340.0
	assert.Equal(t, "Patchwerk ✓ — 183.5s", FightLabel(backend.Fight{Name: "Patchwerk", Kill: true, Duration: 183.5}))
	assert.Equal(t, "Thaddius (23.4%) — 90s", FightLabel(backend.Fight{Name: "Thaddius", BossPercentage: &pct, Duration: 90}))
	assert.Equal(t, "Loatheb — 60s", FightLabel(backend.Fight{Name: "Loatheb", Duration: 60}))
	assert.Equal(t, "Thrall — 12.0K DPS", PlayerLabel(backend.DPSEntry{Name: "Thrall", DPS: 12000}))
}
