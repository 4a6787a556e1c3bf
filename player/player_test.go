package player

import (
	"context"
	"testing"

	"raidlytics/backend"
	"raidlytics/compare"
	"raidlytics/share"
	"raidlytics/simstore"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLogs() []backend.PlayerLog {
	return []backend.PlayerLog{
		{
			ReportCode: "abc123",
			Zone:       "Naxxramas",
			Title:      "Naxx night",
			OverallDPS: 11000,
			Bosses: []backend.PlayerBoss{
				{FightID: 5, Boss: "Patchwerk", Duration: 183, Kill: true, DPS: 12000},
				{FightID: 6, Boss: "Grobbulus", Duration: 95, Kill: false, DPS: 15000},
				{FightID: 7, Boss: "Gluth", Duration: 120, Kill: true, DPS: 0},
			},
		},
		{
			ReportCode: "def456",
			Zone:       "Naxxramas",
			Bosses: []backend.PlayerBoss{
				{FightID: 2, Boss: "Patchwerk", Duration: 170, Kill: true, DPS: 13001},
				{FightID: 3, Boss: "Thaddius", Duration: 200, Kill: true, DPS: 13001},
			},
		},
	}
}

func TestAggregates(t *testing.T) {
	t.Parallel()

	fights := Flatten(sampleLogs())
	require.Len(t, fights, 5)
	assert.Equal(t, "def456", fights[3].ReportCode)

	agg := Aggregates(fights)
	assert.Equal(t, 3, agg.Kills)
	assert.Equal(t, 12667, agg.AvgDPS)
	assert.Equal(t, 13001.0, agg.BestDPS)
	require.NotNil(t, agg.BestFight)
	assert.Equal(t, 2, agg.BestFight.FightID)

	empty := Aggregates(nil)
	assert.Zero(t, empty.AvgDPS)
	assert.Nil(t, empty.BestFight)
}

func TestLogs(t *testing.T) {
	t.Parallel()

	logs := Logs(sampleLogs(), simstore.Values{"abc123-5": 14000})
	require.Len(t, logs, 2)

	b := logs[0].Bosses[0]
	assert.Equal(t, "abc123-5", b.SimKey)
	assert.Equal(t, "Kill", b.Result)
	assert.Equal(t, "3:03", b.Clock)
	assert.True(t, b.HasPerformance)
	assert.Equal(t, 86, b.Performance)
	assert.Equal(t, compare.TierGood, b.Tier)

	assert.Equal(t, "Wipe", logs[0].Bosses[1].Result)
	assert.False(t, logs[0].Bosses[1].HasPerformance)
	assert.Nil(t, logs[0].Bosses[1].SimDPS)
}

func TestSheet(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewSheet(nil))

	s := NewSheet(&backend.PlayerExport{
		GearDisplay: []backend.GearDisplay{
			{Slot: 0, Name: "Helm", Quality: 4},
			{Slot: 15, Name: "Sword", Quality: 5},
		},
		AvgIlvl: 78,
	})

	require.Len(t, s.Left, 8)
	require.Len(t, s.Right, 8)
	require.Len(t, s.Bottom, 3)

	assert.Equal(t, "Head", s.Left[0].Label)
	assert.Equal(t, QualityEpic, s.Left[0].Quality)
	assert.Equal(t, "Back", s.Left[3].Label)
	assert.Nil(t, s.Left[1].Item)
	assert.Equal(t, "Hands", s.Right[0].Label)
	assert.Equal(t, QualityLegendary, s.Bottom[0].Quality)
	assert.Equal(t, 78.0, s.AvgIlvl)

	assert.Equal(t, QualityRare, QualityOf(3))
	assert.Equal(t, QualityUncommon, QualityOf(2))
	assert.Equal(t, QualityCommon, QualityOf(0))
}

type fakeBackend struct {
	sum *backend.PlayerSummary
}

func (f *fakeBackend) PlayerSummary(ctx context.Context, guild, server, player string) (*backend.PlayerSummary, error) {
	return f.sum, nil
}

func TestService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := &fakeBackend{sum: &backend.PlayerSummary{
		Player: "Thrall",
		Logs:   sampleLogs(),
		Export: &backend.PlayerExport{
			SimExport: backend.SimExport{Name: "Thrall", ClassName: "ClassShaman", Gear: jsoniter.RawMessage(`{"items":[]}`)},
		},
	}}
	svc := NewService(api, simstore.New(simstore.NewMemory()))

	_, err := svc.Lookup(ctx, "", "server", "Thrall")
	assert.Error(t, err)

	_, err = svc.SetSim(ctx, "abc123", 5, "14000")
	require.NoError(t, err)

	v, err := svc.Lookup(ctx, "Guild", "server", "Thrall")
	require.NoError(t, err)
	assert.Equal(t, share.StatusReady, v.Status)
	assert.Equal(t, 86, v.Logs[0].Bosses[0].Performance)
	assert.NotNil(t, v.Sheet)

	b, err := svc.Export(ctx, "Guild", "server", "Thrall")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Thrall","race":"Human","class":"ClassShaman","level":80,"gear":{"items":[]}}`, string(b))

	api.sum = &backend.PlayerSummary{Player: "Nobody"}
	v, err = svc.Lookup(ctx, "Guild", "server", "Nobody")
	require.NoError(t, err)
	assert.Equal(t, share.StatusEmpty, v.Status)

	_, err = svc.Export(ctx, "Guild", "server", "Nobody")
	assert.ErrorIs(t, err, ErrNoExport)
}
