package guild

import (
	"context"
	"testing"

	"raidlytics/backend"
	"raidlytics/share"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByZone(t *testing.T) {
	t.Parallel()

	zones := GroupByZone([]backend.GuildLog{
		{Code: "a", Zone: "Naxxramas", StartTime: 1000},
		{Code: "b", Zone: "Ulduar", StartTime: 3000},
		{Code: "c", Zone: "Naxxramas", StartTime: 2000},
		{Code: "d", Zone: "Obsidian Sanctum"},
	})

	require.Len(t, zones, 3)
	assert.Equal(t, "Ulduar", zones[0].Name)
	assert.Equal(t, "Naxxramas", zones[1].Name)
	assert.Equal(t, int64(2000), zones[1].Latest)
	assert.Equal(t, "a", zones[1].Logs[0].Code)
	assert.Equal(t, "c", zones[1].Logs[1].Code)
	assert.Equal(t, "Obsidian Sanctum", zones[2].Name)
	assert.Empty(t, zones[2].Logs[0].Date)

	assert.Empty(t, GroupByZone(nil))
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jan 2, 2025", FormatDate(1735819200000))
	assert.Empty(t, FormatDate(0))
}

func TestCounts(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []ZoneCount{
		{Zone: "Naxxramas", Count: 4},
		{Zone: "obsidian Sanctum", Count: 1},
		{Zone: "Ulduar", Count: 2},
	}, Counts(map[string]int{"Ulduar": 2, "Naxxramas": 4, "obsidian Sanctum": 1}))
}

type fakeBackend struct {
	err error
}

func (f *fakeBackend) GuildLogs(ctx context.Context, guild, server string) ([]backend.GuildLog, error) {
	return []backend.GuildLog{{Code: "a", Zone: "Naxxramas"}}, f.err
}

func (f *fakeBackend) ZoneSummary(ctx context.Context, guild, server string) (map[string]int, error) {
	return map[string]int{}, f.err
}

func (f *fakeBackend) RaidingPopulation(ctx context.Context, server string) (map[string]int, error) {
	return map[string]int{"Naxxramas": 12}, f.err
}

func TestService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := &fakeBackend{}
	svc := NewService(api)

	_, err := svc.Summary(ctx, "", "living-flame")
	assert.ErrorIs(t, err, share.ErrMissingInput)

	sum, err := svc.Summary(ctx, "Guild", "living-flame")
	require.NoError(t, err)
	assert.Equal(t, share.StatusReady, sum.Status)

	zs, err := svc.ZoneSummary(ctx, "Guild", "living-flame")
	require.NoError(t, err)
	assert.Equal(t, share.StatusEmpty, zs.Status)

	pop, err := svc.RaidingPopulation(ctx, "living-flame")
	require.NoError(t, err)
	assert.Equal(t, []ZoneCount{{Zone: "Naxxramas", Count: 12}}, pop.Zones)

	api.err = errors.New("down")
	pop, err = svc.RaidingPopulation(ctx, "living-flame")
	assert.Error(t, err)
	assert.Equal(t, share.StatusFailed, pop.Status)
}
