package guild

import (
	"context"
	"sort"
	"time"

	"raidlytics/backend"
	"raidlytics/share"
	"raidlytics/tablesort"

	"github.com/pkg/errors"
)

type Log struct {
	backend.GuildLog
	Date string `json:"date"`
}

type Zone struct {
	Name   string `json:"name"`
	Latest int64  `json:"latest"`
	Logs   []Log  `json:"logs"`
}

// FormatDate renders a millisecond timestamp as "Jan 2, 2006". Zero is blank.
func FormatDate(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format("Jan 2, 2006")
}

// GroupByZone buckets logs by zone, keeping input order inside a zone.
// Zones with the most recent log come first.
func GroupByZone(logs []backend.GuildLog) []Zone {
	idx := make(map[string]int)
	var zones []Zone

	for _, l := range logs {
		i, ok := idx[l.Zone]
		if !ok {
			i = len(zones)
			idx[l.Zone] = i
			zones = append(zones, Zone{Name: l.Zone})
		}

		z := &zones[i]
		z.Logs = append(z.Logs, Log{GuildLog: l, Date: FormatDate(l.StartTime)})
		if l.StartTime > z.Latest {
			z.Latest = l.StartTime
		}
	}

	sort.SliceStable(zones, func(i, j int) bool {
		return zones[i].Latest > zones[j].Latest
	})
	return zones
}

type ZoneCount struct {
	Zone  string `json:"zone"`
	Count int    `json:"count"`
}

var zoneCountName = tablesort.Text("zone", func(z ZoneCount) string { return z.Zone })

// Counts flattens a zone to report-count map, ordered by zone name.
func Counts(m map[string]int) []ZoneCount {
	out := make([]ZoneCount, 0, len(m))
	for zone, n := range m {
		out = append(out, ZoneCount{Zone: zone, Count: n})
	}
	// map order is random, pin it before the collated sort
	sort.Slice(out, func(i, j int) bool { return out[i].Zone < out[j].Zone })
	return tablesort.SortBy(out, zoneCountName, tablesort.Asc)
}

//////////////////////////////////////////////////

type Backend interface {
	GuildLogs(ctx context.Context, guild, server string) ([]backend.GuildLog, error)
	ZoneSummary(ctx context.Context, guild, server string) (map[string]int, error)
	RaidingPopulation(ctx context.Context, server string) (map[string]int, error)
}

type SummaryView struct {
	Status share.Status `json:"status"`
	Zones  []Zone       `json:"zones"`
}

type CountsView struct {
	Status share.Status `json:"status"`
	Zones  []ZoneCount  `json:"zones"`
}

type Service struct {
	api Backend
}

func NewService(api Backend) *Service {
	return &Service{api: api}
}

func (s *Service) Summary(ctx context.Context, guild, server string) (*SummaryView, error) {
	if guild == "" || server == "" {
		return &SummaryView{Status: share.StatusIdle}, errors.Wrap(share.ErrMissingInput, "guild and server are required")
	}

	logs, err := s.api.GuildLogs(ctx, guild, server)
	return &SummaryView{
		Status: share.StatusOf(err, len(logs)),
		Zones:  GroupByZone(logs),
	}, err
}

func (s *Service) ZoneSummary(ctx context.Context, guild, server string) (*CountsView, error) {
	if guild == "" || server == "" {
		return &CountsView{Status: share.StatusIdle}, errors.Wrap(share.ErrMissingInput, "guild and server are required")
	}

	m, err := s.api.ZoneSummary(ctx, guild, server)
	return &CountsView{
		Status: share.StatusOf(err, len(m)),
		Zones:  Counts(m),
	}, err
}

func (s *Service) RaidingPopulation(ctx context.Context, server string) (*CountsView, error) {
	if server == "" {
		return &CountsView{Status: share.StatusIdle}, errors.Wrap(share.ErrMissingInput, "server is required")
	}

	m, err := s.api.RaidingPopulation(ctx, server)
	return &CountsView{
		Status: share.StatusOf(err, len(m)),
		Zones:  Counts(m),
	}, err
}
