package player

import (
	"context"

	"raidlytics/backend"
	"raidlytics/report"
	"raidlytics/share"
	"raidlytics/simstore"

	"github.com/pkg/errors"
)

var ErrNoExport = errors.New("player has no sim export")

type Backend interface {
	PlayerSummary(ctx context.Context, guild, server, player string) (*backend.PlayerSummary, error)
}

type View struct {
	Status      share.Status `json:"status"`
	Player      string       `json:"player"`
	PlayerClass string       `json:"playerClass"`
	Spec        string       `json:"spec"`
	Aggregate   Aggregate    `json:"aggregate"`
	Logs        []LogView    `json:"logs"`
	Sheet       *Sheet       `json:"sheet"`
}

type Service struct {
	api  Backend
	sims *simstore.Store
}

func NewService(api Backend, sims *simstore.Store) *Service {
	return &Service{
		api:  api,
		sims: sims,
	}
}

func (s *Service) summary(ctx context.Context, guild, server, name string) (*backend.PlayerSummary, error) {
	if guild == "" || server == "" || name == "" {
		return nil, errors.Wrap(share.ErrMissingInput, "guild, server and player are required")
	}
	return s.api.PlayerSummary(ctx, guild, server, name)
}

func (s *Service) Lookup(ctx context.Context, guild, server, name string) (*View, error) {
	sum, err := s.summary(ctx, guild, server, name)
	if err != nil {
		return &View{Status: share.StatusFailed}, err
	}

	sims, err := s.sims.Values(ctx, simstore.GlobalKey)
	if err != nil {
		return &View{Status: share.StatusFailed}, err
	}

	return &View{
		Status:      share.StatusOf(nil, len(sum.Logs)),
		Player:      sum.Player,
		PlayerClass: sum.PlayerClass,
		Spec:        sum.Spec,
		Aggregate:   Aggregates(Flatten(sum.Logs)),
		Logs:        Logs(sum.Logs, sims),
		Sheet:       NewSheet(sum.Export),
	}, nil
}

// SetSim stores the sim dps entered for one boss fight.
func (s *Service) SetSim(ctx context.Context, reportCode string, fightID int, input string) (simstore.Values, error) {
	return s.sims.Set(ctx, simstore.GlobalKey, simstore.FightKey(reportCode, fightID), input)
}

func (s *Service) Export(ctx context.Context, guild, server, name string) ([]byte, error) {
	sum, err := s.summary(ctx, guild, server, name)
	if err != nil {
		return nil, err
	}
	if sum.Export == nil {
		return nil, errors.Wrap(ErrNoExport, name)
	}
	return report.ExportJSON(sum.Export.SimExport)
}
