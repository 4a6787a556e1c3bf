package report

import (
	"context"
	"io"

	"raidlytics/backend"
	"raidlytics/share"
	"raidlytics/share/parallel"
	"raidlytics/simstore"
	"raidlytics/tablesort"

	"github.com/pkg/errors"
)

var ErrNoExport = errors.New("no sim export for player")

type Backend interface {
	Fights(ctx context.Context, code string) ([]backend.Fight, error)
	DPS(ctx context.Context, code string, fightIDs string) ([]backend.DPSEntry, error)
	Healing(ctx context.Context, code string, fightIDs string) ([]backend.HealingEntry, error)
	Gear(ctx context.Context, code string, fightIDs string) ([]backend.GearRecord, error)
	WowsimsExport(ctx context.Context, code string, fightIDs string) ([]backend.SimExport, error)
}

// Service builds the report detail tabs. A failed fetch comes back as a view
// with StatusFailed together with the error.
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

type FightsView struct {
	Status  share.Status  `json:"status"`
	Options []FightOption `json:"options"`
}

type MeterView struct {
	Status share.Status    `json:"status"`
	Sort   tablesort.State `json:"sort"`
	Rows   []MeterRow      `json:"rows"`
}

type GearView struct {
	Status        share.Status    `json:"status"`
	Sort          tablesort.State `json:"sort"`
	MissingOnly   bool            `json:"missingOnly"`
	Rows          []GearRow       `json:"rows"`
	PlayersTotal  int             `json:"playersTotal"`
	PlayersMissed int             `json:"playersMissed"`
}

type SimView struct {
	Status share.Status `json:"status"`
	Rows   []SimRow     `json:"rows"`
}

func (s *Service) Fights(ctx context.Context, code string) (*FightsView, error) {
	fights, err := s.api.Fights(ctx, code)
	v := &FightsView{
		Status:  share.StatusOf(err, len(fights)),
		Options: FightOptions(fights),
	}
	return v, err
}

// DPS returns the damage meter, ordered by sort or by dps descending when sort is nil.
func (s *Service) DPS(ctx context.Context, code, fightIDs string, sort *tablesort.State) (*MeterView, error) {
	state := DPSDefault
	if sort != nil {
		state = *sort
	}

	rows, err := s.api.DPS(ctx, code, fightIDs)
	v := &MeterView{
		Status: share.StatusOf(err, len(rows)),
		Sort:   state,
	}
	if err != nil {
		return v, err
	}

	tbl, err := NewDPSTable(rows).WithState(state)
	if err != nil {
		return nil, err
	}
	v.Rows = DPSMeter(tbl.Rows())
	return v, nil
}

func (s *Service) Healing(ctx context.Context, code, fightIDs string, sort *tablesort.State) (*MeterView, error) {
	state := HealingDefault
	if sort != nil {
		state = *sort
	}

	rows, err := s.api.Healing(ctx, code, fightIDs)
	v := &MeterView{
		Status: share.StatusOf(err, len(rows)),
		Sort:   state,
	}
	if err != nil {
		return v, err
	}

	tbl, err := NewHealingTable(rows).WithState(state)
	if err != nil {
		return nil, err
	}
	v.Rows = HealingMeter(tbl.Rows())
	return v, nil
}

func (s *Service) gearRows(ctx context.Context, code, fightIDs string) ([]GearRow, error) {
	records, err := s.api.Gear(ctx, code, fightIDs)
	if err != nil {
		return nil, err
	}
	return NewGearRows(records), nil
}

// Gear keeps the backend order unless sort is given.
func (s *Service) Gear(ctx context.Context, code, fightIDs string, sort *tablesort.State, missingOnly bool) (*GearView, error) {
	rows, err := s.gearRows(ctx, code, fightIDs)
	v := &GearView{
		Status:      share.StatusOf(err, len(rows)),
		MissingOnly: missingOnly,
	}
	if err != nil {
		return v, err
	}

	v.PlayersTotal = len(rows)
	v.PlayersMissed = len(FilterMissing(rows))

	if sort != nil {
		rows, err = tablesort.Apply(rows, GearColumns, *sort)
		if err != nil {
			return nil, err
		}
		v.Sort = *sort
	}
	if missingOnly {
		rows = FilterMissing(rows)
	}
	v.Rows = rows
	return v, nil
}

func (s *Service) Audit(ctx context.Context, code, fightIDs string) (string, error) {
	rows, err := s.gearRows(ctx, code, fightIDs)
	if err != nil {
		return "", err
	}
	return Audit(rows), nil
}

func (s *Service) GearXLSX(ctx context.Context, code, fightIDs string, w io.Writer) error {
	rows, err := s.gearRows(ctx, code, fightIDs)
	if err != nil {
		return err
	}
	return WriteGearXLSX(w, rows)
}

func (s *Service) Sim(ctx context.Context, code, fightIDs string) (*SimView, error) {
	var (
		dps     []backend.DPSEntry
		exports []backend.SimExport
		sims    simstore.Values
	)

	p := parallel.New(ctx, 3)
	p.Add(func(ctx context.Context) (err error) {
		dps, err = s.api.DPS(ctx, code, fightIDs)
		return
	})
	p.Add(func(ctx context.Context) (err error) {
		exports, err = s.api.WowsimsExport(ctx, code, fightIDs)
		return
	})
	p.Add(func(ctx context.Context) (err error) {
		sims, err = s.sims.Values(ctx, simstore.ReportKey(code))
		return
	})
	err := p.Wait()
	if err != nil {
		return &SimView{Status: share.StatusFailed}, err
	}

	tbl, err := NewDPSTable(dps).WithState(DPSDefault)
	if err != nil {
		return &SimView{Status: share.StatusFailed}, err
	}
	return &SimView{
		Status: share.StatusOf(nil, len(dps)),
		Rows:   SimRows(tbl.Rows(), exports, sims),
	}, nil
}

// SetSim stores the sim dps a user entered for one player of the report.
func (s *Service) SetSim(ctx context.Context, code, player, input string) (simstore.Values, error) {
	return s.sims.Set(ctx, simstore.ReportKey(code), player, input)
}

func (s *Service) Export(ctx context.Context, code, fightIDs, player string) ([]byte, error) {
	exports, err := s.api.WowsimsExport(ctx, code, fightIDs)
	if err != nil {
		return nil, err
	}
	for _, e := range exports {
		if e.Name == player {
			return ExportJSON(e)
		}
	}
	return nil, errors.Wrap(ErrNoExport, player)
}
