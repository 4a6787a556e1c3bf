package compare

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"raidlytics/backend"
	"raidlytics/share"
	"raidlytics/share/semaphore"

	"github.com/pkg/errors"
)

const (
	msgFightsFailed  = "Failed to fetch fights. Check the report code."
	msgCompareFailed = "Failed to fetch comparison data."
)

var (
	// ErrBusy is returned when the same command is already in flight.
	ErrBusy = errors.New("request already in flight")
	// ErrIncomplete is returned when a command's inputs are not selected yet. No request is made.
	ErrIncomplete = errors.New("selection incomplete")
	// ErrStale is returned when the selection changed while the request was in flight.
	// The response is dropped and the command's status goes back to idle.
	ErrStale = errors.New("selection changed")
)

type Backend interface {
	Fights(ctx context.Context, code string) ([]backend.Fight, error)
	DPS(ctx context.Context, code string, fightIDs string) ([]backend.DPSEntry, error)
	Compare(ctx context.Context, code string, q backend.CompareQuery) (*backend.ComparisonResult, error)
}

// Comparison is a finished comparison ready to render.
type Comparison struct {
	backend.ComparisonResult
	Metric       backend.Metric `json:"metric"`
	Rows         []Row          `json:"rows"`
	Partition    Partition      `json:"partition"`
	PercentOfTop int            `json:"percentOfTop"`
	HasPercent   bool           `json:"hasPercent"`
	Tier         Tier           `json:"tier"`
	BarWidth     int            `json:"barWidth"`
}

func NewComparison(res backend.ComparisonResult, metric backend.Metric) *Comparison {
	rows := Merge(res.Player.Abilities, res.Top.Abilities)

	c := &Comparison{
		ComparisonResult: res,
		Metric:           metric,
		Rows:             rows,
		Partition:        Split(rows),
	}

	c.PercentOfTop, c.HasPercent = Performance(res.Player.Throughput, res.Top.Throughput)
	if c.HasPercent {
		c.Tier = TierOf(c.PercentOfTop)
		c.BarWidth = BarWidth(c.PercentOfTop)
	}

	return c
}

type State struct {
	ReportCode     string             `json:"reportCode"`
	Fights         []backend.Fight    `json:"fights"`
	FightsStatus   share.Status       `json:"fightsStatus"`
	SelectedFight  string             `json:"selectedFight"`
	Players        []backend.DPSEntry `json:"players"`
	PlayersStatus  share.Status       `json:"playersStatus"`
	SelectedPlayer string             `json:"selectedPlayer"`
	Metric         backend.Metric     `json:"metric"`
	Result         *Comparison        `json:"result"`
	CompareStatus  share.Status       `json:"compareStatus"`
	Error          string             `json:"error"`
}

// View drives the compare page: load fights, pick a fight and a player, compare.
// Commands may be called from several goroutines; each one runs at most once at a time.
type View struct {
	api Backend
	log share.Logger

	lock  sync.Mutex
	state State

	semaFights  *semaphore.Semaphore
	semaPlayers *semaphore.Semaphore
	semaCompare *semaphore.Semaphore
}

func NewView(api Backend, log share.Logger) *View {
	return &View{
		api: api,
		log: log,
		state: State{
			Metric:        backend.MetricDPS,
			FightsStatus:  share.StatusIdle,
			PlayersStatus: share.StatusIdle,
			CompareStatus: share.StatusIdle,
		},
		semaFights:  semaphore.New(1),
		semaPlayers: semaphore.New(1),
		semaCompare: semaphore.New(1),
	}
}

// State returns a copy of the current state.
func (v *View) State() State {
	v.lock.Lock()
	defer v.lock.Unlock()

	s := v.state
	s.Fights = append([]backend.Fight(nil), s.Fights...)
	s.Players = append([]backend.DPSEntry(nil), s.Players...)
	return s
}

func (v *View) SelectPlayer(name string) {
	v.lock.Lock()
	v.state.SelectedPlayer = name
	v.lock.Unlock()
}

func (v *View) SetMetric(m backend.Metric) error {
	if !m.Valid() {
		return errors.Errorf("unknown metric %q", m)
	}

	v.lock.Lock()
	v.state.Metric = m
	v.lock.Unlock()
	return nil
}

// LoadFights switches the view to the report and fetches its boss fights.
// While a load is in flight a second one returns ErrBusy and leaves the state as it was.
func (v *View) LoadFights(ctx context.Context, code string) error {
	if code == "" {
		return ErrIncomplete
	}

	if !v.semaFights.TryAcquire() {
		return ErrBusy
	}
	defer v.semaFights.Release()

	v.lock.Lock()
	v.state.ReportCode = code
	v.state.Fights = nil
	v.state.FightsStatus = share.StatusLoading
	v.state.SelectedFight = ""
	v.state.Players = nil
	v.state.PlayersStatus = share.StatusIdle
	v.state.SelectedPlayer = ""
	v.state.Result = nil
	v.state.CompareStatus = share.StatusIdle
	v.state.Error = ""
	v.lock.Unlock()

	fights, err := v.api.Fights(ctx, code)

	bossFights := make([]backend.Fight, 0, len(fights))
	for _, f := range fights {
		if f.IsBoss() {
			bossFights = append(bossFights, f)
		}
	}

	v.lock.Lock()
	defer v.lock.Unlock()

	v.state.FightsStatus = share.StatusOf(err, len(bossFights))
	if err != nil {
		v.report(err)
		v.state.Error = msgFightsFailed
		return nil
	}
	v.state.Fights = bossFights
	return nil
}

// SelectFight stores the fight and fetches its players. An empty id only clears the selection.
func (v *View) SelectFight(ctx context.Context, fightID string) error {
	if !v.semaPlayers.TryAcquire() {
		return ErrBusy
	}
	defer v.semaPlayers.Release()

	v.lock.Lock()
	code := v.state.ReportCode
	v.state.SelectedFight = fightID
	v.state.Players = nil
	v.state.PlayersStatus = share.StatusIdle
	v.state.SelectedPlayer = ""
	v.state.Result = nil
	v.state.CompareStatus = share.StatusIdle
	v.state.Error = ""
	if code == "" || fightID == "" {
		v.lock.Unlock()
		return nil
	}
	v.state.PlayersStatus = share.StatusLoading
	v.lock.Unlock()

	players, err := v.api.DPS(ctx, code, fightID)
	if err == nil {
		sort.SliceStable(players, func(i, j int) bool {
			return players[i].DPS > players[j].DPS
		})
	}

	v.lock.Lock()
	defer v.lock.Unlock()

	if v.state.ReportCode != code || v.state.SelectedFight != fightID {
		v.state.PlayersStatus = share.StatusIdle
		return ErrStale
	}

	v.state.PlayersStatus = share.StatusOf(err, len(players))
	if err != nil {
		// no message for the user here, the player list just stays empty
		v.report(err)
		return nil
	}
	v.state.Players = players
	return nil
}

func (v *View) Compare(ctx context.Context) error {
	v.lock.Lock()
	q := backend.CompareQuery{
		FightID: v.state.SelectedFight,
		Player:  v.state.SelectedPlayer,
		Metric:  v.state.Metric,
	}
	code := v.state.ReportCode
	v.lock.Unlock()

	if code == "" || q.FightID == "" || q.Player == "" {
		return ErrIncomplete
	}

	if !v.semaCompare.TryAcquire() {
		return ErrBusy
	}
	defer v.semaCompare.Release()

	v.lock.Lock()
	v.state.Result = nil
	v.state.CompareStatus = share.StatusLoading
	v.state.Error = ""
	v.lock.Unlock()

	res, err := v.api.Compare(ctx, code, q)

	v.lock.Lock()
	defer v.lock.Unlock()

	if v.state.ReportCode != code || v.state.SelectedFight != q.FightID || v.state.SelectedPlayer != q.Player {
		v.state.CompareStatus = share.StatusIdle
		return ErrStale
	}

	if err != nil {
		v.state.CompareStatus = share.StatusFailed
		if msg, ok := backend.ReportedMessage(err); ok {
			v.state.Error = msg
			return nil
		}
		v.report(err)
		v.state.Error = msgCompareFailed
		return nil
	}

	v.state.Result = NewComparison(*res, q.Metric)
	v.state.CompareStatus = share.StatusReady
	return nil
}

func (v *View) report(err error) {
	share.Capture(v.log, err)
}

// FightOptions returns value and label pairs for the fight selector.
func FightOptions(fights []backend.Fight) []Option {
	opts := make([]Option, 0, len(fights))
	for _, f := range fights {
		if len(f.IDs) == 0 {
			continue
		}
		opts = append(opts, Option{
			Value: strconv.Itoa(f.IDs[0]),
			Label: FightLabel(f),
		})
	}
	return opts
}

func PlayerOptions(players []backend.DPSEntry) []Option {
	opts := make([]Option, 0, len(players))
	for _, p := range players {
		opts = append(opts, Option{Value: p.Name, Label: PlayerLabel(p)})
	}
	return opts
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
