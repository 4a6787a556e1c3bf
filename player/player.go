package player

import (
	"math"

	"raidlytics/backend"
	"raidlytics/compare"
	"raidlytics/report"
	"raidlytics/simstore"
)

// BossFight is one boss attempt with the log it came from.
type BossFight struct {
	backend.PlayerBoss
	ReportCode string `json:"reportCode"`
	Zone       string `json:"zone"`
	Title      string `json:"title"`
}

func Flatten(logs []backend.PlayerLog) []BossFight {
	var out []BossFight
	for _, l := range logs {
		for _, b := range l.Bosses {
			out = append(out, BossFight{
				PlayerBoss: b,
				ReportCode: l.ReportCode,
				Zone:       l.Zone,
				Title:      l.Title,
			})
		}
	}
	return out
}

type Aggregate struct {
	Kills     int        `json:"kills"`
	AvgDPS    int        `json:"avgDps"`
	BestDPS   float64    `json:"bestDps"`
	BestFight *BossFight `json:"bestFight"`
}

// Aggregates counts kills with positive dps only. The best fight is the first kill reaching the best dps.
func Aggregates(fights []BossFight) Aggregate {
	var (
		agg Aggregate
		sum float64
	)
	for _, f := range fights {
		if !f.Kill || f.DPS <= 0 {
			continue
		}
		agg.Kills++
		sum += f.DPS
		if agg.BestFight == nil || f.DPS > agg.BestDPS {
			fc := f
			agg.BestFight = &fc
			agg.BestDPS = f.DPS
		}
	}
	if agg.Kills > 0 {
		agg.AvgDPS = int(math.Round(sum / float64(agg.Kills)))
	}
	return agg
}

type BossRow struct {
	backend.PlayerBoss
	Result         string       `json:"result"`
	Clock          string       `json:"clock"`
	SimKey         string       `json:"simKey"`
	SimDPS         *float64     `json:"simDps"`
	Performance    int          `json:"performance"`
	HasPerformance bool         `json:"hasPerformance"`
	Tier           compare.Tier `json:"tier,omitempty"`
	Bar            int          `json:"bar"`
}

type LogView struct {
	ReportCode string    `json:"reportCode"`
	Zone       string    `json:"zone"`
	Title      string    `json:"title"`
	OverallDPS float64   `json:"overallDps"`
	Bosses     []BossRow `json:"bosses"`
}

// Logs pairs every boss with the sim dps stored for it under GlobalKey.
func Logs(logs []backend.PlayerLog, sims simstore.Values) []LogView {
	out := make([]LogView, 0, len(logs))
	for _, l := range logs {
		v := LogView{
			ReportCode: l.ReportCode,
			Zone:       l.Zone,
			Title:      l.Title,
			OverallDPS: l.OverallDPS,
			Bosses:     make([]BossRow, 0, len(l.Bosses)),
		}

		for _, b := range l.Bosses {
			row := BossRow{
				PlayerBoss: b,
				Result:     "Wipe",
				Clock:      compare.FormatClock(b.Duration),
				SimKey:     simstore.FightKey(l.ReportCode, b.FightID),
			}
			if b.Kill {
				row.Result = "Kill"
			}
			row.SimDPS, _ = sims.Lookup(row.SimKey)
			row.Performance, row.HasPerformance = compare.PerformanceOf(b.DPS, row.SimDPS)
			if row.HasPerformance {
				row.Tier = compare.TierOf(row.Performance)
				row.Bar = compare.BarWidth(row.Performance)
			}
			v.Bosses = append(v.Bosses, row)
		}

		out = append(out, v)
	}
	return out
}

//////////////////////////////////////////////////

var (
	LeftSlots   = []int{0, 1, 2, 14, 4, 3, 18, 8}
	RightSlots  = []int{9, 5, 6, 7, 10, 11, 12, 13}
	BottomSlots = []int{15, 16, 17}
)

type QualityClass string

const (
	QualityLegendary QualityClass = "quality-legendary"
	QualityEpic      QualityClass = "quality-epic"
	QualityRare      QualityClass = "quality-rare"
	QualityUncommon  QualityClass = "quality-uncommon"
	QualityCommon    QualityClass = "quality-common"
)

func QualityOf(quality int) QualityClass {
	switch {
	case quality >= 5:
		return QualityLegendary
	case quality >= 4:
		return QualityEpic
	case quality >= 3:
		return QualityRare
	case quality >= 2:
		return QualityUncommon
	default:
		return QualityCommon
	}
}

type SheetSlot struct {
	Slot    int                  `json:"slot"`
	Label   string               `json:"label"`
	Item    *backend.GearDisplay `json:"item"`
	Quality QualityClass         `json:"quality,omitempty"`
}

type Sheet struct {
	AvgIlvl float64     `json:"avgIlvl"`
	Left    []SheetSlot `json:"left"`
	Right   []SheetSlot `json:"right"`
	Bottom  []SheetSlot `json:"bottom"`
}

// NewSheet lays the displayed gear out like the in-game character pane.
func NewSheet(e *backend.PlayerExport) *Sheet {
	if e == nil {
		return nil
	}

	bySlot := make(map[int]*backend.GearDisplay, len(e.GearDisplay))
	for i := range e.GearDisplay {
		if _, ok := bySlot[e.GearDisplay[i].Slot]; !ok {
			bySlot[e.GearDisplay[i].Slot] = &e.GearDisplay[i]
		}
	}

	column := func(slots []int) []SheetSlot {
		out := make([]SheetSlot, 0, len(slots))
		for _, id := range slots {
			s := SheetSlot{
				Slot:  id,
				Label: report.SlotNames[id],
				Item:  bySlot[id],
			}
			if s.Item != nil {
				s.Quality = QualityOf(s.Item.Quality)
			}
			out = append(out, s)
		}
		return out
	}

	return &Sheet{
		AvgIlvl: e.AvgIlvl,
		Left:    column(LeftSlots),
		Right:   column(RightSlots),
		Bottom:  column(BottomSlots),
	}
}
