package report

import (
	"raidlytics/backend"
	"raidlytics/tablesort"
)

var (
	DPSColumns = []tablesort.Column[backend.DPSEntry]{
		tablesort.Text("name", func(e backend.DPSEntry) string { return e.Name }),
		tablesort.Number("dps", func(e backend.DPSEntry) float64 { return e.DPS }),
		tablesort.Number("damage", func(e backend.DPSEntry) float64 { return e.Damage }),
	}
	HealingColumns = []tablesort.Column[backend.HealingEntry]{
		tablesort.Text("name", func(e backend.HealingEntry) string { return e.Name }),
		tablesort.Number("hps", func(e backend.HealingEntry) float64 { return e.HPS }),
		tablesort.Number("healing", func(e backend.HealingEntry) float64 { return e.Healing }),
		tablesort.Number("overheal", func(e backend.HealingEntry) float64 { return e.Overheal }),
	}

	DPSDefault     = tablesort.State{Key: "dps", Direction: tablesort.Desc}
	HealingDefault = tablesort.State{Key: "hps", Direction: tablesort.Desc}
)

type MeterRow struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Amount float64 `json:"amount"`
	Extra  float64 `json:"extra,omitempty"`
	// Width is the bar length relative to the top row, in percent.
	Width float64 `json:"width"`
}

func NewDPSTable(rows []backend.DPSEntry) *tablesort.Table[backend.DPSEntry] {
	t, _ := tablesort.New(rows, DPSColumns...).WithState(DPSDefault)
	return t
}

func NewHealingTable(rows []backend.HealingEntry) *tablesort.Table[backend.HealingEntry] {
	t, _ := tablesort.New(rows, HealingColumns...).WithState(HealingDefault)
	return t
}

func DPSMeter(rows []backend.DPSEntry) []MeterRow {
	var top float64
	for _, r := range rows {
		if r.DPS > top {
			top = r.DPS
		}
	}

	out := make([]MeterRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, MeterRow{
			Name:   r.Name,
			Value:  r.DPS,
			Amount: r.Damage,
			Width:  RelativeWidth(r.DPS, top),
		})
	}
	return out
}

func HealingMeter(rows []backend.HealingEntry) []MeterRow {
	var top float64
	for _, r := range rows {
		if r.HPS > top {
			top = r.HPS
		}
	}

	out := make([]MeterRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, MeterRow{
			Name:   r.Name,
			Value:  r.HPS,
			Amount: r.Healing,
			Extra:  r.Overheal,
			Width:  RelativeWidth(r.HPS, top),
		})
	}
	return out
}

// RelativeWidth is value as a percentage of top. A table without a positive top draws no bars.
func RelativeWidth(value, top float64) float64 {
	if top <= 0 {
		return 0
	}
	return value / top * 100
}
