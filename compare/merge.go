package compare

import (
	"math"
	"sort"

	"raidlytics/backend"
)

// Row is one ability on the comparison chart. A side that never used the
// ability has its total fixed at 0.
type Row struct {
	Name   string  `json:"name"`
	Player float64 `json:"player"`
	Top    float64 `json:"top"`
}

func (r Row) peak() float64 {
	return math.Max(r.Player, r.Top)
}

// Merge joins both ability lists by exact name. Rows are ordered by the larger
// of the two totals, descending, then by name.
func Merge(player, top []backend.Ability) []Row {
	idx := make(map[string]int, len(player)+len(top))
	rows := make([]Row, 0, len(player)+len(top))

	for _, a := range player {
		i, ok := idx[a.Name]
		if !ok {
			i = len(rows)
			idx[a.Name] = i
			rows = append(rows, Row{Name: a.Name})
		}
		rows[i].Player = a.Total
	}
	for _, a := range top {
		i, ok := idx[a.Name]
		if !ok {
			i = len(rows)
			idx[a.Name] = i
			rows = append(rows, Row{Name: a.Name})
		}
		rows[i].Top = a.Total
	}

	sort.SliceStable(rows, func(i, j int) bool {
		pi, pj := rows[i].peak(), rows[j].peak()
		if pi != pj {
			return pi > pj
		}
		return rows[i].Name < rows[j].Name
	})

	return rows
}

type Partition struct {
	Shared     []Row `json:"shared"`
	PlayerOnly []Row `json:"playerOnly"`
	TopOnly    []Row `json:"topOnly"`
}

// Split classifies merged rows in one pass, keeping their order.
// Rows where both totals are 0 belong to no group.
func Split(rows []Row) Partition {
	var p Partition
	for _, r := range rows {
		switch {
		case r.Player > 0 && r.Top > 0:
			p.Shared = append(p.Shared, r)
		case r.Player > 0 && r.Top == 0:
			p.PlayerOnly = append(p.PlayerOnly, r)
		case r.Player == 0 && r.Top > 0:
			p.TopOnly = append(p.TopOnly, r)
		}
	}
	return p
}

// AbilityShare is the ability's percentage of its side's total, to one decimal.
func AbilityShare(a backend.Ability, side backend.Side) float64 {
	if side.Total <= 0 {
		return 0
	}
	return roundTo(a.Total/side.Total*100, 1)
}

func Hits(a backend.Ability) int {
	return a.HitCount + a.TickCount
}

func roundTo(v float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*p) / p
}
