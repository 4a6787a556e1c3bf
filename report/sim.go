package report

import (
	"strconv"

	"raidlytics/backend"
	"raidlytics/compare"
	"raidlytics/simstore"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultRace = "Human"
	exportLevel = 80
)

type SimRow struct {
	backend.DPSEntry
	Export         *backend.SimExport `json:"export"`
	SimDPS         *float64           `json:"simDps"`
	Performance    int                `json:"performance"`
	HasPerformance bool               `json:"hasPerformance"`
	Tier           compare.Tier       `json:"tier,omitempty"`
}

// SimRows joins the damage meter with the sim exports and the stored sim values, by player name.
func SimRows(dps []backend.DPSEntry, exports []backend.SimExport, sims simstore.Values) []SimRow {
	byName := make(map[string]*backend.SimExport, len(exports))
	for i := range exports {
		if _, ok := byName[exports[i].Name]; !ok {
			byName[exports[i].Name] = &exports[i]
		}
	}

	rows := make([]SimRow, 0, len(dps))
	for _, d := range dps {
		row := SimRow{
			DPSEntry: d,
			Export:   byName[d.Name],
		}
		row.SimDPS, _ = sims.Lookup(d.Name)
		row.Performance, row.HasPerformance = compare.PerformanceOf(d.DPS, row.SimDPS)
		if row.HasPerformance {
			row.Tier = compare.TierOf(row.Performance)
		}
		rows = append(rows, row)
	}
	return rows
}

type simImport struct {
	Name  string              `json:"name"`
	Race  string              `json:"race"`
	Class string              `json:"class"`
	Level int                 `json:"level"`
	Gear  jsoniter.RawMessage `json:"gear"`
}

// ExportJSON renders the character import document for the simulator.
func ExportJSON(e backend.SimExport) ([]byte, error) {
	doc := simImport{
		Name:  e.Name,
		Race:  e.Race,
		Class: e.ClassName,
		Level: exportLevel,
		Gear:  e.Gear,
	}
	if doc.Race == "" {
		doc.Race = defaultRace
	}
	if len(doc.Gear) == 0 {
		doc.Gear = jsoniter.RawMessage("null")
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
