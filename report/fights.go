package report

import (
	"strconv"
	"strings"

	"raidlytics/backend"
	"raidlytics/compare"
)

const AllFights = "all"

type FightOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FightOptions is the report's fight selector, starting with every fight at once.
func FightOptions(fights []backend.Fight) []FightOption {
	opts := make([]FightOption, 0, len(fights)+1)
	opts = append(opts, FightOption{Value: AllFights, Label: "All Fights"})

	for _, f := range fights {
		ids := make([]string, 0, len(f.IDs))
		for _, id := range f.IDs {
			ids = append(ids, strconv.Itoa(id))
		}

		opts = append(opts, FightOption{
			Value: strings.Join(ids, ","),
			Label: f.Name + fightStatus(f) + " (" + compare.FormatClock(f.Duration) + ")",
		})
	}
	return opts
}

func fightStatus(f backend.Fight) string {
	switch {
	case f.IsTrash:
		return " 🗑️"
	case f.Kill:
		return " ✓"
	default:
		return " ✗"
	}
}
