package main

import (
	"raidlytics/report"
	"raidlytics/share"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func simCmd() *cobra.Command {
	var fights string

	cmd := &cobra.Command{
		Use:   "sim <report> [player value]",
		Short: "Show sim performance for a report, or store a player's sim dps",
		Long: `Show sim performance for a report, or store a player's sim dps.

An empty value removes the stored entry.

Examples:
  raidlytics sim abc123
  raidlytics sim abc123 Thrall 14000
  raidlytics sim abc123 Thrall ""`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.sims.Close()

			svc := report.NewService(e.api, e.sims)

			switch len(args) {
			case 3:
				_, err = svc.SetSim(cmd.Context(), args[0], args[1], args[2])
				if err != nil {
					return err
				}
			case 2:
				return errors.Errorf("missing value for %s", args[1])
			}

			v, err := svc.Sim(cmd.Context(), args[0], fights)
			if err != nil {
				return err
			}
			printSim(cmd, v.Rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&fights, "fights", report.AllFights, "comma separated fight ids")

	return cmd
}

func printSim(cmd *cobra.Command, rows []report.SimRow) {
	if noColor {
		color.NoColor = true
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(cmd.OutOrStdout())
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Player", "DPS", "Sim DPS", "% of Sim"})
	for _, r := range rows {
		sim, pct := "—", "—"
		if r.SimDPS != nil {
			sim = share.Comma(*r.SimDPS)
		}
		if r.HasPerformance {
			pct = tierColor(r.Tier).Sprintf("%d%%", r.Performance)
		}
		tbl.AppendRow(table.Row{r.Name, share.Comma(r.DPS), sim, pct})
	}
	tbl.Render()
}
