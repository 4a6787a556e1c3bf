package main

import (
	"fmt"
	"io"
	"os"

	"raidlytics/backend"
	"raidlytics/compare"
	"raidlytics/logger"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	var (
		fight  string
		metric string
	)

	cmd := &cobra.Command{
		Use:   "compare <report> <player>",
		Short: "Compare a player's ability breakdown against the #1 parse",
		Long: `Compare a player's ability breakdown against the #1 ranked parse
of the same boss, class and spec.

Without --fight the first boss kill of the report is used.

Examples:
  raidlytics compare abc123 Thrall
  raidlytics compare abc123 Thrall --fight 5 --metric hps`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.sims.Close()

			log := logger.New(os.Stderr, &logger.Config{Level: e.cfg.LogLevel}).With("report", args[0])
			return runCompare(cmd, compare.NewView(e.api, log), args[0], args[1], fight, backend.Metric(metric))
		},
	}

	cmd.Flags().StringVar(&fight, "fight", "", "fight id (default: first boss kill)")
	cmd.Flags().StringVar(&metric, "metric", string(backend.MetricDPS), "dps or hps")

	return cmd
}

func runCompare(cmd *cobra.Command, v *compare.View, code, name, fight string, metric backend.Metric) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	err := v.SetMetric(metric)
	if err != nil {
		return err
	}

	err = v.LoadFights(ctx, code)
	if err != nil {
		return err
	}
	st := v.State()
	if st.Error != "" {
		return errors.New(st.Error)
	}

	if fight == "" {
		for _, f := range st.Fights {
			if f.Kill && len(f.IDs) > 0 {
				fight = fmt.Sprint(f.IDs[0])
				break
			}
		}
		if fight == "" {
			return errors.New("no boss kill in report, pass --fight")
		}
	}

	err = v.SelectFight(ctx, fight)
	if err != nil {
		return err
	}
	v.SelectPlayer(name)

	err = v.Compare(ctx)
	if err != nil {
		return err
	}
	st = v.State()
	if st.Error != "" {
		return errors.New(st.Error)
	}

	printComparison(out, st.Result)
	return nil
}

func tierColor(t compare.Tier) *color.Color {
	switch t {
	case compare.TierExcellent:
		return color.New(color.FgGreen)
	case compare.TierGood:
		return color.New(color.FgYellow)
	case compare.TierFair:
		return color.New(color.FgHiYellow)
	default:
		return color.New(color.FgRed)
	}
}

func printComparison(w io.Writer, c *compare.Comparison) {
	if noColor {
		color.NoColor = true
	}

	fmt.Fprintf(w, "%s: %s vs %s\n", c.EncounterName, c.Player.Name, c.Top.Name)
	fmt.Fprintf(w, "%s %s  %s %s\n",
		c.Metric.Label(), compare.FormatNumber(c.Player.Throughput),
		c.Metric.Label(), compare.FormatNumber(c.Top.Throughput),
	)
	if c.HasPercent {
		tierColor(c.Tier).Fprintf(w, "%d%% of top (%s)\n", c.PercentOfTop, c.Tier)
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Ability", c.Player.Name, c.Top.Name})
	for _, r := range c.Rows {
		tbl.AppendRow(table.Row{r.Name, compare.FormatNumber(r.Player), compare.FormatNumber(r.Top)})
	}
	tbl.AppendFooter(table.Row{
		fmt.Sprintf("%d shared / %d yours / %d top only", len(c.Partition.Shared), len(c.Partition.PlayerOnly), len(c.Partition.TopOnly)),
	})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	tbl.Render()
}
