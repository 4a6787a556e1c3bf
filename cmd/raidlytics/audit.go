package main

import (
	"fmt"

	"raidlytics/report"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func auditCmd() *cobra.Command {
	var (
		fights  string
		asTable bool
		sortBy  string
		xlsx    string
	)

	cmd := &cobra.Command{
		Use:   "audit <report>",
		Short: "Print the enchant audit of a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.sims.Close()

			records, err := e.api.Gear(cmd.Context(), args[0], fights)
			if err != nil {
				return err
			}
			rows := report.NewGearRows(records)

			if xlsx != "" {
				return writeXLSX(xlsx, rows)
			}
			if !asTable {
				fmt.Fprintln(cmd.OutOrStdout(), report.Audit(rows))
				return nil
			}

			tbl := report.NewGearTable(rows)
			if sortBy != "" {
				err = tbl.Sort(sortBy)
				if err != nil {
					return err
				}
			}
			printGear(cmd, tbl.Rows())
			return nil
		},
	}

	cmd.Flags().StringVar(&fights, "fights", report.AllFights, "comma separated fight ids")
	cmd.Flags().BoolVar(&asTable, "table", false, "print the gear table instead of the audit text")
	cmd.Flags().StringVar(&sortBy, "sort", "", "gear table sort key: name, totalIlvl, missingEnchants, className")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "write the gear table to this workbook")

	return cmd
}

func printGear(cmd *cobra.Command, rows []report.GearRow) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(cmd.OutOrStdout())
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Player", "Class", "Ilvl", "Missing"})
	for _, r := range rows {
		tbl.AppendRow(table.Row{r.Name, r.ClassSpec(), r.TotalIlvl, r.MissingEnchants})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("%d of %d players missing enchants", len(report.FilterMissing(rows)), len(rows))})
	tbl.Render()
}
