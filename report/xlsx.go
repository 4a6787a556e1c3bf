package report

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const gearSheet = "Gear"

// WriteGearXLSX writes the gear table as a workbook: one row per player,
// one column per slot. Slots missing an enchant are filled red.
func WriteGearXLSX(w io.Writer, rows []GearRow) error {
	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName("Sheet1", gearSheet)
	if err != nil {
		return errors.WithStack(err)
	}

	headers := []interface{}{"Player", "Class", "Spec", "Avg Ilvl", "Missing Enchants"}
	for _, name := range SlotNames {
		headers = append(headers, name)
	}
	err = f.SetSheetRow(gearSheet, "A1", &headers)
	if err != nil {
		return errors.WithStack(err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return errors.WithStack(err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	err = f.SetCellStyle(gearSheet, "A1", lastCol+"1", headerStyle)
	if err != nil {
		return errors.WithStack(err)
	}

	missingStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F4CCCC"}, Pattern: 1},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	for i, r := range rows {
		line := i + 2

		values := []interface{}{r.Name, r.ClassName, r.Spec, r.TotalIlvl, r.MissingEnchants}
		for _, c := range r.Gear {
			values = append(values, gearCellText(c))
		}

		cell, _ := excelize.CoordinatesToCellName(1, line)
		err = f.SetSheetRow(gearSheet, cell, &values)
		if err != nil {
			return errors.WithStack(err)
		}

		for slot, c := range r.Gear {
			if !c.MissingEnchant {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(6+slot, line)
			err = f.SetCellStyle(gearSheet, cell, cell, missingStyle)
			if err != nil {
				return errors.WithStack(err)
			}
		}
	}

	f.SetColWidth(gearSheet, "A", "A", 20)
	f.SetColWidth(gearSheet, "B", "E", 12)
	f.SetColWidth(gearSheet, "F", lastCol, 28)

	_, err = f.WriteTo(w)
	return errors.WithStack(err)
}

func gearCellText(c GearCell) string {
	if c.Name == emptySlot {
		return ""
	}
	if c.PermanentEnchant == emptySlot {
		return fmt.Sprintf("%s (%g)", c.Name, c.Ilvl)
	}
	return fmt.Sprintf("%s (%g) / %s", c.Name, c.Ilvl, c.PermanentEnchant)
}
