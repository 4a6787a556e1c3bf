package report

import (
	"strings"

	"raidlytics/backend"
	"raidlytics/tablesort"
)

const emptySlot = "Empty"

var SlotNames = [backend.GearSlots]string{
	"Head", "Neck", "Shoulder", "Shirt", "Chest",
	"Waist", "Legs", "Feet", "Wrist", "Hands",
	"Ring 1", "Ring 2", "Trinket 1", "Trinket 2", "Back",
	"Main Hand", "Off Hand", "Ranged", "Tabard",
}

// slots that are expected to carry a permanent enchant
var enchantSlots = map[int]struct{}{
	0: {}, 2: {}, 4: {}, 6: {}, 7: {}, 8: {}, 9: {}, 14: {}, 15: {},
}

func ShouldHaveEnchant(slot int) bool {
	_, ok := enchantSlots[slot]
	return ok
}

type IlvlClass string

const (
	IlvlHigh IlvlClass = "ilvl-high"
	IlvlMid  IlvlClass = "ilvl-mid"
	IlvlLow  IlvlClass = "ilvl-low"
)

func IlvlClassOf(ilvl float64) IlvlClass {
	switch {
	case ilvl >= 75:
		return IlvlHigh
	case ilvl >= 60:
		return IlvlMid
	default:
		return IlvlLow
	}
}

type GearCell struct {
	Slot             string    `json:"slot"`
	Name             string    `json:"name"`
	ItemID           int       `json:"itemId"`
	PermanentEnchant string    `json:"permanentEnchant"`
	TemporaryEnchant string    `json:"temporaryEnchant"`
	Ilvl             float64   `json:"ilvl"`
	IlvlClass        IlvlClass `json:"ilvlClass"`
	MissingEnchant   bool      `json:"missingEnchant"`
}

type GearRow struct {
	Name            string                      `json:"name"`
	ClassName       string                      `json:"className"`
	Spec            string                      `json:"spec"`
	TotalIlvl       float64                     `json:"totalIlvl"`
	MissingEnchants int                         `json:"missingEnchants"`
	Gear            [backend.GearSlots]GearCell `json:"gear"`
}

// ClassSpec is the gear table's class column, e.g. "Mage-Frost".
func (r GearRow) ClassSpec() string {
	return r.ClassName + "-" + r.Spec
}

// MissingSlots lists the names of enchantable slots without a permanent enchant.
func (r GearRow) MissingSlots() []string {
	var out []string
	for i, c := range r.Gear {
		if c.MissingEnchant {
			out = append(out, SlotNames[i])
		}
	}
	return out
}

func orEmpty(s string) string {
	if s == "" {
		return emptySlot
	}
	return s
}

func NewGearRow(g backend.GearRecord) GearRow {
	row := GearRow{
		Name:      g.Name,
		ClassName: g.ClassName,
		Spec:      g.Spec,
		TotalIlvl: g.TotalIlvl,
	}
	if row.Name == "" {
		row.Name = "Unknown Player"
	}

	for i, s := range g.Slots {
		c := GearCell{
			Slot:             SlotNames[i],
			Name:             orEmpty(s.Name),
			ItemID:           s.ItemID,
			PermanentEnchant: orEmpty(s.PermEnchant),
			TemporaryEnchant: orEmpty(s.TempEnchant),
			Ilvl:             s.Ilvl,
			IlvlClass:        IlvlClassOf(s.Ilvl),
		}
		c.MissingEnchant = ShouldHaveEnchant(i) && c.PermanentEnchant == emptySlot
		if c.MissingEnchant {
			row.MissingEnchants++
		}
		row.Gear[i] = c
	}

	return row
}

func NewGearRows(records []backend.GearRecord) []GearRow {
	rows := make([]GearRow, 0, len(records))
	for _, g := range records {
		rows = append(rows, NewGearRow(g))
	}
	return rows
}

var GearColumns = []tablesort.Column[GearRow]{
	tablesort.Text("name", func(r GearRow) string { return r.Name }),
	tablesort.Number("totalIlvl", func(r GearRow) float64 { return r.TotalIlvl }),
	tablesort.Number("missingEnchants", func(r GearRow) float64 { return float64(r.MissingEnchants) }),
	tablesort.Text("className", GearRow.ClassSpec),
}

func NewGearTable(rows []GearRow) *tablesort.Table[GearRow] {
	return tablesort.New(rows, GearColumns...)
}

// FilterMissing keeps players with at least one missing enchant.
func FilterMissing(rows []GearRow) []GearRow {
	out := make([]GearRow, 0, len(rows))
	for _, r := range rows {
		if r.MissingEnchants > 0 {
			out = append(out, r)
		}
	}
	return out
}

const auditRule = "═══════════════════════════════"

// Audit renders the plain-text enchant report meant for pasting into chat.
func Audit(rows []GearRow) string {
	var sb strings.Builder

	sb.WriteString("⚠️ ENCHANT AUDIT\n")
	sb.WriteString(auditRule + "\n")

	missing := 0
	for _, r := range rows {
		slots := r.MissingSlots()
		if len(slots) == 0 {
			continue
		}
		missing++

		sb.WriteString("❌ " + r.Name)
		if r.ClassName != "" {
			sb.WriteString(" (" + r.ClassName)
			if r.Spec != "" {
				sb.WriteString(" - " + r.Spec)
			}
			sb.WriteString(")")
		}
		sb.WriteString("\n")

		for _, s := range slots {
			sb.WriteString("   └─ " + s + ": No enchant\n")
		}
	}
	if missing == 0 {
		sb.WriteString("✅ All players have enchants on all required slots!\n")
	}

	sb.WriteString(auditRule + "\n")
	sb.WriteString(itoa(missing) + " of " + itoa(len(rows)) + " players missing enchants")

	return sb.String()
}
