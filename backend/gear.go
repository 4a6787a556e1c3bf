package backend

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const GearSlots = 19

var ErrGearSlot = errors.New("gear slot out of range")

type GearSlot struct {
	Name        string  `json:"name"`
	ItemID      int     `json:"itemId"`
	Ilvl        float64 `json:"ilvl"`
	PermEnchant string  `json:"permanentEnchant"`
	TempEnchant string  `json:"temporaryEnchant"`
}

// GearRecord is one player's equipment. The backend sends it flattened
// as gear_{slot}_{field} keys next to the player fields.
type GearRecord struct {
	Name      string              `json:"name"`
	ClassName string              `json:"className"`
	Spec      string              `json:"spec"`
	TotalIlvl float64             `json:"totalIlvl"`
	Slots     [GearSlots]GearSlot `json:"slots"`
}

func (g *GearRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return errors.WithStack(err)
	}

	*g = GearRecord{
		Name:      looseString(raw["name"]),
		ClassName: looseString(raw["className"]),
		Spec:      looseString(raw["spec"]),
		TotalIlvl: looseFloat(raw["total_ilvl"]),
	}

	for key, value := range raw {
		if !strings.HasPrefix(key, "gear_") {
			continue
		}
		rest := key[len("gear_"):]

		idx := strings.IndexByte(rest, '_')
		if idx <= 0 {
			continue
		}
		slot, err := strconv.Atoi(rest[:idx])
		if err != nil {
			continue
		}
		if slot < 0 || slot >= GearSlots {
			return errors.Wrapf(ErrGearSlot, "%s: slot %d", key, slot)
		}

		s := &g.Slots[slot]
		switch rest[idx+1:] {
		case "name":
			s.Name = looseString(value)
		case "id":
			s.ItemID = int(looseFloat(value))
		case "ilvl":
			s.Ilvl = looseFloat(value)
		case "perm_enchant":
			s.PermEnchant = looseString(value)
		case "temp_enchant":
			s.TempEnchant = looseString(value)
		}
	}

	return nil
}

func looseFloat(v interface{}) float64 {
	switch e := v.(type) {
	case float64:
		return e
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(e), 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if e {
			return 1
		}
	}
	return 0
}

func looseString(v interface{}) string {
	switch e := v.(type) {
	case string:
		return e
	case float64:
		return strconv.FormatFloat(e, 'f', -1, 64)
	}
	return ""
}
