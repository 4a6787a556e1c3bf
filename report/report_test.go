package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"raidlytics/backend"
	"raidlytics/compare"
	"raidlytics/share"
	"raidlytics/simstore"
	"raidlytics/tablesort"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFightOptions(t *testing.T) {
	t.Parallel()

	opts := FightOptions([]backend.Fight{
		{IDs: []int{1, 2}, Name: "Trash", IsTrash: true, Duration: 65},
		{IDs: []int{5}, Name: "Patchwerk", EncounterID: 101, Kill: true, Duration: 183.9},
		{IDs: []int{6}, Name: "Grobbulus", EncounterID: 102, Duration: 59},
	})

	assert.Equal(t, []FightOption{
		{Value: "all", Label: "All Fights"},
		{Value: "1,2", Label: "Trash 🗑️ (1:05)"},
		{Value: "5", Label: "Patchwerk ✓ (3:03)"},
		{Value: "6", Label: "Grobbulus ✗ (0:59)"},
	}, opts)
}

func TestMeters(t *testing.T) {
	t.Parallel()

	tbl := NewDPSTable([]backend.DPSEntry{{Name: "A", DPS: 10}, {Name: "B", DPS: 30}, {Name: "C", DPS: 20}})
	assert.Equal(t, DPSDefault, tbl.State())

	meter := DPSMeter(tbl.Rows())
	require.Len(t, meter, 3)
	assert.Equal(t, "B", meter[0].Name)
	assert.Equal(t, 100.0, meter[0].Width)
	assert.InDelta(t, 33.33, meter[2].Width, 0.01)

	require.NoError(t, tbl.Sort("dps"))
	assert.Equal(t, "A", tbl.Rows()[0].Name)

	heal := HealingMeter([]backend.HealingEntry{{Name: "P", HPS: 0}})
	assert.Zero(t, heal[0].Width)
	assert.Equal(t, HealingDefault, NewHealingTable(nil).State())
}

func gearRecord(name, class, spec string, ilvl float64, enchanted ...int) backend.GearRecord {
	g := backend.GearRecord{Name: name, ClassName: class, Spec: spec, TotalIlvl: ilvl}
	for i := range g.Slots {
		g.Slots[i] = backend.GearSlot{Name: "Item", Ilvl: ilvl}
	}
	for _, i := range enchanted {
		g.Slots[i].PermEnchant = "Enchant"
	}
	return g
}

var allEnchanted = []int{0, 2, 4, 6, 7, 8, 9, 14, 15}

func TestGearRows(t *testing.T) {
	t.Parallel()

	rows := NewGearRows([]backend.GearRecord{
		gearRecord("Thrall", "Shaman", "Enhancement", 80, 0, 2, 4, 6, 7, 8, 9),
		gearRecord("", "", "", 55),
	})

	assert.Equal(t, 2, rows[0].MissingEnchants)
	assert.Equal(t, []string{"Back", "Main Hand"}, rows[0].MissingSlots())
	assert.Equal(t, IlvlHigh, rows[0].Gear[0].IlvlClass)
	assert.Equal(t, "Empty", rows[0].Gear[1].PermanentEnchant)
	assert.False(t, rows[0].Gear[1].MissingEnchant)
	assert.Equal(t, "Shaman-Enhancement", rows[0].ClassSpec())

	assert.Equal(t, "Unknown Player", rows[1].Name)
	assert.Equal(t, 9, rows[1].MissingEnchants)
	assert.Equal(t, IlvlLow, rows[1].Gear[0].IlvlClass)
	assert.Equal(t, IlvlMid, IlvlClassOf(60))

	assert.Len(t, FilterMissing(rows), 2)
}

func TestGearSort(t *testing.T) {
	t.Parallel()

	tbl := NewGearTable(NewGearRows([]backend.GearRecord{
		gearRecord("Jaina", "Mage", "Frost", 78, allEnchanted...),
		gearRecord("Thrall", "Shaman", "Enhancement", 80),
		gearRecord("Anduin", "Priest", "Holy", 70, 0),
	}))

	require.NoError(t, tbl.Sort("missingEnchants"))
	assert.Equal(t, "Jaina", tbl.Rows()[0].Name)

	require.NoError(t, tbl.Sort("totalIlvl"))
	require.NoError(t, tbl.Sort("totalIlvl"))
	assert.Equal(t, "Thrall", tbl.Rows()[0].Name)

	require.NoError(t, tbl.Sort("className"))
	assert.Equal(t, "Jaina", tbl.Rows()[0].Name)
	assert.Equal(t, "Thrall", tbl.Rows()[2].Name)
}

func TestAudit(t *testing.T) {
	t.Parallel()

	rows := NewGearRows([]backend.GearRecord{
		gearRecord("Jaina", "Mage", "Frost", 78, allEnchanted...),
		gearRecord("Thrall", "Shaman", "", 80, 0, 2, 4, 6, 7, 8, 9, 15),
		gearRecord("Anon", "", "", 80, 0, 2, 4, 6, 7, 8, 9, 14),
	})

	want := strings.Join([]string{
		"⚠️ ENCHANT AUDIT",
		auditRule,
		"❌ Thrall (Shaman)",
		"   └─ Back: No enchant",
		"❌ Anon",
		"   └─ Main Hand: No enchant",
		auditRule,
		"2 of 3 players missing enchants",
	}, "\n")
	assert.Equal(t, want, Audit(rows))

	clean := Audit(rows[:1])
	assert.Contains(t, clean, "✅ All players have enchants on all required slots!")
	assert.True(t, strings.HasSuffix(clean, "0 of 1 players missing enchants"))
	assert.Equal(t, 31, len([]rune(auditRule)))
}

func TestSimRows(t *testing.T) {
	t.Parallel()

	rows := SimRows(
		[]backend.DPSEntry{{Name: "Thrall", DPS: 12000}, {Name: "Jaina", DPS: 9000}},
		[]backend.SimExport{{Name: "Thrall", ClassName: "Shaman"}},
		simstore.Values{"Thrall": 14000, "Jaina": 0},
	)

	require.Len(t, rows, 2)
	assert.Equal(t, "Shaman", rows[0].Export.ClassName)
	assert.True(t, rows[0].HasPerformance)
	assert.Equal(t, 86, rows[0].Performance)
	assert.Equal(t, compare.TierGood, rows[0].Tier)

	assert.Nil(t, rows[1].Export)
	require.NotNil(t, rows[1].SimDPS)
	assert.False(t, rows[1].HasPerformance)
}

func TestExportJSON(t *testing.T) {
	t.Parallel()

	b, err := ExportJSON(backend.SimExport{Name: "Thrall", ClassName: "ClassShaman", Gear: jsoniter.RawMessage(`{"items":[{"id":1}]}`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Thrall","race":"Human","class":"ClassShaman","level":80,"gear":{"items":[{"id":1}]}}`, string(b))
	assert.Contains(t, string(b), "\n  \"race\": \"Human\"")

	b, err = ExportJSON(backend.SimExport{Name: "Jaina", Race: "Human", ClassName: "ClassMage"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Jaina","race":"Human","class":"ClassMage","level":80,"gear":null}`, string(b))
}

func TestWriteGearXLSX(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rows := NewGearRows([]backend.GearRecord{gearRecord("Thrall", "Shaman", "Enhancement", 80, 0)})
	require.NoError(t, WriteGearXLSX(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(gearSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Thrall", v)

	v, err = f.GetCellValue(gearSheet, "F1")
	require.NoError(t, err)
	assert.Equal(t, "Head", v)

	v, err = f.GetCellValue(gearSheet, "F2")
	require.NoError(t, err)
	assert.Equal(t, "Item (80) / Enchant", v)
}

//////////////////////////////////////////////////

type fakeBackend struct {
	err     error
	dps     []backend.DPSEntry
	gear    []backend.GearRecord
	exports []backend.SimExport
}

func (f *fakeBackend) Fights(ctx context.Context, code string) ([]backend.Fight, error) {
	return nil, f.err
}

func (f *fakeBackend) DPS(ctx context.Context, code string, fightIDs string) ([]backend.DPSEntry, error) {
	return f.dps, f.err
}

func (f *fakeBackend) Healing(ctx context.Context, code string, fightIDs string) ([]backend.HealingEntry, error) {
	return nil, f.err
}

func (f *fakeBackend) Gear(ctx context.Context, code string, fightIDs string) ([]backend.GearRecord, error) {
	return f.gear, f.err
}

func (f *fakeBackend) WowsimsExport(ctx context.Context, code string, fightIDs string) ([]backend.SimExport, error) {
	return f.exports, f.err
}

func TestService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := &fakeBackend{
		dps: []backend.DPSEntry{{Name: "Jaina", DPS: 9000}, {Name: "Thrall", DPS: 12000}},
		gear: []backend.GearRecord{
			gearRecord("Jaina", "Mage", "Frost", 78, allEnchanted...),
			gearRecord("Thrall", "Shaman", "Enhancement", 80),
		},
		exports: []backend.SimExport{{Name: "Thrall", ClassName: "ClassShaman"}},
	}
	svc := NewService(api, simstore.New(simstore.NewMemory()))

	fights, err := svc.Fights(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, share.StatusEmpty, fights.Status)
	assert.Len(t, fights.Options, 1)

	dps, err := svc.DPS(ctx, "abc123", "all", nil)
	require.NoError(t, err)
	assert.Equal(t, "Thrall", dps.Rows[0].Name)
	assert.Equal(t, DPSDefault, dps.Sort)

	_, err = svc.DPS(ctx, "abc123", "all", &tablesort.State{Key: "mana"})
	assert.ErrorIs(t, err, tablesort.ErrUnknownKey)

	gear, err := svc.Gear(ctx, "abc123", "all", nil, true)
	require.NoError(t, err)
	require.Len(t, gear.Rows, 1)
	assert.Equal(t, "Thrall", gear.Rows[0].Name)
	assert.Equal(t, 2, gear.PlayersTotal)
	assert.Equal(t, 1, gear.PlayersMissed)

	_, err = svc.SetSim(ctx, "abc123", "Thrall", "14000")
	require.NoError(t, err)

	sim, err := svc.Sim(ctx, "abc123", "all")
	require.NoError(t, err)
	assert.Equal(t, "Thrall", sim.Rows[0].Name)
	assert.Equal(t, 86, sim.Rows[0].Performance)

	_, err = svc.Export(ctx, "abc123", "all", "Jaina")
	assert.ErrorIs(t, err, ErrNoExport)

	api.err = errors.New("down")
	heal, err := svc.Healing(ctx, "abc123", "all", nil)
	assert.Error(t, err)
	assert.Equal(t, share.StatusFailed, heal.Status)
}
