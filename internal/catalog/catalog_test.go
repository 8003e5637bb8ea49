package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_StepOrder(t *testing.T) {
	c := Default()
	steps := c.Steps()
	require.Len(t, steps, 22)

	prep, construction := Partition(steps)
	ids := func(ss []domain.ConstructionStep) []string {
		var out []string
		for _, s := range ss {
			out = append(out, s.ID)
		}
		return out
	}
	assert.Equal(t, []string{"planification", "permis", "soumissions", "financement"}, ids(prep))
	assert.Equal(t, "excavation", construction[0].ID)
	assert.Equal(t, "inspection-finale", construction[len(construction)-1].ID)

	for i, s := range steps {
		assert.Equal(t, i+1, s.Position, "step %s", s.ID)
		assert.GreaterOrEqual(t, s.DefaultDays, 1, "step %s", s.ID)
	}
}

func TestDefault_Rules(t *testing.T) {
	c := Default()

	rule, ok := c.MinDelay("structure")
	require.True(t, ok)
	assert.Equal(t, "fondation", rule.AfterStep)
	assert.Equal(t, 21, rule.DelayCalendarDays)

	_, ok = c.MinDelay("toiture")
	assert.False(t, ok)

	m, ok := c.Measurement("comptoirs")
	require.True(t, ok)
	assert.Equal(t, "armoires", m.AfterStep)
}

func TestTrade_FallsBackToOther(t *testing.T) {
	c := Default()

	trade, color := c.Trade("structure")
	assert.Equal(t, "charpente", trade)
	assert.Equal(t, "#d79921", color)

	trade, color = c.Trade("inspection-finale")
	assert.Equal(t, domain.TradeOther, trade)
	assert.Equal(t, "#7f8c8d", color)

	assert.Equal(t, "#7f8c8d", c.TradeColor("inconnu"))
}

func TestLeadDays(t *testing.T) {
	c := Default()
	assert.Equal(t, 14, c.SupplierLeadDays("gypse"))
	assert.Equal(t, 0, c.SupplierLeadDays("permis"))
	assert.Equal(t, 30, c.FabricationLeadDays("portes-fenetres"))
	assert.Equal(t, 0, c.FabricationLeadDays("gypse"))
	assert.Equal(t, 0, c.ContactLeadDays("gypse"))
}

func TestStepsFrom(t *testing.T) {
	c := Default()

	all, err := c.StepsFrom("")
	require.NoError(t, err)
	assert.Len(t, all, 22)

	rest, err := c.StepsFrom("gypse")
	require.NoError(t, err)
	assert.Equal(t, "gypse", rest[0].ID)
	assert.Len(t, rest, 22-c.Position("gypse")+1)

	_, err = c.StepsFrom("sous-sol")
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Default().Lookup("piscine")
	assert.ErrorIs(t, err, ErrUnknownStep)
	assert.Equal(t, 0, Default().Position("piscine"))
}

func TestNew_Rejects(t *testing.T) {
	base := func() File {
		return File{
			Trades: []TradeFile{{Key: "beton", Color: "#999999"}},
			Steps: []StepFile{
				{ID: "a", Title: "A", Phase: "preparation", DefaultDays: 1},
				{ID: "b", Title: "B", Phase: "gros_oeuvre", DefaultDays: 2, Trade: "beton"},
				{ID: "c", Title: "C", Phase: "gros_oeuvre", DefaultDays: 2},
			},
		}
	}

	_, err := New(base())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(f *File)
	}{
		{"no steps", func(f *File) { f.Steps = nil }},
		{"zero duration", func(f *File) { f.Steps[1].DefaultDays = 0 }},
		{"bad phase", func(f *File) { f.Steps[1].Phase = "toiture" }},
		{"duplicate step", func(f *File) { f.Steps[2].ID = "b" }},
		{"unknown trade", func(f *File) { f.Steps[2].Trade = "plomberie" }},
		{"bad color", func(f *File) { f.Trades[0].Color = "gris" }},
		{"prep after construction", func(f *File) { f.Steps[2].Phase = "preparation" }},
		{"delay on unknown step", func(f *File) {
			f.MinDelays = []MinDelayFile{{Step: "c", AfterStep: "z", DelayCalendarDays: 2}}
		}},
		{"delay pointing forward", func(f *File) {
			f.MinDelays = []MinDelayFile{{Step: "b", AfterStep: "c", DelayCalendarDays: 2}}
		}},
		{"delay on itself", func(f *File) {
			f.MinDelays = []MinDelayFile{{Step: "c", AfterStep: "c", DelayCalendarDays: 2}}
		}},
		{"negative delay", func(f *File) {
			f.MinDelays = []MinDelayFile{{Step: "c", AfterStep: "b", DelayCalendarDays: -1}}
		}},
		{"measurement pointing forward", func(f *File) {
			f.Measurements = []MeasurementFile{{Step: "a", AfterStep: "c"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base()
			tt.mutate(&f)
			_, err := New(f)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	body := `
default_supplier_lead_days: 7
trades:
  - key: beton
    color: "#999999"
steps:
  - id: fondation
    title: Fondation
    phase: gros_oeuvre
    default_days: 5
    trade: beton
  - id: structure
    title: Structure
    phase: gros_oeuvre
    default_days: 10
    fabrication_lead_days: 12
min_delays:
  - step: structure
    after_step: fondation
    delay_calendar_days: 28
    reason: cure
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, c.Steps(), 2)
	assert.Equal(t, 7, c.SupplierLeadDays("fondation"))
	assert.Equal(t, 12, c.FabricationLeadDays("structure"))
	rule, ok := c.MinDelay("structure")
	require.True(t, ok)
	assert.Equal(t, 28, rule.DelayCalendarDays)
	trade, _ := c.Trade("structure")
	assert.Equal(t, domain.TradeOther, trade)
}

func TestLoadFile_JSONRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	body := `{"steps":[{"id":"a","title":"A","phase":"gros_oeuvre","default_days":1,"couleur":"x"}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "unsupported file extension")
}

func TestLoadReferences(t *testing.T) {
	c := Default()
	path := filepath.Join(t.TempDir(), "refs.yaml")
	body := `
references:
  - step: gypse
    base_days: 8
    base_square_footage: 2000
    min_days: 4
    max_days: 16
    scaling_factor: 0.8
  - step: peinture
    base_days: 5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	refs, err := c.LoadReferences(path)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "gypse", refs[0].StepID)
	assert.Equal(t, 16, refs[0].ResolvedMaxDays())
	assert.Equal(t, 15, refs[1].ResolvedMaxDays())
	assert.Equal(t, 1.0, refs[1].ResolvedScalingFactor())
}

func TestReferences_Rejects(t *testing.T) {
	c := Default()
	four, two := 4, 2

	tests := []struct {
		name string
		rows []ReferenceRow
	}{
		{"empty", nil},
		{"unknown step", []ReferenceRow{{Step: "piscine", BaseDays: 3}}},
		{"duplicate", []ReferenceRow{{Step: "gypse", BaseDays: 3}, {Step: "gypse", BaseDays: 4}}},
		{"zero base", []ReferenceRow{{Step: "gypse", BaseDays: 0}}},
		{"min above max", []ReferenceRow{{Step: "gypse", BaseDays: 3, MinDays: &four, MaxDays: &two}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.References(ReferenceFile{References: tt.rows})
			assert.Error(t, err)
		})
	}
}
