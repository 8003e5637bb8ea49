package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// File is the on-disk catalog description (YAML or JSON).
type File struct {
	DefaultSupplierLeadDays int               `yaml:"default_supplier_lead_days" json:"default_supplier_lead_days" validate:"gte=0"`
	Trades                  []TradeFile       `yaml:"trades" json:"trades" validate:"dive"`
	Steps                   []StepFile        `yaml:"steps" json:"steps" validate:"required,min=1,dive"`
	MinDelays               []MinDelayFile    `yaml:"min_delays,omitempty" json:"min_delays,omitempty" validate:"dive"`
	Measurements            []MeasurementFile `yaml:"measurements,omitempty" json:"measurements,omitempty" validate:"dive"`
}

type TradeFile struct {
	Key   string `yaml:"key" json:"key" validate:"required"`
	Color string `yaml:"color" json:"color" validate:"required,hexcolor"`
}

type StepFile struct {
	ID                  string   `yaml:"id" json:"id" validate:"required"`
	Title               string   `yaml:"title" json:"title" validate:"required"`
	Phase               string   `yaml:"phase" json:"phase" validate:"required,oneof=preparation gros_oeuvre mecanique finition exterieur"`
	DefaultDays         int      `yaml:"default_days" json:"default_days" validate:"gte=1"`
	Trade               string   `yaml:"trade,omitempty" json:"trade,omitempty"`
	SupplierLeadDays    *int     `yaml:"supplier_lead_days,omitempty" json:"supplier_lead_days,omitempty" validate:"omitempty,gte=0"`
	FabricationLeadDays int      `yaml:"fabrication_lead_days,omitempty" json:"fabrication_lead_days,omitempty" validate:"gte=0"`
	ContactLeadDays     int      `yaml:"contact_lead_days,omitempty" json:"contact_lead_days,omitempty" validate:"gte=0"`
	Tasks               []string `yaml:"tasks,omitempty" json:"tasks,omitempty"`
}

type MinDelayFile struct {
	Step              string `yaml:"step" json:"step" validate:"required"`
	AfterStep         string `yaml:"after_step" json:"after_step" validate:"required,nefield=Step"`
	DelayCalendarDays int    `yaml:"delay_calendar_days" json:"delay_calendar_days" validate:"gte=0"`
	Reason            string `yaml:"reason,omitempty" json:"reason,omitempty"`
}

type MeasurementFile struct {
	Step      string `yaml:"step" json:"step" validate:"required"`
	AfterStep string `yaml:"after_step" json:"after_step" validate:"required,nefield=Step"`
	Notes     string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// New validates a catalog description and builds an immutable Catalog.
func New(f File) (*Catalog, error) {
	validate := validator.New()
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	c := &Catalog{
		index:                   make(map[string]int, len(f.Steps)),
		trades:                  make(map[string]string),
		tradeColors:             make(map[string]string),
		supplierLeadDays:        make(map[string]int),
		defaultSupplierLeadDays: f.DefaultSupplierLeadDays,
		fabricationLeadDays:     make(map[string]int),
		contactLeadDays:         make(map[string]int),
		minDelays:               make(map[string]MinDelayRule),
		measurements:            make(map[string]MeasurementRule),
	}

	for _, t := range f.Trades {
		if _, dup := c.tradeColors[t.Key]; dup {
			return nil, fmt.Errorf("invalid catalog: duplicate trade %q", t.Key)
		}
		c.tradeColors[t.Key] = t.Color
	}
	if _, ok := c.tradeColors[domain.TradeOther]; !ok {
		c.tradeColors[domain.TradeOther] = "#7f8c8d"
	}

	seenConstruction := false
	for i, s := range f.Steps {
		if _, dup := c.index[s.ID]; dup {
			return nil, fmt.Errorf("invalid catalog: duplicate step %q", s.ID)
		}
		phase := domain.Phase(s.Phase)
		if phase == domain.PhasePreparation && seenConstruction {
			return nil, fmt.Errorf("invalid catalog: preparation step %q listed after construction steps", s.ID)
		}
		if phase != domain.PhasePreparation {
			seenConstruction = true
		}
		if s.Trade != "" {
			if _, ok := c.tradeColors[s.Trade]; !ok {
				return nil, fmt.Errorf("invalid catalog: step %q references unknown trade %q", s.ID, s.Trade)
			}
			c.trades[s.ID] = s.Trade
		}
		c.index[s.ID] = i
		c.steps = append(c.steps, domain.ConstructionStep{
			ID:          s.ID,
			Title:       s.Title,
			Position:    i + 1,
			Phase:       phase,
			DefaultDays: s.DefaultDays,
			Tasks:       append([]string(nil), s.Tasks...),
		})
		if s.SupplierLeadDays != nil {
			c.supplierLeadDays[s.ID] = *s.SupplierLeadDays
		}
		if s.FabricationLeadDays > 0 {
			c.fabricationLeadDays[s.ID] = s.FabricationLeadDays
		}
		if s.ContactLeadDays > 0 {
			c.contactLeadDays[s.ID] = s.ContactLeadDays
		}
	}

	for _, d := range f.MinDelays {
		if err := c.checkPrecedes(d.AfterStep, d.Step, "min delay"); err != nil {
			return nil, err
		}
		if _, dup := c.minDelays[d.Step]; dup {
			return nil, fmt.Errorf("invalid catalog: step %q has more than one min delay rule", d.Step)
		}
		c.minDelays[d.Step] = MinDelayRule{AfterStep: d.AfterStep, DelayCalendarDays: d.DelayCalendarDays, Reason: d.Reason}
	}
	for _, m := range f.Measurements {
		if err := c.checkPrecedes(m.AfterStep, m.Step, "measurement"); err != nil {
			return nil, err
		}
		c.measurements[m.Step] = MeasurementRule{AfterStep: m.AfterStep, Notes: m.Notes}
	}

	return c, nil
}

// checkPrecedes enforces that rules only point backwards in catalog order,
// so a single forward pass always knows the referenced end date.
func (c *Catalog) checkPrecedes(before, after, rule string) error {
	bi, ok := c.index[before]
	if !ok {
		return fmt.Errorf("invalid catalog: %s rule references %w %q", rule, ErrUnknownStep, before)
	}
	ai, ok := c.index[after]
	if !ok {
		return fmt.Errorf("invalid catalog: %s rule references %w %q", rule, ErrUnknownStep, after)
	}
	if bi >= ai {
		return fmt.Errorf("invalid catalog: %s rule for %q must reference an earlier step, got %q", rule, after, before)
	}
	return nil
}

// LoadFile reads a catalog from a .yaml/.yml or .json file.
func LoadFile(path string) (*Catalog, error) {
	var f File
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return New(f)
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported file extension %q (use .yaml, .yml or .json)", filepath.Ext(path))
	}
	return nil
}
