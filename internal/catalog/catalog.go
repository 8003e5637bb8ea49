// Package catalog holds the static construction step catalog and the
// declarative tables the schedule engine consults: trades, lead times,
// minimum delays and measurement requirements. A Catalog is built once and
// injected; nothing in this package is process-wide mutable state.
package catalog

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/chantier/internal/domain"
)

// ErrUnknownStep is returned for step identifiers absent from the catalog.
var ErrUnknownStep = errors.New("unknown step")

// MinDelayRule forces a step to start no earlier than AfterStep's end plus
// DelayCalendarDays wall-clock days (e.g. concrete cure time).
type MinDelayRule struct {
	AfterStep         string
	DelayCalendarDays int
	Reason            string
}

// MeasurementRule is informational: the step needs on-site measurements
// taken once AfterStep is done.
type MeasurementRule struct {
	AfterStep string
	Notes     string
}

// Catalog is read-only after New returns.
type Catalog struct {
	steps                   []domain.ConstructionStep
	index                   map[string]int
	trades                  map[string]string
	tradeColors             map[string]string
	supplierLeadDays        map[string]int
	defaultSupplierLeadDays int
	fabricationLeadDays     map[string]int
	contactLeadDays         map[string]int
	minDelays               map[string]MinDelayRule
	measurements            map[string]MeasurementRule
}

// Steps returns a copy of the catalog steps in catalog order.
func (c *Catalog) Steps() []domain.ConstructionStep {
	out := make([]domain.ConstructionStep, len(c.steps))
	copy(out, c.steps)
	return out
}

// Lookup returns the step with the given id or an ErrUnknownStep error.
func (c *Catalog) Lookup(stepID string) (domain.ConstructionStep, error) {
	i, ok := c.index[stepID]
	if !ok {
		return domain.ConstructionStep{}, fmt.Errorf("%w: %q", ErrUnknownStep, stepID)
	}
	return c.steps[i], nil
}

func (c *Catalog) Has(stepID string) bool {
	_, ok := c.index[stepID]
	return ok
}

// Position is the 1-based catalog order of a step, 0 when unknown.
func (c *Catalog) Position(stepID string) int {
	i, ok := c.index[stepID]
	if !ok {
		return 0
	}
	return c.steps[i].Position
}

// StepsFrom returns the steps still to schedule for a project at the given
// stage: the stage step and everything after it. An empty stage returns
// every step.
func (c *Catalog) StepsFrom(stage string) ([]domain.ConstructionStep, error) {
	if stage == "" {
		return c.Steps(), nil
	}
	i, ok := c.index[stage]
	if !ok {
		return nil, fmt.Errorf("current stage: %w: %q", ErrUnknownStep, stage)
	}
	out := make([]domain.ConstructionStep, len(c.steps)-i)
	copy(out, c.steps[i:])
	return out, nil
}

// IsPreparation reports whether stepID is a known preparation step.
func (c *Catalog) IsPreparation(stepID string) bool {
	i, ok := c.index[stepID]
	return ok && c.steps[i].IsPreparation()
}

// Partition splits steps into preparation and construction steps, keeping order.
func Partition(steps []domain.ConstructionStep) (prep, construction []domain.ConstructionStep) {
	for _, s := range steps {
		if s.IsPreparation() {
			prep = append(prep, s)
		} else {
			construction = append(construction, s)
		}
	}
	return prep, construction
}

// Trade returns the trade and display color of a step, falling back to the
// catch-all trade when unmapped.
func (c *Catalog) Trade(stepID string) (trade, color string) {
	trade = domain.CoalesceStr(c.trades[stepID], domain.TradeOther)
	return trade, c.TradeColor(trade)
}

func (c *Catalog) TradeColor(trade string) string {
	if color, ok := c.tradeColors[trade]; ok {
		return color
	}
	return c.tradeColors[domain.TradeOther]
}

// Trades returns the trade -> color table.
func (c *Catalog) Trades() map[string]string {
	out := make(map[string]string, len(c.tradeColors))
	for k, v := range c.tradeColors {
		out[k] = v
	}
	return out
}

// SupplierLeadDays is the per-step supplier lead, else the global default.
func (c *Catalog) SupplierLeadDays(stepID string) int {
	if v, ok := c.supplierLeadDays[stepID]; ok {
		return v
	}
	return c.defaultSupplierLeadDays
}

// FabricationLeadDays is the per-step fabrication lead, else 0.
func (c *Catalog) FabricationLeadDays(stepID string) int {
	return c.fabricationLeadDays[stepID]
}

// ContactLeadDays is the per-step subcontractor contact lead, else 0.
func (c *Catalog) ContactLeadDays(stepID string) int {
	return c.contactLeadDays[stepID]
}

func (c *Catalog) MinDelay(stepID string) (MinDelayRule, bool) {
	r, ok := c.minDelays[stepID]
	return r, ok
}

func (c *Catalog) Measurement(stepID string) (MeasurementRule, bool) {
	r, ok := c.measurements[stepID]
	return r, ok
}

// DefaultDays is the static fallback duration of a step.
func (c *Catalog) DefaultDays(stepID string) (int, error) {
	s, err := c.Lookup(stepID)
	if err != nil {
		return 0, err
	}
	return s.DefaultDays, nil
}
