// Package scheduler is the schedule generation and recalculation engine.
// Everything here is pure computation over in-memory entries: callers load
// a snapshot, run one operation, and persist the returned entries.
package scheduler

import (
	"errors"

	"github.com/alexanderramin/chantier/internal/catalog"
)

// Sentinel errors returned by engine operations; the service layer maps them
// to use-case error codes.
var (
	ErrEntryNotFound     = errors.New("schedule entry not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidInput      = errors.New("invalid input")
)

// Engine applies the catalog rules. It holds no mutable state.
type Engine struct {
	cat *catalog.Catalog
}

// NewEngine returns an engine bound to cat.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// Catalog returns the step catalog the engine schedules against.
func (en *Engine) Catalog() *catalog.Catalog {
	return en.cat
}
