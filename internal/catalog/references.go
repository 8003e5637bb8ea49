package catalog

import (
	"fmt"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ReferenceFile is an importable set of reference durations.
type ReferenceFile struct {
	References []ReferenceRow `yaml:"references" json:"references" validate:"required,min=1,dive"`
}

type ReferenceRow struct {
	Step              string   `yaml:"step" json:"step" validate:"required"`
	BaseDays          int      `yaml:"base_days" json:"base_days" validate:"gte=1"`
	BaseSquareFootage *float64 `yaml:"base_square_footage,omitempty" json:"base_square_footage,omitempty" validate:"omitempty,gt=0"`
	MinDays           *int     `yaml:"min_days,omitempty" json:"min_days,omitempty" validate:"omitempty,gte=1"`
	MaxDays           *int     `yaml:"max_days,omitempty" json:"max_days,omitempty" validate:"omitempty,gte=1"`
	ScalingFactor     *float64 `yaml:"scaling_factor,omitempty" json:"scaling_factor,omitempty" validate:"omitempty,gte=0"`
	Notes             string   `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// LoadReferences reads a reference duration file and checks every row
// against the catalog. Unknown steps are rejected, never skipped.
func (c *Catalog) LoadReferences(path string) ([]domain.ReferenceDuration, error) {
	var f ReferenceFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return c.References(f)
}

// References converts and validates the rows of a ReferenceFile.
func (c *Catalog) References(f ReferenceFile) ([]domain.ReferenceDuration, error) {
	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("invalid reference durations: %w", err)
	}
	seen := make(map[string]bool, len(f.References))
	out := make([]domain.ReferenceDuration, 0, len(f.References))
	for _, row := range f.References {
		if !c.Has(row.Step) {
			return nil, fmt.Errorf("reference duration: %w: %q", ErrUnknownStep, row.Step)
		}
		if seen[row.Step] {
			return nil, fmt.Errorf("reference duration: step %q listed twice", row.Step)
		}
		seen[row.Step] = true
		ref := domain.ReferenceDuration{
			StepID:            row.Step,
			BaseDays:          row.BaseDays,
			BaseSquareFootage: row.BaseSquareFootage,
			MinDays:           row.MinDays,
			MaxDays:           row.MaxDays,
			ScalingFactor:     row.ScalingFactor,
			Notes:             row.Notes,
		}
		if err := ref.Validate(); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}
