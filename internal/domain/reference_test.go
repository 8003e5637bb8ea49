package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestReferenceDuration_Defaults(t *testing.T) {
	r := &ReferenceDuration{StepID: "fondation", BaseDays: 10}
	assert.Equal(t, 2000.0, r.ResolvedBaseSquareFootage())
	assert.Equal(t, 1.0, r.ResolvedScalingFactor())
	assert.Equal(t, 1, r.ResolvedMinDays())
	assert.Equal(t, 30, r.ResolvedMaxDays())
}

func TestReferenceDuration_ExplicitValues(t *testing.T) {
	r := &ReferenceDuration{
		StepID:            "fondation",
		BaseDays:          10,
		BaseSquareFootage: floatPtr(1500),
		MinDays:           intPtr(4),
		MaxDays:           intPtr(12),
		ScalingFactor:     floatPtr(0),
	}
	assert.Equal(t, 1500.0, r.ResolvedBaseSquareFootage())
	assert.Equal(t, 0.0, r.ResolvedScalingFactor())
	assert.Equal(t, 4, r.ResolvedMinDays())
	assert.Equal(t, 12, r.ResolvedMaxDays())
}

func TestReferenceDuration_ZeroBaseSquareFootageFallsBack(t *testing.T) {
	r := &ReferenceDuration{StepID: "x", BaseDays: 3, BaseSquareFootage: floatPtr(0)}
	assert.Equal(t, DefaultBaseSquareFootage, r.ResolvedBaseSquareFootage())
}

func TestReferenceDuration_Validate(t *testing.T) {
	cases := []struct {
		name string
		ref  ReferenceDuration
		ok   bool
	}{
		{"valid", ReferenceDuration{StepID: "a", BaseDays: 5}, true},
		{"missing step", ReferenceDuration{BaseDays: 5}, false},
		{"zero base", ReferenceDuration{StepID: "a", BaseDays: 0}, false},
		{"negative scaling", ReferenceDuration{StepID: "a", BaseDays: 5, ScalingFactor: floatPtr(-1)}, false},
		{"min over max", ReferenceDuration{StepID: "a", BaseDays: 5, MinDays: intPtr(9), MaxDays: intPtr(6)}, false},
		{"min over default max", ReferenceDuration{StepID: "a", BaseDays: 2, MinDays: intPtr(7)}, false},
		{"zero min", ReferenceDuration{StepID: "a", BaseDays: 2, MinDays: intPtr(0)}, false},
	}
	for _, tc := range cases {
		err := tc.ref.Validate()
		if tc.ok {
			assert.NoError(t, err, tc.name)
		} else {
			assert.Error(t, err, tc.name)
		}
	}
}
