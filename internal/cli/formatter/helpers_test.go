package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/chantier/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := RenderTable(
		[]string{"A", "B"},
		[][]string{
			{StyleRed.Render("long-cell"), "x"},
			{"s", "y"},
		},
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, lipgloss.Width(lines[2]), lipgloss.Width(lines[3]))
	assert.Empty(t, RenderTable(nil, nil))
}

func TestDayCount(t *testing.T) {
	assert.Equal(t, "1 day", DayCount(1))
	assert.Equal(t, "0 days", DayCount(0))
	assert.Equal(t, "5 days", DayCount(5))
}

func TestFormatDate(t *testing.T) {
	d := day("2025-06-02")
	assert.Equal(t, "2025-06-02", FormatDate(&d))
	assert.Contains(t, FormatDate(nil), "--")
}

func TestFormatEstimate(t *testing.T) {
	sqft := 3000.0
	out := FormatEstimate(&scheduler.DurationEstimate{
		PreparationDays: 0, ConstructionDays: 74, TotalDays: 74, SquareFootage: &sqft, IsProrated: true,
	})
	assert.Contains(t, out, "74 days")
	assert.Contains(t, out, "prorated for 3000")
}
