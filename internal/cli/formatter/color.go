package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill renders an entry status with its color.
func StatusPill(status domain.EntryStatus) string {
	switch status {
	case domain.EntryCompleted:
		return StyleGreen.Render("● done")
	case domain.EntryInProgress:
		return StyleYellow.Render("● in progress")
	case domain.EntryScheduled:
		return StyleBlue.Render("○ scheduled")
	default:
		return StyleDim.Render("○ pending")
	}
}

// TradeSwatch renders the trade name preceded by a block in the trade color.
// Colors that lipgloss cannot parse fall back to the dim color.
func TradeSwatch(trade, color string) string {
	c := ColorDim
	if strings.HasPrefix(color, "#") {
		c = lipgloss.Color(color)
	}
	return lipgloss.NewStyle().Foreground(c).Render("■") + " " + trade
}

// LockMark is shown next to entries whose dates were set by hand.
func LockMark(locked bool) string {
	if locked {
		return StylePurple.Render("locked")
	}
	return ""
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
