package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "STAGE", "SQFT", "TARGET"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			p.DisplayID(),
			Bold(p.Name),
			stageLabel(p.CurrentStage),
			sqftLabel(p.SquareFootage),
			FormatDate(p.TargetStartDate),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// ProjectInspectData holds what the project inspect view shows.
type ProjectInspectData struct {
	Project      *domain.Project
	Entries      []*domain.ScheduleEntry
	ActiveAlerts int
}

// FormatProjectInspect renders a project card with a schedule summary.
func FormatProjectInspect(data ProjectInspectData) string {
	p := data.Project
	var done, locked int
	for _, e := range data.Entries {
		if e.IsCompleted() {
			done++
		}
		if e.IsManualDate {
			locked++
		}
	}

	lines := []string{
		fmt.Sprintf("%s  %s", Bold(p.Name), Dim("["+p.DisplayID()+"]")),
		"",
		kv("Stage", stageLabel(p.CurrentStage)),
		kv("Size", sqftLabel(p.SquareFootage)),
		kv("Target start", FormatDate(p.TargetStartDate)),
		kv("Steps", fmt.Sprintf("%d (%d done, %d locked)", len(data.Entries), done, locked)),
		kv("Alerts", fmt.Sprintf("%d active", data.ActiveAlerts)),
	}
	if n := len(data.Entries); n > 0 {
		first, last := data.Entries[0], data.Entries[n-1]
		lines = append(lines, kv("Window", FormatDate(first.StartDate)+" → "+FormatDate(last.EndDate)))
	}
	return RenderBox("Project", strings.Join(lines, "\n"))
}

func kv(key, value string) string {
	return lipgloss.NewStyle().Width(14).Render(Dim(key)) + value
}

func stageLabel(stage string) string {
	if stage == "" {
		return Dim("start")
	}
	return stage
}

func sqftLabel(sqft *float64) string {
	if sqft == nil {
		return Dim("--")
	}
	return fmt.Sprintf("%.0f pi²", *sqft)
}
