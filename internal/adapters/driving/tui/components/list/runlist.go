// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

// RunList displays merge runs in a navigable list.
type RunList struct {
	runs     []domain.Run
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewRunList creates a new run list component.
func NewRunList(s *styles.Styles) *RunList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &RunList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update handles list navigation messages.
func (r *RunList) Update(msg tea.Msg) (*RunList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of runs, one per line.
func (r *RunList) View() string {
	if len(r.runs) == 0 {
		return r.styles.Muted.Render("No runs recorded")
	}

	visible := r.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.runs) {
		end = len(r.runs)
	}

	lines := make([]string, 0, end-start+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Runs (%d)", len(r.runs))), "")
	for i := start; i < end; i++ {
		line := r.formatRun(&r.runs[i])
		if i == r.selected {
			lines = append(lines, r.styles.Selected.Render("> "+line))
			continue
		}
		lines = append(lines, "  "+r.styles.RunStatus(r.runs[i].Status).Render(line))
	}
	return strings.Join(lines, "\n")
}

func (r *RunList) formatRun(run *domain.Run) string {
	id := run.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s  %-16s %-9s %s  %d homes",
		id, run.AreaID, run.Status,
		run.StartedAt.Local().Format("2006-01-02 15:04"),
		run.Stats.AlleyHomes)
}

// SetRuns replaces the runs and resets the selection.
func (r *RunList) SetRuns(runs []domain.Run) {
	r.runs = runs
	r.selected = 0
}

// Runs returns the current runs.
func (r *RunList) Runs() []domain.Run {
	return r.runs
}

// Selected returns the selected run, or nil if the list is empty.
func (r *RunList) Selected() *domain.Run {
	if len(r.runs) == 0 {
		return nil
	}
	return &r.runs[r.selected]
}

// SelectedIndex returns the selected index.
func (r *RunList) SelectedIndex() int {
	return r.selected
}

// MoveUp moves the selection up.
func (r *RunList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves the selection down.
func (r *RunList) MoveDown() {
	if r.selected < len(r.runs)-1 {
		r.selected++
	}
}

// SetSize sets the list dimensions.
func (r *RunList) SetSize(width, height int) {
	r.width = width
	r.height = height
}

// durationLabel formats a run's duration for detail panels.
func durationLabel(run *domain.Run) string {
	if run.EndedAt.IsZero() {
		return "in progress"
	}
	return run.Duration().Round(time.Millisecond).String()
}

// Detail renders a multi-line description of the selected run.
func (r *RunList) Detail() string {
	run := r.Selected()
	if run == nil {
		return ""
	}
	lines := []string{
		r.styles.Subtitle.Render(run.AreaID),
		fmt.Sprintf("Run:      %s", run.ID),
		fmt.Sprintf("Status:   %s (%s)", run.Status, durationLabel(run)),
		fmt.Sprintf("Regular:  %s", run.RegularPath),
		fmt.Sprintf("Alley:    %s", run.AlleyPath),
	}
	if run.OutputPath != "" {
		lines = append(lines, fmt.Sprintf("Output:   %s", run.OutputPath))
	}
	if run.Error != "" {
		lines = append(lines, r.styles.Error.Render("Error:    "+run.Error))
	}
	if run.Status == domain.RunSucceeded {
		s := run.Stats
		lines = append(lines,
			fmt.Sprintf("Homes:    %d (%d residential, %d business)", s.AlleyHomes, s.Residential, s.Business),
			fmt.Sprintf("Matched:  %d inherited, %d FAT, %d hooks", s.Inherited, s.ZoneAssigned, s.HookLinked),
		)
	}
	return strings.Join(lines, "\n")
}
