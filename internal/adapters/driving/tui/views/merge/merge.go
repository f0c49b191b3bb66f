// Package merge provides the merge form and progress view for the TUI.
package merge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driving"
)

// Form field indices.
const (
	fieldRegular = iota
	fieldAlley
	fieldArea
	fieldCount
)

// updateBuffer bounds queued progress messages; extra notifications are dropped.
const updateBuffer = 64

// reportCycle is the order ctrl+o steps through report formats.
var reportCycle = []domain.ReportFormat{domain.ReportNone, domain.ReportXLSX, domain.ReportCSV}

type phase int

const (
	phaseForm phase = iota
	phaseRunning
	phaseDone
)

// View collects merge inputs, runs the merge and shows progress.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.MergeService

	fields []*input.Field
	focus  int
	report domain.ReportFormat

	phase   phase
	bar     progress.Model
	percent float64
	message string
	updates chan tea.Msg
	result  *domain.MergeResult
	err     error
	width   int
	height  int
}

// NewView creates a merge view backed by the given service.
func NewView(s *styles.Styles, service driving.MergeService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	fields := make([]*input.Field, fieldCount)
	fields[fieldRegular] = input.NewField(s, "Regular KMZ", "/path/to/regular.kmz")
	fields[fieldAlley] = input.NewField(s, "Alley KMZ", "/path/to/alley.kmz")
	fields[fieldArea] = input.NewField(s, "Area ID", "e.g. JKT-001")

	theme := s.Theme()
	return &View{
		ctx:     context.Background(),
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		service: service,
		fields:  fields,
		report:  domain.ReportNone,
		bar:     progress.New(progress.WithGradient(theme.ProgressFrom, theme.ProgressTo)),
		width:   80,
		height:  24,
	}
}

// SetContext sets the context merges run under.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init focuses the first empty field.
func (v *View) Init() tea.Cmd {
	for i, f := range v.fields {
		if f.Value() == "" {
			return v.setFocus(i)
		}
	}
	return v.setFocus(0)
}

// Update handles messages for the merge view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.MergeProgress:
		if v.phase != phaseRunning {
			return v, nil
		}
		v.percent = msg.Percent
		v.message = msg.Message
		return v, listen(v.updates)

	case messages.MergeCompleted:
		v.phase = phaseDone
		v.updates = nil
		v.result = msg.Result
		v.err = msg.Err
		if msg.Err == nil {
			v.percent = 100
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch v.phase {
	case phaseRunning:
		// Keys are ignored until the merge reports back.
		return v, nil
	case phaseDone:
		switch {
		case keymap.Matches(k, v.keymap.Back):
			return v, backToMenu
		case keymap.Matches(k, v.keymap.Select):
			v.phase = phaseForm
			v.err = nil
			v.result = nil
			return v, v.setFocus(fieldArea)
		}
		return v, nil
	case phaseForm:
	}

	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, backToMenu
	case keymap.Matches(k, v.keymap.Report):
		v.report = nextReport(v.report)
		return v, nil
	case k == "tab" || k == "down":
		return v, v.setFocus((v.focus + 1) % fieldCount)
	case k == "shift+tab" || k == "up":
		return v, v.setFocus((v.focus + fieldCount - 1) % fieldCount)
	case k == "enter" && v.focus < fieldArea:
		return v, v.setFocus(v.focus + 1)
	case keymap.Matches(k, v.keymap.Run):
		return v, v.submit()
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd
}

func backToMenu() tea.Msg {
	return messages.ViewChanged{View: messages.ViewMenu}
}

func nextReport(current domain.ReportFormat) domain.ReportFormat {
	for i, f := range reportCycle {
		if f == current {
			return reportCycle[(i+1)%len(reportCycle)]
		}
	}
	return reportCycle[0]
}

func (v *View) setFocus(i int) tea.Cmd {
	for _, f := range v.fields {
		f.Blur()
	}
	v.focus = i
	return v.fields[i].Focus()
}

// Request builds a merge request from the form.
func (v *View) Request() domain.MergeRequest {
	return domain.MergeRequest{
		RegularPath:  strings.TrimSpace(v.fields[fieldRegular].Value()),
		AlleyPath:    strings.TrimSpace(v.fields[fieldAlley].Value()),
		AreaID:       strings.TrimSpace(v.fields[fieldArea].Value()),
		ReportFormat: v.report,
	}
}

func (v *View) submit() tea.Cmd {
	if v.service == nil {
		v.phase = phaseDone
		v.err = errors.New("merge service not available")
		return nil
	}
	req := v.Request()
	if err := req.Validate(); err != nil {
		v.err = err
		return nil
	}

	v.phase = phaseRunning
	v.err = nil
	v.result = nil
	v.percent = 0
	v.message = "Starting"
	for _, f := range v.fields {
		f.Blur()
	}

	v.updates = make(chan tea.Msg, updateBuffer)
	started := func() tea.Msg { return messages.MergeStarted{Request: req} }
	return tea.Batch(started, v.run(req, v.updates))
}

// run starts the merge in the background and returns its first message.
func (v *View) run(req domain.MergeRequest, updates chan tea.Msg) tea.Cmd {
	ctx, service := v.ctx, v.service
	return func() tea.Msg {
		go func() {
			defer close(updates)
			report := func(percent float64, message string) {
				select {
				case updates <- messages.MergeProgress{Percent: percent, Message: message}:
				default:
				}
			}
			result, err := service.Merge(ctx, req, report)
			updates <- messages.MergeCompleted{Result: result, Err: err}
		}()
		return <-updates
	}
}

// listen waits for the next merge message.
func listen(updates <-chan tea.Msg) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-updates
		if !ok {
			return nil
		}
		return msg
	}
}

// View renders the merge view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Merge KMZ"))
	b.WriteString("\n\n")

	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Label.Render("Report"))
	b.WriteString(v.styles.Normal.Render(v.report.Description()))
	b.WriteString("\n\n")

	switch v.phase {
	case phaseRunning:
		b.WriteString(v.bar.ViewAs(v.percent / 100))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%3.0f%% %s", v.percent, v.message)))
		b.WriteString("\n")
	case phaseDone:
		b.WriteString(v.renderOutcome())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] new merge  [esc] menu"))
		return b.String()
	case phaseForm:
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(v.err.Error()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[tab] next field  [ctrl+o] report  [enter] merge  [esc] menu"))
	return b.String()
}

func (v *View) renderOutcome() string {
	if v.err != nil {
		return v.styles.Error.Render("Merge failed: " + v.err.Error())
	}
	if v.result == nil {
		return ""
	}

	r := v.result
	s := r.Stats
	lines := []string{
		v.styles.Success.Render("Merge complete"),
		fmt.Sprintf("Output:    %s", r.OutputPath),
	}
	if r.ReportPath != "" {
		lines = append(lines, fmt.Sprintf("Report:    %s", r.ReportPath))
	}
	if r.PublishedURL != "" {
		lines = append(lines, fmt.Sprintf("Published: %s", r.PublishedURL))
	}
	lines = append(lines,
		fmt.Sprintf("Homes:     %d (%d residential, %d business)", s.AlleyHomes, s.Residential, s.Business),
		fmt.Sprintf("Inherited: %d of %d regular", s.Inherited, s.RegularHomes),
		fmt.Sprintf("FAT zones: %d of %d boundaries", s.ZoneAssigned, s.Boundaries),
		fmt.Sprintf("Hooks:     %d of %d", s.HookLinked, s.Hooks),
	)
	return v.styles.Panel.Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, f := range v.fields {
		f.SetWidth(width - 4)
	}
	v.bar.Width = width - 8
	if v.bar.Width < 20 {
		v.bar.Width = 20
	}
}

// Running reports whether a merge is in progress.
func (v *View) Running() bool {
	return v.phase == phaseRunning
}

// Result returns the last merge result.
func (v *View) Result() *domain.MergeResult {
	return v.result
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Percent returns the last reported progress.
func (v *View) Percent() float64 {
	return v.percent
}

// Reset clears outcome state but keeps the entered paths.
func (v *View) Reset() {
	if v.phase == phaseRunning {
		return
	}
	v.phase = phaseForm
	v.err = nil
	v.result = nil
	v.percent = 0
	v.message = ""
}
