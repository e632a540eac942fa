package adminconsole

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"feedbackdesk/internal/bootstrap/logging"
	domainfeedback "feedbackdesk/internal/domain/feedback"
	"feedbackdesk/internal/usecase/feedback"
)

type Options struct {
	ExportDir string
}

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeConfirmDelete
)

type adminModel struct {
	ctx       context.Context
	service   *feedback.Service
	exportDir string

	mode          mode
	filter        domainfeedback.Filter
	searchInput   string
	total         int
	items         []domainfeedback.Record
	selectedIndex int
	status        string
	quitting      bool
}

type recordsLoadedMsg struct {
	total int
	items []domainfeedback.Record
}

type actionDoneMsg struct {
	action string
	result string
	err    error
}

type loggedOutMsg struct{}

func NewAdminModel(ctx context.Context, service *feedback.Service, options Options) tea.Model {
	return &adminModel{
		ctx:       logging.WithComponent(ctx, "usecase.adminconsole"),
		service:   service,
		exportDir: strings.TrimSpace(options.ExportDir),
		status:    "loading",
	}
}

func (m *adminModel) Init() tea.Cmd {
	return m.loadRecordsCmd()
}

func (m *adminModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case recordsLoadedMsg:
		m.total = msg.total
		m.items = msg.items
		m.clampSelection()
		m.status = fmt.Sprintf("showing %d of %d", len(m.items), m.total)
		return m, nil
	case actionDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
		} else {
			m.status = fmt.Sprintf("%s: %s", msg.action, msg.result)
		}
		m.logAction(msg)
		return m, m.loadRecordsCmd()
	case loggedOutMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m *adminModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "g":
		m.status = "refreshing"
		return m, m.loadRecordsCmd()
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
		return m, nil
	case "down", "j":
		if m.selectedIndex < len(m.items)-1 {
			m.selectedIndex++
		}
		return m, nil
	case "/":
		m.mode = modeSearch
		m.searchInput = m.filter.Search
		return m, nil
	case "c":
		m.filter.Category = nextCategory(m.filter.Category)
		return m, m.loadRecordsCmd()
	case "esc":
		if !m.filter.IsZero() {
			m.filter = domainfeedback.Filter{}
			return m, m.loadRecordsCmd()
		}
		return m, nil
	case "d":
		if _, ok := m.selectedRecord(); !ok {
			m.status = "nothing selected"
			return m, nil
		}
		m.mode = modeConfirmDelete
		return m, nil
	case "e":
		return m, m.exportCmd()
	case "l":
		return m, m.logoutCmd()
	}
	return m, nil
}

func (m *adminModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeBrowse
		return m, nil
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.searchInput = ""
		m.filter.Search = ""
		return m, m.loadRecordsCmd()
	case tea.KeyBackspace:
		if m.searchInput != "" {
			runes := []rune(m.searchInput)
			m.searchInput = string(runes[:len(runes)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.searchInput += string(msg.Runes)
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	default:
		return m, nil
	}
	m.filter.Search = m.searchInput
	m.selectedIndex = 0
	return m, m.loadRecordsCmd()
}

func (m *adminModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	switch msg.String() {
	case "y", "Y":
		return m, m.deleteCmd()
	default:
		m.status = "delete canceled"
		return m, nil
	}
}

func (m *adminModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))

	var builder strings.Builder
	builder.WriteString(titleStyle.Render("Feedback Dashboard"))
	builder.WriteString("\n")
	builder.WriteString(dimStyle.Render(fmt.Sprintf(
		"search=%q category=%s total=%d",
		m.filter.Search,
		categoryFilterLabel(m.filter.Category),
		m.total,
	)))
	builder.WriteString("\n")
	if m.mode == modeSearch {
		builder.WriteString("Search: " + m.searchInput + "█\n")
	}
	builder.WriteString("\n")

	builder.WriteString(sectionStyle.Render("Submissions"))
	builder.WriteString("\n")
	if len(m.items) == 0 {
		builder.WriteString(dimStyle.Render(emptyMessage(m.total, m.filter)))
		builder.WriteString("\n\n")
	} else {
		for index, record := range m.items {
			builder.WriteString(renderCard(record, index == m.selectedIndex))
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	if m.mode == modeConfirmDelete {
		if record, ok := m.selectedRecord(); ok {
			builder.WriteString(warnStyle.Render(fmt.Sprintf("Delete feedback from %s? (y/n)", record.DisplayName())))
			builder.WriteString("\n\n")
		}
	}

	builder.WriteString(sectionStyle.Render("Status"))
	builder.WriteString("\n")
	builder.WriteString("- " + firstNonEmpty(m.status, "ready"))
	builder.WriteString("\n\n")

	keys := "Keys: ↑/k ↓/j move  / search  c category  esc clear  d delete  l logout  g refresh  q quit"
	if m.total > 0 {
		keys = strings.Replace(keys, "d delete", "d delete  e export", 1)
	}
	builder.WriteString(dimStyle.Render(keys))
	return builder.String()
}

func (m *adminModel) loadRecordsCmd() tea.Cmd {
	filter := m.filter
	return func() tea.Msg {
		all := m.service.Feedbacks()
		return recordsLoadedMsg{total: len(all), items: filter.Apply(all)}
	}
}

func (m *adminModel) deleteCmd() tea.Cmd {
	selected, ok := m.selectedRecord()
	if !ok {
		return nil
	}
	m.status = "deleting"
	return func() tea.Msg {
		if err := m.service.RequireAuthenticated(); err != nil {
			return actionDoneMsg{action: "delete", err: err}
		}
		if !m.service.DeleteFeedback(m.ctx, selected.ID) {
			return actionDoneMsg{action: "delete", err: fmt.Errorf("feedback %s not found", selected.ID)}
		}
		return actionDoneMsg{action: "delete", result: selected.ID}
	}
}

func (m *adminModel) exportCmd() tea.Cmd {
	if m.total == 0 {
		m.status = "nothing to export"
		return nil
	}
	m.status = "exporting"
	dir := m.exportDir
	return func() tea.Msg {
		if err := m.service.RequireAuthenticated(); err != nil {
			return actionDoneMsg{action: "export", err: err}
		}
		path, err := m.service.ExportToDir(m.ctx, dir)
		if err != nil {
			return actionDoneMsg{action: "export", err: err}
		}
		return actionDoneMsg{action: "export", result: path}
	}
}

func (m *adminModel) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		m.service.Logout(m.ctx)
		return loggedOutMsg{}
	}
}

func (m *adminModel) selectedRecord() (domainfeedback.Record, bool) {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.items) {
		return domainfeedback.Record{}, false
	}
	return m.items[m.selectedIndex], true
}

func (m *adminModel) clampSelection() {
	if m.selectedIndex >= len(m.items) {
		m.selectedIndex = len(m.items) - 1
	}
	if m.selectedIndex < 0 {
		m.selectedIndex = 0
	}
}

func (m *adminModel) logAction(msg actionDoneMsg) {
	if msg.err != nil {
		logging.Warn(m.ctx, "admin console action failed",
			slog.String("action", msg.action),
			slog.String("err", msg.err.Error()),
		)
		return
	}
	logging.Info(m.ctx, "admin console action",
		slog.String("action", msg.action),
		slog.String("result", msg.result),
	)
}

// nextCategory cycles "" -> bug -> ... -> other -> "".
func nextCategory(current domainfeedback.Category) domainfeedback.Category {
	categories := domainfeedback.Categories()
	if current == "" {
		return categories[0]
	}
	for i, c := range categories {
		if c == current && i+1 < len(categories) {
			return categories[i+1]
		}
	}
	return ""
}

func categoryFilterLabel(c domainfeedback.Category) string {
	if c == "" {
		return "All Categories"
	}
	return c.Label()
}

func emptyMessage(total int, filter domainfeedback.Filter) string {
	if total == 0 {
		return "No feedback submissions yet"
	}
	if !filter.IsZero() {
		return "No results found"
	}
	return "No feedback submissions yet"
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		normalized := strings.TrimSpace(value)
		if normalized != "" {
			return normalized
		}
	}
	return ""
}
