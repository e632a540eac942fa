package adminconsole

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	domainfeedback "feedbackdesk/internal/domain/feedback"
	"feedbackdesk/internal/usecase/intake"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	selectedCardStyle = cardStyle.BorderForeground(lipgloss.Color("62"))
	nameStyle         = lipgloss.NewStyle().Bold(true)
	starStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	badgeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62")).Padding(0, 1)
	mutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// renderCard lays out one submission: header, message, custom fields and
// attachments.
func renderCard(record domainfeedback.Record, selected bool) string {
	lines := make([]string, 0, 8)

	header := nameStyle.Render(record.DisplayName())
	if strings.TrimSpace(record.Email) != "" {
		header += " " + mutedStyle.Render("<"+record.Email+">")
	}
	lines = append(lines, header)
	lines = append(lines, fmt.Sprintf("%s  %s  %s",
		starStyle.Render(domainfeedback.Stars(record.Rating)),
		badgeStyle.Render(record.Category.Label()),
		mutedStyle.Render(domainfeedback.FormatTimestamp(record.Time())),
	))
	lines = append(lines, record.Message)

	for _, field := range record.CustomFields {
		lines = append(lines, mutedStyle.Render(field.Label+":")+" "+field.Value)
	}
	if len(record.Attachments) > 0 {
		names := make([]string, 0, len(record.Attachments))
		for _, attachment := range record.Attachments {
			names = append(names, fmt.Sprintf("%s (%s)", attachment.Name, intake.Kind(attachment.Type)))
		}
		lines = append(lines, mutedStyle.Render("Attachments: ")+strings.Join(names, ", "))
	}

	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}
