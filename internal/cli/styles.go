package cli

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tablero/internal/config/colors"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 60

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Board:", "Version:"
	ValueStyle    lipgloss.Style // For field values
	OrderStyle    lipgloss.Style // For the order index in front of list rows

	// Status styles
	SuccessStyle  lipgloss.Style
	ErrorStyle    lipgloss.Style
	ArchivedStyle lipgloss.Style
)

// InitStyles initializes all CLI styles with the given color scheme
func InitStyles(c colors.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Accent)).
		Padding(0, 1).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Normal))

	OrderStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Subtle)).
		Width(4).
		Align(lipgloss.Right)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Success))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Error))

	ArchivedStyle = lipgloss.NewStyle().
		Faint(true).
		Foreground(lipgloss.Color(c.Subtle))
}

func init() {
	InitStyles(colors.Preset(colors.PresetDefault))
}

// Field renders "Label: value"
func Field(label string, value any) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(fmt.Sprint(value))
}

// Row renders one ordered list entry: "  0. Name (ID: 7)"
func Row(order int, name string, id int) string {
	return OrderStyle.Render(fmt.Sprintf("%d.", order)) + " " +
		ValueStyle.Render(name) + " " +
		SubtitleStyle.Render(fmt.Sprintf("(ID: %d)", id))
}

// Done renders a success line
func Done(format string, args ...any) string {
	return SuccessStyle.Render("✓") + " " + fmt.Sprintf(format, args...)
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
