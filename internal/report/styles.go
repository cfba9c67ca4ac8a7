package report

import "github.com/charmbracelet/lipgloss"

// Styles used by the issue printer and the coverage summary. Colors are ANSI
// indexes so lipgloss can downgrade them on limited terminals.
var (
	// StyleLocation marks file:line:col prefixes and section headers.
	StyleLocation = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	// StyleFailing colors the summary when strict mode turned missing selectors into errors.
	StyleFailing = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	// StyleWarning colors carets and a summary with uncovered selectors.
	StyleWarning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	// StyleClean colors a summary where every selector has a rule.
	StyleClean = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	// StyleMuted is for the (unocheck) suffix and the generator hint.
	StyleMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderStyle renders text with style, or returns it as is when colors are off.
func RenderStyle(style lipgloss.Style, text string, useColors bool) string {
	if useColors {
		return style.Render(text)
	}
	return text
}
