package probe

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor = lipgloss.Color("#2DA44E")
	errorColor  = lipgloss.Color("#CF222E")
	dimColor    = lipgloss.Color("#6E7681")
	linkColor   = lipgloss.Color("#58A6FF")
	sourceColor = lipgloss.Color("#FFA657")

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0969DA")).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(dimColor)

	okStyle     = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	sourceStyle = lipgloss.NewStyle().Foreground(sourceColor)
	linkStyle   = lipgloss.NewStyle().Foreground(linkColor).Underline(true)
	dimStyle    = lipgloss.NewStyle().Foreground(dimColor)
)

func renderHeader(target string) string {
	return "\n" + headerStyle.Render("Testing: "+target)
}

func renderError(err error) string {
	return errStyle.Render("Error: ") + err.Error()
}

func renderFooter() string {
	return "\n" + okStyle.Render("Testing complete!")
}

func renderResult(res *Result) string {
	var b strings.Builder

	status := okStyle
	if res.Status >= 400 {
		status = errStyle
	}
	fmt.Fprintf(&b, "%s %d\n", status.Render("Status:"), res.Status)
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("Success:"), optionalBool(res.Success))
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("Count:"), optionalInt(res.Count))
	if res.Error != "" {
		fmt.Fprintf(&b, "%s %s\n", errStyle.Render("Error:"), res.Error)
	}

	b.WriteString("\nFirst 3 results:\n")
	data := res.Data
	if len(data) > previewCount {
		data = data[:previewCount]
	}
	for _, item := range data {
		fmt.Fprintf(&b, "\n  - %s\n", titleStyle.Render(item.Title))
		fmt.Fprintf(&b, "    Source: %s\n", sourceStyle.Render(item.Posts))
		fmt.Fprintf(&b, "    Difficulty: %s\n", item.Difficulty)
		fmt.Fprintf(&b, "    Link: %s\n", linkStyle.Render(truncateLink(item.Link)))
	}
	return b.String()
}

func optionalBool(v *bool) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprintf("%t", *v)
}

func optionalInt(v *int) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprintf("%d", *v)
}
