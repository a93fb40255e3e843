// Package styles holds the lipgloss styles shared by the CLI commands.
package styles

import (
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
)

// Fixed palette. The CLI renders the same on every terminal profile.
const (
	colorAccent  = "#7D56F4"
	colorTitle   = "#FAFAFA"
	colorNormal  = "#DDDDDD"
	colorSubtle  = "#888888"
	colorErrorFg = "#FF5F87"
	colorOkFg    = "#5FD787"
	colorWarnFg  = "#FFAF5F"
)

// CardWidth is the rendered width of detail cards.
const CardWidth = 80

var (
	// Card styles
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorAccent)).
			Padding(1, 2).
			Width(CardWidth)

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorTitle))

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSubtle))

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorNormal))

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)).
			Bold(true).
			MarginTop(1)

	// Status styles
	CompletedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorOkFg))

	InProgressStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorWarnFg))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorErrorFg))
)

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}

// RenderStatus renders a status name colored by where it sits in the
// workflow: completed green, in-progress amber, everything else plain.
func RenderStatus(name string, isCompleted, isInProgress bool) string {
	switch {
	case isCompleted:
		return CompletedStyle.Render(name)
	case isInProgress:
		return InProgressStyle.Render(name)
	default:
		return ValueStyle.Render(name)
	}
}

// Cache glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderDescription renders a markdown description for terminal display.
// Falls back to the raw text if glamour fails.
func RenderDescription(description string, width int) string {
	if description == "" {
		return SubtitleStyle.Italic(true).Render("No description")
	}

	renderer, err := getRenderer(width)
	if err == nil {
		if rendered, err := renderer.Render(description); err == nil {
			return strings.TrimSpace(rendered)
		}
	}
	return description
}
