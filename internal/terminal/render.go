// Package terminal renders chat replies for the command-line host.
package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/agentoven/deploychat/pkg/models"
)

// Styles groups the lipgloss styles used around the markdown body.
type Styles struct {
	Heading    lipgloss.Style
	Suggestion lipgloss.Style
	Action     lipgloss.Style
	Muted      lipgloss.Style
}

// DefaultStyles returns the stock palette.
func DefaultStyles() Styles {
	return Styles{
		Heading:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Action: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Renderer turns a ChatReply into terminal output.
type Renderer struct {
	markdown *glamour.TermRenderer
	styles   Styles
}

// NewRenderer creates a renderer wrapping markdown at width columns.
// plain disables glamour styling (useful when stdout is not a terminal).
func NewRenderer(width int, plain bool) (*Renderer, error) {
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	md, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return &Renderer{markdown: md, styles: DefaultStyles()}, nil
}

// Render returns the printable form of a reply.
func (r *Renderer) Render(reply models.ChatReply) string {
	var b strings.Builder
	b.WriteString(r.safeMarkdown(reply.Response))

	if len(reply.Suggestions) > 0 {
		b.WriteString(r.styles.Heading.Render("Try next:"))
		b.WriteString("\n")
		for _, s := range reply.Suggestions {
			b.WriteString("  ")
			b.WriteString(r.styles.Suggestion.Render("› " + s))
			b.WriteString("\n")
		}
	}

	if len(reply.Actions) > 0 {
		buttons := make([]string, 0, len(reply.Actions))
		for _, a := range reply.Actions {
			buttons = append(buttons, r.styles.Action.Render(a.Label))
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, buttons...))
		b.WriteString("\n")
		for _, a := range reply.Actions {
			b.WriteString(r.styles.Muted.Render(fmt.Sprintf("  %s → %s", a.Label, a.Action)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// safeMarkdown renders markdown, falling back to the raw text if glamour
// fails or panics.
func (r *Renderer) safeMarkdown(content string) (result string) {
	defer func() {
		if rec := recover(); rec != nil {
			result = content + "\n"
		}
	}()
	out, err := r.markdown.Render(content)
	if err != nil {
		return content + "\n"
	}
	return out
}
