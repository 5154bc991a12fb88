// Package render prints API results for the premium CLI.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/saleslv/premium-api/pkg/apierr"
	"github.com/saleslv/premium-api/pkg/client"
)

// Theme colors. Terminals without color support get plain text.
const (
	colorAccent = "#7aa2f7"
	colorMuted  = "#737aa2"
	colorDanger = "#f7768e"
)

type styles struct {
	heading lipgloss.Style
	key     lipgloss.Style
	muted   lipgloss.Style
	danger  lipgloss.Style
}

// Printer writes styled output to one writer.
type Printer struct {
	w  io.Writer
	st styles
}

// New returns a Printer for w. Color is used only when w is a terminal
// that supports it.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w: w,
		st: styles{
			heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent)),
			key:     r.NewStyle().Foreground(lipgloss.Color(colorAccent)),
			muted:   r.NewStyle().Foreground(lipgloss.Color(colorMuted)),
			danger:  r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorDanger)),
		},
	}
}

// Heading prints a section title.
func (p *Printer) Heading(title string) {
	fmt.Fprintln(p.w, p.st.heading.Render(title))
}

// Payload prints a decoded response as indented JSON, keys sorted.
func (p *Printer) Payload(v client.Payload) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("render payload: %w", err)
	}
	fmt.Fprintln(p.w, string(b))
	fmt.Fprintln(p.w, p.st.muted.Render(strings.Repeat("─", 40)))
	return nil
}

// Error prints the error state of the last call.
func (p *Printer) Error(code apierr.Code, msg string) {
	line := fmt.Sprintf("Error #%d: %s", int(code), msg)
	if msg == "" {
		line = fmt.Sprintf("Error #%d (%s)", int(code), code)
	}
	fmt.Fprintln(p.w, p.st.danger.Render(line))
}

// Debug prints the record of the last call.
func (p *Printer) Debug(rec *client.DebugRecord) {
	if rec == nil {
		return
	}
	p.field("Request", rec.ID)
	p.field("URL", rec.URL)
	p.field("Method", rec.Method)
	p.field("Transport", rec.Tier.String())
	p.field("Duration", rec.Duration.String())

	if len(rec.Params) > 0 {
		p.field("Params", "")
		for _, name := range sortedNames(rec.Params) {
			fmt.Fprintf(p.w, "  %s = %v\n", p.st.key.Render(name), rec.Params[name])
		}
	}

	if rec.Response == nil {
		p.field("Response", p.st.muted.Render("(none)"))
		return
	}
	p.field("Response", fmt.Sprintf("%d %s", rec.Response.StatusCode, rec.Response.Status))
	for _, line := range rec.Response.Headers.Lines() {
		fmt.Fprintf(p.w, "  %s\n", p.st.muted.Render(line))
	}
	fmt.Fprintf(p.w, "  %s\n", rec.Response.BodyString())
}

func (p *Printer) field(name, value string) {
	fmt.Fprintf(p.w, "%s %s\n", p.st.key.Render(name+":"), value)
}

func sortedNames(m map[string]interface{}) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
