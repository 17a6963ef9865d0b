package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/matsen/ris2bib/internal/config"
	"github.com/matsen/ris2bib/internal/warning"
)

var (
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// outputJSON writes a value as formatted JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportError writes err to w in the appropriate format (human or JSON).
func reportError(w io.Writer, err error) {
	if humanOutput {
		fmt.Fprintf(w, "%s %v\n", errorStyle.Render("error:"), err)
		return
	}
	outputJSON(w, ErrorResponse{Error: err.Error()})
}

// warningPrinter streams warnings to w as they occur.
type warningPrinter struct {
	w io.Writer
}

func (p *warningPrinter) Observe(wn warning.Warning) {
	prefix := "[warn]"
	if humanOutput {
		prefix = warnStyle.Render(prefix)
	}
	fmt.Fprintf(p.w, "%s %s\n", prefix, wn)
}

// StatusResponse reports a conversion written to a file.
type StatusResponse struct {
	Status   string `json:"status"`
	Path     string `json:"path,omitempty"`
	Records  int    `json:"records"`
	Skipped  int    `json:"skipped,omitempty"`
	Warnings int    `json:"warnings"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	Path   string         `json:"path"`
	Exists bool           `json:"exists"`
	Config *config.Config `json:"config"`
}

func printStatus(w io.Writer, s StatusResponse) {
	if !humanOutput {
		outputJSON(w, s)
		return
	}
	msg := fmt.Sprintf("Wrote %d %s to %s", s.Records, plural(s.Records, "record", "records"), s.Path)
	if s.Skipped > 0 {
		msg += fmt.Sprintf(" (%d already present)", s.Skipped)
	}
	fmt.Fprintln(w, okStyle.Render(msg))
	if s.Warnings > 0 {
		fmt.Fprintf(w, "%d %s\n", s.Warnings, plural(s.Warnings, "warning", "warnings"))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
