// Package report renders check results in the supported output formats.
package report

import (
	"encoding/json"
	"fixturecheck/internal/core/config"
	"fixturecheck/internal/core/errors"
	"fixturecheck/internal/core/ports"
	"fixturecheck/internal/engine/checker"
	"fixturecheck/internal/ui/report/formats"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// CleanMessage is printed by human-readable formats when nothing was found.
const CleanMessage = "All types are correct!"

var (
	_ ports.Reporter = (*Renderer)(nil)
)

// Renderer writes a CheckResult in one format.
type Renderer struct {
	Format string
	// ProjectRoot makes SARIF URIs relative.
	ProjectRoot string
}

func New(format string) (*Renderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = config.FormatTable
	}
	for _, f := range config.OutputFormats {
		if f == format {
			return &Renderer{Format: format}, nil
		}
	}
	return nil, errors.AddContext(
		errors.Newf(errors.CodeValidationError, "unknown output format %q (valid: %s)", format, strings.Join(config.OutputFormats, ", ")),
		errors.CtxField, "format",
	)
}

func (r *Renderer) Render(w io.Writer, result ports.CheckResult) error {
	diags := result.Diagnostics
	if diags == nil {
		diags = []checker.Diagnostic{}
	}

	switch r.Format {
	case config.FormatTable:
		return writeString(w, RenderTable(diags))
	case config.FormatText:
		return writeString(w, RenderText(diags))
	case config.FormatJSON:
		data, err := json.MarshalIndent(newDocument(result, diags), "", "  ")
		if err != nil {
			return err
		}
		return writeString(w, string(data)+"\n")
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(result, diags)); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatSARIF:
		data, err := formats.GenerateSARIF(r.ProjectRoot, diags)
		if err != nil {
			return err
		}
		return writeString(w, string(data)+"\n")
	case config.FormatTSV:
		out, err := formats.GenerateDiagnosticsTSV(diags)
		if err != nil {
			return err
		}
		return writeString(w, out)
	}
	return errors.Newf(errors.CodeNotSupported, "unsupported format %q", r.Format)
}

// document is the machine-readable shape shared by JSON and YAML output.
type document struct {
	RunID       string               `json:"run_id" yaml:"run_id"`
	Files       int                  `json:"files" yaml:"files"`
	DurationMS  int64                `json:"duration_ms" yaml:"duration_ms"`
	Counts      map[string]int       `json:"counts" yaml:"counts"`
	Diagnostics []checker.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

func newDocument(result ports.CheckResult, diags []checker.Diagnostic) document {
	counts := make(map[string]int, len(checker.Kinds))
	for kind, n := range checker.CountByKind(diags) {
		counts[string(kind)] = n
	}
	return document{
		RunID:       result.RunID,
		Files:       len(result.Files),
		DurationMS:  result.Duration.Milliseconds(),
		Counts:      counts,
		Diagnostics: diags,
	}
}

// RenderText prints one "file:line: message" line per diagnostic.
func RenderText(diags []checker.Diagnostic) string {
	if len(diags) == 0 {
		return CleanMessage + "\n"
	}
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	b.WriteString(summaryLine(diags))
	return b.String()
}

func summaryLine(diags []checker.Diagnostic) string {
	counts := checker.CountByKind(diags)
	parts := make([]string, 0, len(checker.Kinds))
	for _, kind := range checker.Kinds {
		if counts[kind] > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", kind, counts[kind]))
		}
	}
	noun := "problems"
	if len(diags) == 1 {
		noun = "problem"
	}
	return fmt.Sprintf("\n%d %s (%s)\n", len(diags), noun, strings.Join(parts, ", "))
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
