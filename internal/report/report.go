// Package report renders import outcomes for operators.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/amsterdam/sensorregister/internal/logging"
)

// MaxErrors is the number of errors listed before the rest is summarized.
const MaxErrors = 10

// Report summarizes one import run.
type Report struct {
	Source          string
	Created         int
	Updated         int
	Deleted         int
	Errors          []string
	WithoutLocation []string
	FinishedAt      time.Time
}

// Sink receives a report after every import.
type Sink interface {
	Notify(ctx context.Context, r Report) error
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "en"
}

var body = template.Must(template.New("report").Funcs(template.FuncMap{
	"plural": plural,
	"shown": func(errs []string) []string {
		if len(errs) > MaxErrors {
			return errs[:MaxErrors]
		}
		return errs
	},
	"hidden": func(errs []string) int {
		return max(len(errs)-MaxErrors, 0)
	},
}).Parse(`Import rapportage voor {{.Source}}
{{.Created}} sensoren aangemaakt
{{.Updated}} sensoren bijgewerkt
{{- if .Deleted}}
{{.Deleted}} sensoren verwijderd
{{- end}}
{{- with .Errors}}
{{len .}} fout{{plural (len .)}} gevonden:
{{- range shown .}}
- {{.}}
{{- end}}
{{- with hidden .}}
+ nog {{.}} fout{{plural .}}
{{- end}}
{{- end}}
{{- with .WithoutLocation}}
De volgende sensoren hebben geen lat/long, en kunnen dus niet op de kaart getoond worden:
{{- range .}}
- {{.}}
{{- end}}
{{- end}}
`))

// Render writes the operator facing text of r to w.
func Render(w io.Writer, r Report) error {
	if err := body.Execute(w, r); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

func (r Report) String() string {
	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		return err.Error()
	}
	return buf.String()
}

// LogSink writes reports to the context logger.
type LogSink struct{}

func (LogSink) Notify(ctx context.Context, r Report) error {
	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		return err
	}

	event := logging.FromContext(ctx).Info()
	if len(r.Errors) > 0 {
		event = logging.FromContext(ctx).Warn()
	}
	event.
		Str("source", r.Source).
		Int("created", r.Created).
		Int("updated", r.Updated).
		Int("deleted", r.Deleted).
		Int("errors", len(r.Errors)).
		Str("report", buf.String()).
		Msg("import finished")
	return nil
}

// WriterSink writes rendered reports to W, e.g. stdout for the CLI.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Notify(_ context.Context, r Report) error {
	return Render(s.W, r)
}

// Multi notifies every sink in order and returns the first error.
type Multi []Sink

func (m Multi) Notify(ctx context.Context, r Report) error {
	for _, s := range m {
		if err := s.Notify(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
