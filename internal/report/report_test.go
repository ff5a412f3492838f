package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/amsterdam/sensorregister/internal/logging"
)

func TestRenderCounts(t *testing.T) {
	is := is.New(t)

	out := Report{Source: "sensoren.xlsx", Created: 2, Updated: 1}.String()

	is.Equal(out, "Import rapportage voor sensoren.xlsx\n2 sensoren aangemaakt\n1 sensoren bijgewerkt\n")
}

func TestRenderTruncatesErrors(t *testing.T) {
	is := is.New(t)

	r := Report{Source: "anpr"}
	for i := range 12 {
		r.Errors = append(r.Errors, fmt.Sprintf("fout %d", i))
	}

	out := r.String()
	is.True(strings.Contains(out, "12 fouten gevonden:"))
	is.True(strings.Contains(out, "- fout 9\n"))
	is.True(!strings.Contains(out, "- fout 10"))
	is.True(strings.Contains(out, "+ nog 2 fouten"))
}

func TestRenderSingleErrorAndMissingLocations(t *testing.T) {
	is := is.New(t)

	out := Report{
		Source:          "sensoren.xlsx",
		Deleted:         3,
		Errors:          []string{"Onbekend locatie type"},
		WithoutLocation: []string{"ref.0"},
	}.String()

	is.True(strings.Contains(out, "3 sensoren verwijderd"))
	is.True(strings.Contains(out, "1 fout gevonden:\n- Onbekend locatie type"))
	is.True(strings.Contains(out, "kaart getoond worden:\n- ref.0"))
}

func TestLogSink(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	ctx := logging.NewContext(context.Background(), zerolog.New(&buf))

	is.NoErr(LogSink{}.Notify(ctx, Report{Source: "anpr", Created: 4}))
	is.True(strings.Contains(buf.String(), `"created":4`))
	is.True(strings.Contains(buf.String(), `"source":"anpr"`))
}

func TestMulti(t *testing.T) {
	is := is.New(t)

	var a, b bytes.Buffer
	sink := Multi{WriterSink{W: &a}, WriterSink{W: &b}}

	is.NoErr(sink.Notify(context.Background(), Report{Source: "x"}))
	is.Equal(a.String(), b.String())
}
