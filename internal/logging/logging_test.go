package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestLoggerFromContext(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	ctx := NewContext(context.Background(), New(&buf, "debug", "json"))

	LogError(ctx, "geocoding", "postcode", errors.New("boom"))

	var line map[string]any
	is.NoErr(json.Unmarshal(buf.Bytes(), &line))
	is.Equal(line["component"], "geocoding")
	is.Equal(line["operation"], "postcode")
	is.Equal(line["error"], "boom")
	is.Equal(line["level"], "error")
}

func TestLevelFiltersDebug(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	ctx := NewContext(context.Background(), New(&buf, "", ""))

	LogRequest(ctx, "feeds", "GET", "http://localhost")
	is.Equal(buf.Len(), 0)
}

func TestMissingLoggerIsDisabled(t *testing.T) {
	LogRequest(context.Background(), "feeds", "GET", "http://localhost")
}
