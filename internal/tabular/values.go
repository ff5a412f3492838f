// Package tabular gives named access to a flattened spreadsheet row or
// column where the same field name may occur more than once.
package tabular

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrFieldNotFound = errors.New("field not found")

// Cell is implemented by spreadsheet cell wrappers that carry a raw value.
type Cell interface {
	Value() any
}

// Values pairs field names with the values found at the same positions.
type Values struct {
	fields []string
	values []any
}

func New(fields []string, values []any) Values {
	return Values{fields: fields, values: values}
}

// Get returns the value of the first field called name.
func (v Values) Get(name string) (any, error) {
	return v.GetNth(name, 0)
}

// GetNth returns the value of the nth (0-based) field called name.
func (v Values) GetNth(name string, nth int) (any, error) {
	seen := 0
	for i, f := range v.fields {
		if f != name {
			continue
		}
		if seen == nth {
			if i >= len(v.values) {
				return nil, nil
			}
			return unwrap(v.values[i]), nil
		}
		seen++
	}
	if nth == 0 {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return nil, fmt.Errorf("%w: %q (occurrence %d)", ErrFieldNotFound, name, nth)
}

func (v Values) String(name string) (string, error) {
	return v.NthString(name, 0)
}

func (v Values) NthString(name string, nth int) (string, error) {
	val, err := v.GetNth(name, nth)
	if err != nil {
		return "", err
	}
	return Format(val), nil
}

// StringOr returns def when name is not a known field.
func (v Values) StringOr(name, def string) string {
	return v.NthStringOr(name, 0, def)
}

func (v Values) NthStringOr(name string, nth int, def string) string {
	s, err := v.NthString(name, nth)
	if err != nil {
		return def
	}
	return s
}

// Raw returns the unwrapped value, keeping its original type so dates
// stored as dates survive. Unknown fields yield nil.
func (v Values) Raw(name string) any {
	return v.NthRaw(name, 0)
}

func (v Values) NthRaw(name string, nth int) any {
	val, err := v.GetNth(name, nth)
	if err != nil {
		return nil
	}
	return val
}

func (v Values) Len() int { return len(v.fields) }

func unwrap(val any) any {
	if c, ok := val.(Cell); ok {
		val = c.Value()
	}
	if s, ok := val.(string); ok {
		return strings.TrimSpace(s)
	}
	return val
}

// Format renders a cell value the way it is shown in a sheet.
func Format(val any) string {
	switch t := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		if t {
			return "Ja"
		}
		return "Nee"
	case time.Time:
		return t.Format("02-01-2006")
	case fmt.Stringer:
		return strings.TrimSpace(t.String())
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
