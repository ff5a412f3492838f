package spreadsheet

import (
	"errors"
	"fmt"
)

var ErrSheetNotFound = errors.New("sheet not found")

// FieldsKind tells which header of which form did not match.
type FieldsKind string

const (
	CompactHeader    FieldsKind = "compact"
	BulkPersonHeader FieldsKind = "bulk person"
	BulkSensorHeader FieldsKind = "bulk sensor"
)

// InvalidFieldsError reports a header that does not match the expected
// ordered field list.
type InvalidFieldsError struct {
	Kind     FieldsKind
	Fields   []string
	Expected []string
}

func (e *InvalidFieldsError) Error() string {
	if _, actual, expected, ok := e.Divergence(); ok {
		return fmt.Sprintf("Onverwachte veldnaam : %s, verwacht %s", actual, expected)
	}
	return "Onverwachte velden"
}

// Divergence returns the first position where the header differs from the
// expected list. A missing position reads as an empty field.
func (e *InvalidFieldsError) Divergence() (index int, actual, expected string, ok bool) {
	n := max(len(e.Fields), len(e.Expected))
	for i := 0; i < n; i++ {
		var a, x string
		if i < len(e.Fields) {
			a = e.Fields[i]
		}
		if i < len(e.Expected) {
			x = e.Expected[i]
		}
		if a != x || i >= len(e.Fields) || i >= len(e.Expected) {
			return i, a, x, true
		}
	}
	return 0, "", "", false
}

func checkFields(kind FieldsKind, fields, expected []string) error {
	if len(fields) != len(expected) {
		return &InvalidFieldsError{Kind: kind, Fields: fields, Expected: expected}
	}
	for i := range fields {
		if fields[i] != expected[i] {
			return &InvalidFieldsError{Kind: kind, Fields: fields, Expected: expected}
		}
	}
	return nil
}
