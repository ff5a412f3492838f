// Package registration holds the normalized sensor registration record that
// every parser produces, independent of whether it came from a spreadsheet
// or an open-data feed.
package registration

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the day-month-year layout used by the registration forms.
const DateFormat = "02-01-2006"

const (
	Yes = "Ja"
	No  = "Nee"
)

var ErrUnsupportedDate = errors.New("unsupported date value")

// PersonData is the owner or contact of one or more sensors.
type PersonData struct {
	Organisation  string
	Email         string
	Telephone     string
	Website       string
	FirstName     string
	LastNameAffix string
	LastName      string
}

// FullName joins first name, affix and last name, skipping a blank affix.
func (p PersonData) FullName() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.FirstName, p.LastNameAffix, p.LastName} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

type ObservationGoal struct {
	ObservationGoal    string
	PrivacyDeclaration string
	LegalGround        string
}

// SensorData is one normalized sensor submission.
type SensorData struct {
	Owner            PersonData
	Reference        string
	Type             string
	Location         Location
	Datastream       string
	ObservationGoals []ObservationGoal
	// Themes holds theme names joined by the configured separator.
	Themes         string
	ContainsPiData string
	// ActiveUntil is either a DD-MM-YYYY string or a time.Time read from a
	// typed spreadsheet cell.
	ActiveUntil any
	Projects    []string
	// Row is the 1-based source row, zero when the record has no row.
	Row int
	// Source names the feed a record came from, empty for spreadsheets.
	Source string
}

// ActiveUntilString renders ActiveUntil for error messages.
func (s SensorData) ActiveUntilString() string {
	switch v := s.ActiveUntil.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(DateFormat)
	default:
		return fmt.Sprint(v)
	}
}

// ParseDate accepts a DD-MM-YYYY string or an already typed date.
func ParseDate(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t == nil {
			return time.Time{}, ErrUnsupportedDate
		}
		return *t, nil
	case string:
		d, err := time.Parse(DateFormat, strings.TrimSpace(t))
		if err != nil {
			return time.Time{}, fmt.Errorf("parse date %q: %w", t, err)
		}
		return d, nil
	default:
		return time.Time{}, fmt.Errorf("%w: %T", ErrUnsupportedDate, v)
	}
}
