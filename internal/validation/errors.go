package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Validation failure kinds. Match them with errors.Is.
var (
	ErrInvalidSensorType          = errors.New("invalid sensor type")
	ErrInvalidThemes              = errors.New("invalid themes")
	ErrInvalidLatitude            = errors.New("invalid latitude")
	ErrInvalidLongitude           = errors.New("invalid longitude")
	ErrInvalidPostcode            = errors.New("invalid postcode")
	ErrInvalidHouseNumber         = errors.New("invalid house number")
	ErrInvalidRegions             = errors.New("invalid regions")
	ErrInvalidLocationDescription = errors.New("invalid location description")
	ErrInvalidContainsPiData      = errors.New("invalid contains personal data")
	ErrInvalidLegalGround         = errors.New("invalid legal ground")
	ErrInvalidPrivacyDeclaration  = errors.New("invalid privacy declaration")
	ErrInvalidDate                = errors.New("invalid date")
)

// sources maps a kind to the form field an operator has to correct.
var sources = map[error]string{
	ErrInvalidSensorType:          "Kies soort / type sensor",
	ErrInvalidThemes:              "Thema",
	ErrInvalidLatitude:            "Latitude",
	ErrInvalidLongitude:           "Longitude",
	ErrInvalidPostcode:            "Postcode",
	ErrInvalidHouseNumber:         "Huisnummer",
	ErrInvalidRegions:             "In welk gebied bevindt zich de mobiele sensor?",
	ErrInvalidLocationDescription: "Omschrijving van de locatie van de sensor",
	ErrInvalidContainsPiData:      "Worden er persoonsgegevens verwerkt?",
	ErrInvalidLegalGround:         "Wettelijke grondslag",
	ErrInvalidPrivacyDeclaration:  "Privacyverklaring",
	ErrInvalidDate:                "Wanneer wordt de sensor verwijderd?",
}

// Source returns the form field name for kind.
func Source(kind error) string {
	return sources[kind]
}

// SensorValidationError is a record level validation failure.
type SensorValidationError struct {
	Kind      error
	Reference string
	Row       int
	Source    string
	Value     string
}

func (e *SensorValidationError) Error() string {
	return fmt.Sprintf("Foutieve data voor sensor met referentie %s  (rij %d) %s=%s",
		e.Reference, e.Row, e.Source, e.Value)
}

func (e *SensorValidationError) Unwrap() error {
	return e.Kind
}

// FieldError names one offending owner field.
type FieldError struct {
	Source string
	Tag    string
}

// InvalidPersonDataError lists every owner field that failed validation.
type InvalidPersonDataError struct {
	Fields []FieldError
}

func (e *InvalidPersonDataError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Source+": "+f.Tag)
	}
	return strings.Join(parts, ", ")
}
