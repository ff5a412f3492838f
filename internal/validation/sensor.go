// Package validation holds the domain checks a registration record has to
// pass before it is imported.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/amsterdam/sensorregister/internal/registration"
)

var (
	validate   = validator.New()
	postcodeRe = regexp.MustCompile(`^\d\d\d\d ?[a-zA-Z][a-zA-Z]`)
)

type check func(registration.SensorData) error

// checks run in order; the first failure wins.
var checks = []check{
	checkType,
	checkThemes,
	checkLocation,
	checkContainsPiData,
	checkLegalGround,
	checkPrivacyDeclaration,
	checkActiveUntil,
}

// ValidateSensor returns the first failing check as a
// *SensorValidationError, or nil.
func ValidateSensor(s registration.SensorData) error {
	for _, c := range checks {
		if err := c(s); err != nil {
			return err
		}
	}
	return nil
}

func invalid(kind error, s registration.SensorData, value string) error {
	return &SensorValidationError{
		Kind:      kind,
		Reference: s.Reference,
		Row:       s.Row,
		Source:    Source(kind),
		Value:     value,
	}
}

func checkType(s registration.SensorData) error {
	if strings.TrimSpace(s.Type) == "" {
		return invalid(ErrInvalidSensorType, s, s.Type)
	}
	return nil
}

func checkThemes(s registration.SensorData) error {
	if strings.TrimSpace(s.Themes) == "" {
		return invalid(ErrInvalidThemes, s, s.Themes)
	}
	return nil
}

func checkLocation(s registration.SensorData) error {
	loc := s.Location
	switch loc.Kind() {
	case registration.LocationLatLong:
		if _, err := strconv.ParseFloat(strings.TrimSpace(loc.LatLong.Latitude), 64); err != nil {
			return invalid(ErrInvalidLatitude, s, loc.LatLong.Latitude)
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(loc.LatLong.Longitude), 64); err != nil {
			return invalid(ErrInvalidLongitude, s, loc.LatLong.Longitude)
		}
	case registration.LocationPostcode:
		if !postcodeRe.MatchString(loc.Postcode.Postcode) {
			return invalid(ErrInvalidPostcode, s, loc.Postcode.Postcode)
		}
		if strings.TrimSpace(loc.Postcode.HouseNumber) == "" {
			return invalid(ErrInvalidHouseNumber, s, loc.Postcode.HouseNumber)
		}
	case registration.LocationDescription:
		if strings.TrimSpace(loc.Description) == "" {
			return invalid(ErrInvalidLocationDescription, s, loc.Description)
		}
	case registration.LocationRegions:
		if strings.TrimSpace(loc.Regions) == "" {
			return invalid(ErrInvalidRegions, s, loc.Regions)
		}
	}
	return nil
}

func checkContainsPiData(s registration.SensorData) error {
	if s.ContainsPiData != registration.Yes && s.ContainsPiData != registration.No {
		return invalid(ErrInvalidContainsPiData, s, s.ContainsPiData)
	}
	return nil
}

func checkLegalGround(s registration.SensorData) error {
	if s.ContainsPiData != registration.Yes {
		return nil
	}
	for _, g := range s.ObservationGoals {
		if strings.TrimSpace(g.LegalGround) == "" {
			return invalid(ErrInvalidLegalGround, s, g.LegalGround)
		}
	}
	return nil
}

// checkPrivacyDeclaration rejects malformed URLs regardless of the
// personal data flag.
func checkPrivacyDeclaration(s registration.SensorData) error {
	found := false
	for _, g := range s.ObservationGoals {
		u := strings.TrimSpace(g.PrivacyDeclaration)
		if u == "" {
			continue
		}
		if !ValidURL(u) {
			return invalid(ErrInvalidPrivacyDeclaration, s, g.PrivacyDeclaration)
		}
		found = true
	}
	if s.ContainsPiData == registration.Yes && !found {
		return invalid(ErrInvalidPrivacyDeclaration, s, "")
	}
	return nil
}

func checkActiveUntil(s registration.SensorData) error {
	if _, err := registration.ParseDate(s.ActiveUntil); err != nil {
		return invalid(ErrInvalidDate, s, s.ActiveUntilString())
	}
	return nil
}

// ValidURL reports whether u is an absolute http or https URL.
func ValidURL(u string) bool {
	return validate.Var(u, "required,http_url") == nil
}
