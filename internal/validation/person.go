package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/amsterdam/sensorregister/internal/registration"
)

type person struct {
	Organisation  string `validate:"max=250"`
	Email         string `validate:"required,email,max=254"`
	Telephone     string `validate:"max=15"`
	Website       string `validate:"max=250"`
	FirstName     string `validate:"required,max=84"`
	LastNameAffix string `validate:"max=84"`
	LastName      string `validate:"required,max=84"`
}

var personSources = map[string]string{
	"Organisation":  "Naam organisatie/bedrijf",
	"Email":         "E-mail",
	"Telephone":     "Telefoonnummer",
	"Website":       "Website",
	"FirstName":     "Voornaam",
	"LastNameAffix": "Tussenvoegsel",
	"LastName":      "Achternaam",
}

// ValidatePerson checks the shape of an owner record and reports every
// offending field in an *InvalidPersonDataError.
func ValidatePerson(p registration.PersonData) error {
	shape := person{
		Organisation:  strings.TrimSpace(p.Organisation),
		Email:         strings.TrimSpace(p.Email),
		Telephone:     strings.TrimSpace(p.Telephone),
		Website:       strings.TrimSpace(p.Website),
		FirstName:     strings.TrimSpace(p.FirstName),
		LastNameAffix: strings.TrimSpace(p.LastNameAffix),
		LastName:      strings.TrimSpace(p.LastName),
	}

	err := validate.Struct(shape)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	out := &InvalidPersonDataError{}
	for _, fe := range errs {
		out.Fields = append(out.Fields, FieldError{Source: personSources[fe.StructField()], Tag: fe.Tag()})
	}
	return out
}
