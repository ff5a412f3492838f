package spreadsheet

import (
	"fmt"
	"iter"

	"github.com/amsterdam/sensorregister/internal/registration"
	"github.com/amsterdam/sensorregister/internal/tabular"
)

// ParseCompact reads a compact form: one submission per row, each holding
// an owner block followed by cfg.MaxSensors sensor blocks.
func ParseCompact(wb Workbook, cfg Config) (iter.Seq[registration.SensorData], error) {
	rows, err := wb.Rows(SensorSheet)
	if err != nil {
		return nil, err
	}

	expected := CompactFields(cfg.MaxSensors)
	var first []any
	if len(rows) > 0 {
		first = rows[0]
		rows = rows[1:]
	}
	if err := checkFields(CompactHeader, header(first, len(expected)), expected); err != nil {
		return nil, err
	}

	return func(yield func(registration.SensorData) bool) {
		for i, cells := range rows {
			row := tabular.New(expected, cells)
			reference := row.StringOr(fieldReferenceNumber, "")
			if reference == "" {
				continue
			}
			owner := compactOwner(row)
			for slot := 0; slot < cfg.MaxSensors; slot++ {
				if !yield(compactSensor(row, owner, reference, slot, i+1)) {
					return
				}
				if row.NthStringOr(fieldAnother, slot, registration.No) != registration.Yes {
					break
				}
			}
		}
	}, nil
}

func compactOwner(v tabular.Values) registration.PersonData {
	return registration.PersonData{
		Organisation:  v.StringOr(fieldOrganisation, ""),
		Email:         v.StringOr(fieldEmail, ""),
		Telephone:     v.StringOr(fieldTelephone, ""),
		Website:       v.StringOr(fieldWebsite, ""),
		FirstName:     v.StringOr(fieldFirstName, ""),
		LastNameAffix: v.StringOr(fieldAffix, ""),
		LastName:      v.StringOr(fieldLastName, ""),
	}
}

// compactLocation applies the form's decision tree. Postcode columns are
// read one occurrence further than the slot since the owner block has the
// first Postcode, Huisnummer and Toevoeging.
func compactLocation(row tabular.Values, slot int) registration.Location {
	if row.NthStringOr(fieldLocationKind, slot, "") != stationary {
		return registration.InRegions(row.NthStringOr(fieldRegions, slot, ""))
	}
	if row.NthStringOr(fieldHasPostcode, slot, "") == registration.Yes {
		return registration.AtPostcode(
			row.NthStringOr(fieldPostcode, slot+1, ""),
			row.NthStringOr(fieldHouseNumber, slot+1, ""),
			row.NthStringOr(fieldSuffix, slot+1, ""),
		)
	}
	return registration.Described(row.NthStringOr(fieldDescription, slot, ""))
}

func compactSensor(row tabular.Values, owner registration.PersonData, reference string, slot, rowNumber int) registration.SensorData {
	return registration.SensorData{
		Owner:      owner,
		Reference:  fmt.Sprintf("%s.%d", reference, slot),
		Type:       row.NthStringOr(fieldType, slot, ""),
		Location:   compactLocation(row, slot),
		Datastream: row.NthStringOr(fieldDatastream, slot, ""),
		ObservationGoals: []registration.ObservationGoal{{
			ObservationGoal:    row.NthStringOr(fieldGoal, slot, ""),
			PrivacyDeclaration: row.NthStringOr(fieldPrivacy, slot, ""),
			LegalGround:        row.NthStringOr(fieldLegalGround, slot, ""),
		}},
		Themes:         row.NthStringOr(fieldThemes, slot, ""),
		ContainsPiData: row.NthStringOr(fieldContainsPiData, slot, ""),
		ActiveUntil:    activeUntil(row.NthRaw(fieldActiveUntil, slot)),
		Projects:       []string{""},
		Row:            rowNumber,
	}
}
