package spreadsheet

import (
	"fmt"
	"iter"

	"github.com/amsterdam/sensorregister/internal/registration"
	"github.com/amsterdam/sensorregister/internal/tabular"
)

// ParseBulk reads a bulk form: one owner on the owner sheet and one sensor
// per row on the sensor sheet.
func ParseBulk(wb Workbook, cfg Config) (iter.Seq[registration.SensorData], error) {
	ownerRows, err := wb.Rows(OwnerSheet)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(BulkPersonFields))
	values := make([]any, 0, len(ownerRows))
	for i, row := range ownerRows {
		var name, value any
		if len(row) > 0 {
			name = row[0]
		}
		if len(row) > 1 {
			value = row[1]
		}
		if i < len(BulkPersonFields) {
			fields = append(fields, tabular.Format(name))
		}
		values = append(values, value)
	}
	if err := checkFields(BulkPersonHeader, fields, BulkPersonFields); err != nil {
		return nil, err
	}
	owner := bulkOwner(tabular.New(BulkPersonFields, values))

	sensorRows, err := wb.Rows(SensorSheet)
	if err != nil {
		return nil, err
	}
	var first []any
	if len(sensorRows) > 0 {
		first = sensorRows[0]
	}
	if err := checkFields(BulkSensorHeader, header(first, len(BulkSensorFields)), BulkSensorFields); err != nil {
		return nil, err
	}
	if len(sensorRows) > 0 {
		sensorRows = sensorRows[1:]
	}

	return func(yield func(registration.SensorData) bool) {
		for i, cells := range sensorRows {
			row := tabular.New(BulkSensorFields, cells)
			if row.StringOr(fieldReference, "") == "" {
				continue
			}
			if !yield(bulkSensor(row, owner, i+1, cfg)) {
				return
			}
		}
	}, nil
}

func bulkOwner(v tabular.Values) registration.PersonData {
	return registration.PersonData{
		Organisation:  v.StringOr(fieldOrganisation, ""),
		Email:         v.StringOr(fieldEmail, ""),
		Telephone:     v.StringOr(fieldTelephone, ""),
		Website:       v.StringOr(fieldBulkWebsite, ""),
		FirstName:     v.StringOr(fieldFirstName, ""),
		LastNameAffix: v.StringOr(fieldBulkAffix, ""),
		LastName:      v.StringOr(fieldLastName, ""),
	}
}

func bulkSensor(row tabular.Values, owner registration.PersonData, rowNumber int, cfg Config) registration.SensorData {
	themes := make([]string, len(bulkThemeFields))
	for i, f := range bulkThemeFields {
		themes[i] = row.StringOr(f, "")
	}

	location := registration.AtLatLong(
		row.StringOr(fieldLatitude, ""),
		row.StringOr(fieldLongitude, ""),
	).WithRegions(row.StringOr(fieldRegions, ""))

	return registration.SensorData{
		Owner:      owner,
		Reference:  row.StringOr(fieldReference, ""),
		Type:       row.StringOr(fieldType, ""),
		Location:   location,
		Datastream: row.StringOr(fieldDatastream, ""),
		ObservationGoals: []registration.ObservationGoal{{
			ObservationGoal:    row.StringOr(fieldGoal, ""),
			PrivacyDeclaration: row.StringOr(fieldPrivacy, ""),
			LegalGround:        row.StringOr(fieldLegalGround, ""),
		}},
		Themes:         joinNonEmpty(cfg.Separator, themes...),
		ContainsPiData: row.StringOr(fieldContainsPiData, ""),
		ActiveUntil:    activeUntil(row.Raw(fieldActiveUntil)),
		Projects:       []string{row.StringOr(fieldProject, "")},
		Row:            rowNumber,
	}
}

// activeUntil keeps typed dates and renders anything else as text.
func activeUntil(v any) any {
	if v == nil {
		return ""
	}
	if _, ok := v.(string); ok {
		return v
	}
	if d, err := registration.ParseDate(v); err == nil {
		return d
	}
	return fmt.Sprint(v)
}
