package spreadsheet

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/xuri/excelize/v2"

	"github.com/amsterdam/sensorregister/internal/registration"
)

// compactRow builds a compact form row, setting fields by name and
// occurrence.
type compactRow struct {
	fields []string
	cells  []any
}

func newCompactRow(maxSensors int) *compactRow {
	fields := CompactFields(maxSensors)
	return &compactRow{fields: fields, cells: make([]any, len(fields))}
}

func (r *compactRow) set(name string, nth int, value any) *compactRow {
	seen := 0
	for i, f := range r.fields {
		if f != name {
			continue
		}
		if seen == nth {
			r.cells[i] = value
			return r
		}
		seen++
	}
	panic("no such field " + name)
}

func (r *compactRow) header() []any {
	out := make([]any, len(r.fields))
	for i, f := range r.fields {
		out[i] = f
	}
	return out
}

func withOwner(r *compactRow, reference string) *compactRow {
	return r.
		set(fieldReferenceNumber, 0, reference).
		set(fieldOrganisation, 0, "Gemeente Amsterdam").
		set(fieldEmail, 0, "sensoren@amsterdam.nl").
		set(fieldPostcode, 0, "1011 PN").
		set(fieldHouseNumber, 0, "1").
		set(fieldFirstName, 0, "Jan").
		set(fieldAffix, 0, "van").
		set(fieldLastName, 0, "Dam").
		set(fieldTelephone, 0, "14020")
}

func slot(r *compactRow, i int, another string) *compactRow {
	r.set(fieldType, i, "Optische / camera sensor").
		set(fieldLocationKind, i, "Mobiel").
		set(fieldRegions, i, "Stadsdeel Oost").
		set(fieldDatastream, i, "beelden").
		set(fieldGoal, i, "Tellen van mensen.").
		set(fieldThemes, i, "Veiligheid").
		set(fieldContainsPiData, i, "Nee").
		set(fieldActiveUntil, i, "01-01-2050")
	if i < 4 {
		r.set(fieldAnother, i, another)
	}
	return r
}

func collect(t *testing.T, wb Workbook) []registration.SensorData {
	t.Helper()
	seq, err := Parse(wb, DefaultConfig())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return slices.Collect(seq)
}

func TestCompactFormStopsAtFirstNonAffirmativeSlot(t *testing.T) {
	is := is.New(t)

	row := withOwner(newCompactRow(5), "7079-2296")
	slot(row, 0, "Ja")
	slot(row, 1, "Ja")
	slot(row, 2, "Nee")
	slot(row, 3, "Ja")
	slot(row, 4, "")

	sensors := collect(t, Grid{SensorSheet: {row.header(), row.cells}})

	is.Equal(len(sensors), 3)
	for i, s := range sensors {
		is.Equal(s.Reference, "7079-2296."+string(rune('0'+i)))
		is.Equal(s.Row, 1)
		is.Equal(s.Owner.Email, "sensoren@amsterdam.nl")
		is.Equal(s.Owner.FullName(), "Jan van Dam")
		is.Equal(s.Projects, []string{""})
	}
}

func TestCompactFormLocationDecisionTree(t *testing.T) {
	is := is.New(t)

	row := withOwner(newCompactRow(5), "1234")
	slot(row, 0, "Ja")
	slot(row, 1, "Ja")
	slot(row, 2, "Nee")
	row.set(fieldLocationKind, 0, "Vast").
		set(fieldHasPostcode, 0, "Ja").
		set(fieldPostcode, 1, "1015 BA").
		set(fieldHouseNumber, 1, "1").
		set(fieldSuffix, 1, "A")
	row.set(fieldLocationKind, 1, "Vast").
		set(fieldHasPostcode, 1, "Nee").
		set(fieldDescription, 1, "aan de gevel")

	sensors := collect(t, Grid{SensorSheet: {row.header(), row.cells}})
	is.Equal(len(sensors), 3)

	pc := sensors[0].Location
	is.Equal(pc.Kind(), registration.LocationPostcode)
	is.Equal(*pc.Postcode, registration.PostcodeHouseNumber{Postcode: "1015 BA", HouseNumber: "1", Suffix: "A"})

	is.Equal(sensors[1].Location, registration.Described("aan de gevel"))
	is.Equal(sensors[2].Location, registration.InRegions("Stadsdeel Oost"))
}

func TestCompactFormSkipsBlankReferences(t *testing.T) {
	is := is.New(t)

	row := withOwner(newCompactRow(5), "1234")
	slot(row, 0, "Nee")
	blank := newCompactRow(5)
	blank.set(fieldReferenceNumber, 0, "   ")

	sensors := collect(t, Grid{SensorSheet: {row.header(), blank.cells, row.cells}})

	is.Equal(len(sensors), 1)
	is.Equal(sensors[0].Row, 2)
}

func TestCompactHeaderMismatch(t *testing.T) {
	is := is.New(t)

	expected := CompactFields(5)
	tests := map[string][]any{
		"empty":       {},
		"missingLast": toAny(expected[:len(expected)-1]),
	}
	for name, head := range tests {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			_, err := Parse(Grid{SensorSheet: {head}}, DefaultConfig())

			var invalid *InvalidFieldsError
			is.True(errors.As(err, &invalid))
			is.Equal(invalid.Kind, CompactHeader)

			i, actual, want, ok := invalid.Divergence()
			is.True(ok)
			is.Equal(i, len(head))
			is.Equal(actual, "")
			is.Equal(want, expected[len(head)])
		})
	}

	_, err := Parse(Grid{SensorSheet: {}}, DefaultConfig())
	is.True(err != nil)
}

func TestInvalidFieldsMessageNamesFirstDivergentPair(t *testing.T) {
	is := is.New(t)

	err := &InvalidFieldsError{Fields: []string{"a", "x", "c"}, Expected: []string{"a", "b", "c"}}
	is.Equal(err.Error(), "Onverwachte veldnaam : x, verwacht b")
}

func TestTrailingColumnsAreIgnored(t *testing.T) {
	is := is.New(t)

	row := withOwner(newCompactRow(5), "1234")
	slot(row, 0, "Nee")
	head := append(row.header(), "Extra kolom")
	cells := append(row.cells, "extra")

	sensors := collect(t, Grid{SensorSheet: {head, cells}})
	is.Equal(len(sensors), 1)
}

func bulkWorkbook(sensorRows ...[]any) Grid {
	owner := map[string]string{
		fieldOrganisation: "Sensorbedrijf BV",
		fieldEmail:        "Info@Sensorbedrijf.nl",
		fieldTelephone:    "0201234567",
		fieldBulkWebsite:  "https://sensorbedrijf.nl",
		fieldFirstName:    "Piet",
		fieldLastName:     "Jansen",
	}
	var ownerRows [][]any
	for _, f := range BulkPersonFields {
		ownerRows = append(ownerRows, []any{f, owner[f]})
	}
	rows := [][]any{toAny(BulkSensorFields)}
	rows = append(rows, sensorRows...)
	return Grid{OwnerSheet: ownerRows, SensorSheet: rows}
}

func bulkRow(values map[string]any) []any {
	row := make([]any, len(BulkSensorFields))
	for i, f := range BulkSensorFields {
		row[i] = values[f]
	}
	return row
}

func TestBulkForm(t *testing.T) {
	is := is.New(t)

	wb := bulkWorkbook(
		bulkRow(map[string]any{
			fieldReference:              "abc-1",
			fieldType:                   "Geluidsensor",
			fieldLatitude:               52.3676,
			fieldLongitude:              4.9041,
			fieldRegions:                "Stadsdeel Centrum",
			fieldDatastream:             "geluid",
			fieldGoal:                   "Meten van geluid",
			"Thema 1":                   "Geluid",
			"Thema 3 (niet verplicht)":  "Water",
			fieldContainsPiData:         "Nee",
			fieldPrivacy:                "https://sensorbedrijf.nl/privacy",
			fieldActiveUntil:            "01-01-2030",
			fieldProject:                "Project;Deelproject",
		}),
		bulkRow(map[string]any{}),
		bulkRow(map[string]any{fieldReference: "abc-2", fieldLatitude: "52.1", fieldLongitude: "4.1"}),
	)

	is.Equal(Detect(wb), BulkForm)
	sensors := collect(t, wb)
	is.Equal(len(sensors), 2)

	s := sensors[0]
	is.Equal(s.Reference, "abc-1")
	is.Equal(s.Row, 1)
	is.Equal(s.Themes, "Geluid;Water")
	is.Equal(*s.Location.LatLong, registration.LatLong{Latitude: "52.3676", Longitude: "4.9041"})
	is.Equal(s.Location.Regions, "Stadsdeel Centrum")
	is.Equal(s.Projects, []string{"Project;Deelproject"})
	is.Equal(s.Owner.Email, "Info@Sensorbedrijf.nl")
	is.Equal(s.Owner.Website, "https://sensorbedrijf.nl")
	is.Equal(s.ObservationGoals[0].PrivacyDeclaration, "https://sensorbedrijf.nl/privacy")

	is.Equal(sensors[1].Row, 3)
}

func TestBulkOwnerHeaderMismatch(t *testing.T) {
	is := is.New(t)

	wb := bulkWorkbook()
	wb[OwnerSheet][2][0] = "Huisnr"

	_, err := Parse(wb, DefaultConfig())

	var invalid *InvalidFieldsError
	is.True(errors.As(err, &invalid))
	is.Equal(invalid.Kind, BulkPersonHeader)
	is.Equal(invalid.Error(), "Onverwachte veldnaam : Huisnr, verwacht Huisnummer")
}

func TestBulkSensorHeaderMismatch(t *testing.T) {
	is := is.New(t)

	wb := bulkWorkbook()
	wb[SensorSheet][0] = toAny(BulkSensorFields[:3])

	_, err := Parse(wb, DefaultConfig())

	var invalid *InvalidFieldsError
	is.True(errors.As(err, &invalid))
	is.Equal(invalid.Kind, BulkSensorHeader)
}

func TestReadXLSX(t *testing.T) {
	is := is.New(t)

	row := withOwner(newCompactRow(5), "9999")
	slot(row, 0, "Nee")

	f := excelize.NewFile()
	_, err := f.NewSheet(SensorSheet)
	is.NoErr(err)
	is.NoErr(f.DeleteSheet("Sheet1"))
	head := row.header()
	is.NoErr(f.SetSheetRow(SensorSheet, "A1", &head))
	is.NoErr(f.SetSheetRow(SensorSheet, "A2", &row.cells))
	buf, err := f.WriteToBuffer()
	is.NoErr(err)

	wb, err := ReadXLSX(buf)
	is.NoErr(err)
	defer wb.Close()

	is.Equal(Detect(wb), CompactForm)
	sensors := collect(t, wb)
	is.Equal(len(sensors), 1)
	is.Equal(sensors[0].Reference, "9999.0")
	is.Equal(sensors[0].Location.Regions, "Stadsdeel Oost")
}

func TestReadXLSXTypedDates(t *testing.T) {
	is := is.New(t)

	row := withOwner(newCompactRow(5), "9999")
	slot(row, 0, "Ja")
	slot(row, 1, "Nee")
	row.set(fieldActiveUntil, 0, time.Date(2040, 1, 1, 0, 0, 0, 0, time.UTC))

	f := excelize.NewFile()
	_, err := f.NewSheet(SensorSheet)
	is.NoErr(err)
	is.NoErr(f.DeleteSheet("Sheet1"))
	head := row.header()
	is.NoErr(f.SetSheetRow(SensorSheet, "A1", &head))
	is.NoErr(f.SetSheetRow(SensorSheet, "A2", &row.cells))
	buf, err := f.WriteToBuffer()
	is.NoErr(err)

	wb, err := ReadXLSX(buf)
	is.NoErr(err)
	defer wb.Close()

	sensors := collect(t, wb)
	is.Equal(len(sensors), 2)

	typed, ok := sensors[0].ActiveUntil.(time.Time)
	is.True(ok)
	is.Equal(typed.Format(registration.DateFormat), "01-01-2040")

	d, err := registration.ParseDate(sensors[1].ActiveUntil)
	is.NoErr(err)
	is.Equal(d.Format(registration.DateFormat), "01-01-2050")
}

func TestIsDateFormat(t *testing.T) {
	is := is.New(t)

	custom := func(code string) *excelize.Style { return &excelize.Style{CustomNumFmt: &code} }

	is.True(isDateFormat(&excelize.Style{NumFmt: 14}))
	is.True(isDateFormat(&excelize.Style{NumFmt: 17}))
	is.True(!isDateFormat(&excelize.Style{NumFmt: 2}))
	is.True(!isDateFormat(&excelize.Style{NumFmt: 20}))
	is.True(isDateFormat(custom("dd-mm-yyyy")))
	is.True(isDateFormat(custom("[$-413]d mmmm yyyy")))
	is.True(!isDateFormat(custom(`0.00" dagen"`)))
	is.True(!isDateFormat(custom("hh:mm")))
}

func TestLoadCSVDir(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	is.NoErr(os.WriteFile(filepath.Join(dir, "Uw gegevens.csv"), []byte("\ufeffa,b\nc,d\n"), 0o600))
	is.NoErr(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	g, err := LoadCSVDir(dir)
	is.NoErr(err)
	is.Equal(g.SheetNames(), []string{OwnerSheet})

	rows, err := g.Rows(OwnerSheet)
	is.NoErr(err)
	is.Equal(rows, [][]any{{"a", "b"}, {"c", "d"}})

	_, err = g.Rows("missing")
	is.True(errors.Is(err, ErrSheetNotFound))
}

func toAny(fields []string) []any {
	out := make([]any, len(fields))
	for i, f := range fields {
		out[i] = f
	}
	return out
}
