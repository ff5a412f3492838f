package spreadsheet

// Sheet names used by the registration workbooks.
const (
	OwnerSheet  = "Uw gegevens"
	SensorSheet = "Sensorregistratie"
)

// Fields shared by both forms.
const (
	fieldType           = "Kies soort / type sensor"
	fieldRegions        = "In welk gebied bevindt zich de mobiele sensor?"
	fieldDatastream     = "Wat meet de sensor?"
	fieldGoal           = "Waarvoor meet u dat?"
	fieldContainsPiData = "Worden er persoonsgegevens verwerkt?"
	fieldLegalGround    = "Wettelijke grondslag"
	fieldPrivacy        = "Privacyverklaring"
	fieldActiveUntil    = "Wanneer wordt de sensor verwijderd?"
	fieldOrganisation   = "Naam organisatie/bedrijf"
	fieldEmail          = "E-mail"
	fieldTelephone      = "Telefoonnummer"
	fieldFirstName      = "Voornaam"
	fieldLastName       = "Achternaam"
	fieldPostcode       = "Postcode"
	fieldHouseNumber    = "Huisnummer"
)

// Compact form fields.
const (
	fieldReferenceNumber = "Referentienummer"
	fieldWebsite         = "Website"
	fieldAffix           = "Tussenvoegsel"
	fieldSuffix          = "Toevoeging"
	fieldLocationKind    = "Locatie sensor"
	fieldHasPostcode     = "Hebt u een postcode en huisnummer?"
	fieldDescription     = "Omschrijving van de locatie van de sensor"
	fieldThemes          = "Kies een of meerdere thema's"
	fieldAnother         = "Wilt u nog een sensor melden?"

	stationary = "Vast"
)

// Bulk form fields.
const (
	fieldReference   = "Referentie"
	fieldLatitude    = "Latitude"
	fieldLongitude   = "Longitude"
	fieldProject     = "Project"
	fieldBulkWebsite = "Website (niet verplicht)"
	fieldBulkAffix   = "Tussenvoegsel (niet verplicht)"
)

var RegistrationFields = []string{
	"Verzonden",
	"Status",
	fieldReferenceNumber,
	"Wilt u meer dan 5 sensoren melden?",
	"Vul uw e-mailadres in",
}

var PersonFields = []string{
	fieldOrganisation,
	fieldEmail,
	fieldPostcode,
	fieldHouseNumber,
	fieldSuffix,
	"Straatnaam",
	"Plaatsnaam",
	"KVK-nummer",
	fieldWebsite,
	fieldFirstName,
	fieldAffix,
	fieldLastName,
	fieldTelephone,
}

var SensorFields = []string{
	fieldType,
	fieldLocationKind,
	fieldHasPostcode,
	fieldPostcode,
	fieldHouseNumber,
	fieldSuffix,
	fieldDescription,
	fieldRegions,
	fieldDatastream,
	fieldGoal,
	fieldThemes,
	fieldContainsPiData,
	fieldPrivacy,
	fieldLegalGround,
	fieldActiveUntil,
	fieldAnother,
}

var BulkPersonFields = []string{
	fieldOrganisation,
	fieldPostcode,
	fieldHouseNumber,
	"Toevoeging (niet verplicht)",
	"Straatnaam",
	"Plaatsnaam",
	fieldEmail,
	fieldTelephone,
	"KVK-nummer (niet verplicht)",
	fieldBulkWebsite,
	fieldFirstName,
	fieldBulkAffix,
	fieldLastName,
}

var bulkThemeFields = []string{
	"Thema 1",
	"Thema 2 (niet verplicht)",
	"Thema 3 (niet verplicht)",
	"Thema 4 (niet verplicht)",
	"Thema 5 (niet verplicht)",
	"Thema 6 (niet verplicht)",
	"Thema 7 (niet verplicht)",
	"Thema 8 (niet verplicht)",
}

var BulkSensorFields = concat(
	[]string{
		fieldReference,
		fieldType,
		fieldLatitude,
		fieldLongitude,
		fieldRegions,
		fieldDatastream,
		fieldGoal,
	},
	bulkThemeFields,
	[]string{
		fieldContainsPiData,
		fieldLegalGround,
		fieldPrivacy,
		fieldActiveUntil,
		"Opmerking (niet verplicht)",
		fieldProject,
	},
)

// CompactFields is the expected header of a compact form holding up to
// maxSensors sensor blocks. The last block has no "register another?"
// column.
func CompactFields(maxSensors int) []string {
	out := concat(RegistrationFields, PersonFields)
	for i := 0; i < maxSensors; i++ {
		out = append(out, SensorFields...)
	}
	if maxSensors > 0 {
		out = out[:len(out)-1]
	}
	return out
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
