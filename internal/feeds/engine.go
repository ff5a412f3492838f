package feeds

import (
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/amsterdam/sensorregister/internal/registration"
	"github.com/amsterdam/sensorregister/internal/tabular"
)

// Parse yields a record for every feature accepted by def. Features
// without a reference are skipped.
func Parse(def Definition, fc FeatureCollection) iter.Seq[registration.SensorData] {
	owner := def.PersonData()
	return func(yield func(registration.SensorData) bool) {
		for _, f := range fc.Features {
			if !def.accepts(f) {
				continue
			}
			reference := def.reference(f)
			if reference == "" {
				continue
			}
			s := registration.SensorData{
				Owner:            owner,
				Reference:        reference,
				Type:             def.Type,
				Location:         location(f.Geometry),
				ObservationGoals: def.goals(f),
				Themes:           def.Themes,
				ContainsPiData:   def.ContainsPiData,
				ActiveUntil:      def.ActiveUntil,
				Projects:         []string{},
				Source:           def.Name,
			}
			if !yield(s) {
				return
			}
		}
	}
}

// PersonData is the static owner of every sensor in the feed.
func (d Definition) PersonData() registration.PersonData {
	return registration.PersonData{
		Organisation: d.Owner.Organisation,
		Email:        d.Owner.Email,
		Telephone:    d.Owner.Telephone,
		Website:      d.Owner.Website,
		FirstName:    d.Owner.FirstName,
		LastName:     d.Owner.LastName,
	}
}

func (d Definition) accepts(f Feature) bool {
	if d.Filter.Property != "" && !slices.Contains(d.Filter.Values, property(f, d.Filter.Property)) {
		return false
	}
	if d.SkipWithoutPrivacy && property(f, d.Goal.PrivacyProperty) == "" {
		return false
	}
	return true
}

func (d Definition) reference(f Feature) string {
	if d.Reference.PrefixFeatureID {
		if f.ID == "" {
			return ""
		}
		return d.Name + "_" + string(f.ID)
	}
	return property(f, d.Reference.Property)
}

func (d Definition) goals(f Feature) []registration.ObservationGoal {
	privacy := d.Goal.PrivacyDeclaration
	if d.Goal.PrivacyProperty != "" {
		privacy = AdjustURL(property(f, d.Goal.PrivacyProperty))
	}

	texts := []string{d.Goal.Text}
	if d.Goal.TextsProperty != "" {
		texts = listProperty(f, d.Goal.TextsProperty)
	}

	goals := make([]registration.ObservationGoal, 0, len(texts))
	for _, t := range texts {
		goals = append(goals, registration.ObservationGoal{
			ObservationGoal:    t,
			PrivacyDeclaration: privacy,
			LegalGround:        d.Goal.LegalGround,
		})
	}
	return goals
}

// location maps GeoJSON [longitude, latitude] onto the record's fields.
func location(g Geometry) registration.Location {
	if len(g.Coordinates) < 2 {
		return registration.AtLatLong("", "")
	}
	return registration.AtLatLong(
		strconv.FormatFloat(g.Coordinates[1], 'f', -1, 64),
		strconv.FormatFloat(g.Coordinates[0], 'f', -1, 64),
	)
}

func property(f Feature, name string) string {
	if name == "" {
		return ""
	}
	return tabular.Format(f.Properties[name])
}

func listProperty(f Feature, name string) []string {
	switch v := f.Properties[name].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, tabular.Format(e))
		}
		return out
	case nil:
		return nil
	default:
		return []string{tabular.Format(v)}
	}
}

// AdjustURL prefixes https:// when a privacy declaration URL has no scheme.
func AdjustURL(u string) string {
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}
