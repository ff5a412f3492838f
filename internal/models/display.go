package models

import "slices"

// Other is the display bucket for non-standard vocabulary values.
const Other = "Overig"

// DisplayName collapses non-standard values into the Other bucket.
func DisplayName(name string, isOther bool) string {
	if isOther {
		return Other
	}
	return name
}

// Point is a WGS84 coordinate.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Point returns the stored location, or nil when the device has none.
func (d *Device) Point() *Point {
	if d.Latitude == nil || d.Longitude == nil {
		return nil
	}
	return &Point{Latitude: *d.Latitude, Longitude: *d.Longitude}
}

func (d *Device) SetPoint(p *Point) {
	if p == nil {
		d.Latitude, d.Longitude = nil, nil
		return
	}
	lat, lon := p.Latitude, p.Longitude
	d.Latitude, d.Longitude = &lat, &lon
}

func (d *Device) DisplayType() string {
	if d.Type == nil {
		return ""
	}
	return DisplayName(d.Type.Name, d.Type.IsOther)
}

// DisplayThemes returns the theme names with duplicates removed, keeping
// the first occurrence. Several non-standard themes show up once as Other.
func (d *Device) DisplayThemes() []string {
	out := make([]string, 0, len(d.Themes))
	for _, t := range d.Themes {
		name := DisplayName(t.Name, t.IsOther)
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

type OwnerView struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organisation string `json:"organisation"`
}

// DeviceView is the read representation of a device.
type DeviceView struct {
	ID                  string     `json:"id"`
	Reference           string     `json:"reference"`
	Type                string     `json:"type"`
	Location            *Point     `json:"location"`
	LocationDescription string     `json:"location_description"`
	Datastream          string     `json:"datastream"`
	Themes              []string   `json:"themes"`
	Regions             []string   `json:"regions"`
	ContainsPiData      bool       `json:"contains_pi_data"`
	ActiveUntil         string     `json:"active_until,omitempty"`
	Owner               *OwnerView `json:"owner,omitempty"`
}

// View renders d with its preloaded relations.
func (d *Device) View() DeviceView {
	v := DeviceView{
		ID:                  d.ID.String(),
		Reference:           d.Reference,
		Type:                d.DisplayType(),
		Location:            d.Point(),
		LocationDescription: d.LocationDescription,
		Datastream:          d.Datastream,
		Themes:              d.DisplayThemes(),
		ContainsPiData:      d.ContainsPiData,
	}
	for _, r := range d.Regions {
		v.Regions = append(v.Regions, DisplayName(r.Name, r.IsOther))
	}
	if d.ActiveUntil != nil {
		v.ActiveUntil = d.ActiveUntil.Format("2006-01-02")
	}
	if d.Owner != nil {
		v.Owner = &OwnerView{Name: d.Owner.Name, Email: d.Owner.Email, Organisation: d.Owner.Organisation}
	}
	return v
}
