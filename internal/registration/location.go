package registration

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoLocation        = errors.New("no location given")
	ErrAmbiguousLocation = errors.New("more than one location given")
)

// LocationKind names the single active representation of a Location.
type LocationKind int

const (
	LocationNone LocationKind = iota
	LocationLatLong
	LocationPostcode
	LocationDescription
	LocationRegions
)

func (k LocationKind) String() string {
	switch k {
	case LocationLatLong:
		return "lat_long"
	case LocationPostcode:
		return "postcode_house_number"
	case LocationDescription:
		return "description"
	case LocationRegions:
		return "regions"
	default:
		return "none"
	}
}

// LatLong keeps coordinates as read from the source; they are parsed as
// floats by the validators.
type LatLong struct {
	Latitude  string
	Longitude string
}

type PostcodeHouseNumber struct {
	Postcode    string
	HouseNumber string
	Suffix      string
}

// Location carries a primary representation, picked by Kind. Regions may
// accompany a point; two point sources on one record are rejected by Check.
type Location struct {
	LatLong     *LatLong
	Postcode    *PostcodeHouseNumber
	Description string
	// Regions holds region names joined by the configured separator.
	Regions string

	// mode is the representation a constructor was asked for, kept even
	// when its value is blank.
	mode LocationKind
}

func AtLatLong(latitude, longitude string) Location {
	return Location{LatLong: &LatLong{Latitude: latitude, Longitude: longitude}, mode: LocationLatLong}
}

func AtPostcode(postcode, houseNumber, suffix string) Location {
	return Location{
		Postcode: &PostcodeHouseNumber{Postcode: postcode, HouseNumber: houseNumber, Suffix: suffix},
		mode:     LocationPostcode,
	}
}

func Described(description string) Location {
	return Location{Description: description, mode: LocationDescription}
}

func InRegions(regions string) Location {
	return Location{Regions: regions, mode: LocationRegions}
}

// WithRegions returns a copy of l that is also bound to regions.
func (l Location) WithRegions(regions string) Location {
	l.Regions = regions
	return l
}

// Kind reports the representation the location was built with. A literal
// Location falls back to a point source first, then a description, then
// regions.
func (l Location) Kind() LocationKind {
	if l.mode != LocationNone {
		return l.mode
	}
	switch {
	case l.LatLong != nil:
		return LocationLatLong
	case l.Postcode != nil:
		return LocationPostcode
	case strings.TrimSpace(l.Description) != "":
		return LocationDescription
	case strings.TrimSpace(l.Regions) != "":
		return LocationRegions
	default:
		return LocationNone
	}
}

// Check verifies that there is a primary representation and at most one
// point source.
func (l Location) Check() error {
	if l.LatLong != nil && l.Postcode != nil {
		return fmt.Errorf("%w: %s and %s", ErrAmbiguousLocation, LocationLatLong, LocationPostcode)
	}
	if l.Kind() == LocationNone {
		return ErrNoLocation
	}
	return nil
}
