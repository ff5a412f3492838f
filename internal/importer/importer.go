// Package importer writes normalized sensor registrations into the
// registry.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amsterdam/sensorregister/internal/models"
	"github.com/amsterdam/sensorregister/internal/registration"
)

var ErrUnknownLocationType = errors.New("Onbekend locatie type")

// Geocoder resolves a postcode and house number to a point.
type Geocoder interface {
	Resolve(ctx context.Context, postcode, houseNumber string) (models.Point, error)
}

// regionCodes maps city district names from the forms to district codes.
var regionCodes = map[string]string{
	"Stadsdeel Centrum":    "A",
	"Stadsdeel Oost":       "M",
	"Stadsdeel Westpoort":  "B",
	"Stadsdeel Nieuw-West": "F",
	"Stadsdeel Zuidoost":   "T",
	"Stadsdeel Noord":      "N",
	"Stadsdeel West":       "E",
	"Stadsdeel Weesp":      "S",
	"Stadsdeel Zuid":       "K",
}

// RegionName returns the district code for name, or name itself.
func RegionName(name string) string {
	if code, ok := regionCodes[name]; ok {
		return code
	}
	return name
}

type Importer struct {
	DB        *gorm.DB
	Geocoder  Geocoder
	Separator string
}

func New(db *gorm.DB, geocoder Geocoder, separator string) *Importer {
	if separator == "" {
		separator = ";"
	}
	return &Importer{DB: db, Geocoder: geocoder, Separator: separator}
}

func (im *Importer) ImportPerson(ctx context.Context, p registration.PersonData) (*models.Person, bool, error) {
	return ImportPerson(ctx, im.DB, p)
}

// location holds the device columns and regions derived from a
// registration location. Unset fields leave the stored device untouched.
type location struct {
	point       *models.Point
	description string
	regions     string
}

func (im *Importer) resolveLocation(ctx context.Context, l registration.Location) (location, error) {
	var loc location

	loc.regions = strings.TrimSpace(l.Regions)
	loc.description = strings.TrimSpace(l.Description)

	if ll := l.LatLong; ll != nil {
		lat, err := strconv.ParseFloat(strings.TrimSpace(ll.Latitude), 64)
		if err != nil {
			return location{}, fmt.Errorf("latitude %q: %w", ll.Latitude, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(ll.Longitude), 64)
		if err != nil {
			return location{}, fmt.Errorf("longitude %q: %w", ll.Longitude, err)
		}
		loc.point = &models.Point{Latitude: lat, Longitude: lon}
	}

	if pc := l.Postcode; pc != nil {
		if im.Geocoder == nil {
			return location{}, fmt.Errorf("no geocoder configured for postcode %s", pc.Postcode)
		}
		p, err := im.Geocoder.Resolve(ctx, pc.Postcode, pc.HouseNumber)
		if err != nil {
			return location{}, err
		}
		loc.point = &p
	}

	if loc.point == nil && loc.description == "" && loc.regions == "" {
		return location{}, ErrUnknownLocationType
	}
	return loc, nil
}

// ImportSensor updates or creates the device identified by reference and
// owner and replaces its regions, themes, observation goals and projects.
// The bool reports whether the device was created.
func (im *Importer) ImportSensor(ctx context.Context, s registration.SensorData, owner *models.Person) (*models.Device, bool, error) {
	loc, err := im.resolveLocation(ctx, s.Location)
	if err != nil {
		return nil, false, sensorError(s, err)
	}

	activeUntil, err := registration.ParseDate(s.ActiveUntil)
	if err != nil {
		return nil, false, sensorError(s, fmt.Errorf("active until: %w", err))
	}

	var (
		device  models.Device
		created bool
	)
	err = im.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		typ, _, err := models.FindOrCreate[models.Type](tx, strings.TrimSpace(s.Type), true)
		if err != nil {
			return fmt.Errorf("type %s: %w", s.Type, err)
		}

		err = tx.Where("reference = ? AND owner_id = ?", s.Reference, owner.ID).Take(&device).Error
		created = errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !created {
			return fmt.Errorf("looking up device: %w", err)
		}

		device.Reference = s.Reference
		device.OwnerID = owner.ID
		device.TypeID = typ.ID
		device.Datastream = s.Datastream
		device.ContainsPiData = s.ContainsPiData == registration.Yes
		device.ActiveUntil = &activeUntil
		device.Source = s.Source
		if loc.point != nil {
			device.SetPoint(loc.point)
		}
		if loc.description != "" {
			device.LocationDescription = loc.description
		}

		if created {
			err = tx.Omit(clause.Associations).Create(&device).Error
		} else {
			err = tx.Omit(clause.Associations).Save(&device).Error
		}
		if err != nil {
			return fmt.Errorf("saving device: %w", err)
		}

		if err := im.replaceRelations(tx, &device, s, loc); err != nil {
			return err
		}

		return tx.Preload(clause.Associations).
			Preload("ObservationGoals.LegalGround").
			Take(&device, "id = ?", device.ID).Error
	})
	if err != nil {
		return nil, false, sensorError(s, err)
	}
	return &device, created, nil
}

func sensorError(s registration.SensorData, err error) error {
	return fmt.Errorf("importing sensor %s (row %d): %w", s.Reference, s.Row, err)
}

func (im *Importer) replaceRelations(tx *gorm.DB, d *models.Device, s registration.SensorData, loc location) error {
	var regions []models.Region
	for _, name := range im.split(loc.regions) {
		r, _, err := models.FindOrCreate[models.Region](tx, RegionName(name), true)
		if err != nil {
			return fmt.Errorf("region %s: %w", name, err)
		}
		regions = append(regions, *r)
	}
	if err := replace(tx, d, "Regions", regions); err != nil {
		return err
	}

	var themes []models.Theme
	for _, name := range im.split(s.Themes) {
		t, _, err := models.FindOrCreate[models.Theme](tx, name, true)
		if err != nil {
			return fmt.Errorf("theme %s: %w", name, err)
		}
		themes = append(themes, *t)
	}
	if err := replace(tx, d, "Themes", themes); err != nil {
		return err
	}

	var goals []models.ObservationGoal
	for _, g := range s.ObservationGoals {
		goal, err := observationGoal(tx, g)
		if err != nil {
			return err
		}
		goals = append(goals, *goal)
	}
	if err := replace(tx, d, "ObservationGoals", goals); err != nil {
		return err
	}

	var projects []models.Project
	for _, p := range s.Projects {
		if strings.TrimSpace(p) == "" {
			continue
		}
		project, err := im.project(tx, p)
		if err != nil {
			return err
		}
		projects = append(projects, *project)
	}
	return replace(tx, d, "Projects", projects)
}

// replace clears a many2many relation and links values instead. A cleared
// Association cannot be reused, so the append starts from a fresh one.
func replace[T any](tx *gorm.DB, d *models.Device, name string, values []T) error {
	if err := tx.Model(d).Association(name).Clear(); err != nil {
		return fmt.Errorf("clearing %s: %w", strings.ToLower(name), err)
	}
	if len(values) == 0 {
		return nil
	}
	if err := tx.Model(d).Association(name).Append(values); err != nil {
		return fmt.Errorf("linking %s: %w", strings.ToLower(name), err)
	}
	return nil
}

// observationGoal finds or creates the goal with exactly these values.
// A blank legal ground is stored as none.
func observationGoal(tx *gorm.DB, g registration.ObservationGoal) (*models.ObservationGoal, error) {
	goal := models.ObservationGoal{
		ObservationGoal:    g.ObservationGoal,
		PrivacyDeclaration: g.PrivacyDeclaration,
	}

	q := tx.Where("observation_goal = ? AND privacy_declaration = ?", g.ObservationGoal, g.PrivacyDeclaration)
	if name := strings.TrimSpace(g.LegalGround); name != "" {
		lg, _, err := models.FindOrCreate[models.LegalGround](tx, name, false)
		if err != nil {
			return nil, fmt.Errorf("legal ground %s: %w", name, err)
		}
		goal.LegalGroundID = &lg.ID
		q = q.Where("legal_ground_id = ?", lg.ID)
	} else {
		q = q.Where("legal_ground_id IS NULL")
	}

	var existing models.ObservationGoal
	err := q.Take(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up observation goal: %w", err)
	}
	if err := tx.Create(&goal).Error; err != nil {
		return nil, fmt.Errorf("creating observation goal: %w", err)
	}
	return &goal, nil
}

func (im *Importer) project(tx *gorm.DB, raw string) (*models.Project, error) {
	path := models.Path(im.split(raw))

	var p models.Project
	err := tx.Where("path = ?", path).Take(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up project %s: %w", raw, err)
	}

	p = models.Project{Path: path}
	if err := tx.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("creating project %s: %w", raw, err)
	}
	return &p, nil
}

// split breaks a separator joined cell into trimmed non-empty parts.
func (im *Importer) split(s string) []string {
	var out []string
	for _, part := range strings.Split(s, im.Separator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
