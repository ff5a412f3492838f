// Package reconcile drives whole imports: it parses a source, validates
// and imports every record, and retires sensors a feed no longer reports.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amsterdam/sensorregister/internal/feeds"
	"github.com/amsterdam/sensorregister/internal/importer"
	"github.com/amsterdam/sensorregister/internal/logging"
	"github.com/amsterdam/sensorregister/internal/models"
	"github.com/amsterdam/sensorregister/internal/registration"
	"github.com/amsterdam/sensorregister/internal/report"
	"github.com/amsterdam/sensorregister/internal/spreadsheet"
	"github.com/amsterdam/sensorregister/internal/validation"
)

// ErrDuplicateReferences rejects a submission that uses a reference more
// than once. The returned error also wraps each *DuplicateReferenceError.
var ErrDuplicateReferences = errors.New("duplicate references")

// Result tallies one import.
type Result struct {
	Created int
	Updated int
	Deleted int
	Errors  []error
	// WithoutLocation lists imported sensors that have no point.
	WithoutLocation []string
}

func (r Result) Report(source string) report.Report {
	rep := report.Report{
		Source:          source,
		Created:         r.Created,
		Updated:         r.Updated,
		Deleted:         r.Deleted,
		WithoutLocation: r.WithoutLocation,
		FinishedAt:      time.Now(),
	}
	for _, err := range r.Errors {
		rep.Errors = append(rep.Errors, err.Error())
	}
	return rep
}

// Fetcher downloads a feed.
type Fetcher interface {
	Fetch(ctx context.Context, def feeds.Definition) (feeds.FeatureCollection, error)
}

type Service struct {
	DB       *gorm.DB
	Importer *importer.Importer
	Sink     report.Sink
	Catalog  *feeds.Catalog
}

func New(db *gorm.DB, im *importer.Importer, sink report.Sink, catalog *feeds.Catalog) *Service {
	return &Service{DB: db, Importer: im, Sink: sink, Catalog: catalog}
}

// ImportSpreadsheet imports a compact or bulk registration workbook. A
// submission with duplicate references is rejected as a whole: nothing is
// imported, Result.Errors lists the duplicates and the error wraps
// ErrDuplicateReferences.
func (s *Service) ImportSpreadsheet(ctx context.Context, source string, wb spreadsheet.Workbook, cfg spreadsheet.Config) (Result, error) {
	seq, err := spreadsheet.Parse(wb, cfg)
	if err != nil {
		return Result{}, err
	}
	records := slices.Collect(seq)

	if dups := Duplicates(records); len(dups) > 0 {
		res := Result{Errors: dups}
		s.notify(ctx, source, res)
		return res, fmt.Errorf("%w: %w", ErrDuplicateReferences, errors.Join(dups...))
	}

	res, _, err := s.importRecords(ctx, records)
	if err != nil {
		return Result{}, err
	}
	s.notify(ctx, source, res)
	return res, nil
}

// ImportFeed imports the features of the named feed and deletes the
// sensors this feed reported for its owner before but no longer does.
// Other feeds of the same owner are left alone. An empty batch deletes
// nothing.
func (s *Service) ImportFeed(ctx context.Context, name string, fc feeds.FeatureCollection) (Result, error) {
	def, err := s.Catalog.Lookup(name)
	if err != nil {
		return Result{}, err
	}
	records := slices.Collect(feeds.Parse(def, fc))

	res, owners, err := s.importRecords(ctx, records)
	if err != nil {
		return Result{}, err
	}

	if owner, ok := owners[ownerKey(def.PersonData())]; ok && len(records) > 0 {
		refs := make([]string, 0, len(records))
		for _, r := range records {
			refs = append(refs, r.Reference)
		}
		res.Deleted, err = s.DeleteStaleSensors(ctx, owner, def.Name, refs)
		if err != nil {
			return res, err
		}
	} else {
		logging.FromContext(ctx).Warn().Str("feed", name).Msg("empty feed, stale sensors kept")
	}

	s.notify(ctx, name, res)
	return res, nil
}

// FeedResult is the outcome of one feed in ImportFeeds.
type FeedResult struct {
	Name   string
	Result Result
	Err    error
}

// ImportFeeds fetches and imports the named feeds, or every feed in the
// catalog when none are named. A failing feed does not stop the others.
func (s *Service) ImportFeeds(ctx context.Context, client Fetcher, names ...string) []FeedResult {
	if len(names) == 0 {
		names = s.Catalog.Names()
	}

	results := make([]FeedResult, 0, len(names))
	for _, name := range names {
		fr := FeedResult{Name: name}
		def, err := s.Catalog.Lookup(name)
		if err == nil {
			var fc feeds.FeatureCollection
			if fc, err = client.Fetch(ctx, def); err == nil {
				fr.Result, err = s.ImportFeed(ctx, name, fc)
			}
		}
		if err != nil {
			logging.LogError(ctx, "reconcile", name, err)
			fr.Err = fmt.Errorf("feed %s: %w", name, err)
		}
		results = append(results, fr)
	}
	return results
}

// DeleteStaleSensors deletes the sensors owner registered through source
// whose reference is not in references and returns how many were deleted.
func (s *Service) DeleteStaleSensors(ctx context.Context, owner *models.Person, source string, references []string) (int, error) {
	var deleted int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("owner_id = ? AND source = ?", owner.ID, source)
		if len(references) > 0 {
			q = q.Where("reference NOT IN ?", references)
		}

		var stale []models.Device
		if err := q.Find(&stale).Error; err != nil {
			return fmt.Errorf("finding stale sensors: %w", err)
		}
		if len(stale) == 0 {
			return nil
		}

		if err := tx.Select(clause.Associations).Delete(&stale).Error; err != nil {
			return fmt.Errorf("deleting stale sensors: %w", err)
		}
		deleted = len(stale)
		return nil
	})
	return deleted, err
}

// importRecords validates every owner, imports the distinct owners and then
// every sensor. Owner failures abort the batch, sensor failures are
// collected.
func (s *Service) importRecords(ctx context.Context, records []registration.SensorData) (Result, map[string]*models.Person, error) {
	log := logging.FromContext(ctx)

	for _, r := range records {
		if err := validation.ValidatePerson(r.Owner); err != nil {
			return Result{}, nil, fmt.Errorf("Foutieve persoon data voor %s (rij %d): %w", r.Reference, r.Row, err)
		}
	}

	latest := make(map[string]registration.PersonData)
	var keys []string
	for _, r := range records {
		key := ownerKey(r.Owner)
		if _, ok := latest[key]; !ok {
			keys = append(keys, key)
		}
		latest[key] = r.Owner
	}

	owners := make(map[string]*models.Person, len(keys))
	for _, key := range keys {
		p, _, err := s.Importer.ImportPerson(ctx, latest[key])
		if err != nil {
			return Result{}, nil, err
		}
		owners[key] = p
	}

	var res Result
	for _, r := range records {
		if err := validation.ValidateSensor(r); err != nil {
			log.Warn().Str("reference", r.Reference).Int("row", r.Row).Err(err).Msg("invalid sensor")
			res.Errors = append(res.Errors, err)
			continue
		}

		device, created, err := s.Importer.ImportSensor(ctx, r, owners[ownerKey(r.Owner)])
		if err != nil {
			log.Warn().Str("reference", r.Reference).Int("row", r.Row).Err(err).Msg("sensor import failed")
			res.Errors = append(res.Errors, err)
			continue
		}

		if created {
			res.Created++
		} else {
			res.Updated++
		}
		if device.Point() == nil {
			log.Warn().Str("reference", device.Reference).Msg("sensor has no lat/long")
			res.WithoutLocation = append(res.WithoutLocation, device.Reference)
		}
	}
	return res, owners, nil
}

// ownerKey matches the person identity: case-folded email and trimmed
// organisation.
func ownerKey(p registration.PersonData) string {
	return models.Key(p.Email) + "\x00" + strings.TrimSpace(p.Organisation)
}

func (s *Service) notify(ctx context.Context, source string, res Result) {
	if s.Sink == nil {
		return
	}
	if err := s.Sink.Notify(ctx, res.Report(source)); err != nil {
		logging.LogError(ctx, "reconcile", "notify", err)
	}
}
