// Package seeds loads the standard vocabularies into the registry.
package seeds

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/amsterdam/sensorregister/internal/logging"
	"github.com/amsterdam/sensorregister/internal/models"
)

// SeedAll creates every standard vocabulary entry. Entries that already
// exist are marked standard.
func SeedAll(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seed[models.Type](ctx, tx, "type", Types, true); err != nil {
			return err
		}
		if err := seed[models.Theme](ctx, tx, "theme", Themes, true); err != nil {
			return err
		}
		if err := seed[models.Region](ctx, tx, "region", Regions, true); err != nil {
			return err
		}
		return seed[models.LegalGround](ctx, tx, "legal ground", LegalGrounds, false)
	})
}

func seed[T any, PT interface {
	*T
	models.Named
}](ctx context.Context, tx *gorm.DB, kind string, names []string, flagged bool) error {
	log := logging.FromContext(ctx)
	for _, name := range names {
		v, created, err := models.FindOrCreate[T, PT](tx, name, false)
		if err != nil {
			return fmt.Errorf("seed %s %q: %w", kind, name, err)
		}
		if created {
			log.Info().Str("kind", kind).Str("name", name).Msg("seeded")
			continue
		}
		if flagged {
			if err := tx.Model(v).Update("is_other", false).Error; err != nil {
				return fmt.Errorf("mark %s %q standard: %w", kind, name, err)
			}
		}
	}
	return nil
}
