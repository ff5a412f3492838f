package db

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// EnsureSchema creates a postgres schema if it does not exist yet.
func EnsureSchema(ctx context.Context, d *gorm.DB, schemaName string) error {
	quoted := `"` + strings.ReplaceAll(schemaName, `"`, `""`) + `"`
	return d.WithContext(ctx).Exec("CREATE SCHEMA IF NOT EXISTS " + quoted).Error
}
