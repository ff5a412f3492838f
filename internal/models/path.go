package models

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Path is a hierarchical project path, stored as text[] on postgres and
// as its array literal elsewhere.
type Path []string

func (p Path) Value() (driver.Value, error) {
	return pq.StringArray(p).Value()
}

func (p *Path) Scan(src any) error {
	var a pq.StringArray
	if err := a.Scan(src); err != nil {
		return err
	}
	*p = Path(a)
	return nil
}

func (Path) GormDataType() string {
	return "text"
}

func (Path) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
