package models

import (
	"errors"

	"gorm.io/gorm"
)

// Named is implemented by the controlled vocabulary entities.
type Named interface {
	assign(name string, isOther bool)
}

func (t *Type) assign(name string, isOther bool)   { t.Name, t.IsOther = name, isOther }
func (t *Theme) assign(name string, isOther bool)  { t.Name, t.IsOther = name, isOther }
func (r *Region) assign(name string, isOther bool) { r.Name, r.IsOther = name, isOther }
func (l *LegalGround) assign(name string, _ bool)  { l.Name = name }

// FindOrCreate looks a vocabulary entry up by its case-folded name and
// creates it with isOther when missing. The bool reports whether it was
// created.
func FindOrCreate[T any, PT interface {
	*T
	Named
}](tx *gorm.DB, name string, isOther bool) (PT, bool, error) {
	var existing T
	err := tx.Where("name_key = ?", Key(name)).Take(&existing).Error
	if err == nil {
		return PT(&existing), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	v := PT(new(T))
	v.assign(name, isOther)
	if err := tx.Create(v).Error; err != nil {
		return nil, false, err
	}
	return v, true, nil
}
