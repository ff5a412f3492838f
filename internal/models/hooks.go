package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (p *Person) BeforeCreate(*gorm.DB) error {
	newID(&p.ID)
	p.EmailKey = Key(p.Email)
	return nil
}

func (d *Device) BeforeCreate(*gorm.DB) error {
	newID(&d.ID)
	return nil
}

func (t *Type) BeforeCreate(*gorm.DB) error {
	newID(&t.ID)
	t.NameKey = Key(t.Name)
	return nil
}

func (t *Theme) BeforeCreate(*gorm.DB) error {
	newID(&t.ID)
	t.NameKey = Key(t.Name)
	return nil
}

func (r *Region) BeforeCreate(*gorm.DB) error {
	newID(&r.ID)
	r.NameKey = Key(r.Name)
	return nil
}

func (l *LegalGround) BeforeCreate(*gorm.DB) error {
	newID(&l.ID)
	l.NameKey = Key(l.Name)
	return nil
}

func (g *ObservationGoal) BeforeCreate(*gorm.DB) error {
	newID(&g.ID)
	return nil
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	newID(&p.ID)
	return nil
}
