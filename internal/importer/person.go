package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/amsterdam/sensorregister/internal/models"
	"github.com/amsterdam/sensorregister/internal/registration"
)

// ImportPerson updates or creates the person identified by email (case
// insensitive) and organisation. Name, telephone and website are
// overwritten; the stored email keeps its original spelling.
func ImportPerson(ctx context.Context, tx *gorm.DB, p registration.PersonData) (*models.Person, bool, error) {
	tx = tx.WithContext(ctx)
	organisation := strings.TrimSpace(p.Organisation)

	var person models.Person
	err := tx.Where("email_key = ? AND organisation = ?", models.Key(p.Email), organisation).Take(&person).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		person = models.Person{
			Email:        strings.TrimSpace(p.Email),
			Organisation: organisation,
			Name:         p.FullName(),
			Telephone:    strings.TrimSpace(p.Telephone),
			Website:      strings.TrimSpace(p.Website),
		}
		if err := tx.Create(&person).Error; err != nil {
			return nil, false, fmt.Errorf("creating person %s: %w", p.Email, err)
		}
		return &person, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("looking up person %s: %w", p.Email, err)
	}

	person.Name = p.FullName()
	person.Telephone = strings.TrimSpace(p.Telephone)
	person.Website = strings.TrimSpace(p.Website)
	if err := tx.Save(&person).Error; err != nil {
		return nil, false, fmt.Errorf("updating person %s: %w", p.Email, err)
	}
	return &person, false, nil
}
