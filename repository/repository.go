// Package repository wraps all Postgres access behind narrow interfaces so
// the services can be exercised against fakes.
package repository

import "backend/models"

type UserRepository interface {
	ByUID(uid string) (*models.User, error)
	ByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	UsernameExists(username string) (bool, error)
	Create(u *models.User) error
	Save(u *models.User) error
	Delete(uid string) error
}

type StreakRepository interface {
	Has(uid, date string) (bool, error)
	Append(uid, date string) error
	Dates(uid string) ([]string, error)
	DeleteAll(uid string) error
}

type DeviceRepository interface {
	Upsert(d *models.UserDevice) (*models.UserDevice, error)
	EnabledByUser(uid string) ([]models.UserDevice, error)
	SetEnabled(uid string, enabled bool) error
	DeleteAll(uid string) error
}
