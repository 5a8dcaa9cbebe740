package repository

import (
	"errors"

	"backend/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique index rejects a write.
var ErrDuplicate = errors.New("duplicate record")

type gormUsers struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &gormUsers{db: db} }

func (r *gormUsers) ByUID(uid string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("uid = ?", uid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormUsers) ByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormUsers) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *gormUsers) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *gormUsers) Create(u *models.User) error {
	if err := r.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *gormUsers) Save(u *models.User) error {
	if err := r.db.Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *gormUsers) Delete(uid string) error {
	// Unscoped: account deletion is a hard delete, not a soft-delete flag.
	return r.db.Unscoped().Where("uid = ?", uid).Delete(&models.User{}).Error
}

type gormStreaks struct{ db *gorm.DB }

func NewStreakRepository(db *gorm.DB) StreakRepository { return &gormStreaks{db: db} }

func (r *gormStreaks) Has(uid, date string) (bool, error) {
	var count int64
	err := r.db.Model(&models.StreakDate{}).
		Where("user_uid = ? AND date = ?", uid, date).
		Count(&count).Error
	return count > 0, err
}

func (r *gormStreaks) Append(uid, date string) error {
	err := r.db.Create(&models.StreakDate{UserUID: uid, Date: date}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Concurrent tick already recorded today; the set semantics hold.
		return nil
	}
	return err
}

func (r *gormStreaks) Dates(uid string) ([]string, error) {
	var rows []models.StreakDate
	if err := r.db.Where("user_uid = ?", uid).Order("date asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(rows))
	for _, row := range rows {
		dates = append(dates, row.Date)
	}
	return dates, nil
}

func (r *gormStreaks) DeleteAll(uid string) error {
	return r.db.Where("user_uid = ?", uid).Delete(&models.StreakDate{}).Error
}

type gormDevices struct{ db *gorm.DB }

func NewDeviceRepository(db *gorm.DB) DeviceRepository { return &gormDevices{db: db} }

func (r *gormDevices) Upsert(d *models.UserDevice) (*models.UserDevice, error) {
	var existing models.UserDevice
	err := r.db.Where("user_uid = ? AND token_hash = ?", d.UserUID, d.TokenHash).First(&existing).Error
	if err == nil {
		existing.EndpointARN = d.EndpointARN
		existing.Platform = d.Platform
		if err := r.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := r.db.Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

func (r *gormDevices) EnabledByUser(uid string) ([]models.UserDevice, error) {
	var devices []models.UserDevice
	err := r.db.Where("user_uid = ? AND enabled = ?", uid, true).Find(&devices).Error
	return devices, err
}

func (r *gormDevices) SetEnabled(uid string, enabled bool) error {
	return r.db.Model(&models.UserDevice{}).
		Where("user_uid = ?", uid).
		Update("enabled", enabled).Error
}

func (r *gormDevices) DeleteAll(uid string) error {
	return r.db.Where("user_uid = ?", uid).Delete(&models.UserDevice{}).Error
}
