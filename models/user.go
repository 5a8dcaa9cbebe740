package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

type User struct {
	gorm.Model
	UID                  string `gorm:"uniqueIndex;size:36;not null"`
	Email                string `gorm:"uniqueIndex;not null"`
	Password             string // bcrypt hash; empty for federated accounts
	DisplayName          string
	Username             string `gorm:"uniqueIndex;size:16;not null"`
	PhotoURL             string
	Provider             string `gorm:"size:16;default:email"` // "email" | "google"
	PushToken            string
	NotificationsEnabled bool `gorm:"default:true"`
	EmailVerified        bool
	Disabled             bool
	DailyGoalMet         bool
	LastActiveDate       string `gorm:"size:10"` // YYYY-MM-DD in the app timezone
	DailyActiveSeconds   int64
}

// Snapshot is the serialized session copy of a profile. It is what the
// session cache stores and what /user/profile returns; the password hash
// never leaves the users table.
type Snapshot struct {
	UID                  string    `json:"uid"`
	Email                string    `json:"email"`
	DisplayName          string    `json:"displayName"`
	Username             string    `json:"username"`
	PhotoURL             string    `json:"photoURL,omitempty"`
	Provider             string    `json:"provider"`
	PushToken            string    `json:"pushToken,omitempty"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
	EmailVerified        bool      `json:"emailVerified"`
	DailyGoalMet         bool      `json:"dailyGoalMet"`
	LastActiveDate       string    `json:"lastActiveDate,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func (u *User) ToSnapshot() Snapshot {
	return Snapshot{
		UID:                  u.UID,
		Email:                u.Email,
		DisplayName:          u.DisplayName,
		Username:             u.Username,
		PhotoURL:             u.PhotoURL,
		Provider:             u.Provider,
		PushToken:            u.PushToken,
		NotificationsEnabled: u.NotificationsEnabled,
		EmailVerified:        u.EmailVerified,
		DailyGoalMet:         u.DailyGoalMet,
		LastActiveDate:       u.LastActiveDate,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}
