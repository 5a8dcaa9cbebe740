package models

import "time"

// StreakDate marks one day on which a user met the activity threshold.
// The (user_uid, date) unique index gives the set its append-only,
// at-most-once semantics even when two checks race.
type StreakDate struct {
	ID        uint   `gorm:"primaryKey"`
	UserUID   string `gorm:"uniqueIndex:idx_streak_user_date;size:36;not null"`
	Date      string `gorm:"uniqueIndex:idx_streak_user_date;size:10;not null"` // YYYY-MM-DD
	CreatedAt time.Time
}
