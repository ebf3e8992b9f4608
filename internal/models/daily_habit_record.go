package models

import "time"

type HabitStatus string

const (
	HabitStatusPending   HabitStatus = "pending"
	HabitStatusCompleted HabitStatus = "completed"
	HabitStatusSkipped   HabitStatus = "skipped"
)

// ValidHabitStatus reports whether s is one of the known daily statuses.
func ValidHabitStatus(s HabitStatus) bool {
	switch s {
	case HabitStatusPending, HabitStatusCompleted, HabitStatusSkipped:
		return true
	}
	return false
}

// DailyHabitRecord tracks one habit for one calendar day. Date is a
// YYYY-MM-DD string in the server's local time zone; at most one row
// exists per habit per day.
type DailyHabitRecord struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	HabitID     uint64      `gorm:"uniqueIndex:idx_habit_date;not null" json:"habit_id"`
	Date        string      `gorm:"type:varchar(10);uniqueIndex:idx_habit_date;not null" json:"date"`
	Status      HabitStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CompletedAt *time.Time  `json:"completed_at"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Habit Habit `gorm:"foreignKey:HabitID" json:"-"`
}
