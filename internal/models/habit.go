package models

import "time"

type Habit struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"index;not null" json:"user_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Color       string    `gorm:"type:varchar(20);not null;default:'blue'" json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User         User               `gorm:"foreignKey:UserID" json:"-"`
	DailyRecords []DailyHabitRecord `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE" json:"daily_records,omitempty"`
}
