package models

import "time"

type SubTask struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"index;not null" json:"task_id"`
	Text      string    `gorm:"type:varchar(500);not null" json:"text"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`

	Task Task `gorm:"foreignKey:TaskID" json:"-"`
}
