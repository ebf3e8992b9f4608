package models

import "time"

// Reminder is attached to a note at creation time; the note title, text
// and user email are denormalized so the reminder stays deliverable even
// if the note changes afterwards. Due reminders are marked sent rather
// than deleted so the monthly quota can count them.
type Reminder struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	UserID     uint64    `gorm:"index;not null" json:"user_id"`
	NoteID     uint64    `gorm:"index;not null" json:"note_id"`
	UserEmail  string    `gorm:"type:varchar(255);not null" json:"user_email"`
	NoteTitle  string    `gorm:"type:varchar(255);not null" json:"note_title"`
	NoteText   string    `gorm:"type:text;not null" json:"note_text"`
	RemindAt   time.Time `gorm:"index;not null" json:"remind_at"`
	Sent       bool      `gorm:"not null;default:false" json:"sent"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
