package models

import "time"

type NoteCategory string

const (
	CategoryBusiness NoteCategory = "business"
	CategoryPersonal NoteCategory = "perso"
	CategorySport    NoteCategory = "sport"
	CategoryClients  NoteCategory = "clients"
	CategoryUrgent   NoteCategory = "urgent"
	CategoryOther    NoteCategory = "autres"
)

// ValidNoteCategory reports whether c is one of the known categories.
func ValidNoteCategory(c NoteCategory) bool {
	switch c {
	case CategoryBusiness, CategoryPersonal, CategorySport, CategoryClients, CategoryUrgent, CategoryOther:
		return true
	}
	return false
}

type Note struct {
	ID        uint64       `gorm:"primarykey" json:"id"`
	UserID    uint64       `gorm:"index;not null" json:"user_id"`
	Title     string       `gorm:"type:varchar(255);not null" json:"title"`
	Text      string       `gorm:"type:text;not null" json:"text"`
	Category  NoteCategory `gorm:"type:varchar(20);not null;default:'autres'" json:"category"`
	CreatedAt time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
