package models

import "time"

// Contact is one direction of a bidirectional relationship; acceptance of
// a request materializes two rows, one per direction. The counterpart's
// username and email are denormalized for display.
type Contact struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	UserID          uint64    `gorm:"index;not null" json:"user_id"`
	ContactUserID   uint64    `gorm:"index;not null" json:"contact_user_id"`
	ContactUsername string    `gorm:"type:varchar(50);not null" json:"contact_username"`
	ContactEmail    string    `gorm:"type:varchar(255);not null" json:"contact_email"`
	CreatedAt       time.Time `json:"created_at"`

	User        User `gorm:"foreignKey:UserID" json:"-"`
	ContactUser User `gorm:"foreignKey:ContactUserID" json:"-"`
}
