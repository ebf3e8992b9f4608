package models

import "time"

// Session is a server-side login session addressed by an opaque token.
// Expired rows are removed lazily when encountered during authentication,
// there is no background sweeper.
type Session struct {
	Token     string    `gorm:"type:varchar(64);primarykey" json:"token"`
	UserID    uint64    `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
