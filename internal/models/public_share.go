package models

import "time"

// PublicShare exposes a single note through an unguessable token,
// independent of any recipient identity. One link exists per
// (note, owner) pair; an expired link resolves as not found.
type PublicShare struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	NoteID    uint64     `gorm:"index;not null" json:"note_id"`
	OwnerID   uint64     `gorm:"index;not null" json:"owner_id"`
	Token     string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`

	Note  Note `gorm:"foreignKey:NoteID" json:"-"`
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// Expired reports whether the link has passed its expiry, if any.
func (p *PublicShare) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && p.ExpiresAt.Before(now)
}
