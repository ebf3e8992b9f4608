package models

import "time"

type ShareType string

const (
	ShareTypeNote     ShareType = "note"
	ShareTypeTask     ShareType = "task"
	ShareTypeHabit    ShareType = "habit"
	ShareTypeReminder ShareType = "reminder"
)

// ValidShareType reports whether t is one of the shareable item kinds.
func ValidShareType(t ShareType) bool {
	switch t {
	case ShareTypeNote, ShareTypeTask, ShareTypeHabit, ShareTypeReminder:
		return true
	}
	return false
}

type SharePermission string

const (
	PermissionRead  SharePermission = "read"
	PermissionWrite SharePermission = "write"
)

// ValidSharePermission reports whether p is a known permission level.
func ValidSharePermission(p SharePermission) bool {
	return p == PermissionRead || p == PermissionWrite
}

// Share grants a recipient access to exactly one item, discriminated by
// Type. At most one row exists per (type, item, recipient); re-sharing
// updates the permission in place.
type Share struct {
	ID          uint64          `gorm:"primarykey" json:"id"`
	Type        ShareType       `gorm:"type:varchar(20);uniqueIndex:idx_share_item_recipient;not null" json:"type"`
	ItemID      uint64          `gorm:"uniqueIndex:idx_share_item_recipient;not null" json:"item_id"`
	OwnerID     uint64          `gorm:"index;not null" json:"owner_id"`
	RecipientID uint64          `gorm:"uniqueIndex:idx_share_item_recipient;index;not null" json:"recipient_id"`
	Permission  SharePermission `gorm:"type:varchar(10);not null;default:'read'" json:"permission"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Owner     User `gorm:"foreignKey:OwnerID" json:"-"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}
