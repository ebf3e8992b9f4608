package models

import "time"

type ContactRequestStatus string

const (
	RequestStatusPending  ContactRequestStatus = "pending"
	RequestStatusAccepted ContactRequestStatus = "accepted"
	RequestStatusRejected ContactRequestStatus = "rejected"
)

type ContactRequest struct {
	ID                uint64               `gorm:"primarykey" json:"id"`
	RequesterID       uint64               `gorm:"index;not null" json:"requester_id"`
	RequesterUsername string               `gorm:"type:varchar(50);not null" json:"requester_username"`
	RequesterEmail    string               `gorm:"type:varchar(255);not null" json:"requester_email"`
	RecipientID       uint64               `gorm:"index;not null" json:"recipient_id"`
	Status            ContactRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`

	Requester User `gorm:"foreignKey:RequesterID" json:"-"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}
