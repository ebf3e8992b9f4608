package dto

import (
	"time"

	"github.com/lmercat/productivity-api/internal/models"
)

// ShareDTO represents a contact share in API responses
type ShareDTO struct {
	ID          uint64                 `json:"id"`
	Type        models.ShareType       `json:"type"`
	ItemID      uint64                 `json:"item_id"`
	OwnerID     uint64                 `json:"owner_id"`
	RecipientID uint64                 `json:"recipient_id"`
	Permission  models.SharePermission `json:"permission"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// PublicShareDTO represents a public note link in API responses
type PublicShareDTO struct {
	ID        uint64     `json:"id"`
	NoteID    uint64     `json:"note_id"`
	Token     string     `json:"token"`
	URL       string     `json:"url"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// ContactDTO represents a confirmed contact in API responses
type ContactDTO struct {
	ID              uint64    `json:"id"`
	ContactUserID   uint64    `json:"contact_user_id"`
	ContactUsername string    `json:"contact_username"`
	ContactEmail    string    `json:"contact_email"`
	CreatedAt       time.Time `json:"created_at"`
}

// ContactRequestDTO represents a pending contact request in API responses
type ContactRequestDTO struct {
	ID                uint64                      `json:"id"`
	RequesterID       uint64                      `json:"requester_id"`
	RequesterUsername string                      `json:"requester_username"`
	RequesterEmail    string                      `json:"requester_email"`
	Status            models.ContactRequestStatus `json:"status"`
	CreatedAt         time.Time                   `json:"created_at"`
}

// ToShareDTO converts a Share model to ShareDTO
func ToShareDTO(share models.Share) ShareDTO {
	return ShareDTO{
		ID:          share.ID,
		Type:        share.Type,
		ItemID:      share.ItemID,
		OwnerID:     share.OwnerID,
		RecipientID: share.RecipientID,
		Permission:  share.Permission,
		CreatedAt:   share.CreatedAt,
		UpdatedAt:   share.UpdatedAt,
	}
}

// ToShareDTOs converts a slice of shares
func ToShareDTOs(shares []models.Share) []ShareDTO {
	items := make([]ShareDTO, len(shares))
	for i, share := range shares {
		items[i] = ToShareDTO(share)
	}
	return items
}

// ToPublicShareDTO converts a PublicShare model to PublicShareDTO. baseURL
// is the application origin used to build the shareable URL.
func ToPublicShareDTO(share models.PublicShare, baseURL string) PublicShareDTO {
	return PublicShareDTO{
		ID:        share.ID,
		NoteID:    share.NoteID,
		Token:     share.Token,
		URL:       baseURL + "/shared/" + share.Token,
		ExpiresAt: share.ExpiresAt,
		CreatedAt: share.CreatedAt,
	}
}

// ToContactDTO converts a Contact model to ContactDTO
func ToContactDTO(contact models.Contact) ContactDTO {
	return ContactDTO{
		ID:              contact.ID,
		ContactUserID:   contact.ContactUserID,
		ContactUsername: contact.ContactUsername,
		ContactEmail:    contact.ContactEmail,
		CreatedAt:       contact.CreatedAt,
	}
}

// ToContactDTOs converts a slice of contacts
func ToContactDTOs(contacts []models.Contact) []ContactDTO {
	items := make([]ContactDTO, len(contacts))
	for i, contact := range contacts {
		items[i] = ToContactDTO(contact)
	}
	return items
}

// ToContactRequestDTO converts a ContactRequest model to ContactRequestDTO
func ToContactRequestDTO(request models.ContactRequest) ContactRequestDTO {
	return ContactRequestDTO{
		ID:                request.ID,
		RequesterID:       request.RequesterID,
		RequesterUsername: request.RequesterUsername,
		RequesterEmail:    request.RequesterEmail,
		Status:            request.Status,
		CreatedAt:         request.CreatedAt,
	}
}

// ToContactRequestDTOs converts a slice of contact requests
func ToContactRequestDTOs(requests []models.ContactRequest) []ContactRequestDTO {
	items := make([]ContactRequestDTO, len(requests))
	for i, request := range requests {
		items[i] = ToContactRequestDTO(request)
	}
	return items
}
