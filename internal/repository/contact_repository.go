package repository

import (
	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
)

// GormContactRepository is a GORM implementation of ContactRepository
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &GormContactRepository{db: db}
}

// ListByUser lists a user's contacts, newest first
func (r *GormContactRepository) ListByUser(userID uint64) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindEdge finds a contact row between two users in either direction
func (r *GormContactRepository) FindEdge(userID, otherID uint64) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.
		Where("(user_id = ? AND contact_user_id = ?) OR (user_id = ? AND contact_user_id = ?)",
			userID, otherID, otherID, userID).
		First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// Delete removes a contact row scoped to its owning user
func (r *GormContactRepository) Delete(id, userID uint64) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Contact{})
	return result.RowsAffected, result.Error
}

// CreateRequest stores a new contact request
func (r *GormContactRepository) CreateRequest(request *models.ContactRequest) error {
	return r.db.Create(request).Error
}

// FindPendingRequest finds a pending request for the ordered pair
func (r *GormContactRepository) FindPendingRequest(requesterID, recipientID uint64) (*models.ContactRequest, error) {
	var request models.ContactRequest
	if err := r.db.
		Where("requester_id = ? AND recipient_id = ? AND status = ?",
			requesterID, recipientID, models.RequestStatusPending).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// FindPendingForRecipient finds a pending request addressed to the recipient
func (r *GormContactRepository) FindPendingForRecipient(requestID, recipientID uint64) (*models.ContactRequest, error) {
	var request models.ContactRequest
	if err := r.db.
		Where("id = ? AND recipient_id = ? AND status = ?",
			requestID, recipientID, models.RequestStatusPending).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ListPendingForRecipient lists pending requests addressed to a user
func (r *GormContactRepository) ListPendingForRecipient(recipientID uint64) ([]models.ContactRequest, error) {
	var requests []models.ContactRequest
	if err := r.db.
		Where("recipient_id = ? AND status = ?", recipientID, models.RequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateRequestStatus sets the status of a request
func (r *GormContactRepository) UpdateRequestStatus(requestID uint64, status models.ContactRequestStatus) error {
	return r.db.Model(&models.ContactRequest{}).
		Where("id = ?", requestID).
		Update("status", status).Error
}

// Accept flips the request to accepted and creates both contact rows in one transaction
func (r *GormContactRepository) Accept(request *models.ContactRequest, forward, backward *models.Contact) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ContactRequest{}).
			Where("id = ?", request.ID).
			Update("status", models.RequestStatusAccepted).Error; err != nil {
			return err
		}
		if err := tx.Create(forward).Error; err != nil {
			return err
		}
		return tx.Create(backward).Error
	})
}
