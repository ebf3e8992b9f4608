package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/constants"
	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/repository"
)

var (
	ErrSelfContact            = errors.New("cannot add yourself as a contact")
	ErrContactExists          = errors.New("contact already exists")
	ErrRequestAlreadyPending  = errors.New("a request is already pending")
	ErrContactRequestNotFound = errors.New("request not found or already handled")
	ErrContactNotFound        = errors.New("contact not found")
)

// ContactService handles the contact request workflow. Acceptance
// materializes the relationship as two rows, one per direction, each
// denormalizing the counterpart's username and email.
type ContactService struct {
	contactRepo repository.ContactRepository
	userRepo    repository.UserRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo repository.ContactRepository, userRepo repository.UserRepository) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		userRepo:    userRepo,
	}
}

// RequestContact opens a pending request from requester to recipient.
// Rejected pairs may re-request; an existing contact in either direction
// or a pending request for the same ordered pair is a conflict.
func (s *ContactService) RequestContact(requesterID, recipientID uint64) (*models.ContactRequest, error) {
	if requesterID == recipientID {
		return nil, ErrSelfContact
	}

	if _, err := s.userRepo.FindByID(recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}

	if _, err := s.contactRepo.FindEdge(requesterID, recipientID); err == nil {
		return nil, ErrContactExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check contacts: %w", err)
	}

	if _, err := s.contactRepo.FindPendingRequest(requesterID, recipientID); err == nil {
		return nil, ErrRequestAlreadyPending
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}

	requester, err := s.userRepo.FindByID(requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load requester: %w", err)
	}

	request := &models.ContactRequest{
		RequesterID:       requester.ID,
		RequesterUsername: requester.Username,
		RequesterEmail:    requester.Email,
		RecipientID:       recipientID,
		Status:            models.RequestStatusPending,
	}
	if err := s.contactRepo.CreateRequest(request); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return request, nil
}

// AcceptRequest accepts a pending request addressed to userID and
// materializes the bidirectional edge in a single transaction. Returns
// the recipient-side contact row.
func (s *ContactService) AcceptRequest(requestID, userID uint64) (*models.Contact, error) {
	request, err := s.contactRepo.FindPendingForRecipient(requestID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactRequestNotFound
		}
		return nil, fmt.Errorf("failed to find request: %w", err)
	}

	requester, err := s.userRepo.FindByID(request.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requester: %w", err)
	}
	recipient, err := s.userRepo.FindByID(request.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}

	forward := &models.Contact{
		UserID:          requester.ID,
		ContactUserID:   recipient.ID,
		ContactUsername: recipient.Username,
		ContactEmail:    recipient.Email,
	}
	backward := &models.Contact{
		UserID:          recipient.ID,
		ContactUserID:   requester.ID,
		ContactUsername: requester.Username,
		ContactEmail:    requester.Email,
	}

	if err := s.contactRepo.Accept(request, forward, backward); err != nil {
		return nil, fmt.Errorf("failed to accept request: %w", err)
	}
	return backward, nil
}

// RejectRequest marks a pending request addressed to userID as rejected.
// Rejection is terminal for the request but does not block a future
// request in either direction.
func (s *ContactService) RejectRequest(requestID, userID uint64) error {
	request, err := s.contactRepo.FindPendingForRecipient(requestID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactRequestNotFound
		}
		return fmt.Errorf("failed to find request: %w", err)
	}

	if err := s.contactRepo.UpdateRequestStatus(request.ID, models.RequestStatusRejected); err != nil {
		return fmt.Errorf("failed to reject request: %w", err)
	}
	return nil
}

// ListContacts returns a user's contacts, newest first.
func (s *ContactService) ListContacts(userID uint64) ([]models.Contact, error) {
	contacts, err := s.contactRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

// ListPendingRequests returns pending requests addressed to the user.
func (s *ContactService) ListPendingRequests(userID uint64) ([]models.ContactRequest, error) {
	requests, err := s.contactRepo.ListPendingForRecipient(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

// RemoveContact deletes one direction of a contact relationship, scoped
// to the owning user. The mirror row is left untouched, matching the
// two-row materialization.
func (s *ContactService) RemoveContact(contactID, userID uint64) error {
	affected, err := s.contactRepo.Delete(contactID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove contact: %w", err)
	}
	if affected == 0 {
		return ErrContactNotFound
	}
	return nil
}

// SearchUsers finds users by username substring, excluding the searcher.
func (s *ContactService) SearchUsers(query string, excludeUserID uint64) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.User{}, nil
	}
	users, err := s.userRepo.SearchByUsername(query, excludeUserID, constants.MaxUserSearchResults)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}
