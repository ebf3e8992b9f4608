package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/repository"
)

var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrNoteTitleRequired = errors.New("title is required")
	ErrInvalidCategory   = errors.New("unknown note category")
	ErrNoteQuotaExceeded = errors.New("note quota exceeded")
)

// NoteService handles note business logic. Creation is quota-gated and
// triggers a best-effort calendar sync that never fails the request.
type NoteService struct {
	noteRepo        repository.NoteRepository
	subscriptionSvc *SubscriptionService
	calendar        *CalendarService
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo repository.NoteRepository, subscriptionSvc *SubscriptionService, calendar *CalendarService) *NoteService {
	return &NoteService{
		noteRepo:        noteRepo,
		subscriptionSvc: subscriptionSvc,
		calendar:        calendar,
	}
}

// CreateNoteInput represents input for creating a note
type CreateNoteInput struct {
	UserID   uint64
	Title    string
	Text     string
	Category models.NoteCategory
}

// CreateNoteResult carries the created note and the quota allowance left
// after creation.
type CreateNoteResult struct {
	Note           *models.Note
	RemainingToday int
}

// Create validates input, enforces the daily quota and stores the note.
func (s *NoteService) Create(input CreateNoteInput) (*CreateNoteResult, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrNoteTitleRequired
	}
	category := input.Category
	if category == "" {
		category = models.CategoryOther
	}
	if !models.ValidNoteCategory(category) {
		return nil, ErrInvalidCategory
	}

	decision, err := s.subscriptionSvc.CanCreateNote(input.UserID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, NewQuotaError(decision, ErrNoteQuotaExceeded)
	}

	note := &models.Note{
		UserID:   input.UserID,
		Title:    title,
		Text:     strings.TrimSpace(input.Text),
		Category: category,
	}
	if err := s.noteRepo.Create(note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	// Best effort: a calendar failure never rolls back the note.
	s.calendar.NotifyNoteCreated(note)

	remaining := decision.Remaining - 1
	if remaining < 0 {
		remaining = 0
	}
	return &CreateNoteResult{Note: note, RemainingToday: remaining}, nil
}

// List returns a user's notes, newest first.
func (s *NoteService) List(userID uint64) ([]models.Note, error) {
	notes, err := s.noteRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// Get returns a note owned by the user.
func (s *NoteService) Get(noteID, userID uint64) (*models.Note, error) {
	note, err := s.noteRepo.FindByIDAndUser(noteID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return note, nil
}

// UpdateNoteInput represents partial updates to a note
type UpdateNoteInput struct {
	Title    *string
	Text     *string
	Category *models.NoteCategory
}

// Update applies partial updates to a note owned by the user.
func (s *NoteService) Update(noteID, userID uint64, input UpdateNoteInput) (*models.Note, error) {
	note, err := s.Get(noteID, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrNoteTitleRequired
		}
		note.Title = title
	}
	if input.Text != nil {
		note.Text = strings.TrimSpace(*input.Text)
	}
	if input.Category != nil {
		if !models.ValidNoteCategory(*input.Category) {
			return nil, ErrInvalidCategory
		}
		note.Category = *input.Category
	}

	if err := s.noteRepo.Update(note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return note, nil
}

// Delete removes a note owned by the user.
func (s *NoteService) Delete(noteID, userID uint64) error {
	affected, err := s.noteRepo.Delete(noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}
