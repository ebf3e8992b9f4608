package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/repository"
)

var (
	ErrReminderNotFound      = errors.New("reminder not found")
	ErrReminderDateRequired  = errors.New("a future reminder date is required")
	ErrReminderQuotaExceeded = errors.New("reminder quota exceeded")
)

// ReminderService handles reminder business logic. Due reminders are
// swept inline whenever a user lists their reminders: they are marked
// sent, never deleted, so the monthly quota can count them.
type ReminderService struct {
	reminderRepo    repository.ReminderRepository
	noteRepo        repository.NoteRepository
	userRepo        repository.UserRepository
	subscriptionSvc *SubscriptionService
}

// NewReminderService creates a new ReminderService
func NewReminderService(
	reminderRepo repository.ReminderRepository,
	noteRepo repository.NoteRepository,
	userRepo repository.UserRepository,
	subscriptionSvc *SubscriptionService,
) *ReminderService {
	return &ReminderService{
		reminderRepo:    reminderRepo,
		noteRepo:        noteRepo,
		userRepo:        userRepo,
		subscriptionSvc: subscriptionSvc,
	}
}

// CreateReminderInput represents input for creating a reminder
type CreateReminderInput struct {
	UserID   uint64
	NoteID   uint64
	RemindAt time.Time
}

// Create stores a reminder for one of the user's notes, denormalizing
// the note title/text and user email, after a monthly quota check.
func (s *ReminderService) Create(input CreateReminderInput) (*models.Reminder, error) {
	if input.RemindAt.IsZero() {
		return nil, ErrReminderDateRequired
	}

	decision, err := s.subscriptionSvc.CanCreateReminder(input.UserID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, NewQuotaError(decision, ErrReminderQuotaExceeded)
	}

	note, err := s.noteRepo.FindByIDAndUser(input.NoteID, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	user, err := s.userRepo.FindByID(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	reminder := &models.Reminder{
		UserID:    input.UserID,
		NoteID:    note.ID,
		UserEmail: user.Email,
		NoteTitle: note.Title,
		NoteText:  note.Text,
		RemindAt:  input.RemindAt,
		Sent:      false,
	}
	if err := s.reminderRepo.Create(reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return reminder, nil
}

// List sweeps the user's due reminders (marking them sent) and returns
// the ones still pending, soonest first.
func (s *ReminderService) List(userID uint64) ([]models.Reminder, error) {
	if _, err := s.reminderRepo.MarkDueAsSent(userID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to sweep due reminders: %w", err)
	}

	reminders, err := s.reminderRepo.ListUnsentByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// Delete removes a reminder owned by the user.
func (s *ReminderService) Delete(reminderID, userID uint64) error {
	affected, err := s.reminderRepo.Delete(reminderID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	if affected == 0 {
		return ErrReminderNotFound
	}
	return nil
}
