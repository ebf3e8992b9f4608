package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/repository"
	"github.com/lmercat/productivity-api/internal/utils"
)

var (
	ErrShareNotFound        = errors.New("share not found")
	ErrInvalidShareType     = errors.New("unknown share type")
	ErrInvalidPermission    = errors.New("unknown permission")
	ErrSelfShare            = errors.New("cannot share an item with yourself")
	ErrRecipientNotFound    = errors.New("recipient not found")
	ErrNotItemOwner         = errors.New("only the item owner can share it")
	ErrShareDeleteForbidden = errors.New("not allowed to delete this share")
	ErrPublicShareNotFound  = errors.New("public share not found")
)

// ShareService handles per-item access grants and public note links.
type ShareService struct {
	shareRepo    repository.ShareRepository
	userRepo     repository.UserRepository
	noteRepo     repository.NoteRepository
	taskRepo     repository.TaskRepository
	habitRepo    repository.HabitRepository
	reminderRepo repository.ReminderRepository
}

// NewShareService creates a new ShareService
func NewShareService(
	shareRepo repository.ShareRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NoteRepository,
	taskRepo repository.TaskRepository,
	habitRepo repository.HabitRepository,
	reminderRepo repository.ReminderRepository,
) *ShareService {
	return &ShareService{
		shareRepo:    shareRepo,
		userRepo:     userRepo,
		noteRepo:     noteRepo,
		taskRepo:     taskRepo,
		habitRepo:    habitRepo,
		reminderRepo: reminderRepo,
	}
}

// itemOwner resolves the current owner of a shareable item. Returns
// gorm.ErrRecordNotFound when the item no longer exists.
func (s *ShareService) itemOwner(shareType models.ShareType, itemID uint64) (uint64, error) {
	switch shareType {
	case models.ShareTypeNote:
		note, err := s.noteRepo.FindByID(itemID)
		if err != nil {
			return 0, err
		}
		return note.UserID, nil
	case models.ShareTypeTask:
		task, err := s.taskRepo.FindByID(itemID)
		if err != nil {
			return 0, err
		}
		return task.UserID, nil
	case models.ShareTypeHabit:
		habit, err := s.habitRepo.FindByID(itemID)
		if err != nil {
			return 0, err
		}
		return habit.UserID, nil
	case models.ShareTypeReminder:
		reminder, err := s.reminderRepo.FindByID(itemID)
		if err != nil {
			return 0, err
		}
		return reminder.UserID, nil
	default:
		return 0, ErrInvalidShareType
	}
}

// ShareItemInput represents input for sharing an item
type ShareItemInput struct {
	ItemID      uint64
	OwnerID     uint64
	RecipientID uint64
	Type        models.ShareType
	Permission  models.SharePermission
}

// ShareItem grants a recipient access to one item. Sharing an already
// shared item updates the permission in place: at most one share exists
// per (type, item, recipient).
func (s *ShareService) ShareItem(input ShareItemInput) (*models.Share, error) {
	if !models.ValidShareType(input.Type) {
		return nil, ErrInvalidShareType
	}
	permission := input.Permission
	if permission == "" {
		permission = models.PermissionRead
	}
	if !models.ValidSharePermission(permission) {
		return nil, ErrInvalidPermission
	}
	if input.OwnerID == input.RecipientID {
		return nil, ErrSelfShare
	}

	owner, err := s.itemOwner(input.Type, input.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, fmt.Errorf("failed to resolve item owner: %w", err)
	}
	if owner != input.OwnerID {
		return nil, ErrNotItemOwner
	}

	if _, err := s.userRepo.FindByID(input.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}

	existing, err := s.shareRepo.FindExisting(input.Type, input.ItemID, input.RecipientID)
	switch {
	case err == nil:
		existing.Permission = permission
		if err := s.shareRepo.Update(existing); err != nil {
			return nil, fmt.Errorf("failed to update share: %w", err)
		}
		return existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		share := &models.Share{
			Type:        input.Type,
			ItemID:      input.ItemID,
			OwnerID:     input.OwnerID,
			RecipientID: input.RecipientID,
			Permission:  permission,
		}
		if err := s.shareRepo.Create(share); err != nil {
			return nil, fmt.Errorf("failed to create share: %w", err)
		}
		return share, nil
	default:
		return nil, fmt.Errorf("failed to look up share: %w", err)
	}
}

// DeleteShare removes a grant. The item's current owner is authoritative
// while the item exists; the share's recorded owner and its recipient
// stay authorized so a dangling grant (item already deleted) can be
// cleaned up by either party.
func (s *ShareService) DeleteShare(shareID, callerID uint64) error {
	share, err := s.shareRepo.FindByID(shareID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShareNotFound
		}
		return fmt.Errorf("failed to find share: %w", err)
	}

	authorized := share.OwnerID == callerID || share.RecipientID == callerID
	if !authorized {
		owner, err := s.itemOwner(share.Type, share.ItemID)
		if err == nil && owner == callerID {
			authorized = true
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to resolve item owner: %w", err)
		}
	}
	if !authorized {
		return ErrShareDeleteForbidden
	}

	if err := s.shareRepo.Delete(share.ID); err != nil {
		return fmt.Errorf("failed to delete share: %w", err)
	}
	return nil
}

// SharedWithMe lists grants the user received, optionally by type.
func (s *ShareService) SharedWithMe(userID uint64, shareType *models.ShareType) ([]models.Share, error) {
	if shareType != nil && !models.ValidShareType(*shareType) {
		return nil, ErrInvalidShareType
	}
	shares, err := s.shareRepo.ListForRecipient(userID, shareType)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	return shares, nil
}

// SharedByMe lists grants the user handed out, optionally by type.
func (s *ShareService) SharedByMe(userID uint64, shareType *models.ShareType) ([]models.Share, error) {
	if shareType != nil && !models.ValidShareType(*shareType) {
		return nil, ErrInvalidShareType
	}
	shares, err := s.shareRepo.ListByOwner(userID, shareType)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	return shares, nil
}

// NoteAccess reports whether a user can access a note through a share
// and with which permission.
func (s *ShareService) NoteAccess(userID, noteID uint64) (bool, models.SharePermission, error) {
	share, err := s.shareRepo.FindExisting(models.ShareTypeNote, noteID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("failed to look up share: %w", err)
	}
	return true, share.Permission, nil
}

// CreatePublicShare creates (or returns) the public link of a note. The
// operation is idempotent per (note, owner): an existing token is never
// silently regenerated.
func (s *ShareService) CreatePublicShare(noteID, ownerID uint64, expiresInDays int) (*models.PublicShare, error) {
	note, err := s.noteRepo.FindByIDAndUser(noteID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	existing, err := s.shareRepo.FindPublicByNoteAndOwner(note.ID, ownerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up public share: %w", err)
	}

	share := &models.PublicShare{
		NoteID:  note.ID,
		OwnerID: ownerID,
		Token:   utils.GenerateShareToken(),
	}
	if expiresInDays > 0 {
		expires := time.Now().AddDate(0, 0, expiresInDays)
		share.ExpiresAt = &expires
	}
	if err := s.shareRepo.CreatePublic(share); err != nil {
		return nil, fmt.Errorf("failed to create public share: %w", err)
	}
	return share, nil
}

// ResolvePublicToken resolves a token to its note. Unknown and expired
// tokens are both reported as not found.
func (s *ShareService) ResolvePublicToken(token string) (*models.Note, error) {
	share, err := s.shareRepo.FindPublicByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicShareNotFound
		}
		return nil, fmt.Errorf("failed to find public share: %w", err)
	}
	if share.Expired(time.Now()) {
		return nil, ErrPublicShareNotFound
	}

	note, err := s.noteRepo.FindByID(share.NoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicShareNotFound
		}
		return nil, fmt.Errorf("failed to load shared note: %w", err)
	}
	return note, nil
}

// DeletePublicShare removes a public link owned by the caller.
func (s *ShareService) DeletePublicShare(shareID, ownerID uint64) error {
	affected, err := s.shareRepo.DeletePublic(shareID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete public share: %w", err)
	}
	if affected == 0 {
		return ErrPublicShareNotFound
	}
	return nil
}
