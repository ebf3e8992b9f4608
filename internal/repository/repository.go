package repository

import (
	"time"

	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// SearchByUsername finds users whose username contains the query,
	// excluding one user id, capped at limit results
	SearchByUsername(query string, excludeID uint64, limit int) ([]models.User, error)

	// List returns a page of users plus the total count
	List(params utils.PaginationParams) ([]models.User, int64, error)
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	// Create stores a new session
	Create(session *models.Session) error

	// FindByToken finds a session by its token
	FindByToken(token string) (*models.Session, error)

	// Delete removes a session by token
	Delete(token string) error
}

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	Create(note *models.Note) error

	// FindByID finds a note regardless of owner (used by public links and
	// share resolution; callers enforce access themselves)
	FindByID(id uint64) (*models.Note, error)

	// FindByIDAndUser finds a note owned by the given user
	FindByIDAndUser(id, userID uint64) (*models.Note, error)

	ListByUser(userID uint64) ([]models.Note, error)

	Update(note *models.Note) error

	// Delete removes a note scoped to its owner; returns the number of
	// rows removed so callers can distinguish not-found
	Delete(id, userID uint64) (int64, error)

	// CountByUserSince counts notes a user created at or after the cutoff
	CountByUserSince(userID uint64, since time.Time) (int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(task *models.Task) error
	FindByIDAndUser(id, userID uint64) (*models.Task, error)
	FindByID(id uint64) (*models.Task, error)
	ListByUser(userID uint64) ([]models.Task, error)
	Update(task *models.Task) error
	UpdateStatus(id uint64, status models.TaskStatus) error
	Delete(id, userID uint64) (int64, error)

	CreateSubTask(subTask *models.SubTask) error
	FindSubTask(taskID, subTaskID uint64) (*models.SubTask, error)
	UpdateSubTask(subTask *models.SubTask) error
	DeleteSubTask(taskID, subTaskID uint64) (int64, error)
	ListSubTasks(taskID uint64) ([]models.SubTask, error)
}

// HabitRepository defines the interface for habit data access
type HabitRepository interface {
	Create(habit *models.Habit) error
	FindByIDAndUser(id, userID uint64) (*models.Habit, error)
	FindByID(id uint64) (*models.Habit, error)
	ListByUser(userID uint64) ([]models.Habit, error)
	Update(habit *models.Habit) error
	Delete(id, userID uint64) (int64, error)

	// FindRecord finds the daily record of a habit for a YYYY-MM-DD date
	FindRecord(habitID uint64, date string) (*models.DailyHabitRecord, error)

	CreateRecord(record *models.DailyHabitRecord) error
	UpdateRecord(record *models.DailyHabitRecord) error
}

// ReminderRepository defines the interface for reminder data access
type ReminderRepository interface {
	Create(reminder *models.Reminder) error
	FindByID(id uint64) (*models.Reminder, error)

	// ListUnsentByUser returns a user's not-yet-sent reminders ordered by
	// their due time
	ListUnsentByUser(userID uint64) ([]models.Reminder, error)

	// MarkDueAsSent flips every unsent reminder of the user whose due time
	// has passed; returns the number of rows updated
	MarkDueAsSent(userID uint64, now time.Time) (int64, error)

	Delete(id, userID uint64) (int64, error)

	// CountSentByUserSince counts reminders already marked sent that were
	// created at or after the cutoff
	CountSentByUserSince(userID uint64, since time.Time) (int64, error)
}

// ShareRepository defines the interface for share data access
type ShareRepository interface {
	// FindExisting finds the share for a (type, item, recipient) triple
	FindExisting(shareType models.ShareType, itemID, recipientID uint64) (*models.Share, error)

	Create(share *models.Share) error
	Update(share *models.Share) error
	FindByID(id uint64) (*models.Share, error)
	Delete(id uint64) error

	ListForRecipient(recipientID uint64, shareType *models.ShareType) ([]models.Share, error)
	ListByOwner(ownerID uint64, shareType *models.ShareType) ([]models.Share, error)

	// Public note links
	FindPublicByNoteAndOwner(noteID, ownerID uint64) (*models.PublicShare, error)
	CreatePublic(share *models.PublicShare) error
	FindPublicByToken(token string) (*models.PublicShare, error)
	DeletePublic(id, ownerID uint64) (int64, error)
}

// ContactRepository defines the interface for contact data access
type ContactRepository interface {
	ListByUser(userID uint64) ([]models.Contact, error)

	// FindEdge finds a contact row between two users in either direction
	FindEdge(userID, otherID uint64) (*models.Contact, error)

	// Delete removes a contact row scoped to its owning user
	Delete(id, userID uint64) (int64, error)

	CreateRequest(request *models.ContactRequest) error

	// FindPendingRequest finds a pending request for the ordered pair
	FindPendingRequest(requesterID, recipientID uint64) (*models.ContactRequest, error)

	// FindPendingForRecipient finds a pending request addressed to the
	// given recipient by request id
	FindPendingForRecipient(requestID, recipientID uint64) (*models.ContactRequest, error)

	ListPendingForRecipient(recipientID uint64) ([]models.ContactRequest, error)

	UpdateRequestStatus(requestID uint64, status models.ContactRequestStatus) error

	// Accept flips the request to accepted and creates both contact rows
	// within a single transaction
	Accept(request *models.ContactRequest, forward, backward *models.Contact) error
}

// SubscriptionRepository defines the interface for subscription data access
type SubscriptionRepository interface {
	// FindByUser finds the subscription row of a user regardless of status
	FindByUser(userID uint64) (*models.Subscription, error)

	// Upsert creates or replaces the single subscription row of a user
	Upsert(sub *models.Subscription) error

	// UpdateStatus sets the status of the user's subscription row
	UpdateStatus(userID uint64, status models.SubscriptionStatus) error
}
