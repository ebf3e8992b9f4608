package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/repository"
)

// SubscriptionService resolves plans and enforces usage quotas. Quota
// checks run against live counts rather than cached counters: no drift,
// at the cost of a count query per check.
type SubscriptionService struct {
	subRepo      repository.SubscriptionRepository
	userRepo     repository.UserRepository
	noteRepo     repository.NoteRepository
	reminderRepo repository.ReminderRepository
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NoteRepository,
	reminderRepo repository.ReminderRepository,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:      subRepo,
		userRepo:     userRepo,
		noteRepo:     noteRepo,
		reminderRepo: reminderRepo,
	}
}

// GetActiveSubscription returns the user's subscription if its status is
// active, nil otherwise.
func (s *SubscriptionService) GetActiveSubscription(userID uint64) (*models.Subscription, error) {
	sub, err := s.subRepo.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	if sub.Status != models.SubscriptionActive {
		return nil, nil
	}
	return sub, nil
}

// ResolvePlan returns the user's effective plan, defaulting to free when
// no active subscription exists.
func (s *SubscriptionService) ResolvePlan(userID uint64) (models.SubscriptionPlan, error) {
	sub, err := s.GetActiveSubscription(userID)
	if err != nil {
		return "", err
	}
	if sub == nil {
		return models.PlanFree, nil
	}
	return sub.Plan, nil
}

// QuotaDecision is the outcome of a quota check. Remaining carries the
// allowance left in the current window so callers can render it without a
// second query; it is math.MaxInt for unlimited plans and admins.
type QuotaDecision struct {
	Allowed   bool
	Remaining int
	Limit     int
	Reason    string
}

// Unlimited marks a decision with no effective cap.
func unlimitedDecision() QuotaDecision {
	return QuotaDecision{Allowed: true, Remaining: math.MaxInt, Limit: -1}
}

// QuotaError is returned when an operation is rejected by a plan quota.
// It unwraps to the operation's quota sentinel.
type QuotaError struct {
	Reason    string
	Limit     int
	Remaining int
	err       error
}

func (e *QuotaError) Error() string { return e.Reason }

func (e *QuotaError) Unwrap() error { return e.err }

// NewQuotaError builds a QuotaError from a rejected decision.
func NewQuotaError(decision QuotaDecision, sentinel error) *QuotaError {
	return &QuotaError{
		Reason:    decision.Reason,
		Limit:     decision.Limit,
		Remaining: decision.Remaining,
		err:       sentinel,
	}
}

// CanCreateNote checks the per-day note quota. Admin users bypass all
// limits. The day window starts at local midnight.
func (s *SubscriptionService) CanCreateNote(userID uint64) (QuotaDecision, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return QuotaDecision{}, fmt.Errorf("failed to load user: %w", err)
	}
	if user.IsAdmin {
		return unlimitedDecision(), nil
	}

	plan, err := s.ResolvePlan(userID)
	if err != nil {
		return QuotaDecision{}, err
	}
	limit := models.Limits[plan].MaxNotesPerDay
	if limit == -1 {
		return unlimitedDecision(), nil
	}

	createdToday, err := s.noteRepo.CountByUserSince(userID, startOfToday())
	if err != nil {
		return QuotaDecision{}, fmt.Errorf("failed to count notes: %w", err)
	}

	if createdToday >= int64(limit) {
		reason := fmt.Sprintf("Daily limit of %d note(s) reached.", limit)
		if plan == models.PlanFree {
			reason += " Upgrade to Pro for 10 notes per day."
		} else {
			reason += " The limit resets tomorrow."
		}
		return QuotaDecision{Allowed: false, Remaining: 0, Limit: limit, Reason: reason}, nil
	}

	return QuotaDecision{Allowed: true, Remaining: limit - int(createdToday), Limit: limit}, nil
}

// NotesCreatedToday counts the user's notes since local midnight.
func (s *SubscriptionService) NotesCreatedToday(userID uint64) (int64, error) {
	return s.noteRepo.CountByUserSince(userID, startOfToday())
}

// RemainingRemindersThisMonth reports the month allowance left, counting
// reminders already marked sent since the 1st of the current month.
// Returns math.MaxInt for unlimited plans.
func (s *SubscriptionService) RemainingRemindersThisMonth(userID uint64) (int, error) {
	plan, err := s.ResolvePlan(userID)
	if err != nil {
		return 0, err
	}
	limit := models.Limits[plan].MaxRemindersPerMonth
	if limit == -1 {
		return math.MaxInt, nil
	}

	sentThisMonth, err := s.reminderRepo.CountSentByUserSince(userID, startOfMonth())
	if err != nil {
		return 0, fmt.Errorf("failed to count reminders: %w", err)
	}

	remaining := limit - int(sentThisMonth)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// CanCreateReminder checks the per-month reminder quota.
func (s *SubscriptionService) CanCreateReminder(userID uint64) (QuotaDecision, error) {
	plan, err := s.ResolvePlan(userID)
	if err != nil {
		return QuotaDecision{}, err
	}
	limit := models.Limits[plan].MaxRemindersPerMonth
	if limit == -1 {
		return unlimitedDecision(), nil
	}

	remaining, err := s.RemainingRemindersThisMonth(userID)
	if err != nil {
		return QuotaDecision{}, err
	}
	if remaining <= 0 {
		return QuotaDecision{
			Allowed:   false,
			Remaining: 0,
			Limit:     limit,
			Reason:    "Monthly reminder limit reached. Upgrade your plan for more reminders.",
		}, nil
	}
	return QuotaDecision{Allowed: true, Remaining: remaining, Limit: limit}, nil
}

// ActivatePlan upserts the user's subscription as active on the given
// plan, recording the payment-processor references.
func (s *SubscriptionService) ActivatePlan(userID uint64, plan models.SubscriptionPlan, customerID, subscriptionID string) error {
	sub := &models.Subscription{
		UserID:               userID,
		Plan:                 plan,
		Status:               models.SubscriptionActive,
		StartDate:            time.Now(),
		EndDate:              nil,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: subscriptionID,
	}
	if err := s.subRepo.Upsert(sub); err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

// Cancel flips the user's subscription to canceled. Missing rows are not
// an error: the user is already on the free plan.
func (s *SubscriptionService) Cancel(userID uint64) error {
	if err := s.subRepo.UpdateStatus(userID, models.SubscriptionCanceled); err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	return nil
}

// startOfToday returns local midnight of the current day.
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// startOfMonth returns local midnight of the 1st of the current month.
func startOfMonth() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
