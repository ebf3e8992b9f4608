package dto

import (
	"time"

	"github.com/lmercat/productivity-api/internal/models"
)

// PlanLimitsDTO describes a plan's quotas in API responses. A limit of -1
// means unlimited.
type PlanLimitsDTO struct {
	MaxNotesPerDay       int      `json:"max_notes_per_day"`
	MaxRemindersPerMonth int      `json:"max_reminders_per_month"`
	PriceEUR             int      `json:"price_eur"`
	Features             []string `json:"features"`
}

// SubscriptionDTO represents the caller's subscription state with current usage
type SubscriptionDTO struct {
	Plan                   models.SubscriptionPlan   `json:"plan"`
	Status                 models.SubscriptionStatus `json:"status"`
	StartDate              *time.Time                `json:"start_date,omitempty"`
	Limits                 PlanLimitsDTO             `json:"limits"`
	NotesCreatedToday      int64                     `json:"notes_created_today"`
	RemindersLeftThisMonth int                       `json:"reminders_left_this_month"`
}

// CheckoutResponse carries the payment redirect URL
type CheckoutResponse struct {
	URL string `json:"url"`
}

// ToPlanLimitsDTO converts PlanLimits to its DTO
func ToPlanLimitsDTO(limits models.PlanLimits) PlanLimitsDTO {
	return PlanLimitsDTO{
		MaxNotesPerDay:       limits.MaxNotesPerDay,
		MaxRemindersPerMonth: limits.MaxRemindersPerMonth,
		PriceEUR:             limits.PriceEUR,
		Features:             limits.Features,
	}
}

// ToSubscriptionDTO builds the subscription view. subscription may be nil
// for users on the free plan.
func ToSubscriptionDTO(plan models.SubscriptionPlan, subscription *models.Subscription, notesToday int64, remindersLeft int) SubscriptionDTO {
	out := SubscriptionDTO{
		Plan:                   plan,
		Status:                 models.SubscriptionActive,
		Limits:                 ToPlanLimitsDTO(models.Limits[plan]),
		NotesCreatedToday:      notesToday,
		RemindersLeftThisMonth: remindersLeft,
	}
	if subscription != nil {
		out.Status = subscription.Status
		out.StartDate = &subscription.StartDate
	}
	return out
}
