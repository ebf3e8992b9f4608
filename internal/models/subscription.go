package models

import "time"

type SubscriptionPlan string

const (
	PlanFree SubscriptionPlan = "free"
	PlanPro  SubscriptionPlan = "pro"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionTrialing SubscriptionStatus = "trialing"
)

// Subscription holds a user's plan; one row per user, upserted by the
// payment-processor webhook. Only status "active" counts as subscribed.
type Subscription struct {
	ID                   uint64             `gorm:"primarykey" json:"id"`
	UserID               uint64             `gorm:"uniqueIndex;not null" json:"user_id"`
	Plan                 SubscriptionPlan   `gorm:"type:varchar(20);not null;default:'free'" json:"plan"`
	Status               SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	StartDate            time.Time          `json:"start_date"`
	EndDate              *time.Time         `json:"end_date"`
	StripeCustomerID     string             `gorm:"type:varchar(255)" json:"-"`
	StripeSubscriptionID string             `gorm:"type:varchar(255)" json:"-"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// PlanLimits describes the usage quotas attached to a plan.
// A limit of -1 means unlimited.
type PlanLimits struct {
	MaxNotesPerDay       int
	MaxRemindersPerMonth int
	PriceEUR             int
	Features             []string
}

// Limits maps every plan to its quota configuration.
var Limits = map[SubscriptionPlan]PlanLimits{
	PlanFree: {
		MaxNotesPerDay:       2,
		MaxRemindersPerMonth: 5,
		PriceEUR:             0,
		Features:             []string{"notes", "categories", "filters", "reminders"},
	},
	PlanPro: {
		MaxNotesPerDay:       10,
		MaxRemindersPerMonth: 100,
		PriceEUR:             9,
		Features:             []string{"notes", "categories", "filters", "reminders", "export"},
	},
}
