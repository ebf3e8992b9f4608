package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lmercat/productivity-api/internal/models"
)

// GormSubscriptionRepository is a GORM implementation of SubscriptionRepository
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByUser finds the subscription row of a user regardless of status
func (r *GormSubscriptionRepository) FindByUser(userID uint64) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// Upsert creates or replaces the single subscription row of a user
func (r *GormSubscriptionRepository) Upsert(sub *models.Subscription) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"plan", "status", "start_date", "end_date",
			"stripe_customer_id", "stripe_subscription_id", "updated_at",
		}),
	}).Create(sub).Error
}

// UpdateStatus sets the status of the user's subscription row
func (r *GormSubscriptionRepository) UpdateStatus(userID uint64, status models.SubscriptionStatus) error {
	return r.db.Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		Update("status", status).Error
}
