package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
)

// GormReminderRepository is a GORM implementation of ReminderRepository
type GormReminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new ReminderRepository
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &GormReminderRepository{db: db}
}

// Create creates a new reminder
func (r *GormReminderRepository) Create(reminder *models.Reminder) error {
	return r.db.Create(reminder).Error
}

// FindByID finds a reminder by ID regardless of owner
func (r *GormReminderRepository) FindByID(id uint64) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.db.First(&reminder, id).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

// ListUnsentByUser returns a user's not-yet-sent reminders ordered by due time
func (r *GormReminderRepository) ListUnsentByUser(userID uint64) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := r.db.
		Where("user_id = ? AND sent = ?", userID, false).
		Order("remind_at ASC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// MarkDueAsSent flips every unsent reminder of the user whose due time has passed
func (r *GormReminderRepository) MarkDueAsSent(userID uint64, now time.Time) (int64, error) {
	result := r.db.Model(&models.Reminder{}).
		Where("user_id = ? AND sent = ? AND remind_at <= ?", userID, false, now).
		Update("sent", true)
	return result.RowsAffected, result.Error
}

// Delete removes a reminder scoped to its owner
func (r *GormReminderRepository) Delete(id, userID uint64) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Reminder{})
	return result.RowsAffected, result.Error
}

// CountSentByUserSince counts sent reminders created at or after the cutoff
func (r *GormReminderRepository) CountSentByUserSince(userID uint64, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Reminder{}).
		Where("user_id = ? AND sent = ? AND created_at >= ?", userID, true, since).
		Count(&count).Error
	return count, err
}
