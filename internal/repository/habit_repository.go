package repository

import (
	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
)

// GormHabitRepository is a GORM implementation of HabitRepository
type GormHabitRepository struct {
	db *gorm.DB
}

// NewHabitRepository creates a new HabitRepository
func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &GormHabitRepository{db: db}
}

// Create creates a new habit together with any initial daily records
func (r *GormHabitRepository) Create(habit *models.Habit) error {
	return r.db.Create(habit).Error
}

// FindByIDAndUser finds a habit owned by the given user, records included
func (r *GormHabitRepository) FindByIDAndUser(id, userID uint64) (*models.Habit, error) {
	var habit models.Habit
	if err := r.db.
		Preload("DailyRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("daily_habit_records.date DESC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&habit).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

// FindByID finds a habit by ID regardless of owner
func (r *GormHabitRepository) FindByID(id uint64) (*models.Habit, error) {
	var habit models.Habit
	if err := r.db.
		Preload("DailyRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("daily_habit_records.date DESC")
		}).
		First(&habit, id).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

// ListByUser lists a user's habits, newest first, records newest-date first
func (r *GormHabitRepository) ListByUser(userID uint64) ([]models.Habit, error) {
	var habits []models.Habit
	if err := r.db.
		Preload("DailyRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("daily_habit_records.date DESC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

// Update updates a habit
func (r *GormHabitRepository) Update(habit *models.Habit) error {
	return r.db.Save(habit).Error
}

// Delete removes a habit and its records, scoped to the owner
func (r *GormHabitRepository) Delete(id, userID uint64) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Habit{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Where("habit_id = ?", id).Delete(&models.DailyHabitRecord{}).Error
	})
	return affected, err
}

// FindRecord finds the daily record of a habit for a YYYY-MM-DD date
func (r *GormHabitRepository) FindRecord(habitID uint64, date string) (*models.DailyHabitRecord, error) {
	var record models.DailyHabitRecord
	if err := r.db.Where("habit_id = ? AND date = ?", habitID, date).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateRecord stores a new daily record
func (r *GormHabitRepository) CreateRecord(record *models.DailyHabitRecord) error {
	return r.db.Create(record).Error
}

// UpdateRecord updates a daily record
func (r *GormHabitRepository) UpdateRecord(record *models.DailyHabitRecord) error {
	return r.db.Save(record).Error
}
