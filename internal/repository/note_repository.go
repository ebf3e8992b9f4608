package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
)

// GormNoteRepository is a GORM implementation of NoteRepository
type GormNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &GormNoteRepository{db: db}
}

// Create creates a new note
func (r *GormNoteRepository) Create(note *models.Note) error {
	return r.db.Create(note).Error
}

// FindByID finds a note by ID regardless of owner
func (r *GormNoteRepository) FindByID(id uint64) (*models.Note, error) {
	var note models.Note
	if err := r.db.First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// FindByIDAndUser finds a note owned by the given user
func (r *GormNoteRepository) FindByIDAndUser(id, userID uint64) (*models.Note, error) {
	var note models.Note
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// ListByUser lists a user's notes, newest first
func (r *GormNoteRepository) ListByUser(userID uint64) ([]models.Note, error) {
	var notes []models.Note
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Update updates a note
func (r *GormNoteRepository) Update(note *models.Note) error {
	return r.db.Save(note).Error
}

// Delete removes a note scoped to its owner
func (r *GormNoteRepository) Delete(id, userID uint64) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Note{})
	return result.RowsAffected, result.Error
}

// CountByUserSince counts notes a user created at or after the cutoff
func (r *GormNoteRepository) CountByUserSince(userID uint64, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Note{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}
