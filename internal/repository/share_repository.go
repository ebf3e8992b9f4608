package repository

import (
	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
)

// GormShareRepository is a GORM implementation of ShareRepository
type GormShareRepository struct {
	db *gorm.DB
}

// NewShareRepository creates a new ShareRepository
func NewShareRepository(db *gorm.DB) ShareRepository {
	return &GormShareRepository{db: db}
}

// FindExisting finds the share for a (type, item, recipient) triple
func (r *GormShareRepository) FindExisting(shareType models.ShareType, itemID, recipientID uint64) (*models.Share, error) {
	var share models.Share
	if err := r.db.
		Where("type = ? AND item_id = ? AND recipient_id = ?", shareType, itemID, recipientID).
		First(&share).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// Create creates a new share
func (r *GormShareRepository) Create(share *models.Share) error {
	return r.db.Create(share).Error
}

// Update updates a share
func (r *GormShareRepository) Update(share *models.Share) error {
	return r.db.Save(share).Error
}

// FindByID finds a share by ID
func (r *GormShareRepository) FindByID(id uint64) (*models.Share, error) {
	var share models.Share
	if err := r.db.First(&share, id).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// Delete removes a share by ID
func (r *GormShareRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Share{}, id).Error
}

// ListForRecipient lists shares granted to a user, optionally by type
func (r *GormShareRepository) ListForRecipient(recipientID uint64, shareType *models.ShareType) ([]models.Share, error) {
	query := r.db.Where("recipient_id = ?", recipientID)
	if shareType != nil {
		query = query.Where("type = ?", *shareType)
	}

	var shares []models.Share
	if err := query.Order("created_at DESC").Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

// ListByOwner lists shares granted by a user, optionally by type
func (r *GormShareRepository) ListByOwner(ownerID uint64, shareType *models.ShareType) ([]models.Share, error) {
	query := r.db.Where("owner_id = ?", ownerID)
	if shareType != nil {
		query = query.Where("type = ?", *shareType)
	}

	var shares []models.Share
	if err := query.Order("created_at DESC").Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

// FindPublicByNoteAndOwner finds the public link of a (note, owner) pair
func (r *GormShareRepository) FindPublicByNoteAndOwner(noteID, ownerID uint64) (*models.PublicShare, error) {
	var share models.PublicShare
	if err := r.db.
		Where("note_id = ? AND owner_id = ?", noteID, ownerID).
		First(&share).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// CreatePublic stores a new public link
func (r *GormShareRepository) CreatePublic(share *models.PublicShare) error {
	return r.db.Create(share).Error
}

// FindPublicByToken finds a public link by its token
func (r *GormShareRepository) FindPublicByToken(token string) (*models.PublicShare, error) {
	var share models.PublicShare
	if err := r.db.Where("token = ?", token).First(&share).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// DeletePublic removes a public link scoped to its owner
func (r *GormShareRepository) DeletePublic(id, ownerID uint64) (int64, error) {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.PublicShare{})
	return result.RowsAffected, result.Error
}
