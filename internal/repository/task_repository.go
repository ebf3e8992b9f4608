package repository

import (
	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task together with any initial sub-tasks
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByIDAndUser finds a task owned by the given user, sub-tasks included
func (r *GormTaskRepository) FindByIDAndUser(id, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		Preload("SubTasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sub_tasks.created_at ASC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByID finds a task by ID regardless of owner
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		Preload("SubTasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sub_tasks.created_at ASC")
		}).
		First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser lists a user's tasks, newest first, sub-tasks in creation order
func (r *GormTaskRepository) ListByUser(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Preload("SubTasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sub_tasks.created_at ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateStatus sets only the status column of a task
func (r *GormTaskRepository) UpdateStatus(id uint64, status models.TaskStatus) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).Update("status", status).Error
}

// Delete removes a task and its sub-tasks, scoped to the owner
func (r *GormTaskRepository) Delete(id, userID uint64) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Where("task_id = ?", id).Delete(&models.SubTask{}).Error
	})
	return affected, err
}

// CreateSubTask adds a sub-task to a task
func (r *GormTaskRepository) CreateSubTask(subTask *models.SubTask) error {
	return r.db.Create(subTask).Error
}

// FindSubTask finds a sub-task belonging to the given task
func (r *GormTaskRepository) FindSubTask(taskID, subTaskID uint64) (*models.SubTask, error) {
	var subTask models.SubTask
	if err := r.db.Where("id = ? AND task_id = ?", subTaskID, taskID).First(&subTask).Error; err != nil {
		return nil, err
	}
	return &subTask, nil
}

// UpdateSubTask updates a sub-task
func (r *GormTaskRepository) UpdateSubTask(subTask *models.SubTask) error {
	return r.db.Save(subTask).Error
}

// DeleteSubTask removes a sub-task belonging to the given task
func (r *GormTaskRepository) DeleteSubTask(taskID, subTaskID uint64) (int64, error) {
	result := r.db.Where("id = ? AND task_id = ?", subTaskID, taskID).Delete(&models.SubTask{})
	return result.RowsAffected, result.Error
}

// ListSubTasks lists the sub-tasks of a task in creation order
func (r *GormTaskRepository) ListSubTasks(taskID uint64) ([]models.SubTask, error) {
	var subTasks []models.SubTask
	if err := r.db.
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&subTasks).Error; err != nil {
		return nil, err
	}
	return subTasks, nil
}
