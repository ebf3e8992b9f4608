package dto

import (
	"time"

	"github.com/lmercat/productivity-api/internal/models"
)

// SubTaskDTO represents a sub-task in API responses
type SubTaskDTO struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskDTO represents a task with its sub-tasks in API responses
type TaskDTO struct {
	ID             uint64            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Status         models.TaskStatus `json:"status"`
	CompletionRate int               `json:"completion_rate"`
	SubTasks       []SubTaskDTO      `json:"sub_tasks"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// TaskListResponse represents a user's tasks with the aggregate completion rate
type TaskListResponse struct {
	Tasks                 []TaskDTO `json:"tasks"`
	AverageCompletionRate int       `json:"average_completion_rate"`
}

// ToSubTaskDTO converts a SubTask model to SubTaskDTO
func ToSubTaskDTO(subTask models.SubTask) SubTaskDTO {
	return SubTaskDTO{
		ID:        subTask.ID,
		Text:      subTask.Text,
		Completed: subTask.Completed,
		CreatedAt: subTask.CreatedAt,
	}
}

// ToTaskDTO converts a Task model to TaskDTO. completionRate is computed
// by the caller so list and detail responses stay consistent.
func ToTaskDTO(task models.Task, completionRate int) TaskDTO {
	subTasks := make([]SubTaskDTO, len(task.SubTasks))
	for i, subTask := range task.SubTasks {
		subTasks[i] = ToSubTaskDTO(subTask)
	}

	return TaskDTO{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		CompletionRate: completionRate,
		SubTasks:       subTasks,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}
