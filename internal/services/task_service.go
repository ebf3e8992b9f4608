package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/repository"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrSubTaskNotFound   = errors.New("sub-task not found")
	ErrTaskTitleRequired = errors.New("title is required")
	ErrSubTaskTextEmpty  = errors.New("sub-task text cannot be empty")
	ErrInvalidTaskStatus = errors.New("unknown task status")
)

// TaskService handles task business logic. The parent status is a cached
// projection of the sub-tasks: RollupStatus recomputes it after every
// sub-task mutation, the stored field is never trusted as authoritative
// while sub-tasks exist.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// RollupStatus derives a task status from its sub-tasks. With no
// sub-tasks the directly-set status stands. With sub-tasks, all complete
// means completed; any incomplete flips a completed parent back to
// pending. A cancelled parent is left alone unless everything completed.
func RollupStatus(subTasks []models.SubTask, current models.TaskStatus) models.TaskStatus {
	if len(subTasks) == 0 {
		return current
	}
	for _, st := range subTasks {
		if !st.Completed {
			if current == models.TaskStatusCompleted {
				return models.TaskStatusPending
			}
			return current
		}
	}
	return models.TaskStatusCompleted
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	UserID      uint64
	Title       string
	Description string
	SubTasks    []string
}

// Create stores a new task with optional initial sub-tasks.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTaskTitleRequired
	}

	task := &models.Task{
		UserID:      input.UserID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      models.TaskStatusPending,
	}
	for _, text := range input.SubTasks {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		task.SubTasks = append(task.SubTasks, models.SubTask{
			Text:      text,
			Completed: false,
		})
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// List returns a user's tasks, newest first.
func (s *TaskService) List(userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a task owned by the user, sub-tasks included.
func (s *TaskService) Get(taskID, userID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDAndUser(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTaskInput represents partial updates to a task
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

// Update applies partial updates. A directly-set status only sticks when
// the task has no sub-tasks; otherwise the rollup wins.
func (s *TaskService) Update(taskID, userID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.Get(taskID, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTaskTitleRequired
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		switch *input.Status {
		case models.TaskStatusPending, models.TaskStatusCompleted, models.TaskStatusCancelled:
		default:
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *input.Status
	}
	task.Status = RollupStatus(task.SubTasks, task.Status)

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// Delete removes a task owned by the user together with its sub-tasks.
func (s *TaskService) Delete(taskID, userID uint64) error {
	affected, err := s.taskRepo.Delete(taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// AddSubTask appends a sub-task and recomputes the parent status.
func (s *TaskService) AddSubTask(taskID, userID uint64, text string) (*models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrSubTaskTextEmpty
	}

	task, err := s.Get(taskID, userID)
	if err != nil {
		return nil, err
	}

	subTask := &models.SubTask{
		TaskID:    task.ID,
		Text:      text,
		Completed: false,
	}
	if err := s.taskRepo.CreateSubTask(subTask); err != nil {
		return nil, fmt.Errorf("failed to create sub-task: %w", err)
	}

	return s.reconcileStatus(task)
}

// ToggleSubTask flips a sub-task's completed flag and recomputes the
// parent status: completing the final sub-task flips the parent to
// completed, uncompleting any sub-task flips a completed parent back to
// pending.
func (s *TaskService) ToggleSubTask(taskID, userID, subTaskID uint64) (*models.Task, error) {
	task, err := s.Get(taskID, userID)
	if err != nil {
		return nil, err
	}

	subTask, err := s.taskRepo.FindSubTask(task.ID, subTaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubTaskNotFound
		}
		return nil, fmt.Errorf("failed to find sub-task: %w", err)
	}

	subTask.Completed = !subTask.Completed
	if err := s.taskRepo.UpdateSubTask(subTask); err != nil {
		return nil, fmt.Errorf("failed to update sub-task: %w", err)
	}

	return s.reconcileStatus(task)
}

// UpdateSubTaskText renames a sub-task.
func (s *TaskService) UpdateSubTaskText(taskID, userID, subTaskID uint64, text string) (*models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrSubTaskTextEmpty
	}

	task, err := s.Get(taskID, userID)
	if err != nil {
		return nil, err
	}

	subTask, err := s.taskRepo.FindSubTask(task.ID, subTaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubTaskNotFound
		}
		return nil, fmt.Errorf("failed to find sub-task: %w", err)
	}

	subTask.Text = text
	if err := s.taskRepo.UpdateSubTask(subTask); err != nil {
		return nil, fmt.Errorf("failed to update sub-task: %w", err)
	}

	return s.reconcileStatus(task)
}

// DeleteSubTask removes a sub-task and recomputes the parent status from
// what remains.
func (s *TaskService) DeleteSubTask(taskID, userID, subTaskID uint64) (*models.Task, error) {
	task, err := s.Get(taskID, userID)
	if err != nil {
		return nil, err
	}

	affected, err := s.taskRepo.DeleteSubTask(task.ID, subTaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete sub-task: %w", err)
	}
	if affected == 0 {
		return nil, ErrSubTaskNotFound
	}

	return s.reconcileStatus(task)
}

// reconcileStatus reloads the sub-task set, applies the rollup and
// persists the parent status when it changed.
func (s *TaskService) reconcileStatus(task *models.Task) (*models.Task, error) {
	subTasks, err := s.taskRepo.ListSubTasks(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-tasks: %w", err)
	}

	derived := RollupStatus(subTasks, task.Status)
	if derived != task.Status {
		if err := s.taskRepo.UpdateStatus(task.ID, derived); err != nil {
			return nil, fmt.Errorf("failed to update task status: %w", err)
		}
	}

	task.Status = derived
	task.SubTasks = subTasks
	return task, nil
}

// CompletionRate is the percentage of completed sub-tasks, or 100/0 from
// the parent status when no sub-tasks exist.
func CompletionRate(task *models.Task) int {
	if len(task.SubTasks) == 0 {
		if task.Status == models.TaskStatusCompleted {
			return 100
		}
		return 0
	}
	completed := 0
	for _, st := range task.SubTasks {
		if st.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(task.SubTasks)) * 100))
}

// AverageCompletionRate averages CompletionRate across tasks.
func AverageCompletionRate(tasks []models.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	total := 0
	for i := range tasks {
		total += CompletionRate(&tasks[i])
	}
	return int(math.Round(float64(total) / float64(len(tasks))))
}
