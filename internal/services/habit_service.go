package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/repository"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrHabitNameRequired  = errors.New("name is required")
	ErrInvalidHabitStatus = errors.New("unknown habit status")
	ErrInvalidDate        = errors.New("date must be YYYY-MM-DD")
)

const dateLayout = "2006-01-02"

// HabitService handles habit business logic. Today's daily record is
// materialized lazily the first time any read touches the habit after
// midnight; there is no scheduled job.
type HabitService struct {
	habitRepo repository.HabitRepository
}

// NewHabitService creates a new HabitService
func NewHabitService(habitRepo repository.HabitRepository) *HabitService {
	return &HabitService{habitRepo: habitRepo}
}

// TodayDateString returns the current local date as YYYY-MM-DD.
func TodayDateString() string {
	return time.Now().Format(dateLayout)
}

// CreateHabitInput represents input for creating a habit
type CreateHabitInput struct {
	UserID      uint64
	Name        string
	Description string
	Color       string
}

// Create stores a new habit with today's record already pending.
func (s *HabitService) Create(input CreateHabitInput) (*models.Habit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrHabitNameRequired
	}
	color := input.Color
	if color == "" {
		color = "blue"
	}

	habit := &models.Habit{
		UserID:      input.UserID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Color:       color,
		DailyRecords: []models.DailyHabitRecord{
			{Date: TodayDateString(), Status: models.HabitStatusPending},
		},
	}
	if err := s.habitRepo.Create(habit); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}
	return habit, nil
}

// List returns a user's habits with today's record guaranteed present.
func (s *HabitService) List(userID uint64) ([]models.Habit, error) {
	habits, err := s.habitRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	for i := range habits {
		if err := s.ensureTodayRecord(&habits[i]); err != nil {
			return nil, err
		}
	}
	return habits, nil
}

// Get returns a habit owned by the user with today's record present.
func (s *HabitService) Get(habitID, userID uint64) (*models.Habit, error) {
	habit, err := s.habitRepo.FindByIDAndUser(habitID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}
	if err := s.ensureTodayRecord(habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// ensureTodayRecord lazily creates today's pending record when missing.
func (s *HabitService) ensureTodayRecord(habit *models.Habit) error {
	today := TodayDateString()
	for _, record := range habit.DailyRecords {
		if record.Date == today {
			return nil
		}
	}

	record := models.DailyHabitRecord{
		HabitID: habit.ID,
		Date:    today,
		Status:  models.HabitStatusPending,
	}
	if err := s.habitRepo.CreateRecord(&record); err != nil {
		return fmt.Errorf("failed to create daily record: %w", err)
	}
	// Records are ordered newest date first.
	habit.DailyRecords = append([]models.DailyHabitRecord{record}, habit.DailyRecords...)
	return nil
}

// UpdateHabitInput represents partial updates to a habit
type UpdateHabitInput struct {
	Name        *string
	Description *string
	Color       *string
}

// Update applies partial updates to a habit owned by the user.
func (s *HabitService) Update(habitID, userID uint64, input UpdateHabitInput) (*models.Habit, error) {
	habit, err := s.Get(habitID, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrHabitNameRequired
		}
		habit.Name = name
	}
	if input.Description != nil {
		habit.Description = strings.TrimSpace(*input.Description)
	}
	if input.Color != nil && *input.Color != "" {
		habit.Color = *input.Color
	}

	if err := s.habitRepo.Update(habit); err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}
	return habit, nil
}

// Delete removes a habit owned by the user together with its records.
func (s *HabitService) Delete(habitID, userID uint64) error {
	affected, err := s.habitRepo.Delete(habitID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if affected == 0 {
		return ErrHabitNotFound
	}
	return nil
}

// SetDailyStatus upserts the record of one calendar day. CompletedAt is
// stamped when the status becomes completed and cleared otherwise.
func (s *HabitService) SetDailyStatus(habitID, userID uint64, date string, status models.HabitStatus) (*models.Habit, error) {
	if !models.ValidHabitStatus(status) {
		return nil, ErrInvalidHabitStatus
	}
	if _, err := time.ParseInLocation(dateLayout, date, time.Local); err != nil {
		return nil, ErrInvalidDate
	}

	habit, err := s.habitRepo.FindByIDAndUser(habitID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}

	var completedAt *time.Time
	if status == models.HabitStatusCompleted {
		now := time.Now()
		completedAt = &now
	}

	record, err := s.habitRepo.FindRecord(habit.ID, date)
	switch {
	case err == nil:
		record.Status = status
		record.CompletedAt = completedAt
		if err := s.habitRepo.UpdateRecord(record); err != nil {
			return nil, fmt.Errorf("failed to update daily record: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = &models.DailyHabitRecord{
			HabitID:     habit.ID,
			Date:        date,
			Status:      status,
			CompletedAt: completedAt,
		}
		if err := s.habitRepo.CreateRecord(record); err != nil {
			return nil, fmt.Errorf("failed to create daily record: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to find daily record: %w", err)
	}

	return s.Get(habitID, userID)
}

// WeeklySuccessRate computes completed/total as a rounded percentage over
// the Sunday-start week containing the reference date. No records in the
// week yields 0.
func WeeklySuccessRate(records []models.DailyHabitRecord, reference time.Time) int {
	start := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, reference.Location())
	start = start.AddDate(0, 0, -int(start.Weekday()))
	end := start.AddDate(0, 0, 7)

	total := 0
	completed := 0
	for _, record := range records {
		day, err := time.ParseInLocation(dateLayout, record.Date, reference.Location())
		if err != nil {
			continue
		}
		if day.Before(start) || !day.Before(end) {
			continue
		}
		total++
		if record.Status == models.HabitStatusCompleted {
			completed++
		}
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// HabitWeeklyStat is one habit's success rate for the current week.
type HabitWeeklyStat struct {
	HabitID     uint64 `json:"habit_id"`
	HabitName   string `json:"habit_name"`
	SuccessRate int    `json:"success_rate"`
}

// WeeklyStats summarizes a user's habits for the current week.
type WeeklyStats struct {
	TotalHabits        int               `json:"total_habits"`
	AverageSuccessRate int               `json:"average_success_rate"`
	Habits             []HabitWeeklyStat `json:"habits"`
}

// Stats computes per-habit and average weekly success rates.
func (s *HabitService) Stats(userID uint64) (*WeeklyStats, error) {
	habits, err := s.List(userID)
	if err != nil {
		return nil, err
	}
	if len(habits) == 0 {
		return &WeeklyStats{Habits: []HabitWeeklyStat{}}, nil
	}

	now := time.Now()
	stats := make([]HabitWeeklyStat, len(habits))
	total := 0
	for i, habit := range habits {
		rate := WeeklySuccessRate(habit.DailyRecords, now)
		stats[i] = HabitWeeklyStat{
			HabitID:     habit.ID,
			HabitName:   habit.Name,
			SuccessRate: rate,
		}
		total += rate
	}

	return &WeeklyStats{
		TotalHabits:        len(habits),
		AverageSuccessRate: int(math.Round(float64(total) / float64(len(habits)))),
		Habits:             stats,
	}, nil
}
