package dto

import (
	"time"

	"github.com/lmercat/productivity-api/internal/models"
)

// DailyHabitRecordDTO represents one tracked day in API responses
type DailyHabitRecordDTO struct {
	ID          uint64             `json:"id"`
	Date        string             `json:"date"`
	Status      models.HabitStatus `json:"status"`
	CompletedAt *time.Time         `json:"completed_at"`
}

// HabitDTO represents a habit with its recent records in API responses
type HabitDTO struct {
	ID                uint64                `json:"id"`
	Name              string                `json:"name"`
	Description       string                `json:"description"`
	Color             string                `json:"color"`
	WeeklySuccessRate int                   `json:"weekly_success_rate"`
	DailyRecords      []DailyHabitRecordDTO `json:"daily_records"`
	CreatedAt         time.Time             `json:"created_at"`
}

// ToDailyHabitRecordDTO converts a DailyHabitRecord model to its DTO
func ToDailyHabitRecordDTO(record models.DailyHabitRecord) DailyHabitRecordDTO {
	return DailyHabitRecordDTO{
		ID:          record.ID,
		Date:        record.Date,
		Status:      record.Status,
		CompletedAt: record.CompletedAt,
	}
}

// ToHabitDTO converts a Habit model to HabitDTO. weeklySuccessRate is
// computed by the caller against the current week.
func ToHabitDTO(habit models.Habit, weeklySuccessRate int) HabitDTO {
	records := make([]DailyHabitRecordDTO, len(habit.DailyRecords))
	for i, record := range habit.DailyRecords {
		records[i] = ToDailyHabitRecordDTO(record)
	}

	return HabitDTO{
		ID:                habit.ID,
		Name:              habit.Name,
		Description:       habit.Description,
		Color:             habit.Color,
		WeeklySuccessRate: weeklySuccessRate,
		DailyRecords:      records,
		CreatedAt:         habit.CreatedAt,
	}
}
