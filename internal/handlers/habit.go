package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lmercat/productivity-api/internal/dto"
	apierrors "github.com/lmercat/productivity-api/internal/errors"
	"github.com/lmercat/productivity-api/internal/middleware"
	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/services"
)

type HabitHandler struct {
	habitService *services.HabitService
}

func NewHabitHandler(habitService *services.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

// ListHabits returns the current user's habits with their records and
// weekly success rates. Today's record is materialized on read.
func (h *HabitHandler) ListHabits(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	habits, err := h.habitService.List(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list habits")
		return
	}

	now := time.Now()
	items := make([]dto.HabitDTO, len(habits))
	for i, habit := range habits {
		items[i] = dto.ToHabitDTO(habit, services.WeeklySuccessRate(habit.DailyRecords, now))
	}

	c.JSON(http.StatusOK, gin.H{"habits": items})
}

// CreateHabit creates a habit with today's record already pending.
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateHabitRequest struct {
		Name        string `json:"name" binding:"required,max=255"`
		Description string `json:"description"`
		Color       string `json:"color" binding:"omitempty,max=20"`
	}

	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := h.habitService.Create(services.CreateHabitInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToHabitDTO(*habit, services.WeeklySuccessRate(habit.DailyRecords, time.Now())))
}

// GetHabit returns one of the current user's habits.
func (h *HabitHandler) GetHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	habitID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid habit ID")
		return
	}

	habit, err := h.habitService.Get(habitID, userID)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitDTO(*habit, services.WeeklySuccessRate(habit.DailyRecords, time.Now())))
}

// UpdateHabit applies partial updates to a habit.
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	habitID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid habit ID")
		return
	}

	type UpdateHabitRequest struct {
		Name        *string `json:"name" binding:"omitempty,max=255"`
		Description *string `json:"description"`
		Color       *string `json:"color" binding:"omitempty,max=20"`
	}

	var req UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := h.habitService.Update(habitID, userID, services.UpdateHabitInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitDTO(*habit, services.WeeklySuccessRate(habit.DailyRecords, time.Now())))
}

// DeleteHabit removes a habit and its daily records.
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	habitID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid habit ID")
		return
	}

	if err := h.habitService.Delete(habitID, userID); err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Habit deleted successfully",
	})
}

// SetHabitStatus upserts the daily record for one date.
func (h *HabitHandler) SetHabitStatus(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	habitID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid habit ID")
		return
	}

	type SetStatusRequest struct {
		Date   string `json:"date"`
		Status string `json:"status" binding:"required"`
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date := req.Date
	if date == "" {
		date = services.TodayDateString()
	}

	habit, err := h.habitService.SetDailyStatus(habitID, userID, date, models.HabitStatus(req.Status))
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHabitDTO(*habit, services.WeeklySuccessRate(habit.DailyRecords, time.Now())))
}

// GetHabitStats returns per-habit and average success rates for the
// current week.
func (h *HabitHandler) GetHabitStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.habitService.Stats(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute habit stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func respondHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHabitNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrHabitNameRequired),
		errors.Is(err, services.ErrInvalidHabitStatus),
		errors.Is(err, services.ErrInvalidDate):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
