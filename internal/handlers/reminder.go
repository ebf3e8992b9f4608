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
	"github.com/lmercat/productivity-api/internal/services"
)

type ReminderHandler struct {
	reminderService *services.ReminderService
}

func NewReminderHandler(reminderService *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
	}
}

// ListReminders returns the current user's pending reminders. Due ones
// are marked sent during the read.
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	reminders, err := h.reminderService.List(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list reminders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": dto.ToReminderDTOs(reminders)})
}

// CreateReminder attaches a reminder to a note, subject to the monthly
// plan quota.
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateReminderRequest struct {
		NoteID   uint64    `json:"note_id" binding:"required"`
		RemindAt time.Time `json:"remind_at" binding:"required"`
	}

	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reminder, err := h.reminderService.Create(services.CreateReminderInput{
		UserID:   userID,
		NoteID:   req.NoteID,
		RemindAt: req.RemindAt,
	})
	if err != nil {
		respondReminderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReminderDTO(*reminder))
}

// DeleteReminder removes a reminder owned by the current user.
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	reminderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid reminder ID")
		return
	}

	if err := h.reminderService.Delete(reminderID, userID); err != nil {
		respondReminderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reminder deleted successfully",
	})
}

func respondReminderError(c *gin.Context, err error) {
	var quotaErr *services.QuotaError
	switch {
	case errors.As(err, &quotaErr):
		apierrors.QuotaExceeded(c, quotaErr.Reason, gin.H{
			"limit":                quotaErr.Limit,
			"remaining_this_month": quotaErr.Remaining,
		})
	case errors.Is(err, services.ErrReminderNotFound),
		errors.Is(err, services.ErrNoteNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrReminderDateRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
