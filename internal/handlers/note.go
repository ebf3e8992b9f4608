package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lmercat/productivity-api/internal/dto"
	apierrors "github.com/lmercat/productivity-api/internal/errors"
	"github.com/lmercat/productivity-api/internal/middleware"
	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/services"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// ListNotes returns all notes owned by the current user, newest first.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	notes, err := h.noteService.List(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list notes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": dto.ToNoteDTOs(notes)})
}

// CreateNote creates a note, subject to the daily plan quota.
func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateNoteRequest struct {
		Title    string `json:"title" binding:"required,max=255"`
		Text     string `json:"text"`
		Category string `json:"category"`
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category := models.NoteCategory(req.Category)
	if req.Category == "" {
		category = models.CategoryOther
	}

	result, err := h.noteService.Create(services.CreateNoteInput{
		UserID:   userID,
		Title:    req.Title,
		Text:     req.Text,
		Category: category,
	})
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateNoteResponse{
		Note:           dto.ToNoteDTO(*result.Note),
		RemainingToday: result.RemainingToday,
	})
}

// GetNote returns one of the current user's notes.
func (h *NoteHandler) GetNote(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	noteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid note ID")
		return
	}

	note, err := h.noteService.Get(noteID, userID)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note))
}

// UpdateNote applies partial updates to a note.
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	noteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid note ID")
		return
	}

	type UpdateNoteRequest struct {
		Title    *string `json:"title" binding:"omitempty,max=255"`
		Text     *string `json:"text"`
		Category *string `json:"category"`
	}

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateNoteInput{
		Title: req.Title,
		Text:  req.Text,
	}
	if req.Category != nil {
		category := models.NoteCategory(*req.Category)
		input.Category = &category
	}

	note, err := h.noteService.Update(noteID, userID, input)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note))
}

// DeleteNote removes a note owned by the current user.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	noteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid note ID")
		return
	}

	if err := h.noteService.Delete(noteID, userID); err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note deleted successfully",
	})
}

func respondNoteError(c *gin.Context, err error) {
	var quotaErr *services.QuotaError
	switch {
	case errors.As(err, &quotaErr):
		apierrors.QuotaExceeded(c, quotaErr.Reason, gin.H{
			"limit":           quotaErr.Limit,
			"remaining_today": quotaErr.Remaining,
		})
	case errors.Is(err, services.ErrNoteNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNoteTitleRequired),
		errors.Is(err, services.ErrInvalidCategory):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
