package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lmercat/productivity-api/internal/dto"
	apierrors "github.com/lmercat/productivity-api/internal/errors"
	"github.com/lmercat/productivity-api/internal/middleware"
	"github.com/lmercat/productivity-api/internal/services"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// ListContacts returns the current user's confirmed contacts.
func (h *ContactHandler) ListContacts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	contacts, err := h.contactService.ListContacts(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list contacts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": dto.ToContactDTOs(contacts)})
}

// CreateContactRequest sends a contact request to another user.
func (h *ContactHandler) CreateContactRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ContactRequestBody struct {
		RecipientID uint64 `json:"recipient_id" binding:"required"`
	}

	var req ContactRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.contactService.RequestContact(userID, req.RecipientID)
	if err != nil {
		respondContactError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToContactRequestDTO(*request))
}

// ListContactRequests returns pending requests addressed to the current
// user.
func (h *ContactHandler) ListContactRequests(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	requests, err := h.contactService.ListPendingRequests(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list contact requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": dto.ToContactRequestDTOs(requests)})
}

// AcceptContactRequest accepts a pending request addressed to the
// current user, creating the contact in both directions.
func (h *ContactHandler) AcceptContactRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request ID")
		return
	}

	contact, err := h.contactService.AcceptRequest(requestID, userID)
	if err != nil {
		respondContactError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContactDTO(*contact))
}

// RejectContactRequest rejects a pending request addressed to the
// current user.
func (h *ContactHandler) RejectContactRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request ID")
		return
	}

	if err := h.contactService.RejectRequest(requestID, userID); err != nil {
		respondContactError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact request rejected",
	})
}

// DeleteContact removes one of the current user's contacts. Only the
// caller's direction is removed.
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	contactID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid contact ID")
		return
	}

	if err := h.contactService.RemoveContact(contactID, userID); err != nil {
		respondContactError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact removed successfully",
	})
}

// SearchUsers finds users by username prefix for the contact picker.
func (h *ContactHandler) SearchUsers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"users": []dto.PublicUserDTO{}})
		return
	}

	users, err := h.contactService.SearchUsers(query, userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to search users")
		return
	}

	items := make([]dto.PublicUserDTO, len(users))
	for i, user := range users {
		items[i] = dto.ToPublicUserDTO(user)
	}

	c.JSON(http.StatusOK, gin.H{"users": items})
}

func respondContactError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrContactNotFound),
		errors.Is(err, services.ErrContactRequestNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrRecipientNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSelfContact):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrContactExists),
		errors.Is(err, services.ErrRequestAlreadyPending):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
