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

type ShareHandler struct {
	shareService *services.ShareService
	appBaseURL   string
}

func NewShareHandler(shareService *services.ShareService, appBaseURL string) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		appBaseURL:   appBaseURL,
	}
}

// shareTypeFilter parses the optional ?type= query parameter.
func shareTypeFilter(c *gin.Context) (*models.ShareType, bool) {
	raw := c.Query("type")
	if raw == "" {
		return nil, true
	}
	shareType := models.ShareType(raw)
	if !models.ValidShareType(shareType) {
		return nil, false
	}
	return &shareType, true
}

// ListSharedWithMe returns shares where the current user is the recipient.
func (h *ShareHandler) ListSharedWithMe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	shareType, ok := shareTypeFilter(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid share type")
		return
	}

	shares, err := h.shareService.SharedWithMe(userID, shareType)
	if err != nil {
		apierrors.InternalError(c, "Failed to list shares")
		return
	}

	c.JSON(http.StatusOK, gin.H{"shares": dto.ToShareDTOs(shares)})
}

// ListSharedByMe returns shares where the current user is the owner.
func (h *ShareHandler) ListSharedByMe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	shareType, ok := shareTypeFilter(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid share type")
		return
	}

	shares, err := h.shareService.SharedByMe(userID, shareType)
	if err != nil {
		apierrors.InternalError(c, "Failed to list shares")
		return
	}

	c.JSON(http.StatusOK, gin.H{"shares": dto.ToShareDTOs(shares)})
}

// CreateShare grants a recipient access to one of the caller's items.
// Sharing the same item with the same recipient again updates the
// permission.
func (h *ShareHandler) CreateShare(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateShareRequest struct {
		Type        string `json:"type" binding:"required"`
		ItemID      uint64 `json:"item_id" binding:"required"`
		RecipientID uint64 `json:"recipient_id" binding:"required"`
		Permission  string `json:"permission"`
	}

	var req CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	permission := models.SharePermission(req.Permission)
	if req.Permission == "" {
		permission = models.PermissionRead
	}

	share, err := h.shareService.ShareItem(services.ShareItemInput{
		ItemID:      req.ItemID,
		OwnerID:     userID,
		RecipientID: req.RecipientID,
		Type:        models.ShareType(req.Type),
		Permission:  permission,
	})
	if err != nil {
		respondShareError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToShareDTO(*share))
}

// DeleteShare revokes a share. The item owner, the share creator and the
// recipient may all revoke.
func (h *ShareHandler) DeleteShare(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	shareID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid share ID")
		return
	}

	if err := h.shareService.DeleteShare(shareID, userID); err != nil {
		respondShareError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Share deleted successfully",
	})
}

// CreatePublicShare creates (or returns) the public link for one of the
// caller's notes.
func (h *ShareHandler) CreatePublicShare(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreatePublicShareRequest struct {
		NoteID        uint64 `json:"note_id" binding:"required"`
		ExpiresInDays int    `json:"expires_in_days" binding:"omitempty,min=1,max=365"`
	}

	var req CreatePublicShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	share, err := h.shareService.CreatePublicShare(req.NoteID, userID, req.ExpiresInDays)
	if err != nil {
		respondShareError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPublicShareDTO(*share, h.appBaseURL))
}

// DeletePublicShare revokes a public note link.
func (h *ShareHandler) DeletePublicShare(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	shareID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid share ID")
		return
	}

	if err := h.shareService.DeletePublicShare(shareID, userID); err != nil {
		respondShareError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Public share deleted successfully",
	})
}

// ResolvePublicShare returns the note behind a public token. No
// authentication required; expired or unknown tokens yield 404.
func (h *ShareHandler) ResolvePublicShare(c *gin.Context) {
	note, err := h.shareService.ResolvePublicToken(c.Param("token"))
	if err != nil {
		respondShareError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPublicNoteDTO(*note))
}

func respondShareError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrShareNotFound),
		errors.Is(err, services.ErrPublicShareNotFound),
		errors.Is(err, services.ErrNoteNotFound),
		errors.Is(err, services.ErrRecipientNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidShareType),
		errors.Is(err, services.ErrInvalidPermission),
		errors.Is(err, services.ErrSelfShare):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotItemOwner),
		errors.Is(err, services.ErrShareDeleteForbidden):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
