package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lmercat/productivity-api/internal/dto"
	apierrors "github.com/lmercat/productivity-api/internal/errors"
	"github.com/lmercat/productivity-api/internal/repository"
	"github.com/lmercat/productivity-api/internal/utils"
)

type AdminHandler struct {
	userRepo repository.UserRepository
}

func NewAdminHandler(userRepo repository.UserRepository) *AdminHandler {
	return &AdminHandler{
		userRepo: userRepo,
	}
}

// ListUsers returns all registered users, paginated. Admin only.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userRepo.List(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, params.Page, params.Limit, total))
}
