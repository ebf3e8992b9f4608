package dto

import (
	"time"

	"github.com/lmercat/productivity-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// PublicUserDTO represents another user in search results, without email
type PublicUserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// UserListResponse represents a paginated list of users for the admin view
type UserListResponse struct {
	Users      []UserDTO `json:"users"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}
}

// ToPublicUserDTO converts a User model to PublicUserDTO
func ToPublicUserDTO(user models.User) PublicUserDTO {
	return PublicUserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToUserListResponse converts a slice of users to UserListResponse
func ToUserListResponse(users []models.User, page, pageSize int, totalCount int64) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return UserListResponse{
		Users:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// SessionDTO represents an authenticated session in API responses
type SessionDTO struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	User    UserDTO    `json:"user"`
	Session SessionDTO `json:"session"`
}

// ToAuthResponse converts a user and session pair to AuthResponse
func ToAuthResponse(user models.User, session models.Session) AuthResponse {
	return AuthResponse{
		User:    ToUserDTO(user),
		Session: SessionDTO{ExpiresAt: session.ExpiresAt},
	}
}
