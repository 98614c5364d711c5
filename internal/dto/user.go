package dto

import (
	"time"

	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a user.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit int `form:"limit,default=20"`
	Skip  int `form:"skip,default=0"`
}

// CreateEmployeeRequest registers a staff member in an area.
type CreateEmployeeRequest struct {
	AreaID string `json:"areaID" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// UpdateEmployeeRequest updates staff details.
type UpdateEmployeeRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}

// CreateAreaRequest registers a point of sale.
type CreateAreaRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

// UpdateAreaRequest updates point of sale details.
type UpdateAreaRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

// UserResponse defines the data returned for a user. Never carries the
// password hash.
type UserResponse struct {
	UserID        string    `json:"userID"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Name:          u.Name,
		Username:      u.Username,
		CreatedAt:     u.CreatedAt,
		LastUpdatedAt: u.LastUpdatedAt,
	}
}

// ToUserResponses converts a slice of domain.User to DTOs.
func ToUserResponses(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}
