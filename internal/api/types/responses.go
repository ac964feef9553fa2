package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/trackr/api/internal/auth"
	"github.com/trackr/api/internal/models"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type LoginResponse struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"userId"`
}

// UserSummary is the public view of a user. Credentials never leave the
// service.
type UserSummary struct {
	ID    uuid.UUID    `json:"id"`
	Name  *string      `json:"name"`
	Email *string      `json:"email"`
	Role  *models.Role `json:"role"`
}

func ToUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func ToUserSummaries(users []models.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for i := range users {
		out = append(out, *ToUserSummary(&users[i]))
	}
	return out
}

type AuthenticatedUser struct {
	UserSummary
	Permissions auth.Permissions `json:"permissions"`
}

func ToAuthenticatedUser(u *models.User) AuthenticatedUser {
	return AuthenticatedUser{
		UserSummary: *ToUserSummary(u),
		Permissions: auth.PermissionsFor(u.EffectiveRole()),
	}
}

type ProjectResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Status      models.Status     `json:"status"`
	CreatedDate time.Time         `json:"createdDate"`
	UpdatedDate time.Time         `json:"updatedDate"`
	CreatedUser *UserSummary      `json:"createdUser"`
	UpdatedUser *UserSummary      `json:"updatedUser"`
	Customer    *models.Customer  `json:"customer"`
	Resources   []models.Resource `json:"resources"`
}

func ToProjectResponse(p models.Project) ProjectResponse {
	resources := p.Resources
	if resources == nil {
		resources = []models.Resource{}
	}
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		CreatedDate: p.CreatedDate,
		UpdatedDate: p.UpdatedDate,
		CreatedUser: ToUserSummary(p.CreatedUser),
		UpdatedUser: ToUserSummary(p.UpdatedUser),
		Customer:    p.Customer,
		Resources:   resources,
	}
}

type StatusResponse struct {
	Status string `json:"status"`
}
