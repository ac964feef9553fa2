package types

import (
	"github.com/google/uuid"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/patch"
)

type RegisterRequest struct {
	Name     *string      `json:"name" validate:"omitempty,max=250"`
	Email    string       `json:"email" validate:"required,email,max=250"`
	Password string       `json:"password" validate:"required,min=8,max=48"`
	Role     *models.Role `json:"role" validate:"omitempty,min=0,max=2"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is a partial update. Omitted fields are unchanged and
// null clears name or role.
type UpdateUserRequest struct {
	Name     patch.Field[string]      `json:"name" validate:"omitempty,max=250"`
	Email    patch.Field[string]      `json:"email" validate:"omitempty,email,max=250"`
	Password patch.Field[string]      `json:"password" validate:"omitempty,min=8,max=48"`
	Role     patch.Field[models.Role] `json:"role" validate:"omitempty,min=0,max=2"`
}

type CreateCustomerRequest struct {
	Name               string `json:"name" validate:"required,max=250"`
	ContactMail        string `json:"contactMail" validate:"required,email"`
	OrganizationNumber int    `json:"organizationNumber" validate:"gte=0"`
}

type CreateProjectRequest struct {
	Name        string     `json:"name" validate:"required,max=250"`
	Description string     `json:"description"`
	CustomerID  *uuid.UUID `json:"customerId"`
}

type UpdateProjectRequest struct {
	Name        patch.Field[string] `json:"name" validate:"omitempty,max=250"`
	Description patch.Field[string] `json:"description"`
}

type UpdateProjectStatusRequest struct {
	Status *models.Status `json:"status" validate:"required,min=0,max=3"`
}

// UpdateProjectCustomerRequest requires customerId to be present; null
// unlinks the customer.
type UpdateProjectCustomerRequest struct {
	CustomerID patch.Field[uuid.UUID] `json:"customerId"`
}

type CreateResourceRequest struct {
	EstimateType *models.EstimateType `json:"estimateType" validate:"required,min=0,max=3"`
	TimeHours    *int                 `json:"timeHours" validate:"required,min=0"`
	TimeCost     *int                 `json:"timeCost" validate:"required,min=0"`
	ProjectID    uuid.UUID            `json:"projectId"`
}
