package models

import (
	"time"

	"github.com/google/uuid"
)

// Resource is an estimated time/cost line item of a project. TimeCost is an
// hourly rate and TotalCost is fixed at creation.
type Resource struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EstimateType EstimateType `gorm:"not null" json:"estimateType"`
	TimeHours    int          `gorm:"not null" json:"timeHours"`
	TimeCost     int          `gorm:"not null" json:"timeCost"`
	TotalCost    int          `gorm:"not null" json:"totalCost"`
	ProjectID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"projectId"`
	CreatedAt    time.Time    `json:"-"`
}

// NewResource builds a resource with its total cost computed from hours and rate.
func NewResource(projectID uuid.UUID, kind EstimateType, hours, rate int) Resource {
	return Resource{
		EstimateType: kind,
		TimeHours:    hours,
		TimeCost:     rate,
		TotalCost:    hours * rate,
		ProjectID:    projectID,
	}
}
