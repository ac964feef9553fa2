package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	ContactMail        string    `gorm:"not null" json:"contactMail"`
	OrganizationNumber int       `gorm:"not null" json:"organizationNumber"`
	CreatedAt          time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
