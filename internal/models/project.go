package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is tracked work for an optional customer. CreatedDate and
// UpdatedDate are set by the service layer rather than gorm's autotime so
// that UpdatedDate only moves on explicit mutations.
type Project struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string     `gorm:"not null"`
	Description   string     `gorm:"type:text"`
	Status        Status     `gorm:"not null;default:0;index"`
	CreatedDate   time.Time  `gorm:"not null;index"`
	UpdatedDate   time.Time  `gorm:"not null"`
	CreatedUserID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedUser   *User      `gorm:"foreignKey:CreatedUserID;constraint:OnDelete:RESTRICT"`
	UpdatedUserID uuid.UUID  `gorm:"type:uuid;not null;index"`
	UpdatedUser   *User      `gorm:"foreignKey:UpdatedUserID;constraint:OnDelete:RESTRICT"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	Customer      *Customer  `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	Resources     []Resource `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// Touch records a mutation by actor at now.
func (p *Project) Touch(actor uuid.UUID, now time.Time) {
	p.UpdatedUserID = actor
	if now.Before(p.CreatedDate) {
		now = p.CreatedDate
	}
	p.UpdatedDate = now
}
