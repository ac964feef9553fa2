package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a person who can sign in. Name, email and role are nullable.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         *string   `gorm:"size:250" json:"name"`
	Email        *string   `gorm:"size:250;index" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Salt         string    `gorm:"size:50;not null" json:"-"`
	Role         *Role     `gorm:"column:role_id" json:"role"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// EffectiveRole treats an unset role as RoleUser.
func (u *User) EffectiveRole() Role {
	if u == nil || u.Role == nil {
		return RoleUser
	}
	return *u.Role
}
