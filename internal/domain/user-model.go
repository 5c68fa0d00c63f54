package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "ADMIN"
	RoleSub   = "SUB"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(100);not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash *string    `json:"-"`
	Role         string     `gorm:"type:varchar(20);not null;default:SUB" json:"role"` // ADMIN | SUB
	IsInvited    bool       `gorm:"not null;default:false" json:"is_invited"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	gorm.Model
}
