package domain

import (
	"time"

	"gorm.io/gorm"
)

// InviteToken is single-use. Token holds the SHA-256 hex of the raw token;
// the raw value exists only in the invite URL sent to the user.
type InviteToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:UserID" json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	gorm.Model
}

func (t *InviteToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
