package domain

import "time"

const (
	AuditActionApproveField = "profile.field.approve"
	AuditActionRejectField  = "profile.field.reject"
	AuditActionInviteUser   = "user.invite"
	AuditActionDeleteUser   = "user.delete"
)

// AuditLog keeps the admin's decision trail, including the approve note or
// rejection comment for a profile change request.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ActorID   uint      `gorm:"not null;index" json:"actor_id"`
	Action    string    `gorm:"type:varchar(100);not null" json:"action"`
	Entity    string    `gorm:"type:varchar(100);not null" json:"entity"`
	EntityID  uint      `gorm:"not null;index" json:"entity_id"`
	Note      *string   `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
