package dto

import "github.com/einkreativername/brightmiss/internal/domain"

type InviteRequest struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
}

type InviteResponse struct {
	InviteURL string       `json:"invite_url"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ChangeRequest is one reviewable (user, field) pair, synthesized on read
// from the pending slots. It is never persisted.
type ChangeRequest struct {
	RequestID  string `json:"request_id"` // "<userId>-<fieldName>"
	UserID     uint   `json:"user_id"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	FieldName  string `json:"field_name"`
	OldValue   string `json:"old_value"`
	NewValue   string `json:"new_value"`
	IsApproved bool   `json:"is_approved"`
	IsLocked   bool   `json:"is_locked"`
}

type ResolveChangeRequest struct {
	UserID    uint   `json:"user_id" validate:"required"`
	FieldName string `json:"field_name" validate:"required,oneof=firstName lastName phone address workPlace"`
	Action    string `json:"action" validate:"required,oneof=approve reject"`
	Comment   string `json:"comment,omitempty"`
}

type AdminUserResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	IsInvited bool            `json:"is_invited"`
	LastLogin *string         `json:"last_login,omitempty"`
	CreatedAt string          `json:"created_at"`
	Profile   *domain.Profile `json:"profile,omitempty"`
}

type AdminUserDetail struct {
	AdminUserResponse
	InviteTokens []domain.InviteToken `json:"invite_tokens"`
}
