package dto

type UserInvitedEvent struct {
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	InviteURL string `json:"invite_url"`
	ExpiresAt string `json:"expires_at"`
}

type UserRegisteredEvent struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type ProfileChangeRequestedEvent struct {
	UserID uint     `json:"user_id"`
	Fields []string `json:"fields"`
}

type ProfileChangeResolvedEvent struct {
	UserID    uint   `json:"user_id"`
	FieldName string `json:"field_name"`
	Action    string `json:"action"` // approve | reject
	Comment   string `json:"comment,omitempty"`
}
