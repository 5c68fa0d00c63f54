package handlers

import (
	"encoding/json"
	"log"

	"github.com/einkreativername/brightmiss/internal/dto"
	"github.com/einkreativername/brightmiss/internal/services"
)

// MailHandler consumes user events off the bus and sends the matching mail.
// Only user.invited produces a mail today; other keys are acknowledged and
// skipped.
type MailHandler struct {
	mail *services.MailService
}

func NewMailHandler(mail *services.MailService) *MailHandler {
	return &MailHandler{mail: mail}
}

func (h *MailHandler) HandleMessage(key, value []byte) error {
	switch string(key) {
	case "user.invited":
		var event dto.UserInvitedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		return h.mail.SendInviteEmail(event.Email, event.Name, event.InviteURL, event.ExpiresAt)
	default:
		log.Printf("skip event key=%s", string(key))
		return nil
	}
}
