package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"
)

var inviteMailTmpl = template.Must(template.New("invite").Parse(`
<p>Hi {{.Name}},</p>
<p>You have been invited to the member portal. Use the link below to set
your password. The link expires on {{.ExpiresAt}}.</p>
<p><a href="{{.InviteURL}}">{{.InviteURL}}</a></p>
`))

type MailService struct {
	smtpHost string
	smtpPort string
	username string
	password string
	mailFrom string
	fromName string
}

func NewMailService(smtpHost, smtpPort, username, password, mailFrom, fromName string) *MailService {
	return &MailService{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		mailFrom: mailFrom,
		fromName: fromName,
	}
}

func (s *MailService) SendInviteEmail(to, name, inviteURL, expiresAt string) error {
	var body bytes.Buffer
	err := inviteMailTmpl.Execute(&body, map[string]string{
		"Name":      name,
		"InviteURL": inviteURL,
		"ExpiresAt": expiresAt,
	})
	if err != nil {
		return err
	}

	fromHeader := fmt.Sprintf("%s <%s>", s.fromName, s.mailFrom)
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		"Subject: You are invited",
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body.String(),
	}, "\r\n")

	log.Printf("[MAIL] sending invite to=%s via=%s:%s", to, s.smtpHost, s.smtpPort)

	if err := s.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		return err
	}

	log.Printf("[MAIL] sent to=%s", to)
	return nil
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	addr := net.JoinHostPort(s.smtpHost, s.smtpPort)

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	// deadline covers the whole SMTP conversation
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.smtpHost)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.smtpHost}); err != nil {
			return err
		}
	}
	if s.username != "" {
		auth := smtp.PlainAuth("", s.username, s.password, s.smtpHost)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(s.mailFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
