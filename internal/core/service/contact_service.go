package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chouchef/chouchef-api/internal/core/domain"
	"github.com/chouchef/chouchef-api/internal/core/ports"
)

// ContactService forwards contact form submissions to a fixed inbox.
type ContactService struct {
	mailer ports.Mailer
	sender string
	inbox  string
	log    zerolog.Logger
}

func NewContactService(mailer ports.Mailer, sender, inbox string, log zerolog.Logger) *ContactService {
	return &ContactService{mailer: mailer, sender: sender, inbox: inbox, log: log}
}

func (s *ContactService) Send(ctx context.Context, msg domain.ContactMessage) error {
	msg.FirstName = strings.TrimSpace(msg.FirstName)
	msg.Email = strings.TrimSpace(msg.Email)
	if msg.FirstName == "" || msg.Email == "" || strings.TrimSpace(msg.Message) == "" {
		return fmt.Errorf("%w: prenom, email and message are required", domain.ErrInvalidInput)
	}

	if err := s.mailer.Send(ctx, composeContactMail(s.sender, s.inbox, msg)); err != nil {
		s.log.Error().Err(err).Msg("contact mail delivery failed")
		return fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}

	s.log.Info().Msg("contact mail sent")
	return nil
}

func composeContactMail(sender, inbox string, msg domain.ContactMessage) ports.MailMessage {
	text := fmt.Sprintf("Prénom: %s\nEmail: %s\n\n%s\n", msg.FirstName, msg.Email, msg.Message)

	body := strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>")
	htmlBody := fmt.Sprintf(
		"<p><strong>Prénom :</strong> %s</p><p><strong>Email :</strong> %s</p><p>%s</p>",
		html.EscapeString(msg.FirstName), html.EscapeString(msg.Email), body,
	)

	return ports.MailMessage{
		From:    sender,
		ReplyTo: msg.Email,
		To:      inbox,
		Subject: "Nouveau message de contact de " + msg.FirstName,
		Text:    text,
		HTML:    htmlBody,
	}
}
