package ports

import (
	"context"

	"github.com/chouchef/chouchef-api/internal/core/domain"
)

// MailMessage is a fully composed outgoing email.
type MailMessage struct {
	From    string
	ReplyTo string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers composed messages.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

type ContactService interface {
	Send(ctx context.Context, msg domain.ContactMessage) error
}
