package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chouchef/chouchef-api/internal/core/domain"
)

func TestContactService_Send(t *testing.T) {
	mailer := &stubMailer{}
	svc := NewContactService(mailer, "site@chouchef.fr", "inbox@chouchef.fr", zerolog.Nop())

	err := svc.Send(context.Background(), domain.ContactMessage{
		FirstName: "Léa",
		Email:     "lea@example.com",
		Message:   "Bonjour <b>!</b>\nÀ bientôt",
	})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(mailer.sent))
	}

	msg := mailer.sent[0]
	if msg.From != "site@chouchef.fr" || msg.To != "inbox@chouchef.fr" || msg.ReplyTo != "lea@example.com" {
		t.Fatalf("unexpected addressing: %+v", msg)
	}
	if msg.Subject != "Nouveau message de contact de Léa" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if strings.Contains(msg.HTML, "<b>") {
		t.Fatalf("html body not escaped: %s", msg.HTML)
	}
	if !strings.Contains(msg.HTML, "&lt;b&gt;") || !strings.Contains(msg.HTML, "<br>") {
		t.Fatalf("unexpected html body: %s", msg.HTML)
	}
	if !strings.Contains(msg.Text, "Bonjour <b>!</b>") {
		t.Fatalf("text body should carry the raw message: %s", msg.Text)
	}
}

func TestContactService_Send_Validation(t *testing.T) {
	mailer := &stubMailer{}
	svc := NewContactService(mailer, "a", "b", zerolog.Nop())

	err := svc.Send(context.Background(), domain.ContactMessage{FirstName: "Léa", Email: "lea@example.com"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("nothing should be sent")
	}
}

func TestContactService_Send_DeliveryFailure(t *testing.T) {
	mailer := &stubMailer{err: errors.New("smtp: 535 auth failed")}
	svc := NewContactService(mailer, "a", "b", zerolog.Nop())

	err := svc.Send(context.Background(), domain.ContactMessage{FirstName: "Léa", Email: "lea@example.com", Message: "hi"})
	if !errors.Is(err, domain.ErrMailDelivery) {
		t.Fatalf("expected ErrMailDelivery, got %v", err)
	}
}
