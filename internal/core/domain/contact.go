package domain

import "errors"

var ErrMailDelivery = errors.New("mail delivery failed")

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	FirstName string
	Email     string
	Message   string
}
