package contact

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// ErrNotFound is returned when a message does not exist.
var ErrNotFound = errors.New("contact message not found")

// Message is a note left through the contact form.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the required fields and trims surrounding whitespace.
func (m *Message) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(m.Message)

	if m.Name == "" {
		return errors.New("name is required")
	}
	if m.Email == "" {
		return errors.New("email is required")
	}
	if addr, err := mail.ParseAddress(m.Email); err != nil || addr.Address != m.Email {
		return errors.New("email must be valid")
	}
	if m.Message == "" {
		return errors.New("message is required")
	}
	return nil
}
