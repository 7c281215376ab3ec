// Package notifications forwards new contact messages to webhook
// subscribers.
package notifications

import (
	"time"

	"github.com/PierrickDossin/portfolio/internal/contact"
)

// NotificationType categorises the event that triggered the notification.
type NotificationType string

const (
	TypeContactMessage NotificationType = "contact_message"
)

// Notification is the JSON payload POSTed to every webhook.
type Notification struct {
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Text      string           `json:"text"`
	Message   contact.Message  `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

// FromMessage builds the notification for a new contact message.
func FromMessage(m contact.Message) Notification {
	return Notification{
		Type:      TypeContactMessage,
		Title:     "New contact message from " + m.Name,
		Text:      m.Message,
		Message:   m,
		CreatedAt: time.Now().UTC(),
	}
}
