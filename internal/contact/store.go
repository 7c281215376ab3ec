package contact

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/PierrickDossin/portfolio/internal/db"
)

// Store manages persistence of contact messages.
type Store struct {
	db  *db.DB
	hub *Hub
}

// NewStore creates a new contact message store. When hub is non-nil every
// created message is published to it.
func NewStore(database *db.DB, hub *Hub) *Store {
	return &Store{db: database, hub: hub}
}

const selectMessage = `SELECT id, name, email, message, is_read, created_at FROM contact_messages`

// Create stores a new unread message.
func (s *Store) Create(ctx context.Context, m Message) (*Message, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.IsRead = false
	m.CreatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, message, is_read, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.Email, m.Message, m.IsRead, m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting contact message: %w", err)
	}
	m.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading contact message id: %w", err)
	}

	if s.hub != nil {
		s.hub.Publish(m)
	}
	return &m, nil
}

// GetByID retrieves a message. It returns nil, nil when no message has id.
func (s *Store) GetByID(ctx context.Context, id int64) (*Message, error) {
	var m Message
	err := s.db.QueryRowContext(ctx, selectMessage+` WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.IsRead, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting contact message: %w", err)
	}
	return &m, nil
}

// List returns every message, newest first.
func (s *Store) List(ctx context.Context) ([]Message, error) {
	return s.query(ctx, selectMessage+` ORDER BY created_at DESC, id DESC`)
}

// Unread returns the unread messages, newest first.
func (s *Store) Unread(ctx context.Context) ([]Message, error) {
	return s.query(ctx, selectMessage+` WHERE is_read = 0 ORDER BY created_at DESC, id DESC`)
}

// MarkRead flags the message with id as read and returns it.
func (s *Store) MarkRead(ctx context.Context, id int64) (*Message, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE contact_messages SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("marking contact message read: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// Delete removes the message with id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contact message: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contact messages: %w", err)
	}
	defer rows.Close()

	var list []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning contact message: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
