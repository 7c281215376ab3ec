package skills

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/PierrickDossin/portfolio/internal/db"
)

// Store manages persistence of skills.
type Store struct {
	db *db.DB
}

// NewStore creates a new skill store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

const selectSkill = `SELECT id, name, category, level, display_order, created_at, updated_at FROM skills`

// Create inserts a skill.
func (s *Store) Create(ctx context.Context, sk Skill) (*Skill, error) {
	if err := sk.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sk.CreatedAt = now
	sk.UpdatedAt = now

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO skills (name, category, level, display_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sk.Name, sk.Category, sk.Level, sk.DisplayOrder, sk.CreatedAt, sk.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting skill: %w", err)
	}
	sk.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading skill id: %w", err)
	}
	return &sk, nil
}

// Update replaces the editable fields of the skill with id.
func (s *Store) Update(ctx context.Context, id int64, sk Skill) (*Skill, error) {
	if err := sk.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	sk.ID = id
	sk.CreatedAt = existing.CreatedAt
	sk.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		`UPDATE skills SET name = ?, category = ?, level = ?, display_order = ?, updated_at = ? WHERE id = ?`,
		sk.Name, sk.Category, sk.Level, sk.DisplayOrder, sk.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating skill: %w", err)
	}
	return &sk, nil
}

// Delete removes the skill with id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM skills WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting skill: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a skill. It returns nil, nil when no skill has id.
func (s *Store) GetByID(ctx context.Context, id int64) (*Skill, error) {
	var sk Skill
	err := s.db.QueryRowContext(ctx, selectSkill+` WHERE id = ?`, id).
		Scan(&sk.ID, &sk.Name, &sk.Category, &sk.Level, &sk.DisplayOrder, &sk.CreatedAt, &sk.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting skill: %w", err)
	}
	return &sk, nil
}

// List returns every skill ordered by display order.
func (s *Store) List(ctx context.Context) ([]Skill, error) {
	return s.query(ctx, selectSkill+` ORDER BY display_order ASC, id ASC`)
}

// ByCategory returns the skills in category c ordered by display order.
func (s *Store) ByCategory(ctx context.Context, c Category) ([]Skill, error) {
	return s.query(ctx, selectSkill+` WHERE category = ? ORDER BY display_order ASC, id ASC`, c)
}

// Grouped returns all skills bucketed by category.
func (s *Store) Grouped(ctx context.Context) ([]Group, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByCategory(list), nil
}

// Count returns the number of stored skills.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM skills`).Scan(&n)
	return n, err
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Skill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing skills: %w", err)
	}
	defer rows.Close()

	var list []Skill
	for rows.Next() {
		var sk Skill
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.Category, &sk.Level, &sk.DisplayOrder, &sk.CreatedAt, &sk.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning skill: %w", err)
		}
		list = append(list, sk)
	}
	return list, rows.Err()
}
