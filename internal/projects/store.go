package projects

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/PierrickDossin/portfolio/internal/db"
)

// Store manages persistence of projects and their tags.
type Store struct {
	db *db.DB
}

// NewStore creates a new project store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

const selectProject = `SELECT id, title, description, category, github_url, live_url, icon_name,
	gradient_from, gradient_to, is_featured, display_order, created_at, updated_at FROM projects`

// Create inserts a project and its tags.
func (s *Store) Create(ctx context.Context, p Project) (*Project, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO projects (title, description, category, github_url, live_url, icon_name,
		 gradient_from, gradient_to, is_featured, display_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Category, nullString(p.GitHubURL), nullString(p.LiveURL), nullString(p.IconName),
		p.GradientFrom, p.GradientTo, p.IsFeatured, p.DisplayOrder, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting project: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading project id: %w", err)
	}
	if err := writeTags(ctx, tx, p.ID, p.Tags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing project: %w", err)
	}
	return &p, nil
}

// Update replaces every editable field of the project with id.
func (s *Store) Update(ctx context.Context, id int64, p Project) (*Project, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	p.ID = id
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE projects SET title = ?, description = ?, category = ?, github_url = ?, live_url = ?, icon_name = ?,
		 gradient_from = ?, gradient_to = ?, is_featured = ?, display_order = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Description, p.Category, nullString(p.GitHubURL), nullString(p.LiveURL), nullString(p.IconName),
		p.GradientFrom, p.GradientTo, p.IsFeatured, p.DisplayOrder, p.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM project_tags WHERE project_id = ?`, id); err != nil {
		return nil, fmt.Errorf("clearing tags: %w", err)
	}
	if err := writeTags(ctx, tx, id, p.Tags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing project: %w", err)
	}
	return &p, nil
}

// Delete removes a project. Repositories that pointed at it are detached,
// not deleted.
func (s *Store) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE code_repositories SET project_id = NULL WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("detaching repositories: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM project_tags WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("deleting tags: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// GetByID retrieves a project. It returns nil, nil when no project has id.
func (s *Store) GetByID(ctx context.Context, id int64) (*Project, error) {
	list, err := s.query(ctx, selectProject+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// List returns every project ordered by display order.
func (s *Store) List(ctx context.Context) ([]Project, error) {
	return s.query(ctx, selectProject+` ORDER BY display_order ASC, id ASC`)
}

// Featured returns the featured projects ordered by display order.
func (s *Store) Featured(ctx context.Context) ([]Project, error) {
	return s.query(ctx, selectProject+` WHERE is_featured = 1 ORDER BY display_order ASC, id ASC`)
}

// ByCategory returns the projects in category c.
func (s *Store) ByCategory(ctx context.Context, c Category) ([]Project, error) {
	return s.query(ctx, selectProject+` WHERE category = ? ORDER BY display_order ASC, id ASC`, c)
}

// ByTag returns the projects carrying tag, compared case-insensitively.
func (s *Store) ByTag(ctx context.Context, tag string) ([]Project, error) {
	return s.query(ctx, selectProject+
		` WHERE id IN (SELECT project_id FROM project_tags WHERE tag = ? COLLATE NOCASE)
		 ORDER BY display_order ASC, id ASC`, strings.TrimSpace(tag))
}

// Count returns the number of stored projects.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n)
	return n, err
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	var list []Project
	for rows.Next() {
		var p Project
		var githubURL, liveURL, iconName sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &githubURL, &liveURL, &iconName,
			&p.GradientFrom, &p.GradientTo, &p.IsFeatured, &p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		p.GitHubURL = githubURL.String
		p.LiveURL = liveURL.String
		p.IconName = iconName.String
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if err := s.loadTags(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadTags fills Tags for every project in list in stored order.
func (s *Store) loadTags(ctx context.Context, list []Project) error {
	if len(list) == 0 {
		return nil
	}
	index := make(map[int64]int, len(list))
	placeholders := make([]string, len(list))
	args := make([]any, len(list))
	for i := range list {
		list[i].Tags = []string{}
		index[list[i].ID] = i
		placeholders[i] = "?"
		args[i] = list[i].ID
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT project_id, tag FROM project_tags WHERE project_id IN (`+strings.Join(placeholders, ",")+`)
		 ORDER BY project_id, position`, args...)
	if err != nil {
		return fmt.Errorf("loading tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return fmt.Errorf("scanning tag: %w", err)
		}
		if i, ok := index[id]; ok {
			list[i].Tags = append(list[i].Tags, tag)
		}
	}
	return rows.Err()
}

func writeTags(ctx context.Context, tx *sql.Tx, projectID int64, tags []string) error {
	for i, tag := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO project_tags (project_id, position, tag) VALUES (?, ?, ?)`,
			projectID, i, tag,
		); err != nil {
			return fmt.Errorf("inserting tag: %w", err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
