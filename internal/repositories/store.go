package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/PierrickDossin/portfolio/internal/codeview"
	"github.com/PierrickDossin/portfolio/internal/db"
)

// Store manages persistence of code repositories and their files.
type Store struct {
	db *db.DB
}

// NewStore creates a new repository store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

const selectRepository = `SELECT id, name, description, project_id, github_url, display_order, created_at, updated_at
	FROM code_repositories`

// Create inserts a repository and its files.
func (s *Store) Create(ctx context.Context, repo Repository) (*Repository, error) {
	if err := repo.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	repo.CreatedAt = now
	repo.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkProject(ctx, tx, repo.ProjectID); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO code_repositories (name, description, project_id, github_url, display_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		repo.Name, nullString(repo.Description), nullInt64(repo.ProjectID), nullString(repo.GitHubURL),
		repo.DisplayOrder, repo.CreatedAt, repo.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting repository: %w", err)
	}
	repo.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading repository id: %w", err)
	}
	if err := writeFiles(ctx, tx, repo.ID, repo.Files); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing repository: %w", err)
	}
	return &repo, nil
}

// Update replaces every editable field and the whole file list of the
// repository with id.
func (s *Store) Update(ctx context.Context, id int64, repo Repository) (*Repository, error) {
	if err := repo.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var createdAt time.Time
	err = tx.QueryRowContext(ctx, `SELECT created_at FROM code_repositories WHERE id = ?`, id).Scan(&createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting repository: %w", err)
	}
	if err := checkProject(ctx, tx, repo.ProjectID); err != nil {
		return nil, err
	}

	repo.ID = id
	repo.CreatedAt = createdAt
	repo.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`UPDATE code_repositories SET name = ?, description = ?, project_id = ?, github_url = ?, display_order = ?, updated_at = ?
		 WHERE id = ?`,
		repo.Name, nullString(repo.Description), nullInt64(repo.ProjectID), nullString(repo.GitHubURL),
		repo.DisplayOrder, repo.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating repository: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM repository_files WHERE repository_id = ?`, id); err != nil {
		return nil, fmt.Errorf("clearing files: %w", err)
	}
	if err := writeFiles(ctx, tx, id, repo.Files); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing repository: %w", err)
	}
	return &repo, nil
}

// Delete removes the repository with id and its files.
func (s *Store) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM repository_files WHERE repository_id = ?`, id); err != nil {
		return fmt.Errorf("deleting files: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM code_repositories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting repository: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// GetByID retrieves a repository with its files. It returns nil, nil when
// no repository has id.
func (s *Store) GetByID(ctx context.Context, id int64) (*Repository, error) {
	list, err := s.query(ctx, selectRepository+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// List returns every repository with its files, ordered by display order.
func (s *Store) List(ctx context.Context) ([]Repository, error) {
	return s.query(ctx, selectRepository+` ORDER BY display_order ASC, id ASC`)
}

// ByProject returns the repositories attached to projectID.
func (s *Store) ByProject(ctx context.Context, projectID int64) ([]Repository, error) {
	return s.query(ctx, selectRepository+` WHERE project_id = ? ORDER BY display_order ASC, id ASC`, projectID)
}

// Summaries lists every repository without file contents.
func (s *Store) Summaries(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.name, r.description, r.project_id, r.github_url, r.display_order, r.updated_at,
		        (SELECT COUNT(*) FROM repository_files f WHERE f.repository_id = r.id)
		 FROM code_repositories r ORDER BY r.display_order ASC, r.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}
	defer rows.Close()

	var list []Summary
	for rows.Next() {
		var sm Summary
		var description, githubURL sql.NullString
		var projectID sql.NullInt64
		if err := rows.Scan(&sm.ID, &sm.Name, &description, &projectID, &githubURL, &sm.DisplayOrder, &sm.UpdatedAt, &sm.FileCount); err != nil {
			return nil, fmt.Errorf("scanning repository: %w", err)
		}
		sm.Description = description.String
		sm.GitHubURL = githubURL.String
		if projectID.Valid {
			sm.ProjectID = &projectID.Int64
		}
		list = append(list, sm)
	}
	return list, rows.Err()
}

// Count returns the number of stored repositories.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM code_repositories`).Scan(&n)
	return n, err
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Repository, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}

	var list []Repository
	for rows.Next() {
		var repo Repository
		var description, githubURL sql.NullString
		var projectID sql.NullInt64
		if err := rows.Scan(&repo.ID, &repo.Name, &description, &projectID, &githubURL,
			&repo.DisplayOrder, &repo.CreatedAt, &repo.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning repository: %w", err)
		}
		repo.Description = description.String
		repo.GitHubURL = githubURL.String
		if projectID.Valid {
			id := projectID.Int64
			repo.ProjectID = &id
		}
		list = append(list, repo)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if err := s.loadFiles(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadFiles fills Files for every repository in list in stored order.
func (s *Store) loadFiles(ctx context.Context, list []Repository) error {
	if len(list) == 0 {
		return nil
	}
	index := make(map[int64]int, len(list))
	placeholders := make([]string, len(list))
	args := make([]any, len(list))
	for i := range list {
		list[i].Files = []codeview.CodeFile{}
		index[list[i].ID] = i
		placeholders[i] = "?"
		args[i] = list[i].ID
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT repository_id, file_name, file_path, content, language, lines FROM repository_files
		 WHERE repository_id IN (`+strings.Join(placeholders, ",")+`) ORDER BY repository_id, position`, args...)
	if err != nil {
		return fmt.Errorf("loading files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var f codeview.CodeFile
		var lines sql.NullInt64
		if err := rows.Scan(&id, &f.FileName, &f.FilePath, &f.Content, &f.Language, &lines); err != nil {
			return fmt.Errorf("scanning file: %w", err)
		}
		if lines.Valid {
			n := int(lines.Int64)
			f.Lines = &n
		}
		if i, ok := index[id]; ok {
			list[i].Files = append(list[i].Files, f)
		}
	}
	return rows.Err()
}

func checkProject(ctx context.Context, tx *sql.Tx, projectID *int64) error {
	if projectID == nil {
		return nil
	}
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE id = ?`, *projectID).Scan(&n); err != nil {
		return fmt.Errorf("checking project: %w", err)
	}
	if n == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func writeFiles(ctx context.Context, tx *sql.Tx, repoID int64, files []codeview.CodeFile) error {
	for i, f := range files {
		var lines sql.NullInt64
		if f.Lines != nil {
			lines = sql.NullInt64{Int64: int64(*f.Lines), Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO repository_files (repository_id, position, file_name, file_path, content, language, lines)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			repoID, i, f.FileName, f.FilePath, f.Content, f.Language, lines,
		); err != nil {
			return fmt.Errorf("inserting file %s: %w", f.FilePath, err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
