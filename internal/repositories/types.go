package repositories

import (
	"errors"
	"strings"
	"time"

	"github.com/PierrickDossin/portfolio/internal/codeview"
)

var (
	// ErrNotFound is returned when a repository does not exist.
	ErrNotFound = errors.New("repository not found")
	// ErrProjectNotFound is returned when projectId names a missing project.
	ErrProjectNotFound = errors.New("project not found")
)

// Repository is a code snapshot shown in the code viewer. Files keep the
// order they were stored in.
type Repository struct {
	ID           int64               `json:"id" yaml:"-"`
	Name         string              `json:"name" yaml:"name"`
	Description  string              `json:"description,omitempty" yaml:"description"`
	ProjectID    *int64              `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	Files        []codeview.CodeFile `json:"files" yaml:"files"`
	GitHubURL    string              `json:"githubUrl,omitempty" yaml:"githubUrl"`
	DisplayOrder int                 `json:"displayOrder" yaml:"displayOrder"`
	CreatedAt    time.Time           `json:"createdAt" yaml:"-"`
	UpdatedAt    time.Time           `json:"updatedAt" yaml:"-"`
}

// Validate checks the required fields and fills defaults.
func (r *Repository) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("repository name is required")
	}
	if r.Files == nil {
		r.Files = []codeview.CodeFile{}
	}
	return nil
}

// Summary is a repository without file contents, used for listings.
type Summary struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ProjectID    *int64    `json:"projectId,omitempty"`
	GitHubURL    string    `json:"githubUrl,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	FileCount    int       `json:"fileCount"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
