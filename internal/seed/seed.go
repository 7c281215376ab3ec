// Package seed fills an empty database with the default portfolio content.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PierrickDossin/portfolio/internal/codeview"
	"github.com/PierrickDossin/portfolio/internal/projects"
	"github.com/PierrickDossin/portfolio/internal/repositories"
	"github.com/PierrickDossin/portfolio/internal/skills"
)

//go:embed seed.yml
var defaultSeed []byte

// Data is the content of a seed file.
type Data struct {
	Projects     []projects.Project `yaml:"projects"`
	Skills       []skills.Skill     `yaml:"skills"`
	Repositories []Repository       `yaml:"repositories"`
}

// Repository is a seeded code repository. Project names the owning project
// by title and is resolved to an id while seeding.
type Repository struct {
	repositories.Repository `yaml:",inline"`
	Project                 string `yaml:"project"`
}

// Result counts what a seed run created.
type Result struct {
	Projects     int
	Skills       int
	Repositories int
}

// Stores are the tables a seed run writes to.
type Stores struct {
	Projects     *projects.Store
	Skills       *skills.Store
	Repositories *repositories.Store
}

// Default returns the embedded seed data.
func Default() (*Data, error) {
	return parse(defaultSeed)
}

// Load reads seed data from path, or the embedded default when path is empty.
func Load(path string) (*Data, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return parse(raw)
}

func parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parsing seed data: %w", err)
	}
	return &d, nil
}

// Run seeds every table that is still empty. Tables that already hold rows
// are left untouched, so running it on every start is safe.
func Run(ctx context.Context, s Stores, d *Data) (Result, error) {
	var res Result

	n, err := s.Projects.Count(ctx)
	if err != nil {
		return res, err
	}
	if n == 0 {
		for _, p := range d.Projects {
			if err := p.Validate(); err != nil {
				return res, fmt.Errorf("seed project %q: %w", p.Title, err)
			}
			if _, err := s.Projects.Create(ctx, p); err != nil {
				return res, fmt.Errorf("seed project %q: %w", p.Title, err)
			}
			res.Projects++
		}
	}

	n, err = s.Skills.Count(ctx)
	if err != nil {
		return res, err
	}
	if n == 0 {
		for _, sk := range d.Skills {
			if err := sk.Validate(); err != nil {
				return res, fmt.Errorf("seed skill %q: %w", sk.Name, err)
			}
			if _, err := s.Skills.Create(ctx, sk); err != nil {
				return res, fmt.Errorf("seed skill %q: %w", sk.Name, err)
			}
			res.Skills++
		}
	}

	n, err = s.Repositories.Count(ctx)
	if err != nil {
		return res, err
	}
	if n > 0 || len(d.Repositories) == 0 {
		return res, nil
	}

	byTitle, err := projectIDs(ctx, s.Projects)
	if err != nil {
		return res, err
	}
	for _, r := range d.Repositories {
		repo := r.Repository
		if r.Project != "" {
			id, ok := byTitle[r.Project]
			if !ok {
				log.Printf("seed: skipping repository %q: project %q not found", repo.Name, r.Project)
				continue
			}
			repo.ProjectID = &id
		}
		fillLines(repo.Files)
		if err := repo.Validate(); err != nil {
			return res, fmt.Errorf("seed repository %q: %w", repo.Name, err)
		}
		if _, err := s.Repositories.Create(ctx, repo); err != nil {
			return res, fmt.Errorf("seed repository %q: %w", repo.Name, err)
		}
		res.Repositories++
	}
	return res, nil
}

func projectIDs(ctx context.Context, store *projects.Store) (map[string]int64, error) {
	list, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]int64, len(list))
	for _, p := range list {
		m[p.Title] = p.ID
	}
	return m, nil
}

func fillLines(files []codeview.CodeFile) {
	for i := range files {
		if files[i].Lines == nil {
			n := codeview.CountLines(files[i].Content)
			files[i].Lines = &n
		}
	}
}
