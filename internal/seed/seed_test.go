package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/PierrickDossin/portfolio/internal/db"
	"github.com/PierrickDossin/portfolio/internal/projects"
	"github.com/PierrickDossin/portfolio/internal/repositories"
	"github.com/PierrickDossin/portfolio/internal/skills"
)

func setupStores(t *testing.T) Stores {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return Stores{
		Projects:     projects.NewStore(database),
		Skills:       skills.NewStore(database),
		Repositories: repositories.NewStore(database),
	}
}

func TestDefaultData(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(d.Projects) != 9 {
		t.Errorf("projects = %d, want 9", len(d.Projects))
	}
	if len(d.Skills) != 30 {
		t.Errorf("skills = %d, want 30", len(d.Skills))
	}
	if len(d.Repositories) != 2 {
		t.Fatalf("repositories = %d, want 2", len(d.Repositories))
	}
	if d.Repositories[0].Project == "" || len(d.Repositories[0].Files) == 0 {
		t.Errorf("first repository = %+v, want project link and files", d.Repositories[0])
	}
}

func TestRunSeedsEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	s := setupStores(t)
	d, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	res, err := Run(ctx, s, d)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Projects != 9 || res.Skills != 30 || res.Repositories != 2 {
		t.Fatalf("result = %+v", res)
	}

	groups, err := s.Skills.Grouped(ctx)
	if err != nil {
		t.Fatalf("Grouped: %v", err)
	}
	if len(groups) != len(skills.Categories) {
		t.Errorf("groups = %d, want %d", len(groups), len(skills.Categories))
	}

	list, err := s.Repositories.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, r := range list {
		if r.ProjectID == nil {
			t.Errorf("repository %q has no project", r.Name)
		}
		for _, f := range r.Files {
			if f.Lines == nil || *f.Lines == 0 {
				t.Errorf("%s: lines not filled", f.FilePath)
			}
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := setupStores(t)
	d, _ := Default()

	if _, err := Run(ctx, s, d); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	res, err := Run(ctx, s, d)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if res != (Result{}) {
		t.Errorf("second run created %+v, want nothing", res)
	}
	n, _ := s.Projects.Count(ctx)
	if n != 9 {
		t.Errorf("projects = %d, want 9", n)
	}
}

func TestRunSkipsRepositoryWithUnknownProject(t *testing.T) {
	ctx := context.Background()
	s := setupStores(t)
	d := &Data{
		Repositories: []Repository{
			{Repository: repositories.Repository{Name: "orphan"}, Project: "Missing"},
			{Repository: repositories.Repository{Name: "standalone"}},
		},
	}

	res, err := Run(ctx, s, d)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Repositories != 1 {
		t.Errorf("repositories = %d, want 1", res.Repositories)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yml")
	body := "skills:\n  - {name: Go, category: PROGRAMMING_DATABASES, level: 80}\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.Skills) != 1 || d.Skills[0].Level != 80 {
		t.Errorf("skills = %+v", d.Skills)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}
