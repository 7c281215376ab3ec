package projects

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/PierrickDossin/portfolio/internal/db"
)

func setupTestStore(t *testing.T) (*Store, *db.DB) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database), database
}

func sampleProject(title string, order int) Project {
	return Project{
		Title:        title,
		Description:  "Streams pitstop data into a warehouse.",
		Category:     CategoryDataEngineering,
		Tags:         []string{"Python", "Airflow"},
		DisplayOrder: order,
	}
}

func TestCreateAndGet(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, sampleProject("F1 Pipeline", 1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if created.GradientFrom != DefaultGradientFrom || created.GradientTo != DefaultGradientTo {
		t.Errorf("gradient defaults not applied: %s -> %s", created.GradientFrom, created.GradientTo)
	}

	fetched, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected project, got nil")
	}
	if fetched.Title != "F1 Pipeline" {
		t.Errorf("title = %q", fetched.Title)
	}
	if strings.Join(fetched.Tags, ",") != "Python,Airflow" {
		t.Errorf("tags = %v, want stored order", fetched.Tags)
	}
	if fetched.CreatedAt.IsZero() || time.Since(fetched.CreatedAt) > time.Minute {
		t.Errorf("unexpected createdAt %v", fetched.CreatedAt)
	}
}

func TestGetMissing(t *testing.T) {
	store, _ := setupTestStore(t)
	p, err := store.GetByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for missing project, got %+v", p)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Project)
		wantErr bool
	}{
		{"valid", func(p *Project) {}, false},
		{"missing title", func(p *Project) { p.Title = "  " }, true},
		{"missing description", func(p *Project) { p.Description = "" }, true},
		{"description too long", func(p *Project) { p.Description = strings.Repeat("é", MaxDescriptionLength+1) }, true},
		{"description at limit", func(p *Project) { p.Description = strings.Repeat("é", MaxDescriptionLength) }, false},
		{"missing category", func(p *Project) { p.Category = "" }, true},
		{"unknown category", func(p *Project) { p.Category = "GAMING" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleProject("x", 0)
			tt.mutate(&p)
			if err := p.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestListingOrderAndFilters(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	third := sampleProject("Third", 3)
	first := sampleProject("First", 1)
	first.IsFeatured = true
	second := sampleProject("Second", 2)
	second.Category = CategoryWebDevelopment
	second.Tags = []string{"React"}

	for _, p := range []Project{third, first, second} {
		if _, err := store.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, _ := store.List(ctx)
	if len(all) != 3 || all[0].Title != "First" || all[2].Title != "Third" {
		t.Errorf("List order wrong: %+v", titles(all))
	}

	featured, _ := store.Featured(ctx)
	if len(featured) != 1 || featured[0].Title != "First" {
		t.Errorf("Featured = %v", titles(featured))
	}

	web, _ := store.ByCategory(ctx, CategoryWebDevelopment)
	if len(web) != 1 || web[0].Title != "Second" {
		t.Errorf("ByCategory = %v", titles(web))
	}

	tagged, _ := store.ByTag(ctx, "python")
	if len(tagged) != 2 || tagged[0].Title != "First" {
		t.Errorf("ByTag(python) = %v", titles(tagged))
	}

	n, err := store.Count(ctx)
	if err != nil || n != 3 {
		t.Errorf("Count = %d, %v", n, err)
	}
}

func TestUpdate(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	created, _ := store.Create(ctx, sampleProject("Before", 1))
	changed := sampleProject("After", 5)
	changed.Tags = []string{"Go"}
	changed.GradientFrom = "blue-600"

	updated, err := store.Update(ctx, created.ID, changed)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("createdAt must not change on update")
	}

	fetched, _ := store.GetByID(ctx, created.ID)
	if fetched.Title != "After" || fetched.DisplayOrder != 5 || fetched.GradientFrom != "blue-600" {
		t.Errorf("update not persisted: %+v", fetched)
	}
	if strings.Join(fetched.Tags, ",") != "Go" {
		t.Errorf("tags = %v, want [Go]", fetched.Tags)
	}

	if _, err := store.Update(ctx, 999, changed); err != ErrNotFound {
		t.Errorf("Update missing: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteDetachesRepositories(t *testing.T) {
	store, database := setupTestStore(t)
	ctx := context.Background()

	created, _ := store.Create(ctx, sampleProject("Doomed", 1))
	_, err := database.Exec(
		`INSERT INTO code_repositories (name, project_id, created_at, updated_at) VALUES ('etl', ?, ?, ?)`,
		created.ID, time.Now().UTC(), time.Now().UTC())
	if err != nil {
		t.Fatalf("insert repository: %v", err)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var count int
	database.QueryRow(`SELECT COUNT(*) FROM code_repositories WHERE project_id IS NULL`).Scan(&count)
	if count != 1 {
		t.Errorf("expected repository to survive detached, got %d", count)
	}
	database.QueryRow(`SELECT COUNT(*) FROM project_tags`).Scan(&count)
	if count != 0 {
		t.Errorf("expected tags removed, got %d", count)
	}

	if err := store.Delete(ctx, created.ID); err != ErrNotFound {
		t.Errorf("second Delete: err = %v, want ErrNotFound", err)
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryDevOps.Label(); got != "DevOps" {
		t.Errorf("Label() = %q", got)
	}
	if got := Category("QUANTUM").Label(); got != "Other" {
		t.Errorf("unknown category label = %q, want Other", got)
	}
	if c, err := ParseCategory("machine_learning"); err != nil || c != CategoryMachineLearning {
		t.Errorf("ParseCategory = %q, %v", c, err)
	}
}

func TestRoutes(t *testing.T) {
	store, _ := setupTestStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store)

	body := `{"title":"API","description":"Made over HTTP","category":"WEB_DEVELOPMENT","tags":["Go"],"isFeatured":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, body = %s", w.Code, w.Body.String())
	}
	var created Project
	json.NewDecoder(w.Body).Decode(&created)
	if created.GradientTo != "pink-600" {
		t.Errorf("gradientTo = %q", created.GradientTo)
	}

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/projects", "", http.StatusOK},
		{http.MethodGet, "/api/projects/featured", "", http.StatusOK},
		{http.MethodGet, "/api/projects/category/WEB_DEVELOPMENT", "", http.StatusOK},
		{http.MethodGet, "/api/projects/category/NOPE", "", http.StatusBadRequest},
		{http.MethodGet, "/api/projects/tag/go", "", http.StatusOK},
		{http.MethodGet, "/api/projects/1", "", http.StatusOK},
		{http.MethodGet, "/api/projects/99", "", http.StatusNotFound},
		{http.MethodGet, "/api/projects/abc", "", http.StatusBadRequest},
		{http.MethodPost, "/api/projects", `{"title":"","description":"x","category":"OTHER"}`, http.StatusBadRequest},
		{http.MethodPost, "/api/projects", `{bad json`, http.StatusBadRequest},
		{http.MethodPut, "/api/projects/99", `{"title":"t","description":"d","category":"OTHER"}`, http.StatusNotFound},
		{http.MethodPut, "/api/projects/1", `{"title":"t","description":"d","category":"OTHER"}`, http.StatusOK},
		{http.MethodDelete, "/api/projects/1", "", http.StatusNoContent},
		{http.MethodDelete, "/api/projects/1", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("%s %s: status = %d, want %d (body %s)", tt.method, tt.path, w.Code, tt.want, w.Body.String())
		}
	}
}

func TestRoutesTagIsCaseInsensitive(t *testing.T) {
	store, _ := setupTestStore(t)
	store.Create(context.Background(), sampleProject("Tagged", 1))

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest(http.MethodGet, "/api/projects/tag/AIRFLOW", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var list []Project
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 project, got %d", len(list))
	}
}

func titles(list []Project) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.Title
	}
	return out
}
