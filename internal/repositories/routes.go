package repositories

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/PierrickDossin/portfolio/internal/codeview"
)

// RegisterRoutes mounts the code repository API routes.
func RegisterRoutes(r chi.Router, store *Store, cache *TreeCache) {
	r.Route("/api/repositories", func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Post("/", handleCreate(store))
		r.Get("/project/{projectId}", handleByProject(store))
		r.Get("/{id}", handleGetByID(store))
		r.Put("/{id}", handleUpdate(store, cache))
		r.Delete("/{id}", handleDelete(store, cache))
		r.Get("/{id}/tree", handleTree(store, cache))
		r.Get("/{id}/download", handleDownload(store))
	})
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context())
		writeList(w, list, err)
	}
}

func handleByProject(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := strconv.ParseInt(chi.URLParam(r, "projectId"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid project id")
			return
		}
		list, err := store.ByProject(r.Context(), projectID)
		writeList(w, list, err)
	}
}

func handleGetByID(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo, ok := loadRepository(w, r, store)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, repo)
	}
}

func handleCreate(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var repo Repository
		if err := json.NewDecoder(r.Body).Decode(&repo); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := repo.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		created, err := store.Create(r.Context(), repo)
		if errors.Is(err, ErrProjectNotFound) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func handleUpdate(store *Store, cache *TreeCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		var repo Repository
		if err := json.NewDecoder(r.Body).Decode(&repo); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := repo.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		updated, err := store.Update(r.Context(), id, repo)
		switch {
		case errors.Is(err, ErrNotFound):
			writeError(w, http.StatusNotFound, "not found")
			return
		case errors.Is(err, ErrProjectNotFound):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		cache.Invalidate(id)
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleDelete(store *Store, cache *TreeCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		err := store.Delete(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		cache.Invalidate(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleTree(store *Store, cache *TreeCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo, ok := loadRepository(w, r, store)
		if !ok {
			return
		}
		withContent := r.URL.Query().Get("content") == "true"
		writeJSON(w, http.StatusOK, cache.Tree(repo).ToJSON(withContent))
	}
}

// handleDownload serves one file of the repository as an attachment. The
// path query selects the file; without it the default selection is used.
func handleDownload(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo, ok := loadRepository(w, r, store)
		if !ok {
			return
		}
		viewer := codeview.NewViewer(repo.Files)
		if path := r.URL.Query().Get("path"); path != "" && !viewer.SelectPath(path) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}

		err := codeview.NewPresenter(viewer, nil, 0).ServeDownload(w)
		if errors.Is(err, codeview.ErrNoSelection) {
			writeError(w, http.StatusNotFound, "repository has no files")
			return
		}
		if err != nil {
			log.Printf("repositories: download %d: %v", repo.ID, err)
		}
	}
}

func loadRepository(w http.ResponseWriter, r *http.Request, store *Store) (*Repository, bool) {
	id, ok := parseID(w, r)
	if !ok {
		return nil, false
	}
	repo, err := store.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if repo == nil {
		writeError(w, http.StatusNotFound, "not found")
		return nil, false
	}
	return repo, true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func writeList(w http.ResponseWriter, list []Repository, err error) {
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []Repository{}
	}
	writeJSON(w, http.StatusOK, list)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
