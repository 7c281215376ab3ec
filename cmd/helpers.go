package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/PierrickDossin/portfolio/internal/codeview"
	"github.com/PierrickDossin/portfolio/internal/config"
	"github.com/PierrickDossin/portfolio/internal/db"
	"github.com/PierrickDossin/portfolio/internal/repositories"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `portfolio init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openDB opens the SQLite database configured by cfg.
func openDB(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Using database %s\n", database.Path())
	}
	return database, nil
}

// openViewer loads repository id and returns a viewer over its files. When
// path is non-empty that file is selected.
func openViewer(ctx context.Context, store *repositories.Store, rawID, path string) (*repositories.Repository, *codeview.Viewer, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid repository id %q", rawID)
	}
	repo, err := store.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("loading repository: %w", err)
	}
	if repo == nil {
		return nil, nil, fmt.Errorf("repository %d not found", id)
	}
	viewer := codeview.NewViewer(repo.Files)
	if path != "" && !viewer.SelectPath(path) {
		return nil, nil, fmt.Errorf("no file %q in repository %d", path, id)
	}
	return repo, viewer, nil
}
