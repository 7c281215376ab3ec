package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/PierrickDossin/portfolio/internal/config"
	"github.com/PierrickDossin/portfolio/internal/contact"
	"github.com/PierrickDossin/portfolio/internal/db"
	"github.com/PierrickDossin/portfolio/internal/notifications"
	"github.com/PierrickDossin/portfolio/internal/projects"
	"github.com/PierrickDossin/portfolio/internal/repositories"
	"github.com/PierrickDossin/portfolio/internal/seed"
	"github.com/PierrickDossin/portfolio/internal/server"
	"github.com/PierrickDossin/portfolio/internal/site"
	"github.com/PierrickDossin/portfolio/internal/skills"
)

var (
	serverPort int
	serverSeed bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the portfolio website and REST API",
	Long:  `Starts the HTTP server hosting the portfolio pages, the code viewer and the /api endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}

		database, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:           cfg.Port,
			AllowedOrigins: cfg.AllowedOrigins,
			AllowAll:       cfg.AllowAllOrigins,
		}, database)

		hub := contact.NewHub()
		stores, err := registerAllRoutes(srv, cfg, database, hub)
		if err != nil {
			return err
		}

		if len(cfg.NotifyWebhooks) > 0 {
			stopNotify := notifications.NewDispatcher(cfg.NotifyWebhooks).Watch(hub)
			defer stopNotify()
			fmt.Fprintf(os.Stderr, "  Notifying %d webhook(s) of new contact messages\n", len(cfg.NotifyWebhooks))
		}

		if serverSeed {
			data, err := seed.Default()
			if err != nil {
				return err
			}
			res, err := seed.Run(cmd.Context(), stores, data)
			if err != nil {
				return fmt.Errorf("seeding database: %w", err)
			}
			if res != (seed.Result{}) {
				fmt.Fprintf(os.Stderr, "Seeded %d projects, %d skills, %d repositories\n", res.Projects, res.Skills, res.Repositories)
			}
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "portfolio server v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())

		return srv.Start()
	},
}

// registerAllRoutes wires the API and site routes onto the server and
// returns the stores used by seeding.
func registerAllRoutes(srv *server.Server, cfg *config.Config, database *db.DB, hub *contact.Hub) (seed.Stores, error) {
	r := srv.Router()

	projectStore := projects.NewStore(database)
	projects.RegisterRoutes(r, projectStore)

	skillStore := skills.NewStore(database)
	skills.RegisterRoutes(r, skillStore)

	contactStore := contact.NewStore(database, hub)
	contact.RegisterRoutes(r, contactStore, hub)

	cache, err := repositories.NewTreeCache(cfg.TreeCacheSize)
	if err != nil {
		return seed.Stores{}, err
	}
	repoStore := repositories.NewStore(database)
	repositories.RegisterRoutes(r, repoStore, cache)

	pages, err := site.New(site.Config{
		Title:        cfg.SiteTitle,
		Profile:      cfg.Profile,
		CopyFeedback: cfg.CopyFeedback(),
	}, site.Stores{
		Projects:     projectStore,
		Skills:       skillStore,
		Contact:      contactStore,
		Repositories: repoStore,
	})
	if err != nil {
		return seed.Stores{}, err
	}
	pages.RegisterRoutes(r)

	return seed.Stores{Projects: projectStore, Skills: skillStore, Repositories: repoStore}, nil
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	serverCmd.Flags().BoolVar(&serverSeed, "seed", true, "Seed empty tables with the sample content on start")
	rootCmd.AddCommand(serverCmd)
}
