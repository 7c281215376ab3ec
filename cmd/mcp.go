package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/PierrickDossin/portfolio/internal/mcp"
	"github.com/PierrickDossin/portfolio/internal/projects"
	"github.com/PierrickDossin/portfolio/internal/repositories"
	"github.com/PierrickDossin/portfolio/internal/skills"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio exposing the portfolio projects, skills and code repositories as read-only tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		cache, err := repositories.NewTreeCache(cfg.TreeCacheSize)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		// Stdout carries the protocol; notices go to stderr.
		fmt.Fprintf(os.Stderr, "portfolio MCP server started on stdio (db=%s)\n", database.Path())

		srv := mcpserver.NewServer(
			projects.NewStore(database),
			skills.NewStore(database),
			repositories.NewStore(database),
			cache,
		)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
