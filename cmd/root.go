package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/PierrickDossin/portfolio/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site with a built-in code viewer",
	Long: `Portfolio serves a personal portfolio website and its REST API: projects,
skills, contact messages and code repository snapshots browsable in a
file-tree code viewer. Repositories are imported from local directories.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; values may come from the real environment.
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
