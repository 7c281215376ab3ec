package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PierrickDossin/portfolio/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize portfolio configuration with an interactive wizard",
	Long:  `Runs an interactive wizard for the profile, port and CORS settings and writes a .portfolio.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		fmt.Printf("Start the site with `portfolio server` (port %d)\n", cfg.Port)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
