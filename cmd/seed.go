package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PierrickDossin/portfolio/internal/projects"
	"github.com/PierrickDossin/portfolio/internal/repositories"
	"github.com/PierrickDossin/portfolio/internal/seed"
	"github.com/PierrickDossin/portfolio/internal/skills"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample projects, skills and repositories",
	Long:  `Seeds every empty table from a YAML file, or from the built-in sample content when --file is not given. Tables that already hold rows are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := seed.Load(seedFile)
		if err != nil {
			return err
		}

		database, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		res, err := seed.Run(cmd.Context(), seed.Stores{
			Projects:     projects.NewStore(database),
			Skills:       skills.NewStore(database),
			Repositories: repositories.NewStore(database),
		}, data)
		if err != nil {
			return err
		}
		if res == (seed.Result{}) {
			fmt.Println("Nothing to seed: all tables already hold data.")
			return nil
		}
		fmt.Printf("Seeded %d projects, %d skills, %d repositories\n", res.Projects, res.Skills, res.Repositories)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "Seed YAML file (defaults to the built-in sample content)")
	rootCmd.AddCommand(seedCmd)
}
