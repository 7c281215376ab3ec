package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/PierrickDossin/portfolio/internal/codeview"
	"github.com/PierrickDossin/portfolio/internal/progress"
	"github.com/PierrickDossin/portfolio/internal/repositories"
	"github.com/PierrickDossin/portfolio/internal/walker"
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Manage code repository snapshots",
	Long:  `Import local directories as code repository snapshots, list them, and browse, copy or download their files.`,
}

var repoImportCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import a local directory as a repository snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepoImport,
}

var repoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all repository snapshots",
	RunE:  runRepoList,
}

var repoTreeCmd = &cobra.Command{
	Use:   "tree <id>",
	Short: "Print the file tree of a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepoTree,
}

var repoCopyCmd = &cobra.Command{
	Use:   "copy <id> [path]",
	Short: "Copy a file to the system clipboard (defaults to the first file)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runRepoCopy,
}

var repoDownloadCmd = &cobra.Command{
	Use:   "download <id> [path]",
	Short: "Save a file to disk (defaults to the first file)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runRepoDownload,
}

var repoRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a repository snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepoRemove,
}

func init() {
	repoImportCmd.Flags().String("name", "", "Repository name (defaults to the directory name)")
	repoImportCmd.Flags().String("description", "", "Repository description")
	repoImportCmd.Flags().Int64("project", 0, "Id of the project the repository belongs to")
	repoImportCmd.Flags().String("github", "", "GitHub URL of the repository")
	repoImportCmd.Flags().StringSlice("include", nil, "Extra include globs (added to the config)")
	repoImportCmd.Flags().StringSlice("exclude", nil, "Extra exclude globs (added to the config)")

	repoTreeCmd.Flags().StringSlice("open", nil, "Folders to expand")
	repoTreeCmd.Flags().Bool("all", false, "Expand every folder")
	repoTreeCmd.Flags().String("file", "", "File to mark as selected")

	repoDownloadCmd.Flags().String("out", ".", "Directory to write the file into")

	repoCmd.AddCommand(repoImportCmd)
	repoCmd.AddCommand(repoListCmd)
	repoCmd.AddCommand(repoTreeCmd)
	repoCmd.AddCommand(repoCopyCmd)
	repoCmd.AddCommand(repoDownloadCmd)
	repoCmd.AddCommand(repoRemoveCmd)
	rootCmd.AddCommand(repoCmd)
}

func runRepoImport(cmd *cobra.Command, args []string) error {
	dir := args[0]
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	projectID, _ := cmd.Flags().GetInt64("project")
	githubURL, _ := cmd.Flags().GetString("github")
	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		name = filepath.Base(abs)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reporter := progress.NewReporter("Importing files")
	files, err := walker.Snapshot(walker.WalkerConfig{
		RootDir:     dir,
		Include:     append(append([]string{}, cfg.Import.Include...), include...),
		Exclude:     append(append([]string{}, cfg.Import.Exclude...), exclude...),
		MaxFileSize: cfg.Import.MaxFileSize,
	}, progress.Func(reporter))
	reporter.Finish()
	if err != nil {
		return fmt.Errorf("walking %s: %w", dir, err)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no files matched in %s; the repository will be empty\n", dir)
	}

	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	repo := repositories.Repository{
		Name:        name,
		Description: description,
		Files:       files,
		GitHubURL:   githubURL,
	}
	if projectID > 0 {
		repo.ProjectID = &projectID
	}
	if err := repo.Validate(); err != nil {
		return err
	}

	created, err := repositories.NewStore(database).Create(cmd.Context(), repo)
	if errors.Is(err, repositories.ErrProjectNotFound) {
		return fmt.Errorf("project %d does not exist", projectID)
	}
	if err != nil {
		return fmt.Errorf("storing repository: %w", err)
	}

	fmt.Printf("Repository %q imported successfully\n", created.Name)
	fmt.Printf("  ID: %d\n", created.ID)
	fmt.Printf("  Files: %d\n", len(created.Files))
	return nil
}

func runRepoList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	list, err := repositories.NewStore(database).Summaries(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing repositories: %w", err)
	}
	if len(list) == 0 {
		fmt.Println("No repositories yet. Use `portfolio repo import <dir>` to add one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPROJECT\tFILES\tUPDATED")
	for _, r := range list {
		project := "-"
		if r.ProjectID != nil {
			project = strconv.FormatInt(*r.ProjectID, 10)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", r.ID, r.Name, project, r.FileCount, r.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runRepoTree(cmd *cobra.Command, args []string) error {
	open, _ := cmd.Flags().GetStringSlice("open")
	all, _ := cmd.Flags().GetBool("all")
	file, _ := cmd.Flags().GetString("file")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	repo, viewer, err := openViewer(cmd.Context(), repositories.NewStore(database), args[0], file)
	if err != nil {
		return err
	}
	if viewer.Empty() {
		fmt.Printf("%s: No code files available\n", repo.Name)
		return nil
	}
	for _, p := range open {
		viewer.Expand(p)
	}
	if all {
		viewer.Tree().Walk(func(n *codeview.Node, _ int) bool {
			if n.Kind == codeview.KindFolder {
				viewer.Expand(n.Path)
			}
			return true
		})
	}

	fmt.Printf("%s (%d files)\n", repo.Name, viewer.Tree().LeafCount())
	printRows(os.Stdout, viewer.Rows())
	return nil
}

// printRows writes one line per visible row, folders with an expansion
// marker and the selected file prefixed by an arrow.
func printRows(w io.Writer, rows []codeview.Row) {
	for _, r := range rows {
		indent := strings.Repeat("  ", r.Depth)
		switch {
		case r.Node.Kind == codeview.KindFolder && r.Expanded:
			fmt.Fprintf(w, "  %sv %s/\n", indent, r.Node.Name)
		case r.Node.Kind == codeview.KindFolder:
			fmt.Fprintf(w, "  %s> %s/\n", indent, r.Node.Name)
		case r.Selected:
			fmt.Fprintf(w, "* %s  %s\n", indent, r.Node.Name)
		default:
			fmt.Fprintf(w, "  %s  %s\n", indent, r.Node.Name)
		}
	}
}

func runRepoCopy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	_, viewer, err := openViewer(cmd.Context(), repositories.NewStore(database), args[0], optionalArg(args, 1))
	if err != nil {
		return err
	}
	selected, ok := viewer.Selected()
	if !ok {
		return errors.New("repository has no files to copy")
	}

	presenter := codeview.NewPresenter(viewer, codeview.SystemClipboard{}, cfg.CopyFeedback())
	if err := presenter.CopyToClipboard(); err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}
	fmt.Printf("Copied %s (%d lines) to the clipboard\n", selected.FilePath, codeview.LineCount(selected))
	return nil
}

func runRepoDownload(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	_, viewer, err := openViewer(cmd.Context(), repositories.NewStore(database), args[0], optionalArg(args, 1))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}

	dest, err := codeview.NewPresenter(viewer, nil, 0).Download(out)
	if errors.Is(err, codeview.ErrNoSelection) {
		return errors.New("repository has no files to download")
	}
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", dest)
	return nil
}

func runRepoRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid repository id %q", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	err = repositories.NewStore(database).Delete(cmd.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("repository %d not found", id)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Repository %d removed\n", id)
	return nil
}

func optionalArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}
