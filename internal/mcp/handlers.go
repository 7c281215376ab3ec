package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/PierrickDossin/portfolio/internal/codeview"
	"github.com/PierrickDossin/portfolio/internal/projects"
	"github.com/PierrickDossin/portfolio/internal/repositories"
	"github.com/PierrickDossin/portfolio/internal/skills"
)

// handleListProjects lists projects, optionally filtered.
func (s *Server) handleListProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var (
		list []projects.Project
		err  error
	)
	switch {
	case request.GetString("category", "") != "":
		c, perr := projects.ParseCategory(request.GetString("category", ""))
		if perr != nil {
			return mcp.NewToolResultError(perr.Error()), nil
		}
		list, err = s.projects.ByCategory(ctx, c)
		if request.GetBool("featured_only", false) {
			list = featuredOnly(list)
		}
	case request.GetBool("featured_only", false):
		list, err = s.projects.Featured(ctx)
	default:
		list, err = s.projects.List(ctx)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing projects failed: %v", err)), nil
	}
	if len(list) == 0 {
		return mcp.NewToolResultText("No projects found. Run `portfolio seed` to load the sample content."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d project(s):\n", len(list)))
	for _, p := range list {
		sb.WriteString(fmt.Sprintf("\n[%d] %s\n", p.ID, p.Title))
		sb.WriteString(fmt.Sprintf("Category: %s\n", p.Category.Label()))
		if len(p.Tags) > 0 {
			sb.WriteString(fmt.Sprintf("Tags: %s\n", strings.Join(p.Tags, ", ")))
		}
		if p.GitHubURL != "" {
			sb.WriteString(fmt.Sprintf("GitHub: %s\n", p.GitHubURL))
		}
		if p.LiveURL != "" {
			sb.WriteString(fmt.Sprintf("Live: %s\n", p.LiveURL))
		}
		sb.WriteString(p.Description)
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func featuredOnly(list []projects.Project) []projects.Project {
	out := list[:0:0]
	for _, p := range list {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out
}

// handleListSkills lists skills grouped by category.
func (s *Server) handleListSkills(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groups, err := s.skills.Grouped(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing skills failed: %v", err)), nil
	}
	if raw := request.GetString("category", ""); raw != "" {
		c, err := skills.ParseCategory(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var kept []skills.Group
		for _, g := range groups {
			if g.Category == c {
				kept = append(kept, g)
			}
		}
		groups = kept
	}
	if len(groups) == 0 {
		return mcp.NewToolResultText("No skills found."), nil
	}

	var sb strings.Builder
	for i, g := range groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(g.Title + ":\n")
		for _, sk := range g.Skills {
			sb.WriteString(fmt.Sprintf("- %s (%d%%)\n", sk.Name, sk.Level))
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleListRepositories lists repository summaries.
func (s *Server) handleListRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.repos.Summaries(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing repositories failed: %v", err)), nil
	}
	if len(list) == 0 {
		return mcp.NewToolResultText("No repositories found. Run `portfolio repo import` to add one."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d repositor(ies):\n", len(list)))
	for _, r := range list {
		sb.WriteString(fmt.Sprintf("[%d] %s (%d files)\n", r.ID, r.Name, r.FileCount))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetRepositoryTree renders the full folder tree of a repository.
func (s *Server) handleGetRepositoryTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo, errResult := s.loadRepository(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	tree := s.cache.Tree(repo)
	if tree.Empty() {
		return mcp.NewToolResultText(fmt.Sprintf("%s has no code files available.", repo.Name)), nil
	}
	return mcp.NewToolResultText(formatTree(repo.Name, tree)), nil
}

// formatTree prints every node of t, indented by depth, folders with a
// trailing slash and files with their language and line count.
func formatTree(name string, t *codeview.Tree) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%d files)\n", name, t.LeafCount()))
	t.Walk(func(n *codeview.Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth+1))
		if n.Kind == codeview.KindFolder {
			sb.WriteString(n.Name + "/\n")
			return true
		}
		sb.WriteString(fmt.Sprintf("%s (%s, %d lines)\n", n.Name, n.File.Language, codeview.LineCount(*n.File)))
		return false
	})
	return sb.String()
}

// handleReadRepositoryFile returns one file's content.
func (s *Server) handleReadRepositoryFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}
	repo, errResult := s.loadRepository(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	n, ok := s.cache.Tree(repo).File(path)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no file %q in repository %d", path, repo.ID)), nil
	}

	f := *n.File
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File: %s\n", f.FilePath))
	sb.WriteString(fmt.Sprintf("Language: %s\n", f.Language))
	sb.WriteString(fmt.Sprintf("Lines: %d\n\n", codeview.LineCount(f)))
	sb.WriteString(f.Content)
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) loadRepository(ctx context.Context, request mcp.CallToolRequest) (*repositories.Repository, *mcp.CallToolResult) {
	id, err := request.RequireInt("repository_id")
	if err != nil {
		return nil, mcp.NewToolResultError("missing required parameter: repository_id")
	}
	repo, err := s.repos.GetByID(ctx, int64(id))
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("loading repository failed: %v", err))
	}
	if repo == nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("repository %d not found", id))
	}
	return repo, nil
}
