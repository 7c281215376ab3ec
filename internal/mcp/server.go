package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/PierrickDossin/portfolio/internal/projects"
	"github.com/PierrickDossin/portfolio/internal/repositories"
	"github.com/PierrickDossin/portfolio/internal/skills"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the portfolio content as tools.
type Server struct {
	projects *projects.Store
	skills   *skills.Store
	repos    *repositories.Store
	cache    *repositories.TreeCache
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server reading from the given stores. cache
// may be nil.
func NewServer(p *projects.Store, sk *skills.Store, repos *repositories.Store, cache *repositories.TreeCache) *Server {
	s := &Server{
		projects: p,
		skills:   sk,
		repos:    repos,
		cache:    cache,
	}

	s.mcp = server.NewMCPServer(
		"portfolio",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listProjectsTool, s.handleListProjects)
	s.mcp.AddTool(listSkillsTool, s.handleListSkills)
	s.mcp.AddTool(listRepositoriesTool, s.handleListRepositories)
	s.mcp.AddTool(getRepositoryTreeTool, s.handleGetRepositoryTree)
	s.mcp.AddTool(readRepositoryFileTool, s.handleReadRepositoryFile)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
