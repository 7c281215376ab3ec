package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listProjectsTool defines the list_projects MCP tool.
var listProjectsTool = mcp.NewTool("list_projects",
	mcp.WithDescription("List portfolio projects with their category, tags and links."),
	mcp.WithString("category",
		mcp.Description("Only return projects of this category"),
		mcp.Enum("DATA_ENGINEERING", "WEB_DEVELOPMENT", "MOBILE_DEVELOPMENT", "MACHINE_LEARNING", "DEVOPS", "OTHER"),
	),
	mcp.WithBoolean("featured_only",
		mcp.Description("Only return featured projects (default false)"),
	),
)

// listSkillsTool defines the list_skills MCP tool.
var listSkillsTool = mcp.NewTool("list_skills",
	mcp.WithDescription("List skills grouped by category with their proficiency level (0-100)."),
	mcp.WithString("category",
		mcp.Description("Only return skills of this category"),
		mcp.Enum("DATA_ENGINEERING", "CLOUD_INFRASTRUCTURE", "PROGRAMMING_DATABASES", "ANALYTICS_ML", "DEVELOPMENT_TOOLS", "WEB_DEVELOPMENT"),
	),
)

// listRepositoriesTool defines the list_repositories MCP tool.
var listRepositoriesTool = mcp.NewTool("list_repositories",
	mcp.WithDescription("List code repository snapshots with their ids and file counts."),
)

// getRepositoryTreeTool defines the get_repository_tree MCP tool.
var getRepositoryTreeTool = mcp.NewTool("get_repository_tree",
	mcp.WithDescription("Get the folder tree of a code repository snapshot, folders first."),
	mcp.WithNumber("repository_id",
		mcp.Required(),
		mcp.Description("Repository id as returned by list_repositories"),
	),
)

// readRepositoryFileTool defines the read_repository_file MCP tool.
var readRepositoryFileTool = mcp.NewTool("read_repository_file",
	mcp.WithDescription("Read one file of a code repository snapshot."),
	mcp.WithNumber("repository_id",
		mcp.Required(),
		mcp.Description("Repository id as returned by list_repositories"),
	),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("File path inside the repository, e.g. src/etl/pipeline.py"),
	),
)
