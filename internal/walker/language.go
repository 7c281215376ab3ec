package walker

import (
	"path/filepath"
	"strings"
)

// extensionToLanguage maps file extensions to highlighter language tags.
var extensionToLanguage = map[string]string{
	".go":       "go",
	".py":       "python",
	".pyi":      "python",
	".ts":       "typescript",
	".tsx":      "tsx",
	".mts":      "typescript",
	".js":       "javascript",
	".jsx":      "jsx",
	".mjs":      "javascript",
	".cjs":      "javascript",
	".java":     "java",
	".rs":       "rust",
	".c":        "c",
	".h":        "c",
	".cpp":      "cpp",
	".cc":       "cpp",
	".cxx":      "cpp",
	".hpp":      "cpp",
	".hxx":      "cpp",
	".cs":       "csharp",
	".rb":       "ruby",
	".php":      "php",
	".swift":    "swift",
	".kt":       "kotlin",
	".kts":      "kotlin",
	".scala":    "scala",
	".sh":       "bash",
	".bash":     "bash",
	".zsh":      "bash",
	".sql":      "sql",
	".html":     "html",
	".htm":      "html",
	".css":      "css",
	".scss":     "scss",
	".sass":     "sass",
	".less":     "less",
	".yaml":     "yaml",
	".yml":      "yaml",
	".json":     "json",
	".toml":     "toml",
	".tf":       "terraform",
	".tfvars":   "terraform",
	".md":       "markdown",
	".markdown": "markdown",
	".proto":    "protobuf",
	".lua":      "lua",
	".r":        "r",
	".dart":     "dart",
	".ex":       "elixir",
	".exs":      "elixir",
	".hs":       "haskell",
	".vue":      "vue",
	".svelte":   "svelte",
	".ipynb":    "json",
}

// filenameToLanguage maps specific filenames to language tags.
var filenameToLanguage = map[string]string{
	"Dockerfile":          "docker",
	"Makefile":            "makefile",
	"Jenkinsfile":         "groovy",
	"Gemfile":             "ruby",
	"docker-compose.yml":  "yaml",
	"docker-compose.yaml": "yaml",
	"requirements.txt":    "text",
}

// DetectLanguage returns the highlighter language tag for a filename based
// on its exact name or extension. Unrecognized files get "text".
func DetectLanguage(filename string) string {
	base := filepath.Base(filename)
	if lang, ok := filenameToLanguage[base]; ok {
		return lang
	}
	ext := strings.ToLower(filepath.Ext(base))
	if lang, ok := extensionToLanguage[ext]; ok {
		return lang
	}
	return "text"
}
