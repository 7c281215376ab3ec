package codeview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainText is the grammar used when nothing better is known.
const PlainText = "plaintext"

// Grammar resolves the highlighting grammar for file. The free-form Language
// tag wins when a lexer knows it; otherwise the file name is matched, and
// anything unrecognized falls back to PlainText.
func Grammar(file CodeFile) string {
	if lang := strings.TrimSpace(file.Language); lang != "" {
		if l := lexers.Get(lang); l != nil {
			return lexerName(l)
		}
	}
	if l := lexers.Match(file.FileName); l != nil {
		return lexerName(l)
	}
	return PlainText
}

func lexerName(l chroma.Lexer) string {
	cfg := l.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}

// LineCount returns file.Lines when known, otherwise counts content lines.
func LineCount(file CodeFile) int {
	if file.Lines != nil {
		return *file.Lines
	}
	return CountLines(file.Content)
}

// CountLines counts lines the way editors number them; a trailing newline
// does not start a new line.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
