package site

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/PierrickDossin/portfolio/internal/codeview"
)

// newMarkdown builds the converter used for project descriptions and code
// files. Raw HTML in the source is dropped.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithLineNumbers(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

// renderMarkdown converts src to HTML.
func renderMarkdown(md goldmark.Markdown, src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// highlightFile renders file as a highlighted, line-numbered code block.
func highlightFile(md goldmark.Markdown, file codeview.CodeFile) (template.HTML, error) {
	return renderMarkdown(md, codeBlock(file))
}

// codeBlock wraps the file content in a fenced block tagged with its grammar.
func codeBlock(file codeview.CodeFile) string {
	f := fence(file.Content)
	var b strings.Builder
	b.WriteString(f)
	b.WriteString(codeview.Grammar(file))
	b.WriteByte('\n')
	b.WriteString(file.Content)
	if !strings.HasSuffix(file.Content, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(f)
	b.WriteByte('\n')
	return b.String()
}

// fence returns a backtick fence longer than any backtick run in content.
func fence(content string) string {
	longest, run := 0, 0
	for i := 0; i < len(content); i++ {
		if content[i] != '`' {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	n := 3
	if longest >= n {
		n = longest + 1
	}
	return strings.Repeat("`", n)
}
