package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/Paintersrp/nt/internal/constants"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
{{.Style}}
</style>
</head>
<body>
<header id="title-block-header">
<h1 class="title">{{.Title}}</h1>
</header>
{{- if .TOC}}
<nav id="TOC" role="doc-toc">
<ul>
{{- range .TOC}}
<li class="toc-h{{.Level}}" style="margin-left: {{.Indent}}em"><a href="#{{.ID}}">{{.Text}}</a></li>
{{- end}}
</ul>
</nav>
{{- end}}
{{.Body}}
</body>
</html>
`))

type tocEntry struct {
	Level  int
	Indent int
	ID     string
	Text   string
}

// Goldmark renders in process, mirroring the pandoc output: a titled page with
// a table of contents, the stylesheet inlined and note links pointed at their
// rendered documents.
type Goldmark struct {
	md    goldmark.Markdown
	style string
}

func NewGoldmark() (*Goldmark, error) {
	style, err := embeddedAssets.ReadFile("assets/" + stylesheetName)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	return &Goldmark{md: md, style: string(style)}, nil
}

func (g *Goldmark) Render(_ context.Context, inputPath, outputPath string) error {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	var out bytes.Buffer
	if err := g.render(&out, Title(inputPath), source); err != nil {
		return fmt.Errorf("render %s: %w", inputPath, err)
	}

	return os.WriteFile(outputPath, out.Bytes(), 0o644)
}

func (g *Goldmark) render(out *bytes.Buffer, title string, source []byte) error {
	document := g.md.Parser().Parse(text.NewReader(source))

	var toc []tocEntry
	minLevel := 0
	err := ast.Walk(document, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			id := ""
			if value, ok := node.AttributeString("id"); ok {
				if b, ok := value.([]byte); ok {
					id = string(b)
				}
			}
			toc = append(toc, tocEntry{
				Level: node.Level,
				ID:    id,
				Text:  string(node.Text(source)),
			})
			if minLevel == 0 || node.Level < minLevel {
				minLevel = node.Level
			}
		case *ast.Link:
			node.Destination = []byte(rewriteLink(string(node.Destination)))
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return err
	}

	for i := range toc {
		toc[i].Indent = toc[i].Level - minLevel
	}

	var body bytes.Buffer
	if err := g.md.Renderer().Render(&body, source, document); err != nil {
		return err
	}

	return page.Execute(out, struct {
		Title string
		Style template.CSS
		TOC   []tocEntry
		Body  template.HTML
	}{
		Title: title,
		Style: template.CSS(g.style),
		TOC:   toc,
		Body:  template.HTML(body.String()),
	})
}

// rewriteLink points relative links to notes at their rendered documents.
func rewriteLink(dest string) string {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return dest
	}

	path, fragment, hasFragment := strings.Cut(dest, "#")
	if !strings.HasSuffix(path, constants.NoteExt) {
		return dest
	}

	path = strings.TrimSuffix(path, constants.NoteExt) + constants.RenderedExt
	if hasFragment {
		return path + "#" + fragment
	}
	return path
}
