// Package amrreport renders a self contained HTML page describing one
// conversion: the equations, their MathML, the model tables and the drawing.
package amrreport

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma"
	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/quick"
	"github.com/alecthomas/chroma/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHtml "github.com/yuin/goldmark/renderer/html"

	"oss.terrastruct.com/amrviz/amrgraph"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		goldmarkHtml.WithUnsafe(),
		goldmarkHtml.WithXHTML(),
	),
)

type Report struct {
	Title string
	// Equations are the LaTeX sources and MathML their conversions, index for
	// index. Either may be empty.
	Equations []string
	MathML    []string
	Graph     *amrgraph.Graph
	Layout    string
	// SVG is the rendered drawing of Graph.
	SVG []byte
}

// Markdown returns the report body as GitHub flavored markdown with raw HTML
// for the math and the drawing.
func Markdown(r *Report) (string, error) {
	sb := &strings.Builder{}
	title := r.Title
	if title == "" {
		title = "Model"
	}
	fmt.Fprintf(sb, "# %s\n\n", html.EscapeString(title))

	n := len(r.Equations)
	if len(r.MathML) > n {
		n = len(r.MathML)
	}
	if n > 0 {
		sb.WriteString("## Equations\n\n")
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(sb, "### Equation %d\n\n", i+1)
		if i < len(r.Equations) {
			f := fence(r.Equations[i])
			fmt.Fprintf(sb, "%slatex\n%s\n%s\n\n", f, r.Equations[i], f)
		}
		if i < len(r.MathML) {
			fmt.Fprintf(sb, "<div class=\"equation\">\n%s\n</div>\n\n", r.MathML[i])
			code, err := highlightHTML(r.MathML[i], "xml")
			if err != nil {
				return "", err
			}
			sb.WriteString(code)
			sb.WriteString("\n\n")
		}
	}

	if r.Graph != nil {
		writeTables(sb, r.Graph)
		fmt.Fprintf(sb, "Fingerprint: `%s`\n\n", r.Graph.Fingerprint())
	}

	if len(r.SVG) > 0 {
		sb.WriteString("## Graph\n\n")
		if r.Layout != "" {
			fmt.Fprintf(sb, "Layout: %s\n\n", html.EscapeString(r.Layout))
		}
		fmt.Fprintf(sb, "<img alt=\"%s\" src=\"data:image/svg+xml;base64,%s\"/>\n",
			html.EscapeString(title), base64.StdEncoding.EncodeToString(r.SVG))
	}
	return sb.String(), nil
}

func writeTables(sb *strings.Builder, g *amrgraph.Graph) {
	sb.WriteString("## Nodes\n\n| id | type |\n| --- | --- |\n")
	for _, n := range g.Nodes() {
		fmt.Fprintf(sb, "| %s | %s |\n", cell(n.ID), n.Kind)
	}
	sb.WriteString("\n## Edges\n\n| id | source | target | type |\n| --- | --- | --- | --- |\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(sb, "| %d | %s | %s | %s |\n", e.ID, cell(e.Source), cell(e.Target), e.Kind)
	}
	sb.WriteString("\n")
}

// cell escapes s for a table cell. Ids are never markup.
func cell(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "|", `\|`)
}

// fence returns a code fence longer than any run of backticks in src.
func fence(src string) string {
	longest, run := 0, 0
	for _, r := range src {
		if r != '`' {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60em; margin: 2em auto; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.2em 0.6em; }
.equation { font-size: 1.4em; margin: 0.5em 0; }
img { max-width: 100%%; }
</style>
</head>
<body>
%s</body>
</html>
`

// Render returns the report as an HTML page.
func Render(r *Report) ([]byte, error) {
	md, err := Markdown(r)
	if err != nil {
		return nil, err
	}
	body := &bytes.Buffer{}
	if err := markdownRenderer.Convert([]byte(md), body); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	title := r.Title
	if title == "" {
		title = "Model"
	}
	return []byte(fmt.Sprintf(page, html.EscapeString(title), body.String())), nil
}

func highlightHTML(src, lexer string) (string, error) {
	l := lexers.Get(lexer)
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)
	it, err := l.Tokenise(nil, src)
	if err != nil {
		return "", err
	}
	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}
	buf := &bytes.Buffer{}
	err = chromahtml.New(chromahtml.WithClasses(false)).Format(buf, style, it)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Highlight writes src to w colored for a 256 color terminal.
func Highlight(w io.Writer, src, lexer string) error {
	return quick.Highlight(w, src, lexer, "terminal256", "monokai")
}
