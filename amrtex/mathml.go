// Package amrtex converts the LaTeX subset used for compartmental model equations
// into presentation MathML.
package amrtex

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"oss.terrastruct.com/xdefer"
)

const Namespace = "http://www.w3.org/1998/Math/MathML"

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Convert returns the MathML for a single LaTeX equation.
func Convert(latex string) (_ string, err error) {
	defer xdefer.Errorf(&err, "failed to convert %q", latex)

	if strings.TrimSpace(latex) == "" {
		return "", errorAt(0, "empty equation")
	}
	children, err := parse(latex)
	if err != nil {
		return "", err
	}

	sb := &strings.Builder{}
	sb.WriteString(`<math xmlns="` + Namespace + `" display="inline">`)
	writeNode(sb, container("mrow", children...))
	sb.WriteString("</math>")
	return sb.String(), nil
}

// ConvertAll converts every equation, preserving order. The first failure is
// returned with the index of the offending equation.
func ConvertAll(equations []string) ([]string, error) {
	if len(equations) == 0 {
		return nil, ErrNoEquations
	}
	out := make([]string, 0, len(equations))
	for i, eq := range equations {
		mml, err := Convert(eq)
		if err != nil {
			return nil, fmt.Errorf("equation %d: %w", i, err)
		}
		out = append(out, mml)
	}
	return out, nil
}

func writeNode(sb *strings.Builder, n *node) {
	sb.WriteByte('<')
	sb.WriteString(n.tag)
	for _, a := range n.attrs {
		fmt.Fprintf(sb, ` %s="%s"`, a[0], escapeText(a[1]))
	}
	if n.text == "" && len(n.children) == 0 && n.tag == "mspace" {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	sb.WriteString(escapeText(n.text))
	for _, c := range n.children {
		writeNode(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(n.tag)
	sb.WriteByte('>')
}

func escapeText(s string) string {
	return escaper.Replace(html.UnescapeString(s))
}
