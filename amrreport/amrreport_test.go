package amrreport_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/amrviz/amrgraph"
	"oss.terrastruct.com/amrviz/amrreport"
	"oss.terrastruct.com/amrviz/amrtex"
	"oss.terrastruct.com/amrviz/lib/log"
)

func TestRender(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	eqs := []string{`\frac{d S}{d t} = -\beta S I`, `\frac{d I}{d t} = \beta S I`}
	mml, err := amrtex.ConvertAll(eqs)
	assert.Nil(t, err)

	g, err := amrgraph.New(ctx,
		[]amrgraph.Node{{ID: "S", Kind: amrgraph.KindState}, {ID: "I", Kind: amrgraph.KindState}, {ID: "a|b", Kind: amrgraph.KindTransition}},
		[]amrgraph.Edge{{ID: 0, Source: "S", Target: "a|b", Kind: amrgraph.KindInput}, {ID: 1, Source: "a|b", Target: "I", Kind: amrgraph.KindOutput}},
	)
	assert.Nil(t, err)

	b, err := amrreport.Render(&amrreport.Report{
		Title:     "SIR <model>",
		Equations: eqs,
		MathML:    mml,
		Graph:     g,
		Layout:    "shell",
		SVG:       []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`),
	})
	assert.Nil(t, err)
	out := string(b)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>SIR &lt;model&gt;</title>")
	assert.Contains(t, out, `<div class="equation">`)
	assert.Contains(t, out, mml[0])
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>a|b</td>")
	assert.Contains(t, out, g.Fingerprint())
	assert.Contains(t, out, "data:image/svg+xml;base64,")
	assert.Equal(t, 2, strings.Count(out, "<h3>Equation"))
}

func TestRenderEscapes(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	g, err := amrgraph.New(ctx,
		[]amrgraph.Node{{ID: "<img src=x onerror=alert(1)>", Kind: amrgraph.KindState}},
		nil,
	)
	assert.Nil(t, err)

	r := &amrreport.Report{
		Equations: []string{"x ``` <b>y</b>"},
		Graph:     g,
	}
	md, err := amrreport.Markdown(r)
	assert.Nil(t, err)
	assert.Contains(t, md, "````latex\nx ``` <b>y</b>\n````\n")

	b, err := amrreport.Render(r)
	assert.Nil(t, err)
	out := string(b)
	assert.NotContains(t, out, "<b>y</b>")
	assert.Contains(t, out, "&lt;b&gt;y&lt;/b&gt;")
	assert.NotContains(t, out, "<img src=x")
	assert.Contains(t, out, "<td>&lt;img src=x onerror=alert(1)&gt;</td>")
}

func TestMarkdownEmpty(t *testing.T) {
	t.Parallel()

	md, err := amrreport.Markdown(&amrreport.Report{})
	assert.Nil(t, err)
	assert.Equal(t, "# Model\n\n", md)
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	err := amrreport.Highlight(buf, `{"model": {"states": []}}`, "json")
	assert.Nil(t, err)
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "states")
}
