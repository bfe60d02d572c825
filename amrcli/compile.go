package amrcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"oss.terrastruct.com/xdefer"
	"oss.terrastruct.com/xjson"

	"oss.terrastruct.com/amrviz/amrclient"
	"oss.terrastruct.com/amrviz/amrexporter"
	"oss.terrastruct.com/amrviz/amrgraph"
	"oss.terrastruct.com/amrviz/amrmodel"
	"oss.terrastruct.com/amrviz/amrplugin"
	"oss.terrastruct.com/amrviz/amrrenderers/amrplot"
	"oss.terrastruct.com/amrviz/amrreport"
	"oss.terrastruct.com/amrviz/amrtex"
	"oss.terrastruct.com/amrviz/lib/log"
	"oss.terrastruct.com/amrviz/lib/xhttp"
	"oss.terrastruct.com/amrviz/lib/xmain"
)

type outputFormat string

const (
	PNG  outputFormat = "png"
	SVG  outputFormat = "svg"
	PDF  outputFormat = "pdf"
	DOT  outputFormat = "dot"
	D2   outputFormat = "d2"
	JSON outputFormat = "json"
	MML  outputFormat = "mml"
	HTML outputFormat = "html"
)

var outputFormats = []outputFormat{PNG, SVG, PDF, DOT, D2, JSON, MML, HTML}

// plotted reports whether the format is a drawing of the graph.
func (f outputFormat) plotted() bool {
	return f == PNG || f == SVG || f == PDF || f == HTML
}

// lexer returns the chroma lexer used to highlight the format on a terminal,
// "" when it is not text.
func (f outputFormat) lexer() string {
	switch f {
	case SVG, MML, HTML:
		return "xml"
	case JSON:
		return "json"
	case DOT:
		return "dot"
	}
	return ""
}

func getOutputFormat(outputPath string) (outputFormat, error) {
	if outputPath == "-" {
		return SVG, nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(outputPath), "."))
	for _, f := range outputFormats {
		if string(f) == ext {
			return f, nil
		}
	}
	var names []string
	for _, f := range outputFormats {
		names = append(names, "."+string(f))
	}
	return "", fmt.Errorf("unsupported output %q: expected one of %s", outputPath, strings.Join(names, ", "))
}

type compileOpts struct {
	client       *amrclient.Client
	plugin       amrplugin.Plugin
	layout       string
	format       amrmodel.Format
	outputFormat outputFormat
	render       *amrplot.RenderOpts
	tables       bool
	color        bool
	// preview renders the SVG even when the output is not a drawing.
	preview      bool
}

// input is either LaTeX equations to convert or a model document that
// skips the conversion.
type input struct {
	equations []string
	doc       *amrmodel.Document
}

func parseInput(inputPath string, b []byte, f amrmodel.Format) (*input, error) {
	if strings.EqualFold(filepath.Ext(inputPath), ".json") {
		trimmed := bytes.TrimSpace(b)
		if bytes.HasPrefix(trimmed, []byte("[")) {
			var eqs []string
			err := json.Unmarshal(trimmed, &eqs)
			if err != nil {
				return nil, fmt.Errorf("failed to decode equations: %w", err)
			}
			in := &input{}
			for _, eq := range eqs {
				if eq = stripDelims(eq); eq != "" {
					in.equations = append(in.equations, eq)
				}
			}
			return in, nil
		}
		doc, err := amrmodel.Parse(b, f)
		if err != nil {
			return nil, err
		}
		return &input{doc: doc}, nil
	}

	in := &input{}
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		if line = stripDelims(line); line != "" {
			in.equations = append(in.equations, line)
		}
	}
	return in, nil
}

var mathDelims = [][2]string{{"$$", "$$"}, {`\[`, `\]`}, {`\(`, `\)`}, {"$", "$"}}

// stripDelims removes the math mode delimiters wrapping an equation.
func stripDelims(eq string) string {
	eq = strings.TrimSpace(eq)
	for _, d := range mathDelims {
		if len(eq) >= len(d[0])+len(d[1]) && strings.HasPrefix(eq, d[0]) && strings.HasSuffix(eq, d[1]) {
			return strings.TrimSpace(eq[len(d[0]) : len(eq)-len(d[1])])
		}
	}
	return eq
}

// compile runs inputPath through the pipeline and writes outputPath.
// It returns the SVG drawing of the model when one was rendered and whether
// outputPath was written to a file.
func compile(ctx context.Context, ms *xmain.State, co *compileOpts, inputPath, outputPath string) (svg []byte, written bool, err error) {
	defer xdefer.Errorf(&err, "failed to compile %s", inputPath)

	ctx, cancel := log.WithTimeout(ctx, time.Minute*2)
	defer cancel()

	b, err := ms.ReadPath(inputPath)
	if err != nil {
		return nil, false, err
	}
	in, err := parseInput(inputPath, b, co.format)
	if err != nil {
		return nil, false, err
	}

	var mathml []string
	doc := in.doc
	if doc == nil {
		mathml, err = amrtex.ConvertAll(in.equations)
		if err != nil {
			return nil, false, err
		}
		if co.outputFormat == MML {
			written, err = writeOutput(ms, co, outputPath, []byte(strings.Join(mathml, "\n")+"\n"))
			return nil, written, err
		}
		ms.Log.Debug.Printf("converting %d equations with %s%s", len(mathml), co.client.BaseURL, co.client.Endpoint)
		doc, err = co.client.Convert(ctx, mathml, co.format)
		if err != nil {
			return nil, false, err
		}
		if doc.Empty() {
			ms.Log.Warn.Printf("SKEMA returned no model for %s", inputPath)
		}
	} else if co.outputFormat == MML {
		return nil, false, fmt.Errorf("%s is already a model: it has no equations to write as MathML", inputPath)
	}

	g, err := amrgraph.Build(ctx, doc)
	if err != nil {
		return nil, false, err
	}
	if mathml != nil && !doc.Empty() {
		crossCheck(ms, g, mathml)
	}

	pos, err := co.plugin.Layout(ctx, g)
	if err != nil {
		return nil, false, fmt.Errorf("%s layout failed: %w", co.layout, err)
	}

	var out []byte
	if co.outputFormat.plotted() || co.preview {
		p, err := amrplot.Render(ctx, g, pos, co.render)
		if err != nil {
			return nil, false, err
		}
		svg, err = amrplot.Export(p, string(SVG))
		if err != nil {
			return nil, false, err
		}
		switch co.outputFormat {
		case SVG:
			out = svg
		case PNG, PDF:
			out, err = amrplot.Export(p, string(co.outputFormat))
			if err != nil {
				return nil, false, err
			}
		}
	}

	switch co.outputFormat {
	case DOT:
		out, err = amrexporter.DOT(g)
		if err != nil {
			return nil, false, err
		}
	case D2:
		out = amrexporter.D2(g, pos)
	case JSON:
		if co.tables {
			out = amrexporter.Tables(g)
		} else {
			out = []byte(xjson.MarshalIndent(doc.Raw))
		}
	case HTML:
		out, err = amrreport.Render(&amrreport.Report{
			Title:     co.render.Title,
			Equations: in.equations,
			MathML:    mathml,
			Graph:     g,
			Layout:    co.layout,
			SVG:       svg,
		})
		if err != nil {
			return nil, false, err
		}
	}

	written, err = writeOutput(ms, co, outputPath, out)
	return svg, written, err
}

// crossCheck warns about states whose time derivative appears in the
// equations but that are missing from the model.
func crossCheck(ms *xmain.State, g *amrgraph.Graph, mathml []string) {
	var states []string
	for _, n := range g.NodesOfKind(amrgraph.KindState) {
		states = append(states, n.ID)
	}
	for i, m := range mathml {
		derived, err := amrtex.DerivativeStates(m)
		if err != nil {
			ms.Log.Debug.Printf("equation %d: %v", i+1, err)
			continue
		}
		for _, s := range derived {
			if !slices.Contains(states, s) {
				ms.Log.Warn.Printf("equation %d: state %q is not in the model", i+1, s)
			}
		}
	}
}

// writeOutput writes b to outputPath. Text written to a terminal is
// highlighted when co.color is set.
func writeOutput(ms *xmain.State, co *compileOpts, outputPath string, b []byte) (bool, error) {
	if outputPath == "-" {
		if lexer := co.outputFormat.lexer(); co.color && lexer != "" {
			err := amrreport.Highlight(ms.Stdout, string(b), lexer)
			if err != nil {
				return false, err
			}
			return false, ms.Stdout.Close()
		}
		return false, ms.WritePath(outputPath, b)
	}
	err := ms.WritePath(outputPath, b)
	if err != nil {
		return false, err
	}
	ms.Log.Info.Printf("wrote %sB to %s", xhttp.Bytes(len(b)), outputPath)
	return true, nil
}
