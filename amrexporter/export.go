// Package amrexporter writes a model graph in text formats: Graphviz DOT, D2
// and the JSON node and edge tables.
package amrexporter

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/dominikbraun/graph/draw"

	"oss.terrastruct.com/xjson"

	"oss.terrastruct.com/amrviz/amrgraph"
	"oss.terrastruct.com/amrviz/amrlayouts"
	"oss.terrastruct.com/amrviz/lib/color"
)

// DOT returns g in Graphviz DOT. Vertex and edge attributes carry the kinds.
func DOT(g *amrgraph.Graph) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := draw.DOT(g.Directed(), buf, draw.GraphAttribute("rankdir", "LR"))
	if err != nil {
		return nil, fmt.Errorf("failed to write dot: %w", err)
	}
	return buf.Bytes(), nil
}

// D2Scale converts layout units into D2 pixels.
const D2Scale = 300

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

func d2Key(id string) string {
	if bareKey.MatchString(id) {
		return id
	}
	return strconv.Quote(id)
}

// D2 returns D2 source for g. States are circles and transitions rectangles
// colored like the rendered plot. When pos is not nil every node is locked at
// its layout position.
func D2(g *amrgraph.Graph, pos amrlayouts.Positions) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("direction: right\n")

	nodeKinds := amrgraph.NodeKinds(g)
	for _, n := range g.Nodes() {
		shape := "circle"
		if n.Kind == amrgraph.KindTransition {
			shape = "rectangle"
		}
		fmt.Fprintf(buf, "%s: {\n", d2Key(n.ID))
		fmt.Fprintf(buf, "  shape: %s\n", shape)
		fmt.Fprintf(buf, "  style.fill: %q\n", color.Pick(color.Pastel1, nodeKinds[n.Kind]))
		if p, ok := pos[n.ID]; ok {
			fmt.Fprintf(buf, "  top: %d\n", int(math.Round((1-p.Y)*D2Scale)))
			fmt.Fprintf(buf, "  left: %d\n", int(math.Round((1+p.X)*D2Scale)))
		}
		buf.WriteString("}\n")
	}

	edgeKinds := amrgraph.EdgeKinds(g)
	for _, e := range g.Edges() {
		fmt.Fprintf(buf, "%s -> %s: %s {style.stroke: %q}\n",
			d2Key(e.Source), d2Key(e.Target), e.Kind, color.Pick(color.Tab10, edgeKinds[e.Kind]))
	}
	return buf.Bytes()
}

type tables struct {
	Fingerprint string          `json:"fingerprint"`
	Nodes       []amrgraph.Node `json:"nodes"`
	Edges       []amrgraph.Edge `json:"edges"`
}

// Tables returns the node and edge tables as indented JSON.
func Tables(g *amrgraph.Graph) []byte {
	t := tables{
		Fingerprint: g.Fingerprint(),
		Nodes:       g.Nodes(),
		Edges:       g.Edges(),
	}
	if t.Nodes == nil {
		t.Nodes = []amrgraph.Node{}
	}
	if t.Edges == nil {
		t.Edges = []amrgraph.Edge{}
	}
	return []byte(xjson.MarshalIndent(t))
}
