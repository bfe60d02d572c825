// Package amrgraph reshapes a model into node and edge tables and holds them as
// a directed bipartite graph.
package amrgraph

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"cdr.dev/slog"
	"github.com/cespare/xxhash/v2"
	"github.com/dominikbraun/graph"
	"golang.org/x/exp/slices"

	"oss.terrastruct.com/amrviz/amrmodel"
	"oss.terrastruct.com/amrviz/lib/log"
)

// ErrDanglingEdge is returned when an edge names a node missing from the node
// table.
var ErrDanglingEdge = errors.New("dangling edge")

type NodeKind string

const (
	KindState      NodeKind = "S"
	KindTransition NodeKind = "T"
)

type EdgeKind string

const (
	KindInput  EdgeKind = "I"
	KindOutput EdgeKind = "O"
)

type Node struct {
	ID   string   `json:"id"`
	Kind NodeKind `json:"type"`
}

// Edge is a row of the edge table. ID is the row index.
type Edge struct {
	ID     int      `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Kind   EdgeKind `json:"type"`
}

type Graph struct {
	g     graph.Graph[string, string]
	nodes []Node
	edges []Edge
	index map[string]int
}

// Reshape returns the node and edge tables of p. Nodes are the states followed
// by the transitions. Edges follow p.Arcs when it is set. Otherwise they are
// every input arc, transition by transition, followed by every output arc in
// the same order.
func Reshape(p *amrmodel.Petri) ([]Node, []Edge) {
	nodes := make([]Node, 0, len(p.States)+len(p.Transitions))
	for _, s := range p.States {
		nodes = append(nodes, Node{ID: s, Kind: KindState})
	}
	for _, t := range p.Transitions {
		nodes = append(nodes, Node{ID: t.ID, Kind: KindTransition})
	}

	var edges []Edge
	if p.Arcs != nil {
		for _, a := range p.Arcs {
			e := Edge{ID: len(edges), Source: a.State, Target: a.Transition, Kind: KindInput}
			if a.Output {
				e.Source, e.Target, e.Kind = a.Transition, a.State, KindOutput
			}
			edges = append(edges, e)
		}
		return nodes, edges
	}
	for _, t := range p.Transitions {
		for _, s := range t.Input {
			edges = append(edges, Edge{ID: len(edges), Source: s, Target: t.ID, Kind: KindInput})
		}
	}
	for _, t := range p.Transitions {
		for _, s := range t.Output {
			edges = append(edges, Edge{ID: len(edges), Source: t.ID, Target: s, Kind: KindOutput})
		}
	}
	return nodes, edges
}

// Build validates doc and returns its graph. An empty document yields an empty
// graph.
func Build(ctx context.Context, doc *amrmodel.Document) (*Graph, error) {
	p, err := doc.Petri()
	if err != nil {
		return nil, err
	}
	nodes, edges := Reshape(p)
	return New(ctx, nodes, edges)
}

// New builds a graph from node and edge tables. Repeated arcs between the same
// pair of nodes become a single graph edge weighted by their count.
func New(ctx context.Context, nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		g:     graph.New(graph.StringHash, graph.Directed()),
		nodes: append([]Node(nil), nodes...),
		edges: append([]Edge(nil), edges...),
		index: make(map[string]int, len(nodes)),
	}

	for i, n := range g.nodes {
		if _, ok := g.index[n.ID]; ok {
			return nil, fmt.Errorf("duplicate node %q", n.ID)
		}
		g.index[n.ID] = i
		err := g.g.AddVertex(n.ID, graph.VertexAttribute("kind", string(n.Kind)))
		if err != nil {
			return nil, fmt.Errorf("failed to add node %q: %w", n.ID, err)
		}
	}

	type pair struct{ src, dst string }
	weights := make(map[pair]int)
	var order []Edge
	for _, e := range g.edges {
		for _, id := range []string{e.Source, e.Target} {
			if _, ok := g.index[id]; !ok {
				return nil, fmt.Errorf("%w: edge %d (%s -> %s) references unknown node %q", ErrDanglingEdge, e.ID, e.Source, e.Target, id)
			}
		}
		k := pair{e.Source, e.Target}
		if weights[k] == 0 {
			order = append(order, e)
		}
		weights[k]++
	}
	for _, e := range order {
		w := weights[pair{e.Source, e.Target}]
		err := g.g.AddEdge(e.Source, e.Target,
			graph.EdgeAttribute("kind", string(e.Kind)),
			graph.EdgeAttribute("label", edgeLabel(e.Kind, w)),
			graph.EdgeWeight(w),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to add edge %s -> %s: %w", e.Source, e.Target, err)
		}
	}

	log.Debug(ctx, "built graph",
		slog.F("nodes", len(g.nodes)),
		slog.F("edges", len(g.edges)),
		slog.F("fingerprint", g.Fingerprint()),
	)
	return g, nil
}

func edgeLabel(k EdgeKind, weight int) string {
	if weight == 1 {
		return string(k)
	}
	return string(k) + " x" + strconv.Itoa(weight)
}

func (g *Graph) Nodes() []Node {
	return append([]Node(nil), g.nodes...)
}

func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

func (g *Graph) NodesOfKind(k NodeKind) []Node {
	var out []Node
	for _, n := range g.nodes {
		if n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}

func (g *Graph) EdgesOfKind(k EdgeKind) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// Order is the number of nodes.
func (g *Graph) Order() int {
	return len(g.nodes)
}

// Size is the number of rows of the edge table, counting repeated arcs.
func (g *Graph) Size() int {
	return len(g.edges)
}

// Multiplicity returns how many arcs run from source to target.
func (g *Graph) Multiplicity(source, target string) int {
	e, err := g.g.Edge(source, target)
	if err != nil {
		return 0
	}
	return e.Properties.Weight
}

// Directed returns the underlying graph. It must not be modified.
func (g *Graph) Directed() graph.Graph[string, string] {
	return g.g
}

// Fingerprint hashes the node and edge tables. Reshaping the same document
// always gives the same fingerprint.
func (g *Graph) Fingerprint() string {
	d := xxhash.New()
	for _, n := range g.nodes {
		fmt.Fprintf(d, "n\x00%s\x00%s\n", n.ID, n.Kind)
	}
	for _, e := range g.edges {
		fmt.Fprintf(d, "e\x00%d\x00%s\x00%s\x00%s\n", e.ID, e.Source, e.Target, e.Kind)
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// NodeKinds maps every node kind present in g to its index in sorted order.
func NodeKinds(g *Graph) map[NodeKind]int {
	var kinds []NodeKind
	for _, n := range g.nodes {
		if !slices.Contains(kinds, n.Kind) {
			kinds = append(kinds, n.Kind)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	m := make(map[NodeKind]int, len(kinds))
	for i, k := range kinds {
		m[k] = i
	}
	return m
}

// EdgeKinds maps every edge kind present in g to its index in sorted order.
func EdgeKinds(g *Graph) map[EdgeKind]int {
	var kinds []EdgeKind
	for _, e := range g.edges {
		if !slices.Contains(kinds, e.Kind) {
			kinds = append(kinds, e.Kind)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	m := make(map[EdgeKind]int, len(kinds))
	for i, k := range kinds {
		m[k] = i
	}
	return m
}
