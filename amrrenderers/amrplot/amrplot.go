// Package amrplot draws a laid out model graph with gonum/plot and exports it
// as PNG, SVG or PDF.
//
// States are circles and transitions squares, filled from the Pastel1 palette
// by node kind. Arcs bend along a quadratic curve (geo.Arc3) and are
// colored from the Tab10 palette by edge kind.
package amrplot

import (
	"context"
	"fmt"
	stdcolor "image/color"
	"math"
	"sort"

	"cdr.dev/slog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"oss.terrastruct.com/amrviz/amrgraph"
	"oss.terrastruct.com/amrviz/amrlayouts"
	"oss.terrastruct.com/amrviz/lib/color"
	"oss.terrastruct.com/amrviz/lib/geo"
	"oss.terrastruct.com/amrviz/lib/log"
	"oss.terrastruct.com/amrviz/lib/textmeasure"
)

const (
	// Size is the width and height of exported images.
	Size = 8 * vg.Inch
	// DPI is the resolution of PNG exports.
	DPI = 150

	NodeAlpha    = 0.8
	FontSize     = 8
	ArcRad       = 0.2
	ArcRadRepeat = 0.15
	// NodeSize is the marker area in points squared.
	NodeSize = 100
)

type RenderOpts struct {
	Title  string
	Legend bool
	// StateColor and TransitionColor override the palette fill of their node
	// kind. Any CSS color is accepted.
	StateColor      string
	TransitionColor string
}

// Render returns a plot of g with nodes at pos. Every node must have a
// position.
func Render(ctx context.Context, g *amrgraph.Graph, pos amrlayouts.Positions, opts *RenderOpts) (*plot.Plot, error) {
	if opts == nil {
		opts = &RenderOpts{}
	}
	for _, n := range g.Nodes() {
		if _, ok := pos[n.ID]; !ok {
			return nil, fmt.Errorf("node %q has no position", n.ID)
		}
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.HideAxes()
	p.BackgroundColor = stdcolor.White

	labelStyle := p.Title.TextStyle
	labelStyle.Font.Size = vg.Points(FontSize)
	labelStyle.XAlign = text.XCenter
	labelStyle.YAlign = text.YCenter
	labelStyle.Color = stdcolor.Black

	nodeStyles, err := nodeStyles(g, opts)
	if err != nil {
		return nil, err
	}
	edgeStyles := edgeStyles(g)

	gp := &graphPlotter{
		g:          g,
		pos:        pos,
		nodeStyles: nodeStyles,
		edgeStyles: edgeStyles,
		labelStyle: labelStyle,
	}
	p.Add(gp)

	lim, err := limits(g, pos)
	if err != nil {
		return nil, err
	}
	p.X.Min, p.X.Max = -lim, lim
	p.Y.Min, p.Y.Max = -lim, lim

	if opts.Legend {
		addLegend(p, nodeStyles, edgeStyles)
	}

	log.Debug(ctx, "rendered plot",
		slog.F("nodes", g.Order()),
		slog.F("edges", g.Size()),
		slog.F("limit", lim),
	)
	return p, nil
}

// limits returns the half width of the square axes: 1.5 times the largest
// coordinate, widened so the widest label fits.
func limits(g *amrgraph.Graph, pos amrlayouts.Positions) (float64, error) {
	lim := 1.5 * pos.Extent()
	if lim == 0 {
		lim = 1
	}

	ruler, err := textmeasure.NewRuler(FontSize, 72)
	if err != nil {
		return 0, err
	}
	var labels []string
	for _, n := range g.Nodes() {
		labels = append(labels, n.ID)
	}
	// Label widths are in points. Half the canvas spans lim in data units.
	half := float64(Size.Points()) / 2
	extra := ruler.MaxWidth(labels) / 2
	if extra >= half {
		return lim, nil
	}
	return lim * half / (half - extra), nil
}

func nodeStyles(g *amrgraph.Graph, opts *RenderOpts) (map[amrgraph.NodeKind]draw.GlyphStyle, error) {
	overrides := map[amrgraph.NodeKind]string{
		amrgraph.KindState:      opts.StateColor,
		amrgraph.KindTransition: opts.TransitionColor,
	}
	radius := vg.Points(math.Sqrt(NodeSize) / 2)

	styles := make(map[amrgraph.NodeKind]draw.GlyphStyle)
	for kind, i := range amrgraph.NodeKinds(g) {
		c := color.Pick(color.Pastel1, i)
		if o := overrides[kind]; o != "" {
			c = o
		}
		fill, err := color.Parse(c, NodeAlpha)
		if err != nil {
			return nil, err
		}

		var shape draw.GlyphDrawer = draw.CircleGlyph{}
		if kind == amrgraph.KindTransition {
			shape = draw.SquareGlyph{}
		}
		styles[kind] = draw.GlyphStyle{
			Color:  fill,
			Radius: radius,
			Shape:  shape,
		}
	}
	return styles, nil
}

func edgeStyles(g *amrgraph.Graph) map[amrgraph.EdgeKind]draw.LineStyle {
	styles := make(map[amrgraph.EdgeKind]draw.LineStyle)
	for kind, i := range amrgraph.EdgeKinds(g) {
		styles[kind] = draw.LineStyle{
			Color: color.MustParse(color.Pick(color.Tab10, i), 1),
			Width: vg.Points(1),
		}
	}
	return styles
}

type graphPlotter struct {
	g          *amrgraph.Graph
	pos        amrlayouts.Positions
	nodeStyles map[amrgraph.NodeKind]draw.GlyphStyle
	edgeStyles map[amrgraph.EdgeKind]draw.LineStyle
	labelStyle text.Style
}

var _ plot.Plotter = &graphPlotter{}

// Plot draws arcs below nodes and labels on top.
func (gp *graphPlotter) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	toCanvas := func(id string) *geo.Point {
		pt := gp.pos[id]
		return geo.NewPoint(float64(trX(pt.X)), float64(trY(pt.Y)))
	}

	type pair struct{ src, dst string }
	repeats := make(map[pair]int)
	for _, e := range gp.g.Edges() {
		k := pair{e.Source, e.Target}
		rad := ArcRad + ArcRadRepeat*float64(repeats[k])
		repeats[k]++

		src, dst := toCanvas(e.Source), toCanvas(e.Target)
		if src.Equals(dst) {
			continue
		}
		srcNode, _ := gp.g.Node(e.Source)
		dstNode, _ := gp.g.Node(e.Target)
		curve := geo.Arc3(src, dst, rad)
		pts := curve.Clip(
			float64(gp.nodeStyles[srcNode.Kind].Radius),
			float64(gp.nodeStyles[dstNode.Kind].Radius),
		)
		if pts == nil {
			continue
		}
		sty := gp.edgeStyles[e.Kind]
		c.StrokeLines(sty, toVG(pts))
		drawArrowhead(c, sty, pts[len(pts)-2], pts[len(pts)-1])
	}

	for _, n := range gp.g.Nodes() {
		c.DrawGlyph(gp.nodeStyles[n.Kind], toVG([]*geo.Point{toCanvas(n.ID)})[0])
	}
	for _, n := range gp.g.Nodes() {
		pt := toCanvas(n.ID)
		c.FillText(gp.labelStyle, vg.Point{X: vg.Length(pt.X), Y: vg.Length(pt.Y)}, n.ID)
	}
}

const arrowLength = 6

func drawArrowhead(c draw.Canvas, sty draw.LineStyle, from, tip *geo.Point) {
	dir := from.VectorTo(tip).Unit()
	if dir.Length() == 0 {
		return
	}
	back := tip.AddVector(dir.Multiply(-arrowLength))
	side := dir.Normal().Multiply(arrowLength / 3)
	tri := []*geo.Point{tip, back.AddVector(side), back.AddVector(side.Multiply(-1))}
	c.FillPolygon(sty.Color, toVG(tri))
}

func toVG(pts []*geo.Point) []vg.Point {
	out := make([]vg.Point, len(pts))
	for i, p := range pts {
		out[i] = vg.Point{X: vg.Length(p.X), Y: vg.Length(p.Y)}
	}
	return out
}

type glyphThumb draw.GlyphStyle

func (t glyphThumb) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(draw.GlyphStyle(t), c.Center())
}

type lineThumb draw.LineStyle

func (t lineThumb) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(draw.LineStyle(t), c.Min.X, y, c.Max.X, y)
}

var kindNames = map[string]string{
	string(amrgraph.KindState):      "state",
	string(amrgraph.KindTransition): "transition",
	string(amrgraph.KindInput):      "input",
	string(amrgraph.KindOutput):     "output",
}

func addLegend(p *plot.Plot, nodes map[amrgraph.NodeKind]draw.GlyphStyle, edges map[amrgraph.EdgeKind]draw.LineStyle) {
	p.Legend.Top = false
	p.Legend.Left = true
	p.Legend.TextStyle.Font.Size = vg.Points(FontSize)

	var nodeKinds []string
	for k := range nodes {
		nodeKinds = append(nodeKinds, string(k))
	}
	sort.Strings(nodeKinds)
	for _, k := range nodeKinds {
		p.Legend.Add(fmt.Sprintf("%s (%s)", kindNames[k], k), glyphThumb(nodes[amrgraph.NodeKind(k)]))
	}

	var edgeKinds []string
	for k := range edges {
		edgeKinds = append(edgeKinds, string(k))
	}
	sort.Strings(edgeKinds)
	for _, k := range edgeKinds {
		p.Legend.Add(fmt.Sprintf("%s (%s)", kindNames[k], k), lineThumb(edges[amrgraph.EdgeKind(k)]))
	}
}
