// Package amrlayouts holds what the layout engines share: the position map they
// return and the rescaling step that fits a layout into [-scale, scale].
package amrlayouts

import (
	"context"
	"math"

	"oss.terrastruct.com/amrviz/amrgraph"
	"oss.terrastruct.com/amrviz/lib/geo"
)

// Positions maps node ids to layout coordinates.
type Positions map[string]*geo.Point

// LayoutGraph is the signature every layout engine implements.
type LayoutGraph func(context.Context, *amrgraph.Graph) (Positions, error)

// Points returns the positions of ids in order. Missing ids are skipped.
func (p Positions) Points(ids []string) []*geo.Point {
	out := make([]*geo.Point, 0, len(ids))
	for _, id := range ids {
		if pt, ok := p[id]; ok {
			out = append(out, pt)
		}
	}
	return out
}

// Extent is the largest absolute coordinate of any position.
func (p Positions) Extent() float64 {
	max := 0.
	for _, pt := range p {
		max = math.Max(max, math.Max(math.Abs(pt.X), math.Abs(pt.Y)))
	}
	return max
}

// Rescale centres points on their mean and scales them so the largest absolute
// coordinate is scale. Points that all coincide are left at the origin.
func Rescale(points []*geo.Point, scale float64) {
	if len(points) == 0 {
		return
	}
	var mx, my float64
	for _, p := range points {
		mx += p.X
		my += p.Y
	}
	mx /= float64(len(points))
	my /= float64(len(points))

	lim := 0.
	for _, p := range points {
		p.X -= mx
		p.Y -= my
		lim = math.Max(lim, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	if lim == 0 {
		return
	}
	for _, p := range points {
		p.X *= scale / lim
		p.Y *= scale / lim
	}
}

// Linspace returns n evenly spaced values over [start, stop]. With endpoint
// false stop is excluded.
func Linspace(start, stop float64, n int, endpoint bool) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	div := float64(n)
	if endpoint {
		div = float64(n - 1)
	}
	step := (stop - start) / div
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// IDs returns the ids of nodes in order.
func IDs(nodes []amrgraph.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
