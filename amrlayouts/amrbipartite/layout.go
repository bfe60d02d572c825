// Package amrbipartite places states and transitions in two facing columns.
package amrbipartite

import (
	"context"

	"oss.terrastruct.com/amrviz/amrgraph"
	"oss.terrastruct.com/amrviz/amrlayouts"
	"oss.terrastruct.com/amrviz/lib/geo"
)

const aspectRatio = 4. / 3

// Layout puts states in the left column and transitions in the right one, each
// column evenly spaced from top to bottom, then rescales the whole layout.
func Layout(ctx context.Context, g *amrgraph.Graph) (amrlayouts.Positions, error) {
	pos := make(amrlayouts.Positions, g.Order())
	if g.Order() == 0 {
		return pos, nil
	}

	height := 1.
	width := aspectRatio * height

	var points []*geo.Point
	column := func(nodes []amrgraph.Node, x float64) {
		ys := amrlayouts.Linspace(0, height, len(nodes), true)
		for i, n := range nodes {
			// Nodes run top to bottom.
			p := geo.NewPoint(x-width/2, height/2-ys[i])
			pos[n.ID] = p
			points = append(points, p)
		}
	}
	column(g.NodesOfKind(amrgraph.KindState), 0)
	column(g.NodesOfKind(amrgraph.KindTransition), width)

	amrlayouts.Rescale(points, 1)
	return pos, nil
}
