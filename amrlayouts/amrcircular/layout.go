// Package amrcircular places every node on a single circle, states first.
package amrcircular

import (
	"context"
	"math"

	"oss.terrastruct.com/amrviz/amrgraph"
	"oss.terrastruct.com/amrviz/amrlayouts"
	"oss.terrastruct.com/amrviz/lib/geo"
)

func Layout(ctx context.Context, g *amrgraph.Graph) (amrlayouts.Positions, error) {
	nodes := g.Nodes()
	pos := make(amrlayouts.Positions, len(nodes))
	if len(nodes) == 1 {
		pos[nodes[0].ID] = geo.NewPoint(0, 0)
		return pos, nil
	}

	points := make([]*geo.Point, len(nodes))
	for i, theta := range amrlayouts.Linspace(0, 2*math.Pi, len(nodes), false) {
		points[i] = geo.NewPoint(math.Cos(theta), math.Sin(theta))
		pos[nodes[i].ID] = points[i]
	}
	amrlayouts.Rescale(points, 1)
	return pos, nil
}
