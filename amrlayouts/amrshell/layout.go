// Package amrshell places states and transitions on concentric circles.
package amrshell

import (
	"context"
	"math"

	"cdr.dev/slog"

	"oss.terrastruct.com/amrviz/amrgraph"
	"oss.terrastruct.com/amrviz/amrlayouts"
	"oss.terrastruct.com/amrviz/lib/geo"
	"oss.terrastruct.com/amrviz/lib/log"
)

// Layout puts the states on the inner shell and the transitions on the outer
// one. Each shell is one 1/len(shells) radius step further out and rotated by
// pi/len(shells) relative to the previous one. A first shell with a single node
// sits at the centre.
func Layout(ctx context.Context, g *amrgraph.Graph) (amrlayouts.Positions, error) {
	shells := [][]string{
		amrlayouts.IDs(g.NodesOfKind(amrgraph.KindState)),
		amrlayouts.IDs(g.NodesOfKind(amrgraph.KindTransition)),
	}
	return Shells(ctx, g, shells, 1), nil
}

// Shells lays out each shell of node ids on its own circle.
func Shells(ctx context.Context, g *amrgraph.Graph, shells [][]string, scale float64) amrlayouts.Positions {
	pos := make(amrlayouts.Positions, g.Order())
	if g.Order() == 0 {
		return pos
	}
	if g.Order() == 1 {
		pos[g.Nodes()[0].ID] = geo.NewPoint(0, 0)
		return pos
	}

	radiusBump := scale / float64(len(shells))
	radius := radiusBump
	if len(shells[0]) == 1 {
		radius = 0
	}
	rotate := math.Pi / float64(len(shells))
	firstTheta := rotate

	for _, ids := range shells {
		for i, theta := range amrlayouts.Linspace(0, 2*math.Pi, len(ids), false) {
			theta += firstTheta
			pos[ids[i]] = geo.NewPoint(radius*math.Cos(theta), radius*math.Sin(theta))
		}
		radius += radiusBump
		firstTheta += rotate
	}

	log.Debug(ctx, "shell layout", slog.F("shells", len(shells)), slog.F("radius", radius-radiusBump))
	return pos
}
