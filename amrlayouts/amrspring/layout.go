// Package amrspring is a Fruchterman-Reingold force directed layout. Starting
// positions come from a generator seeded with the graph's fingerprint so the
// same model always gets the same picture.
package amrspring

import (
	"context"
	"math"
	"strconv"

	"cdr.dev/slog"
	"golang.org/x/exp/rand"

	"oss.terrastruct.com/amrviz/amrgraph"
	"oss.terrastruct.com/amrviz/amrlayouts"
	"oss.terrastruct.com/amrviz/lib/geo"
	"oss.terrastruct.com/amrviz/lib/log"
)

type ConfigurableOpts struct {
	// Seed of the starting positions. 0 derives it from the graph.
	Seed       int64 `json:"seed"`
	Iterations int64 `json:"iterations"`
}

var DefaultOpts = ConfigurableOpts{
	Seed:       0,
	Iterations: 50,
}

const threshold = 1e-4

func DefaultLayout(ctx context.Context, g *amrgraph.Graph) (amrlayouts.Positions, error) {
	return Layout(ctx, g, nil)
}

func Layout(ctx context.Context, g *amrgraph.Graph, opts *ConfigurableOpts) (amrlayouts.Positions, error) {
	if opts == nil {
		opts = &DefaultOpts
	}

	nodes := g.Nodes()
	n := len(nodes)
	pos := make(amrlayouts.Positions, n)
	if n == 0 {
		return pos, nil
	}
	if n == 1 {
		pos[nodes[0].ID] = geo.NewPoint(0, 0)
		return pos, nil
	}

	index := make(map[string]int, n)
	for i, node := range nodes {
		index[node.ID] = i
	}
	adj := make([][]float64, n)
	for i := range adj {
		adj[i] = make([]float64, n)
	}
	for _, e := range g.Edges() {
		i, j := index[e.Source], index[e.Target]
		adj[i][j] = 1
		adj[j][i] = 1
	}

	seed := uint64(opts.Seed)
	if seed == 0 {
		seed, _ = strconv.ParseUint(g.Fingerprint(), 16, 64)
	}
	r := rand.New(rand.NewSource(seed))

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = r.Float64()
		ys[i] = r.Float64()
	}

	k := math.Sqrt(1 / float64(n))
	t := math.Max(spread(xs), spread(ys)) * 0.1
	dt := t / float64(opts.Iterations+1)

	iter := int64(0)
	for ; iter < opts.Iterations; iter++ {
		moved := 0.
		dx := make([]float64, n)
		dy := make([]float64, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				deltaX := xs[i] - xs[j]
				deltaY := ys[i] - ys[j]
				dist := math.Max(math.Hypot(deltaX, deltaY), 0.01)
				// Repulsion between every pair, attraction along edges.
				f := k*k/(dist*dist) - adj[i][j]*dist/k
				dx[i] += deltaX * f
				dy[i] += deltaY * f
			}
		}
		for i := 0; i < n; i++ {
			length := math.Hypot(dx[i], dy[i])
			if length < 0.01 {
				length = 0.1
			}
			mx := dx[i] * t / length
			my := dy[i] * t / length
			xs[i] += mx
			ys[i] += my
			moved += mx*mx + my*my
		}
		t -= dt
		if math.Sqrt(moved)/float64(n) < threshold {
			break
		}
	}

	points := make([]*geo.Point, n)
	for i, node := range nodes {
		points[i] = geo.NewPoint(xs[i], ys[i])
		pos[node.ID] = points[i]
	}
	amrlayouts.Rescale(points, 1)

	log.Debug(ctx, "spring layout", slog.F("seed", seed), slog.F("iterations", iter))
	return pos, nil
}

func spread(vs []float64) float64 {
	min, max := vs[0], vs[0]
	for _, v := range vs[1:] {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return max - min
}
