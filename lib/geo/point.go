package geo

import (
	"fmt"
	"math"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

func (p1 *Point) Equals(p2 *Point) bool {
	if p1 == nil {
		return p2 == nil
	} else if p2 == nil {
		return false
	}
	return (p1.X == p2.X) && (p1.Y == p2.Y)
}

func (p *Point) String() string {
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

func (p *Point) VectorTo(q *Point) Vector {
	return NewVector(q.X-p.X, q.Y-p.Y)
}

func (p *Point) AddVector(v Vector) *Point {
	return &Point{X: p.X + v[0], Y: p.Y + v[1]}
}

func (p *Point) DistanceTo(q *Point) float64 {
	return EuclideanDistance(p.X, p.Y, q.X, q.Y)
}

func Midpoint(p, q *Point) *Point {
	return &Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

func EuclideanDistance(x1, y1, x2, y2 float64) float64 {
	if x1 == x2 {
		return math.Abs(y1 - y2)
	} else if y1 == y2 {
		return math.Abs(x1 - x2)
	}
	return math.Sqrt((x1-x2)*(x1-x2) + (y1-y2)*(y1-y2))
}

// MaxAbs returns the largest absolute coordinate over points, 0 when empty.
func MaxAbs(points []*Point) float64 {
	m := 0.
	for _, p := range points {
		m = math.Max(m, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	return m
}

// TruncateDecimals keeps 3 decimal points so layouts compare equal across machines.
func TruncateDecimals(v float64) float64 {
	return math.Round(v*1000) / 1000
}
