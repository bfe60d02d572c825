package geo

// QuadBezier is a quadratic Bezier curve.
type QuadBezier struct {
	Start   *Point
	Control *Point
	End     *Point
}

// Arc3 returns the quadratic curve from start to end whose control point sits
// rad * |start-end| off the midpoint, along the normal.
func Arc3(start, end *Point, rad float64) *QuadBezier {
	mid := Midpoint(start, end)
	ctrl := mid.AddVector(start.VectorTo(end).Normal().Multiply(rad))
	return &QuadBezier{Start: start, Control: ctrl, End: end}
}

func (b *QuadBezier) At(t float64) *Point {
	mt := 1 - t
	return &Point{
		X: mt*mt*b.Start.X + 2*mt*t*b.Control.X + t*t*b.End.X,
		Y: mt*mt*b.Start.Y + 2*mt*t*b.Control.Y + t*t*b.End.Y,
	}
}

// Tangent returns the derivative of the curve at t.
func (b *QuadBezier) Tangent(t float64) Vector {
	mt := 1 - t
	return NewVector(
		2*mt*(b.Control.X-b.Start.X)+2*t*(b.End.X-b.Control.X),
		2*mt*(b.Control.Y-b.Start.Y)+2*t*(b.End.Y-b.Control.Y),
	)
}

const bezierSteps = 64

// Clip returns the sampled curve with the parts inside startRadius of Start and
// endRadius of End removed. Nil is returned when nothing is left.
func (b *QuadBezier) Clip(startRadius, endRadius float64) []*Point {
	var out []*Point
	for i := 0; i <= bezierSteps; i++ {
		p := b.At(float64(i) / bezierSteps)
		if p.DistanceTo(b.Start) < startRadius || p.DistanceTo(b.End) < endRadius {
			continue
		}
		out = append(out, p)
	}
	if len(out) < 2 {
		return nil
	}
	return out
}
