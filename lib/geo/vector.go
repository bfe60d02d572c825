package geo

import (
	"math"
)

// A 2-Dimensional Vector with components (x, y) based on the origin
type Vector []float64

// New Vector from components
func NewVector(components ...float64) Vector {
	return components
}

// New Vector of length and pointing in the direction of angle
func NewVectorFromAngle(length, angleInRadians float64) Vector {
	return NewVector(
		length*math.Cos(angleInRadians),
		length*math.Sin(angleInRadians),
	)
}

func (a Vector) Add(b Vector) Vector {
	return NewVector(a[0]+b[0], a[1]+b[1])
}

func (a Vector) Multiply(v float64) Vector {
	return NewVector(a[0]*v, a[1]*v)
}

func (a Vector) Length() float64 {
	return math.Hypot(a[0], a[1])
}

// Creates an unit Vector pointing in the same direction of this Vector.
// The zero Vector stays zero.
func (a Vector) Unit() Vector {
	l := a.Length()
	if l == 0 {
		return NewVector(0, 0)
	}
	return a.Multiply(1 / l)
}

// Normal returns a rotated 90 degrees clockwise. Arc3 bends towards it for a
// positive rad.
func (a Vector) Normal() Vector {
	return NewVector(a[1], -a[0])
}
