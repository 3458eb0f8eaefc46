package obb

import (
	"math"

	"github.com/golang/geo/r3"
)

// Translate returns the affine transform that translates by v.
func Translate(v r3.Vector) Mat4 {
	return Mat4{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// RotateZ returns the affine transform that rotates by theta radians
// about the +Z axis.
func RotateZ(theta float64) Mat4 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Scale returns the affine transform that scales each axis
// independently by v's components.
func Scale(v r3.Vector) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// Mul composes two affine transforms, returning the matrix that
// applies b first, then a: Mul(a, b).Apply(p) == a.Apply(b.Apply(p)).
func Mul(a, b Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[row*4+k] * b[k*4+col]
			}
			if col == 3 {
				sum += a[row*4+3]
			}
			out[row*4+col] = sum
		}
	}
	out[12], out[13], out[14], out[15] = 0, 0, 0, 1
	return out
}
