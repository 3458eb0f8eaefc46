// Package obb implements oriented bounding boxes derived from an affine
// transform, their separating-axis intersection test against axis-aligned
// boxes, and inclusive point containment.
//
// The separating-axis test follows the same shape as spatialmath's
// boxVsBoxCollision in the teacher repository: three face axes from each
// box plus the nine pairwise cross products, skipping a cross product
// axis when it is nearly degenerate.
package obb

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/potree-profile/potreeerr"
)

const crossEpsilon = 1e-10

// Mat4 is a 4x4 affine transform in row-major order, mapping the
// canonical cube [-0.5,0.5]^3 to a world-space oriented box.
type Mat4 [16]float64

// col returns column i (0-indexed) of the upper-left 3x3 rotation/scale
// block as a vector.
func (m Mat4) col(i int) r3.Vector {
	return r3.Vector{X: m[i], Y: m[4+i], Z: m[8+i]}
}

// Apply transforms a homogeneous point (x,y,z,1) by m.
func (m Mat4) Apply(p r3.Vector) r3.Vector {
	return r3.Vector{
		X: m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		Y: m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		Z: m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// AABB is an axis-aligned bounding box with Min.k <= Max.k on every axis.
type AABB struct {
	Min, Max r3.Vector
}

// Center returns the midpoint of the box.
func (a AABB) Center() r3.Vector {
	return a.Min.Add(a.Max).Mul(0.5)
}

// HalfSize returns the box's half-extents on each axis.
func (a AABB) HalfSize() r3.Vector {
	return a.Max.Sub(a.Min).Mul(0.5)
}

// Box is an oriented bounding box: a center, an orthonormal axis basis,
// and positive half-extents along those axes.
type Box struct {
	Center     r3.Vector
	Axis       [3]r3.Vector
	HalfExtent [3]float64
}

// FromTransform extracts an OBB from the affine transform mapping the
// canonical cube [-0.5,0.5]^3 into world space. It fails with an
// InvalidGeometry-shaped error if any half-extent collapses to zero.
func FromTransform(m Mat4) (Box, error) {
	var b Box
	b.Center = m.Apply(r3.Vector{})
	for i := 0; i < 3; i++ {
		col := m.col(i)
		length := col.Norm()
		if length == 0 {
			return Box{}, potreeerr.NewInvalidGeometry("degenerate obb: half-extent %d is zero", i)
		}
		b.Axis[i] = col.Mul(1 / length)
		// The canonical cube spans [-0.5,0.5] on each axis, a unit-width
		// span; the column norm is the full width of that axis after
		// scaling, so the half-extent is half of it.
		b.HalfExtent[i] = length / 2
	}
	return b, nil
}

// Axes returns the OBB's orthonormal basis, aligned ê0, ê1, ê2.
func (b Box) Axes() (r3.Vector, r3.Vector, r3.Vector) {
	return b.Axis[0], b.Axis[1], b.Axis[2]
}

// Inside reports whether p lies within the OBB, inclusive on all six
// faces: each local coordinate's absolute value must be <= the
// corresponding half-extent.
func (b Box) Inside(p r3.Vector) bool {
	d := p.Sub(b.Center)
	for i := 0; i < 3; i++ {
		if math.Abs(d.Dot(b.Axis[i])) > b.HalfExtent[i] {
			return false
		}
	}
	return true
}

// Intersects runs the 15-axis separating-axis test between the OBB and
// an axis-aligned box. It returns true when no separating axis exists,
// i.e. the two boxes overlap or touch.
func (b Box) Intersects(a AABB) bool {
	worldAxes := [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}
	aCenter := a.Center()
	aHalf := a.HalfSize()
	aHalfArr := [3]float64{aHalf.X, aHalf.Y, aHalf.Z}

	centerDist := b.Center.Sub(aCenter)

	// 3 world axes (also the AABB's own face axes).
	for i := 0; i < 3; i++ {
		if separatingGap(centerDist, worldAxes[i], worldAxes, aHalfArr, b.Axis, b.HalfExtent) > 0 {
			return false
		}
	}
	// 3 OBB face axes.
	for i := 0; i < 3; i++ {
		if separatingGap(centerDist, b.Axis[i], worldAxes, aHalfArr, b.Axis, b.HalfExtent) > 0 {
			return false
		}
	}
	// 9 cross-product edge axes; skip near-degenerate cross products.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := worldAxes[i].Cross(b.Axis[j])
			if axis.Norm() < crossEpsilon {
				continue
			}
			axis = axis.Normalize()
			if separatingGap(centerDist, axis, worldAxes, aHalfArr, b.Axis, b.HalfExtent) > 0 {
				return false
			}
		}
	}
	return true
}

// separatingGap projects the center distance and both boxes' half-extents
// onto axis and returns the gap between the projected intervals: positive
// means axis separates the boxes, non-positive means it does not.
func separatingGap(centerDist, axis r3.Vector, axesA [3]r3.Vector, halfA [3]float64, axesB [3]r3.Vector, halfB [3]float64) float64 {
	sum := math.Abs(centerDist.Dot(axis))
	for i := 0; i < 3; i++ {
		sum -= math.Abs(axesA[i].Mul(halfA[i]).Dot(axis))
		sum -= math.Abs(axesB[i].Mul(halfB[i]).Dot(axis))
	}
	return sum
}
