// Package profile turns a 2-D polyline and a corridor width into an
// ordered sequence of oriented-box segments, each carrying the
// transform used to build its OBB and its cumulative along-profile
// offset.
//
// The transform composition mirrors the pose-chaining style
// spatialmath uses to build a box's pose from a rotation and an
// offset (box.go, orientation.go), expressed here over raw obb.Mat4
// values since the profile builder has no Pose type of its own.
package profile

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/potree-profile/obb"
	"go.viam.com/potree-profile/potreeerr"
)

// Segment is one corridor slab along the polyline: its index, its 2-D
// endpoints, the OBB derived for it, and the mileage at its start.
type Segment struct {
	Index   int
	Start   r3.Vector
	End     r3.Vector
	Box     obb.Box
	Mat     obb.Mat4
	Mileage float64
	Length  float64
}

// Build converts line (N >= 2 vertices in the XY plane, Z ignored on
// input) and a corridor width into N-1 segments, using datasetBounds
// to size the corridor's vertical extent.
//
// Fails with InvalidArgument if line has fewer than two vertices, and
// InvalidGeometry if width is non-positive or non-finite, any vertex
// has a non-finite coordinate, or any edge has zero length.
func Build(line []r3.Vector, width float64, datasetBounds obb.AABB) ([]Segment, error) {
	if len(line) < 2 {
		return nil, potreeerr.NewInvalidArgument("polyline needs at least 2 vertices, got %d", len(line))
	}
	if math.IsNaN(width) || math.IsInf(width, 0) || width <= 0 {
		return nil, potreeerr.NewInvalidGeometry("corridor width must be positive, got %f", width)
	}
	for i, v := range line {
		if math.IsNaN(v.X) || math.IsInf(v.X, 0) || math.IsNaN(v.Y) || math.IsInf(v.Y, 0) {
			return nil, potreeerr.NewInvalidGeometry("vertex %d has a non-finite coordinate: (%f, %f)", i, v.X, v.Y)
		}
	}

	zCenter := (datasetBounds.Min.Z + datasetBounds.Max.Z) / 2
	height := datasetBounds.Max.Z - datasetBounds.Min.Z

	segments := make([]Segment, 0, len(line)-1)
	mileage := 0.0
	for i := 0; i < len(line)-1; i++ {
		start := line[i]
		end := line[i+1]
		dx := end.X - start.X
		dy := end.Y - start.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			return nil, potreeerr.NewInvalidGeometry("segment %d has coincident endpoints", i)
		}
		theta := math.Atan2(dy, dx)

		m := obb.Mul(
			obb.Translate(r3.Vector{X: start.X, Y: start.Y, Z: zCenter}),
			obb.Mul(
				obb.RotateZ(theta),
				obb.Mul(
					obb.Scale(r3.Vector{X: length, Y: width, Z: height}),
					obb.Translate(r3.Vector{X: 0.5}),
				),
			),
		)

		box, err := obb.FromTransform(m)
		if err != nil {
			return nil, err
		}

		segments = append(segments, Segment{
			Index:   i,
			Start:   start,
			End:     end,
			Box:     box,
			Mat:     m,
			Mileage: mileage,
			Length:  length,
		})
		mileage += length
	}
	return segments, nil
}
