// Package encode implements the two binary output formats (spec
// §4.6): the POTREE-custom stream and LAS 1.2 Point Format 2. Both
// aggregate across every segment's filter.Result the same way before
// writing their own header and body.
package encode

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/potree-profile/filter"
	"go.viam.com/potree-profile/obb"
)

// Summary is what an encoder reports back to its caller after writing:
// totals across every segment's result, and the world-space bounding
// box of the points actually accepted, not the dataset's own bounds.
type Summary struct {
	PointsAccepted  int
	PointsProcessed int
	NodesProcessed  int
	Duration        int64 // milliseconds
	Bounds          obb.AABB
}

func aggregate(results []filter.Result) Summary {
	var s Summary
	min := r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}

	for _, r := range results {
		s.PointsProcessed += r.PointsProcessed
		s.NodesProcessed += r.NodesProcessed
		s.Duration += r.Duration.Milliseconds()
		s.PointsAccepted += len(r.Points)
		for _, p := range r.Points {
			min.X = math.Min(min.X, p.Position.X)
			min.Y = math.Min(min.Y, p.Position.Y)
			min.Z = math.Min(min.Z, p.Position.Z)
			max.X = math.Max(max.X, p.Position.X)
			max.Y = math.Max(max.Y, p.Position.Y)
			max.Z = math.Max(max.Z, p.Position.Z)
		}
	}

	if s.PointsAccepted == 0 {
		return s
	}
	s.Bounds = obb.AABB{Min: min, Max: max}
	return s
}
