// Package query implements the profile driver (spec §4.5): running the
// spatial filter against each segment of a profile in order.
package query

import (
	"context"

	"github.com/edaniels/golog"

	"go.viam.com/potree-profile/filter"
	"go.viam.com/potree-profile/potree"
	"go.viam.com/potree-profile/profile"
)

// PointsInProfile runs filter.PointsInBox against root for every
// segment, in order, and returns the ordered results. Segments are
// independent and commutative with respect to correctness, but the
// returned order must match segments' order because mileage
// projection downstream depends on it.
func PointsInProfile(ctx context.Context, root potree.Node, segments []profile.Segment, minLevel, maxLevel int, logger golog.Logger) ([]filter.Result, error) {
	results := make([]filter.Result, len(segments))
	for i, seg := range segments {
		result, err := filter.PointsInBox(ctx, root, seg.Box, minLevel, maxLevel, logger)
		if err != nil {
			return nil, err
		}
		result.Mat = seg.Mat
		result.Mileage = seg.Mileage
		results[i] = result
	}
	return results, nil
}
