// Package filter implements the spatial filter (spec §4.4): given an
// OBB and a level range, walk an octree and collect the points inside
// the box.
package filter

import (
	"context"
	"time"

	"github.com/edaniels/golog"

	"go.viam.com/potree-profile/obb"
	"go.viam.com/potree-profile/potree"
)

// Result is the outcome of one PointsInBox call: the box it was
// produced from, the accepted points in traversal order, and
// diagnostic counters.
//
// Mat and Mileage are left zero by PointsInBox itself — filter has no
// notion of a segment — and are filled in by query.PointsInProfile,
// which is the layer that knows which segment produced this box.
type Result struct {
	Box             obb.Box
	Mat             obb.Mat4
	Mileage         float64
	Points          []potree.Point
	PointsProcessed int
	NodesProcessed  int
	Duration        time.Duration
}

// PointsInBox walks root depth-first, visiting every node whose
// bounding box intersects box and whose level is <= maxLevel, and
// retains the points of visited nodes at level >= minLevel that box
// contains.
//
// Traversal is an explicit stack rather than recursion: root's points
// are loaded from the underlying store lazily and potentially from
// disk, and a recursive walk would keep every ancestor node's slice
// resident for the duration of its entire subtree's traversal. An
// explicit stack drops each node's reference as soon as its subtree is
// done, which matters once nodes are genuinely out-of-core.
func PointsInBox(ctx context.Context, root potree.Node, box obb.Box, minLevel, maxLevel int, logger golog.Logger) (Result, error) {
	if minLevel > maxLevel {
		logger.Warnf("PointsInBox called with minLevel %d > maxLevel %d, no points can be emitted", minLevel, maxLevel)
	}

	start := time.Now()
	result := Result{Box: box}

	stack := []potree.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		result.NodesProcessed++

		if n.Level() >= minLevel {
			points, err := n.Points(ctx)
			if err != nil {
				return Result{}, err
			}
			result.PointsProcessed += len(points)
			for _, p := range points {
				if box.Inside(p.Position) {
					result.Points = append(result.Points, p)
				}
			}
		}

		for _, child := range n.Children() {
			if child == nil {
				continue
			}
			if child.Level() > maxLevel {
				continue
			}
			if !box.Intersects(child.BoundingBox()) {
				continue
			}
			stack = append(stack, child)
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}
