// Package potree defines the read-only octree contract the query
// pipeline depends on, narrowed to exactly the four capabilities
// spec §4.3 names: root access, per-node bounding box and level,
// lazy children, and lazy point materialization.
//
// The interface shape mirrors the teacher's octree.Octree composing
// over pc.PointCloud, but deliberately drops everything mutable —
// Set, MarshalBinary, metadata accumulation — since this system never
// builds or edits an octree, only reads one.
package potree

import (
	"context"

	"github.com/golang/geo/r3"

	"go.viam.com/potree-profile/attrs"
	"go.viam.com/potree-profile/obb"
)

// Point is one stored sample: world-space position plus the fixed
// attributes the core interprets directly. Any other stored attribute
// is opaque to the core and carried only as far as its declared size.
type Point struct {
	Position       r3.Vector
	R, G, B        uint8
	Intensity      uint16
	Classification uint8
}

// Node is one octree node: its own extent and level, up to eight
// child slots (nil where absent), and its own points, loaded lazily.
type Node interface {
	BoundingBox() obb.AABB
	Level() int
	Children() [8]Node
	Points(ctx context.Context) ([]Point, error)
}

// DatasetMeta is the reader-level metadata the profile builder (§4.2)
// and encoders (§4.6) consume: the dataset's full bounding box, its
// per-axis coordinate scale and offset (as used by the LAS encoder),
// and its stored attribute schema.
type DatasetMeta struct {
	Bounds obb.AABB
	Scale  r3.Vector
	Offset r3.Vector
	Schema attrs.Schema
}

// Store exposes a dataset's root node and its metadata.
type Store interface {
	Root(ctx context.Context) (Node, error)
	Meta() DatasetMeta
}
