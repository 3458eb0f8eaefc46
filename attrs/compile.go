package attrs

import (
	"encoding/binary"
	"math"

	"github.com/golang/geo/r3"
)

// PointContext carries everything a compiled Writer needs to encode
// one point: the point's own fields, the aggregate bounding-box
// minimum used by POSITION_CARTESIAN quantization, and the per-segment
// projection basis used by POSITION_PROJECTED_PROFILE.
type PointContext struct {
	Position       r3.Vector
	R, G, B        uint8
	Intensity      uint16
	Classification uint8

	// AggregateMin is the coordinate-wise minimum over every accepted
	// point in the encode call, not the dataset's stored bounding box.
	AggregateMin r3.Vector
	// Scale is the quantization step for POSITION_CARTESIAN and
	// POSITION_PROJECTED_PROFILE.
	Scale float64

	// LocalMin, Axis0, Axis2, and Mileage belong to the segment that
	// produced this point: shared by that segment's points, different
	// from segment to segment.
	LocalMin r3.Vector
	Axis0    r3.Vector
	Axis2    r3.Vector
	Mileage  float64
}

// Writer encodes one attribute of one point into dst, which is sized
// exactly to the attribute's declared byte size.
type Writer func(dst []byte, ctx PointContext)

// Compiled is a schema compiled once into a vector of writer closures
// plus the shared zero-fill scratch used by opaque attributes, sized
// to the schema's single largest opaque descriptor. It replaces a
// process-wide zero buffer with a value owned by the Compiled
// instance.
type Compiled struct {
	Schema        Schema
	BytesPerPoint int

	writers []Writer
	sizes   []int
}

// Compile builds a Compiled from schema. Each descriptor becomes one
// closure; unknown tags become zero-fill writers over a scratch buffer
// sized to the largest opaque descriptor in schema.
func Compile(schema Schema) Compiled {
	maxOpaque := 0
	for _, d := range schema {
		if !d.Tag.known() && d.Size > maxOpaque {
			maxOpaque = d.Size
		}
	}
	zero := make([]byte, maxOpaque)

	c := Compiled{
		Schema:  schema,
		writers: make([]Writer, len(schema)),
		sizes:   make([]int, len(schema)),
	}
	for i, d := range schema {
		c.sizes[i] = d.Size
		c.BytesPerPoint += d.Size
		c.writers[i] = writerFor(d, zero)
	}
	return c
}

// WritePoint encodes ctx into dst, which must be exactly
// c.BytesPerPoint bytes long, in schema order.
func (c Compiled) WritePoint(dst []byte, ctx PointContext) {
	off := 0
	for i, w := range c.writers {
		size := c.sizes[i]
		w(dst[off:off+size], ctx)
		off += size
	}
}

func writerFor(d Descriptor, zero []byte) Writer {
	switch d.Tag {
	case PositionCartesian:
		return func(dst []byte, ctx PointContext) {
			binary.LittleEndian.PutUint32(dst[0:4], quantize(ctx.Position.X, ctx.AggregateMin.X, ctx.Scale))
			binary.LittleEndian.PutUint32(dst[4:8], quantize(ctx.Position.Y, ctx.AggregateMin.Y, ctx.Scale))
			binary.LittleEndian.PutUint32(dst[8:12], quantize(ctx.Position.Z, ctx.AggregateMin.Z, ctx.Scale))
		}
	case PositionProjectedProfile:
		return func(dst []byte, ctx PointContext) {
			rel := ctx.Position.Sub(ctx.LocalMin)
			dx := rel.Dot(ctx.Axis0) + ctx.Mileage
			dz := rel.Dot(ctx.Axis2)
			binary.LittleEndian.PutUint32(dst[0:4], uint32(math.Floor(dx/ctx.Scale)))
			binary.LittleEndian.PutUint32(dst[4:8], uint32(math.Floor(dz/ctx.Scale)))
		}
	case ColorPacked:
		return func(dst []byte, ctx PointContext) {
			dst[0], dst[1], dst[2], dst[3] = ctx.R, ctx.G, ctx.B, 0
		}
	case RGB:
		return func(dst []byte, ctx PointContext) {
			dst[0], dst[1], dst[2] = ctx.R, ctx.G, ctx.B
		}
	case Intensity:
		return func(dst []byte, ctx PointContext) {
			binary.LittleEndian.PutUint16(dst, ctx.Intensity)
		}
	case Classification:
		return func(dst []byte, ctx PointContext) {
			dst[0] = ctx.Classification
		}
	default:
		return func(dst []byte, ctx PointContext) {
			copy(dst, zero)
		}
	}
}

func quantize(v, min, scale float64) uint32 {
	return uint32(math.Floor((v - min) / scale))
}
