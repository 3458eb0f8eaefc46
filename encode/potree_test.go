package encode

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/potree-profile/attrs"
	"go.viam.com/potree-profile/filter"
	"go.viam.com/potree-profile/obb"
	"go.viam.com/potree-profile/potree"
)

func identityBox(t *testing.T, c r3.Vector, h float64) (obb.Box, obb.Mat4) {
	t.Helper()
	m := obb.Mat4{
		h, 0, 0, c.X,
		0, h, 0, c.Y,
		0, 0, h, c.Z,
		0, 0, 0, 1,
	}
	b, err := obb.FromTransform(m)
	test.That(t, err, test.ShouldBeNil)
	return b, m
}

// TestWritePotreeHeaderBodyConsistency covers spec property 4: the
// length prefix equals the header's byte length and "points" equals
// the number of records that follow.
func TestWritePotreeHeaderBodyConsistency(t *testing.T) {
	box, m := identityBox(t, r3.Vector{}, 1)
	results := []filter.Result{
		{
			Box:             box,
			Mat:             m,
			PointsProcessed: 2,
			NodesProcessed:  1,
			Points: []potree.Point{
				{Position: r3.Vector{X: 0.1}, R: 1, G: 2, B: 3, Intensity: 40, Classification: 1},
				{Position: r3.Vector{X: 0.2}, R: 4, G: 5, B: 6, Intensity: 41, Classification: 2},
			},
		},
	}
	schema := attrs.Schema{attrs.NewDescriptor(attrs.RGB), attrs.NewDescriptor(attrs.Intensity)}

	var buf bytes.Buffer
	summary, err := WritePotree(&buf, results, schema)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, summary.PointsAccepted, test.ShouldEqual, 2)

	data := buf.Bytes()
	length := binary.LittleEndian.Uint32(data[0:4])
	headerBytes := data[4 : 4+length]

	var header potreeHeaderJSON
	test.That(t, json.Unmarshal(headerBytes, &header), test.ShouldBeNil)
	test.That(t, header.Points, test.ShouldEqual, 2)
	test.That(t, header.BytesPerPoint, test.ShouldEqual, 5)

	body := data[4+length:]
	test.That(t, len(body), test.ShouldEqual, header.Points*header.BytesPerPoint)
}

// TestWritePotreeProjectsCenterPointPastMileage covers the
// projected-profile expectation: a point at the segment's box center
// projects to dx == mileage (1.0 here) plus its distance from localMin
// along axis0 (0.5 here), once quantized by potreeScale.
func TestWritePotreeProjectsCenterPointPastMileage(t *testing.T) {
	box, m := identityBox(t, r3.Vector{}, 1)
	results := []filter.Result{
		{
			Box:     box,
			Mat:     m,
			Mileage: 1.0,
			Points:  []potree.Point{{Position: r3.Vector{}}},
		},
	}
	schema := attrs.Schema{attrs.NewDescriptor(attrs.PositionProjectedProfile)}

	var buf bytes.Buffer
	_, err := WritePotree(&buf, results, schema)
	test.That(t, err, test.ShouldBeNil)

	data := buf.Bytes()
	length := binary.LittleEndian.Uint32(data[0:4])
	body := data[4+length:]
	test.That(t, len(body), test.ShouldEqual, 8)

	dx := binary.LittleEndian.Uint32(body[0:4])
	// localMin is at (-0.5,-0.5,-0.5) for this identity box; the point
	// at the origin is 0.5 units from localMin along axis0, plus
	// mileage 1.0.
	wantDx := uint32(math.Floor((0.5 + 1.0) / potreeScale))
	test.That(t, dx, test.ShouldEqual, wantDx)
}
