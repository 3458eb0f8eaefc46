package profile

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/potree-profile/obb"
)

func TestBuildRejectsShortPolyline(t *testing.T) {
	_, err := Build([]r3.Vector{{}}, 1, obb.AABB{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBuildRejectsNonPositiveWidth(t *testing.T) {
	line := []r3.Vector{{X: -1}, {X: 1}}
	_, err := Build(line, 0, obb.AABB{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBuildRejectsCoincidentVertices(t *testing.T) {
	line := []r3.Vector{{X: 1, Y: 1}, {X: 1, Y: 1}}
	_, err := Build(line, 1, obb.AABB{})
	test.That(t, err, test.ShouldNotBeNil)
}

// TestBuildCentersSingleSegmentOnMidpoint covers a dataset AABB
// [-1,1]^3, polyline {-1,0},{1,0}, width 2.0: the resulting single
// segment must center on the world origin and its box must contain
// the origin.
func TestBuildCentersSingleSegmentOnMidpoint(t *testing.T) {
	bounds := obb.AABB{Min: r3.Vector{X: -1, Y: -1, Z: -1}, Max: r3.Vector{X: 1, Y: 1, Z: 1}}
	line := []r3.Vector{{X: -1, Y: 0}, {X: 1, Y: 0}}
	segments, err := Build(line, 2.0, bounds)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(segments), test.ShouldEqual, 1)

	seg := segments[0]
	test.That(t, seg.Mileage, test.ShouldEqual, 0.0)
	test.That(t, seg.Length, test.ShouldAlmostEqual, 2.0)
	test.That(t, seg.Box.Center.X, test.ShouldAlmostEqual, 0.0)
	test.That(t, seg.Box.Center.Y, test.ShouldAlmostEqual, 0.0)
	test.That(t, seg.Box.Center.Z, test.ShouldAlmostEqual, 0.0)
	test.That(t, seg.Box.Inside(r3.Vector{}), test.ShouldBeTrue)
}

func TestBuildRejectsNonFiniteVertex(t *testing.T) {
	line := []r3.Vector{{X: math.NaN()}, {X: 1}}
	_, err := Build(line, 1, obb.AABB{})
	test.That(t, err, test.ShouldNotBeNil)

	line = []r3.Vector{{X: 0}, {Y: math.Inf(1)}}
	_, err = Build(line, 1, obb.AABB{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBuildRejectsNonFiniteWidth(t *testing.T) {
	line := []r3.Vector{{X: -1}, {X: 1}}
	_, err := Build(line, math.Inf(1), obb.AABB{})
	test.That(t, err, test.ShouldNotBeNil)
}

// TestBuildMileageAccumulates covers a right-angle polyline whose
// second segment's mileage equals the first segment's length.
func TestBuildMileageAccumulates(t *testing.T) {
	bounds := obb.AABB{Min: r3.Vector{X: -20, Y: -20, Z: -1}, Max: r3.Vector{X: 20, Y: 20, Z: 1}}
	line := []r3.Vector{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	segments, err := Build(line, 1, bounds)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(segments), test.ShouldEqual, 2)
	test.That(t, segments[0].Mileage, test.ShouldEqual, 0.0)
	test.That(t, segments[1].Mileage, test.ShouldAlmostEqual, 10.0)

	shared := r3.Vector{X: 10, Y: 0, Z: 0}
	test.That(t, segments[0].Box.Inside(shared), test.ShouldBeTrue)
	test.That(t, segments[1].Box.Inside(shared), test.ShouldBeTrue)
}
