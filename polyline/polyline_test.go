package polyline

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestParseBasic(t *testing.T) {
	verts, err := Parse("{-1,0},{1,0}")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, verts, test.ShouldResemble, []r3.Vector{{X: -1, Y: 0}, {X: 1, Y: 0}})
}

func TestParseAllowsWhitespace(t *testing.T) {
	verts, err := Parse("  { -1 , 0 } , { 1 , 0 }  ")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, verts, test.ShouldResemble, []r3.Vector{{X: -1, Y: 0}, {X: 1, Y: 0}})
}

func TestParseThreeVertices(t *testing.T) {
	verts, err := Parse("{0,0},{10,0},{10,10}")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(verts), test.ShouldEqual, 3)
}

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse("")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestParseRejectsMalformedVertex(t *testing.T) {
	_, err := Parse("{-1}")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestParseRejectsNonNumeric(t *testing.T) {
	_, err := Parse("{a,b}")
	test.That(t, err, test.ShouldNotBeNil)
}
