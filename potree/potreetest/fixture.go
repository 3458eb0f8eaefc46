// Package potreetest builds small synthetic Potree directory stores
// under a test's temp directory, mirroring the role
// pointcloud/testutils.go plays for that package's own tests: a place
// for shared fixture builders instead of hand-rolled setup repeated in
// every test file.
package potreetest

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/edaniels/golog"

	"go.viam.com/potree-profile/potree"
)

// NodeSpec describes one fixture node: its octant path, level, bounds,
// the points stored directly on it, and its children.
type NodeSpec struct {
	Path     string
	Octant   int
	Level    int
	Bounds   Box
	Points   []potree.Point
	Children []NodeSpec
}

// Box is a plain min/max box, kept independent of obb.AABB so this
// package has no dependency beyond potree itself.
type Box struct {
	Min, Max [3]float64
}

// Meta describes the dataset-level fields written to cloud.js.
type Meta struct {
	Bounds     Box
	Scale      [3]float64
	Offset     [3]float64
	Attributes []Attr
}

// Attr is one stored-schema attribute tag/size pair.
type Attr struct {
	Tag  string
	Size int
}

type cloudBoxJSON struct {
	LX, LY, LZ float64
	UX, UY, UZ float64
}

type cloudVectorJSON struct {
	X, Y, Z float64
}

type cloudAttrJSON struct {
	Tag  string `json:"tag"`
	Size int    `json:"size"`
}

type cloudHierarchyJSON struct {
	Path        string               `json:"path"`
	Octant      int                  `json:"octant"`
	Level       int                  `json:"level"`
	BoundingBox cloudBoxJSON         `json:"boundingBox"`
	Children    []cloudHierarchyJSON `json:"children"`
}

type cloudMetaJSON struct {
	BoundingBox cloudBoxJSON       `json:"boundingBox"`
	Scale       cloudVectorJSON    `json:"scale"`
	Offset      cloudVectorJSON    `json:"offset"`
	Attributes  []cloudAttrJSON    `json:"pointAttributes"`
	Hierarchy   cloudHierarchyJSON `json:"hierarchy"`
}

func boxJSON(b Box) cloudBoxJSON {
	return cloudBoxJSON{LX: b.Min[0], LY: b.Min[1], LZ: b.Min[2], UX: b.Max[0], UY: b.Max[1], UZ: b.Max[2]}
}

// New writes meta and tree as a cloud.js + data/*.bin directory store
// under a fresh t.TempDir() and opens it with potree.NewDirStore.
func New(t *testing.T, meta Meta, tree NodeSpec) *potree.DirStore {
	t.Helper()
	root := t.TempDir()

	attrsJSON := make([]cloudAttrJSON, 0, len(meta.Attributes))
	for _, a := range meta.Attributes {
		attrsJSON = append(attrsJSON, cloudAttrJSON{Tag: a.Tag, Size: a.Size})
	}

	cloud := cloudMetaJSON{
		BoundingBox: boxJSON(meta.Bounds),
		Scale:       cloudVectorJSON{X: meta.Scale[0], Y: meta.Scale[1], Z: meta.Scale[2]},
		Offset:      cloudVectorJSON{X: meta.Offset[0], Y: meta.Offset[1], Z: meta.Offset[2]},
		Attributes:  attrsJSON,
		Hierarchy:   writeHierarchy(t, root, tree),
	}

	raw, err := json.Marshal(cloud)
	if err != nil {
		t.Fatalf("marshaling fixture cloud.js: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "cloud.js"), raw, 0o644); err != nil {
		t.Fatalf("writing fixture cloud.js: %v", err)
	}

	store, err := potree.NewDirStore(root, golog.NewTestLogger(t))
	if err != nil {
		t.Fatalf("opening fixture store: %v", err)
	}
	return store
}

func writeHierarchy(t *testing.T, root string, n NodeSpec) cloudHierarchyJSON {
	t.Helper()
	writePointFile(t, root, n.Path, n.Points)

	children := make([]cloudHierarchyJSON, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, writeHierarchy(t, root, c))
	}
	return cloudHierarchyJSON{
		Path:        n.Path,
		Octant:      n.Octant,
		Level:       n.Level,
		BoundingBox: boxJSON(n.Bounds),
		Children:    children,
	}
}

func writePointFile(t *testing.T, root, path string, points []potree.Point) {
	t.Helper()
	dataDir := filepath.Join(root, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("creating fixture data dir: %v", err)
	}

	buf := make([]byte, 0, len(points)*30)
	for _, p := range points {
		var record [30]byte
		binary.LittleEndian.PutUint64(record[0:8], math.Float64bits(p.Position.X))
		binary.LittleEndian.PutUint64(record[8:16], math.Float64bits(p.Position.Y))
		binary.LittleEndian.PutUint64(record[16:24], math.Float64bits(p.Position.Z))
		record[24], record[25], record[26] = p.R, p.G, p.B
		binary.LittleEndian.PutUint16(record[27:29], p.Intensity)
		record[29] = p.Classification
		buf = append(buf, record[:]...)
	}

	if err := os.WriteFile(filepath.Join(dataDir, path+".bin"), buf, 0o644); err != nil {
		t.Fatalf("writing fixture node data for %s: %v", path, err)
	}
}
