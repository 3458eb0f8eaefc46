package potree

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"go.viam.com/potree-profile/attrs"
	"go.viam.com/potree-profile/obb"
	"go.viam.com/potree-profile/potreeerr"
)

// pointRecordSize is the on-disk size of one point record: three LE
// float64 coordinates, three color bytes, an LE uint16 intensity, and
// a classification byte.
const pointRecordSize = 8*3 + 1 + 1 + 1 + 2 + 1

type cloudMetaJSON struct {
	BoundingBox cloudBoxJSON       `json:"boundingBox"`
	Scale       cloudVectorJSON    `json:"scale"`
	Offset      cloudVectorJSON    `json:"offset"`
	Attributes  []cloudAttrJSON    `json:"pointAttributes"`
	Hierarchy   cloudHierarchyJSON `json:"hierarchy"`
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
	Path        string             `json:"path"`
	Octant      int                `json:"octant"`
	Level       int                `json:"level"`
	BoundingBox cloudBoxJSON       `json:"boundingBox"`
	Children    []cloudHierarchyJSON `json:"children"`
}

func (b cloudBoxJSON) toAABB() obb.AABB {
	return obb.AABB{
		Min: r3.Vector{X: b.LX, Y: b.LY, Z: b.LZ},
		Max: r3.Vector{X: b.UX, Y: b.UY, Z: b.UZ},
	}
}

func (v cloudVectorJSON) toVector() r3.Vector {
	return r3.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

// DirStore reads a directory-backed Potree dataset: a cloud.js
// metadata file at the store root and one binary point file per
// octree node under data/, named by the node's octant path.
type DirStore struct {
	root     string
	logger   golog.Logger
	meta     DatasetMeta
	rootNode *dirNode
}

// NewDirStore parses cloud.js under root and builds the in-memory node
// tree from its hierarchy summary; per-node point payloads are left
// unread until Points is first called on that node.
func NewDirStore(root string, logger golog.Logger) (*DirStore, error) {
	raw, err := os.ReadFile(filepath.Join(root, "cloud.js"))
	if err != nil {
		return nil, potreeerr.NewStorageError(err, "reading cloud.js under %s", root)
	}

	var meta cloudMetaJSON
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, potreeerr.NewStorageError(err, "parsing cloud.js under %s", root)
	}

	schema := make(attrs.Schema, 0, len(meta.Attributes))
	for _, a := range meta.Attributes {
		tag := attrs.Tag(a.Tag)
		schema = append(schema, attrs.NewOpaqueDescriptor(tag, a.Size))
	}

	s := &DirStore{
		root:   root,
		logger: logger,
		meta: DatasetMeta{
			Bounds: meta.BoundingBox.toAABB(),
			Scale:  meta.Scale.toVector(),
			Offset: meta.Offset.toVector(),
			Schema: schema,
		},
	}
	s.rootNode = s.buildNode(meta.Hierarchy)
	return s, nil
}

func (s *DirStore) buildNode(cn cloudHierarchyJSON) *dirNode {
	n := &dirNode{
		store: s,
		path:  cn.Path,
		level: cn.Level,
		bbox:  cn.BoundingBox.toAABB(),
	}
	for _, child := range cn.Children {
		childNode := s.buildNode(child)
		if child.Octant < 0 || child.Octant >= 8 {
			s.logger.Warnf("cloud.js hierarchy node %q has out-of-range octant %d, dropping from tree", child.Path, child.Octant)
			continue
		}
		n.children[child.Octant] = childNode
	}
	return n
}

// Root returns the dataset's root node.
func (s *DirStore) Root(ctx context.Context) (Node, error) {
	return s.rootNode, nil
}

// Meta returns the dataset's static metadata.
func (s *DirStore) Meta() DatasetMeta {
	return s.meta
}

// dirNode is a Node backed by one data/<path>.bin file, read and
// cached on first access via sync.Once, mirroring the lazy
// sync.Once-guarded computation spatialmath/box.go uses for its
// derived rotation matrix and mesh.
type dirNode struct {
	store *DirStore
	path  string
	level int
	bbox  obb.AABB

	children [8]Node

	once   sync.Once
	points []Point
	err    error
}

func (n *dirNode) BoundingBox() obb.AABB {
	return n.bbox
}

func (n *dirNode) Level() int {
	return n.level
}

func (n *dirNode) Children() [8]Node {
	return n.children
}

func (n *dirNode) Points(ctx context.Context) ([]Point, error) {
	n.once.Do(func() {
		n.points, n.err = n.store.readPoints(n.path)
	})
	return n.points, n.err
}

func (s *DirStore) readPoints(path string) ([]Point, error) {
	f, err := os.Open(filepath.Join(s.root, "data", path+".bin"))
	if err != nil {
		return nil, potreeerr.NewStorageError(err, "opening node data for %s", path)
	}
	defer f.Close()

	var points []Point
	var record [pointRecordSize]byte
	for {
		_, err := io.ReadFull(f, record[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, potreeerr.NewStorageError(err, "reading node data for %s", path)
		}
		points = append(points, decodePoint(record))
	}
	return points, nil
}

func decodePoint(record [pointRecordSize]byte) Point {
	x := math.Float64frombits(binary.LittleEndian.Uint64(record[0:8]))
	y := math.Float64frombits(binary.LittleEndian.Uint64(record[8:16]))
	z := math.Float64frombits(binary.LittleEndian.Uint64(record[16:24]))
	return Point{
		Position:       r3.Vector{X: x, Y: y, Z: z},
		R:              record[24],
		G:              record[25],
		B:              record[26],
		Intensity:      binary.LittleEndian.Uint16(record[27:29]),
		Classification: record[29],
	}
}
