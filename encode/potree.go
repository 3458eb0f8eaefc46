package encode

import (
	"encoding/binary"
	"encoding/json"
	"io"

	"github.com/golang/geo/r3"

	"go.viam.com/potree-profile/attrs"
	"go.viam.com/potree-profile/filter"
	"go.viam.com/potree-profile/potreeerr"
)

// potreeScale is the fixed quantization step for POSITION_CARTESIAN
// and POSITION_PROJECTED_PROFILE, independent of the dataset's own coordinate scale used by the LAS
// encoder. Left unreconciled per spec §9: unifying it with the LAS
// scale would change either format's on-wire bytes.
const potreeScale = 0.001

type potreeBoundingBoxJSON struct {
	LX float64 `json:"lx"`
	LY float64 `json:"ly"`
	LZ float64 `json:"lz"`
	UX float64 `json:"ux"`
	UY float64 `json:"uy"`
	UZ float64 `json:"uz"`
}

type potreeHeaderJSON struct {
	Points          int                   `json:"points"`
	PointsProcessed int                   `json:"pointsProcessed"`
	NodesProcessed  int                   `json:"nodesProcessed"`
	DurationMS      int64                 `json:"durationMS"`
	BoundingBox     potreeBoundingBoxJSON `json:"boundingBox"`
	PointAttributes []string              `json:"pointAttributes"`
	BytesPerPoint   int                   `json:"bytesPerPoint"`
	Scale           float64               `json:"scale"`
}

// WritePotree emits results as a length-prefixed JSON header followed
// by a concatenation of per-point binary records, per spec §4.6.1.
//
// Header field order is fixed by potreeHeaderJSON's struct field
// order (Go's encoding/json preserves declaration order), matching
// spec.md's byte-level reproducibility requirement. The length-prefix
// plus staged-buffer write mirrors the raw encoding/binary +
// bytes.Buffer field-by-field staging pointcloud_file.go's
// writePCDData/ToPCD use to build a binary point stream.
func WritePotree(w io.Writer, results []filter.Result, schema attrs.Schema) (Summary, error) {
	summary := aggregate(results)
	compiled := attrs.Compile(schema)

	tags := make([]string, len(schema))
	for i, d := range schema {
		tags[i] = string(d.Tag)
	}

	header := potreeHeaderJSON{
		Points:          summary.PointsAccepted,
		PointsProcessed: summary.PointsProcessed,
		NodesProcessed:  summary.NodesProcessed,
		DurationMS:      summary.Duration,
		BoundingBox: potreeBoundingBoxJSON{
			LX: summary.Bounds.Min.X, LY: summary.Bounds.Min.Y, LZ: summary.Bounds.Min.Z,
			UX: summary.Bounds.Max.X, UY: summary.Bounds.Max.Y, UZ: summary.Bounds.Max.Z,
		},
		PointAttributes: tags,
		BytesPerPoint:   compiled.BytesPerPoint,
		Scale:           potreeScale,
	}

	raw, err := json.Marshal(header)
	if err != nil {
		return Summary{}, potreeerr.NewEncodeError(err, "marshaling potree header")
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(raw))); err != nil {
		return Summary{}, potreeerr.NewEncodeError(err, "writing potree header length prefix")
	}
	if _, err := w.Write(raw); err != nil {
		return Summary{}, potreeerr.NewEncodeError(err, "writing potree header")
	}

	buf := make([]byte, compiled.BytesPerPoint)
	for _, result := range results {
		localMin := result.Mat.Apply(r3.Vector{X: -0.5, Y: -0.5, Z: -0.5})
		axis0, _, axis2 := result.Box.Axes()

		for _, p := range result.Points {
			ctx := attrs.PointContext{
				Position:       p.Position,
				R:              p.R,
				G:              p.G,
				B:              p.B,
				Intensity:      p.Intensity,
				Classification: p.Classification,
				AggregateMin:   summary.Bounds.Min,
				Scale:          potreeScale,
				LocalMin:       localMin,
				Axis0:          axis0,
				Axis2:          axis2,
				Mileage:        result.Mileage,
			}
			compiled.WritePoint(buf, ctx)
			if _, err := w.Write(buf); err != nil {
				return Summary{}, potreeerr.NewEncodeError(err, "writing potree point record")
			}
		}
	}

	return summary, nil
}
