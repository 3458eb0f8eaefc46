package encode

import (
	"io"
	"os"

	"github.com/edaniels/lidario"
	"go.uber.org/multierr"

	"go.viam.com/potree-profile/filter"
	"go.viam.com/potree-profile/potree"
	"go.viam.com/potree-profile/potreeerr"
)

const (
	lasSystemID           = "PotreeElevationProfile          "
	lasGeneratingSoftware = "PotreeElevationProfile          "
)

// WriteLAS emits results as an ASPRS LAS 1.2 Point Format 2 stream, per
// spec §4.6.2. Header scale, offset, and bounding box come from meta,
// not from the accepted points, matching the encoder's documented
// contract that LAS bounds are dataset-level, unlike POTREE's
// per-query recomputed bounds.
//
// lidario only writes to a named file, while the dispatcher owns a
// plain io.Writer sink it never lets an encoder close (§9); WriteLAS
// bridges the two by staging the file in a temp directory and copying
// it to w before cleaning up.
//
// Grounded directly on pointcloud_file.go's WriteToLASFile: the same
// lidario.NewLasFile/AddHeader/AddLasPoint/Close sequence, and the
// same multierr.Combine(err, closeErr) pattern for the deferred Close.
func WriteLAS(w io.Writer, results []filter.Result, meta potree.DatasetMeta) (Summary, error) {
	tmp, err := os.CreateTemp("", "potreeprofile-las-*.las")
	if err != nil {
		return Summary{}, potreeerr.NewEncodeError(err, "creating LAS staging file")
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := writeLASFile(tmpPath, results, meta); err != nil {
		return Summary{}, err
	}

	staged, err := os.Open(tmpPath)
	if err != nil {
		return Summary{}, potreeerr.NewEncodeError(err, "reopening LAS staging file")
	}
	defer staged.Close()

	if _, err := io.Copy(w, staged); err != nil {
		return Summary{}, potreeerr.NewEncodeError(err, "copying LAS output to sink")
	}

	return aggregate(results), nil
}

func writeLASFile(path string, results []filter.Result, meta potree.DatasetMeta) (err error) {
	lf, err := lidario.NewLasFile(path, "w")
	if err != nil {
		return potreeerr.NewEncodeError(err, "opening LAS writer")
	}
	defer func() {
		cerr := lf.Close()
		err = multierr.Combine(err, cerr)
	}()

	if herr := lf.AddHeader(lidario.LasHeader{
		PointFormatID:      2,
		SystemID:           lasSystemID,
		GeneratingSoftware: lasGeneratingSoftware,
		XScaleFactor:       meta.Scale.X,
		YScaleFactor:       meta.Scale.Y,
		ZScaleFactor:       meta.Scale.Z,
		XOffset:            meta.Offset.X,
		YOffset:            meta.Offset.Y,
		ZOffset:            meta.Offset.Z,
		MinX:               meta.Bounds.Min.X,
		MinY:               meta.Bounds.Min.Y,
		MinZ:               meta.Bounds.Min.Z,
		MaxX:               meta.Bounds.Max.X,
		MaxY:               meta.Bounds.Max.Y,
		MaxZ:               meta.Bounds.Max.Z,
	}); herr != nil {
		return potreeerr.NewEncodeError(herr, "writing LAS header")
	}

	for _, result := range results {
		for _, p := range result.Points {
			// Bytes 14..19 (return/class/scan fields) are zero per
			// spec §4.6.2; BitField and ClassBitField are left at
			// their zero values rather than set from p.Classification.
			pr0 := &lidario.PointRecord0{
				X:         p.Position.X,
				Y:         p.Position.Y,
				Z:         p.Position.Z,
				Intensity: p.Intensity,
			}
			lp := &lidario.PointRecord2{
				PointRecord0: pr0,
				RGB: &lidario.RgbData{
					Red:   uint16(p.R),
					Green: uint16(p.G),
					Blue:  uint16(p.B),
				},
			}
			if aerr := lf.AddLasPoint(lp); aerr != nil {
				return potreeerr.NewEncodeError(aerr, "writing LAS point record")
			}
		}
	}
	return nil
}
