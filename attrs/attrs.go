// Package attrs describes point-attribute schemas and compiles them
// into small per-attribute writer closures, the same compile-once,
// apply-many shape the teacher's pcdFieldType-tagged switch in
// pointcloud_file.go's readSliceToPoint approximates with a runtime
// dispatch on every field; here the dispatch happens once, at Compile
// time, not once per point per attribute.
package attrs

import "github.com/edaniels/golog"

// Tag names a point attribute. The closed set of known tags below get
// fixed encodings; any other tag is opaque and padded with zero bytes.
type Tag string

const (
	PositionCartesian        Tag = "POSITION_CARTESIAN"
	PositionProjectedProfile Tag = "POSITION_PROJECTED_PROFILE"
	ColorPacked              Tag = "COLOR_PACKED"
	RGB                      Tag = "RGB"
	Intensity                Tag = "INTENSITY"
	Classification           Tag = "CLASSIFICATION"
)

var knownSizes = map[Tag]int{
	PositionCartesian:        12,
	PositionProjectedProfile: 8,
	ColorPacked:              4,
	RGB:                      3,
	Intensity:                2,
	Classification:           1,
}

func (t Tag) known() bool {
	_, ok := knownSizes[t]
	return ok
}

// Descriptor is one entry of a Schema: an attribute tag and its
// encoded byte size.
type Descriptor struct {
	Tag  Tag
	Size int
}

// NewDescriptor builds a Descriptor for a known tag, using its fixed
// encoded size.
func NewDescriptor(tag Tag) Descriptor {
	return Descriptor{Tag: tag, Size: knownSizes[tag]}
}

// NewOpaqueDescriptor builds a Descriptor for a tag the core does not
// interpret, carrying its own declared byte size.
func NewOpaqueDescriptor(tag Tag, size int) Descriptor {
	return Descriptor{Tag: tag, Size: size}
}

// Schema is an ordered list of attribute descriptors.
type Schema []Descriptor

// BytesPerPoint returns the sum of every descriptor's size.
func (s Schema) BytesPerPoint() int {
	total := 0
	for _, d := range s {
		total += d.Size
	}
	return total
}

// Resolve implements spec §4.7: if explicit is non-empty, use it
// verbatim (unknown tags fall back to the dataset schema's declared
// size for that tag, or zero if the dataset schema doesn't name it
// either). Otherwise default to the dataset's stored schema with
// POSITION_PROJECTED_PROFILE appended.
func Resolve(explicit []Tag, datasetSchema Schema, logger golog.Logger) Schema {
	if len(explicit) == 0 {
		logger.Debugw("no output attributes requested, defaulting to dataset schema plus projected profile position",
			"datasetAttributes", len(datasetSchema))
		out := make(Schema, len(datasetSchema), len(datasetSchema)+1)
		copy(out, datasetSchema)
		return append(out, NewDescriptor(PositionProjectedProfile))
	}

	out := make(Schema, 0, len(explicit))
	for _, tag := range explicit {
		if tag.known() {
			out = append(out, NewDescriptor(tag))
			continue
		}
		size := 0
		found := false
		for _, d := range datasetSchema {
			if d.Tag == tag {
				size = d.Size
				found = true
				break
			}
		}
		if !found {
			logger.Warnf("output attribute %q is not a known tag and not declared in the dataset schema, defaulting to zero size", tag)
		}
		out = append(out, NewOpaqueDescriptor(tag, size))
	}
	return out
}
