// Package polyline parses the --coordinates literal into a sequence of
// 2-D points (Z left at zero; callers combine with a dataset's Z
// center as profile.Build requires).
package polyline

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/golang/geo/r3"

	"go.viam.com/potree-profile/potreeerr"
)

var braceStripper = strings.NewReplacer("{", "", "}", "")

func dropWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Parse accepts a literal of the form "{x,y},{x,y},..." with optional
// interior and surrounding whitespace, and returns the parsed
// vertices in order. Fails with InvalidArgument on any malformed
// vertex or an odd number of coordinates.
func Parse(s string) ([]r3.Vector, error) {
	flat := braceStripper.Replace(dropWhitespace(s))
	if flat == "" {
		return nil, potreeerr.NewInvalidArgument("empty polyline literal")
	}

	tokens := strings.Split(flat, ",")
	if len(tokens)%2 != 0 {
		return nil, potreeerr.NewInvalidArgument("polyline literal %q has an odd number of coordinates", s)
	}

	verts := make([]r3.Vector, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		x, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return nil, potreeerr.NewInvalidArgument("polyline literal %q has a malformed x coordinate: %v", s, err)
		}
		y, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return nil, potreeerr.NewInvalidArgument("polyline literal %q has a malformed y coordinate: %v", s, err)
		}
		verts = append(verts, r3.Vector{X: x, Y: y})
	}
	return verts, nil
}
