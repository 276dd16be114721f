package scene

import (
	"fmt"
	"strings"
)

// ShapeKind selects which solid variant is visible.
type ShapeKind int

const (
	// ShapeSinglePyramid is one apex-up pyramid.
	ShapeSinglePyramid ShapeKind = iota
	// ShapeBiPyramid is two pyramids joined base to base with a gap.
	ShapeBiPyramid
)

// ShapeNames lists the display names of every ShapeKind in declaration order.
var ShapeNames = []string{"Single Pyramid", "Bi-Pyramid"}

func (k ShapeKind) String() string {
	if k < 0 || int(k) >= len(ShapeNames) {
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
	return ShapeNames[k]
}

// ParseShape converts a display name (case-insensitive) back into a ShapeKind.
//
// Parameters:
//   - name: the display name, e.g. "Bi-Pyramid"
//
// Returns:
//   - ShapeKind: the matching kind
//   - error: error if the name matches no kind
func ParseShape(name string) (ShapeKind, error) {
	for i, n := range ShapeNames {
		if strings.EqualFold(n, name) {
			return ShapeKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q", name)
}
