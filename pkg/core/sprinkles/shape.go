package sprinkles

import "fmt"

// Shape is a sprinkle stroke archetype.
type Shape uint8

const (
	Straight Shape = iota
	GentleBend
	Banana
	SubtleWave
	Stubby
)

// Shapes lists every archetype in index order.
var Shapes = [...]Shape{Straight, GentleBend, Banana, SubtleWave, Stubby}

var shapeInfo = [...]struct {
	name string
	path string
}{
	Straight:   {"straight", "M-15,0 L15,0"},
	GentleBend: {"gentle-bend", "M-15,0 Q0,-6 15,0"},
	Banana:     {"banana", "M-14,0 Q0,-12 14,0"},
	SubtleWave: {"subtle-wave", "M-16,0 Q-8,-5 0,0 T16,0"},
	Stubby:     {"stubby", "M-10,0 L10,0"},
}

// Valid reports whether s is one of the defined archetypes.
func (s Shape) Valid() bool { return int(s) < len(shapeInfo) }

// Path returns the stroke path of the shape, centered on the origin and
// laid out along the X axis.
func (s Shape) Path() string {
	if !s.Valid() {
		return ""
	}
	return shapeInfo[s].path
}

func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
	return shapeInfo[s].name
}

// MarshalText encodes the shape by name.
func (s Shape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid shape %d", uint8(s))
	}
	return []byte(shapeInfo[s].name), nil
}

// UnmarshalText decodes a shape name.
func (s *Shape) UnmarshalText(b []byte) error {
	for i, info := range shapeInfo {
		if info.name == string(b) {
			*s = Shape(i)
			return nil
		}
	}
	return fmt.Errorf("unknown shape %q", b)
}
