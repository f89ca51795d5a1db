package beacon

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/agbru/beaconfix/internal/errors"
)

// ID identifies one of the three fixed beacons. The declaration order is the
// identity order used for role binding and for majority tie-breaks.
type ID int

const (
	Kenobi ID = iota
	Skywalker
	Sato
)

// Count is the fixed number of beacons taking part in a round.
const Count = 3

var names = [Count]string{"kenobi", "skywalker", "sato"}

// All returns the beacon identities in identity order.
func All() [Count]ID { return [Count]ID{Kenobi, Skywalker, Sato} }

// String returns the lower-case beacon name.
func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("beacon(%d)", int(id))
	}
	return names[id]
}

// Valid reports whether id is one of the known beacons.
func (id ID) Valid() bool { return id >= Kenobi && id <= Sato }

// ParseID resolves a beacon name, ignoring case and surrounding whitespace.
//
// Parameters:
//   - name: The beacon name as received from a caller.
//
// Returns:
//   - ID: The matching beacon identity.
//   - error: A ValidationError on the "name" field if the name is unknown.
func ParseID(name string) (ID, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == normalized {
			return ID(i), nil
		}
	}
	return 0, apperrors.ValidationError{Field: "name", Message: fmt.Sprintf("unknown beacon %q", name)}
}

// Point is a position on the plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Registry maps beacon identities to their coordinates. A Registry is a value
// and is never mutated once built.
type Registry struct {
	coords [Count]Point
}

var defaultRegistry = NewRegistry(
	Point{X: -500, Y: -200},
	Point{X: 100, Y: -100},
	Point{X: 500, Y: 100},
)

// NewRegistry builds a registry from the coordinates of Kenobi, Skywalker and
// Sato, in that order.
func NewRegistry(kenobi, skywalker, sato Point) Registry {
	return Registry{coords: [Count]Point{kenobi, skywalker, sato}}
}

// DefaultRegistry returns the registry of the deployed beacons.
func DefaultRegistry() Registry { return defaultRegistry }

// Coordinates returns the position of the given beacon. Unknown identities
// resolve to the origin.
func (r Registry) Coordinates(id ID) Point {
	if !id.Valid() {
		return Point{}
	}
	return r.coords[id]
}
