package trilateration

import (
	"math"

	"github.com/agbru/beaconfix/internal/beacon"
	apperrors "github.com/agbru/beaconfix/internal/errors"
)

// Epsilon is the tolerance used when matching a candidate against the
// disambiguating circle.
const Epsilon = 1e-6

// Failure reasons carried by apperrors.UnsolvableError.
const (
	ReasonNoIntersection = "no intersection"
	ReasonContained      = "one circle contains the other"
	ReasonConcentric     = "base beacons share the same position"
	ReasonNegativeRadius = "intersection height is undefined"
	ReasonNoMatch        = "no candidate matches the third distance"
)

// Trilaterator resolves a point from its distances to the three beacons.
// Kenobi and Sato supply the base circles and Skywalker picks between the
// two intersection candidates. Swapping the base pair changes which
// inputs resolve.
type Trilaterator struct {
	registry beacon.Registry
	epsilon  float64
}

// Option configures a Trilaterator.
type Option func(*Trilaterator)

// WithEpsilon overrides the disambiguation tolerance.
func WithEpsilon(eps float64) Option {
	return func(t *Trilaterator) { t.epsilon = eps }
}

// New creates a Trilaterator over the given registry.
func New(registry beacon.Registry, opts ...Option) *Trilaterator {
	t := &Trilaterator{registry: registry, epsilon: Epsilon}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Locate returns the unique point at distance rKenobi from Kenobi, rSato from
// Sato and rSkywalker from Skywalker. Arguments follow role order: the two
// base circles first, then the disambiguator.
//
// Parameters:
//   - rKenobi: The distance to Kenobi (first base circle).
//   - rSato: The distance to Sato (second base circle).
//   - rSkywalker: The distance to Skywalker, matched within the tolerance.
//
// Returns:
//   - beacon.Point: The resolved position.
//   - error: An apperrors.UnsolvableError describing the geometric failure.
func (t *Trilaterator) Locate(rKenobi, rSato, rSkywalker float64) (beacon.Point, error) {
	a := t.registry.Coordinates(beacon.Kenobi)
	b := t.registry.Coordinates(beacon.Sato)
	c := t.registry.Coordinates(beacon.Skywalker)
	rA, rB, rC := rKenobi, rSato, rSkywalker

	dx, dy := b.X-a.X, b.Y-a.Y
	d := math.Hypot(dx, dy)

	switch {
	case d > rA+rB:
		return beacon.Point{}, apperrors.UnsolvableError{Reason: ReasonNoIntersection}
	case d < math.Abs(rA-rB):
		return beacon.Point{}, apperrors.UnsolvableError{Reason: ReasonContained}
	case d == 0:
		return beacon.Point{}, apperrors.UnsolvableError{Reason: ReasonConcentric}
	}

	along := (rA*rA - rB*rB + d*d) / (2 * d)
	radicand := rA*rA - along*along
	if radicand < 0 {
		// Rounding can push a tangent configuration slightly below zero.
		return beacon.Point{}, apperrors.UnsolvableError{Reason: ReasonNegativeRadius}
	}
	h := math.Sqrt(radicand)

	foot := beacon.Point{X: a.X + dx*along/d, Y: a.Y + dy*along/d}
	offX, offY := -dy*h/d, dx*h/d

	candidates := [2]beacon.Point{
		{X: foot.X + offX, Y: foot.Y + offY},
		{X: foot.X - offX, Y: foot.Y - offY},
	}
	for _, p := range candidates {
		if math.Abs(p.Distance(c)-rC) < t.epsilon {
			return p, nil
		}
	}
	return beacon.Point{}, apperrors.UnsolvableError{Reason: ReasonNoMatch}
}

// LocateSet binds the distances of an arranged round to their roles and
// resolves the position.
func (t *Trilaterator) LocateSet(set beacon.Set) (beacon.Point, error) {
	return t.Locate(set.Distances())
}
