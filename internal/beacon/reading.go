package beacon

import (
	"fmt"
	"math"

	apperrors "github.com/agbru/beaconfix/internal/errors"
)

// Reading is one beacon's reported distance together with its copy of the
// message. Readings are built through NewReading and treated as immutable.
type Reading struct {
	Beacon   ID
	Distance float64
	Words    []string
}

// NewReading validates the raw values of a submission and returns a Reading
// holding its own copy of the word list.
//
// Parameters:
//   - id: The reporting beacon.
//   - distance: The measured distance, a finite non-negative number.
//   - words: The received message copy; blank entries mark lost words.
//
// Returns:
//   - Reading: The validated reading.
//   - error: A ValidationError naming the offending field.
func NewReading(id ID, distance float64, words []string) (Reading, error) {
	if !id.Valid() {
		return Reading{}, apperrors.ValidationError{Field: "name", Message: fmt.Sprintf("unknown beacon %s", id)}
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		return Reading{}, apperrors.ValidationError{Field: "distance", Message: "must be a finite non-negative number"}
	}
	if len(words) == 0 {
		return Reading{}, apperrors.ValidationError{Field: "message", Message: "must contain at least one entry"}
	}
	return Reading{Beacon: id, Distance: distance, Words: append([]string(nil), words...)}, nil
}

// Set holds the three readings of a round indexed by beacon identity.
type Set [Count]Reading

// Distances returns the distances in trilateration role order: the base
// circles Kenobi and Sato, then the disambiguator Skywalker.
func (s Set) Distances() (kenobi, sato, skywalker float64) {
	return s[Kenobi].Distance, s[Sato].Distance, s[Skywalker].Distance
}

// Messages returns the message copies in identity order.
func (s Set) Messages() [Count][]string {
	return [Count][]string{s[Kenobi].Words, s[Skywalker].Words, s[Sato].Words}
}

// Arrange orders readings by beacon identity. It requires exactly three
// readings from pairwise-distinct beacons, whatever their arrival order.
//
// Returns:
//   - Set: The readings indexed by identity.
//   - error: A ValidationError on the "round" field otherwise.
func Arrange(readings []Reading) (Set, error) {
	var set Set
	if len(readings) != Count {
		return set, apperrors.ValidationError{
			Field:   "round",
			Message: fmt.Sprintf("expected %d readings, got %d", Count, len(readings)),
		}
	}
	var seen [Count]bool
	for _, r := range readings {
		if !r.Beacon.Valid() {
			return set, apperrors.ValidationError{Field: "round", Message: fmt.Sprintf("unknown beacon %s", r.Beacon)}
		}
		if seen[r.Beacon] {
			return set, apperrors.ValidationError{Field: "round", Message: fmt.Sprintf("duplicate reading from %s", r.Beacon)}
		}
		seen[r.Beacon] = true
		set[r.Beacon] = r
	}
	return set, nil
}
