package beacon

import (
	"fmt"

	apperrors "github.com/agbru/beaconfix/internal/errors"
)

// Report is the wire form of one reading, shared by the HTTP transport and
// request files. Distance is a pointer so that a missing value is told apart
// from zero.
type Report struct {
	Name     string   `json:"name,omitempty"`
	Distance *float64 `json:"distance"`
	Message  []string `json:"message"`
}

// Request is the wire form of a single-shot submission.
type Request struct {
	Satellites []Report `json:"satellites"`
}

// Reading validates the report into a Reading.
func (r Report) Reading() (Reading, error) {
	id, err := ParseID(r.Name)
	if err != nil {
		return Reading{}, err
	}
	if r.Distance == nil {
		return Reading{}, apperrors.ValidationError{Field: "distance", Message: "is required"}
	}
	return NewReading(id, *r.Distance, r.Message)
}

// Readings validates every report of the request. It requires exactly Count
// reports; whether their beacons are distinct is checked by Arrange.
func (q Request) Readings() ([]Reading, error) {
	if len(q.Satellites) != Count {
		return nil, apperrors.ValidationError{
			Field:   "satellites",
			Message: fmt.Sprintf("exactly %d readings are required, got %d", Count, len(q.Satellites)),
		}
	}
	readings := make([]Reading, 0, Count)
	for _, report := range q.Satellites {
		reading, err := report.Reading()
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, nil
}
