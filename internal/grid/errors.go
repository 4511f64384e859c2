package grid

import (
	"errors"
	"fmt"
)

// ErrMalformedGrid is matched by every *MalformedGridError through errors.Is.
var ErrMalformedGrid = errors.New("malformed grid")

// MalformedGridError reports input that cannot form a rectangular grid of
// known symbols. Row and Col are zero-based; -1 means the field does not
// apply.
type MalformedGridError struct {
	Row    int
	Col    int
	Reason string
}

func (e *MalformedGridError) Error() string {
	switch {
	case e.Row < 0:
		return fmt.Sprintf("malformed grid: %s", e.Reason)
	case e.Col < 0:
		return fmt.Sprintf("malformed grid: row %d: %s", e.Row, e.Reason)
	default:
		return fmt.Sprintf("malformed grid: row %d, column %d: %s", e.Row, e.Col, e.Reason)
	}
}

// Is makes errors.Is(err, ErrMalformedGrid) hold.
func (e *MalformedGridError) Is(target error) bool {
	return target == ErrMalformedGrid
}
