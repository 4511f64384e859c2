package beam

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/beamgrid/internal/grid"
)

// ErrInvalidEntryState is matched by every *InvalidEntryStateError through
// errors.Is.
var ErrInvalidEntryState = errors.New("invalid entry state")

// InvalidEntryStateError is returned when a simulation is requested from a
// state that does not lie on the grid. Entries are never clamped.
type InvalidEntryStateError struct {
	Entry  State
	Reason string
}

func (e *InvalidEntryStateError) Error() string {
	return fmt.Sprintf("invalid entry state %s: %s", e.Entry, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidEntryState) hold.
func (e *InvalidEntryStateError) Is(target error) bool {
	return target == ErrInvalidEntryState
}

// ValidateEntry checks that entry can start a run on g.
func ValidateEntry(g *grid.Grid, entry State) error {
	if !entry.Dir.Valid() {
		return &InvalidEntryStateError{Entry: entry, Reason: "unknown direction"}
	}
	if !g.InBounds(entry.Pos.X, entry.Pos.Y) {
		w, h := g.Dimensions()
		return &InvalidEntryStateError{
			Entry:  entry,
			Reason: fmt.Sprintf("position outside %dx%d grid", w, h),
		}
	}
	return nil
}
