package collision

import (
	"fmt"

	"github.com/tonyriverms/streamcodec/errs"
	"github.com/tonyriverms/streamcodec/format"
)

// Tracker records the names check codes were derived from and detects two
// different names that derive the same code.
type Tracker struct {
	names     map[format.CheckCode]string // code → name
	namesList []string                    // first-seen order
}

// NewTracker creates a tracker that already knows the two built-in check codes.
func NewTracker() *Tracker {
	t := &Tracker{
		names:     make(map[format.CheckCode]string),
		namesList: make([]string, 0),
	}
	t.seed()

	return t
}

func (t *Tracker) seed() {
	t.names[format.BlockCheckCode] = "block"
	t.names[format.SequenceCheckCode] = "sequence"
}

// TrackName records name and the code derived from it.
//
// Tracking the same name twice is allowed and returns nil; a different name
// deriving an already tracked code fails with errs.ErrCheckCodeCollision.
func (t *Tracker) TrackName(name string, code format.CheckCode) error {
	if name == "" {
		return errs.ErrInvalidGuardName
	}

	if existing, exists := t.names[code]; exists {
		if existing == name {
			return nil
		}

		return fmt.Errorf("%w: %q and %q both derive %s", errs.ErrCheckCodeCollision, existing, name, code)
	}

	t.names[code] = name
	t.namesList = append(t.namesList, name)

	return nil
}

// Names returns the tracked names in first-seen order, built-ins excluded.
func (t *Tracker) Names() []string {
	return t.namesList
}

// Count returns the number of tracked names, built-ins excluded.
func (t *Tracker) Count() int {
	return len(t.namesList)
}

// Reset forgets every tracked name.
func (t *Tracker) Reset() {
	for k := range t.names {
		delete(t.names, k)
	}
	t.namesList = t.namesList[:0]
	t.seed()
}
