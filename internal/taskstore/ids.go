package taskstore

import (
	"time"

	"github.com/google/uuid"
)

// newTaskID returns a time-ordered unique task id.
func newTaskID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// idSource hands out notification ids seeded from the clock in milliseconds.
// Ids are strictly increasing within a Store.
type idSource struct {
	last int
}

func (s *idSource) next(now time.Time) int {
	id := int(now.UnixMilli())
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
