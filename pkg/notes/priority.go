package notes

import (
	"errors"
	"fmt"
)

// ErrInvalidPriority is returned when a priority is not one of the three buckets.
var ErrInvalidPriority = errors.New("invalid priority")

// Priority is the bucket a note is filed under.
type Priority uint8

const (
	Important Priority = iota + 1
	Normal
	Delayed
)

var priorityNames = map[Priority]string{
	Important: "important",
	Normal:    "normal",
	Delayed:   "delayed",
}

// Priorities lists every priority in display order.
func Priorities() []Priority {
	return []Priority{Important, Normal, Delayed}
}

// ParsePriority parses the stored name of a priority.
func ParsePriority(s string) (Priority, error) {
	for p, name := range priorityNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// Valid reports whether p is one of Important, Normal or Delayed.
func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Priority(%d)", uint8(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPriority, uint8(p))
	}
	return []byte(priorityNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
