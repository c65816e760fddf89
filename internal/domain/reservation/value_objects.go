package reservation

import (
	"errors"
	"fmt"
	"time"
)

// DefaultDuration fills the window end when the caller omits it.
const DefaultDuration = 2 * time.Hour

var (
	ErrEndBeforeStart = errors.New("window end must be after start")
	ErrZeroStart      = errors.New("window start is required")
)

// Window is a half-open interval [start, end). A reservation ending exactly
// when another begins does not overlap it.
type Window struct {
	start time.Time
	end   time.Time
}

// NewWindow builds a window, defaulting end to start + DefaultDuration when
// end is nil. The default is applied before any validation or conflict check.
func NewWindow(start time.Time, end *time.Time) (Window, error) {
	if start.IsZero() {
		return Window{}, ErrZeroStart
	}

	e := start.Add(DefaultDuration)
	if end != nil {
		e = *end
	}
	if !e.After(start) {
		return Window{}, ErrEndBeforeStart
	}

	return Window{start: start, end: e}, nil
}

func (w Window) Start() time.Time {
	return w.start
}

func (w Window) End() time.Time {
	return w.end
}

func (w Window) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// Overlaps implements the strict half-open rule: [s1,e1) and [s2,e2)
// overlap iff s1 < e2 && s2 < e1.
func (w Window) Overlaps(other Window) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

// Contains reports whether t falls inside [start, end).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

func (w Window) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}
