package schedule

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

// ErrInvalidTime marks a scheduled-time input that does not parse to an
// instant. Callers surface it before attempting any mutation.
var ErrInvalidTime = errors.New("invalid scheduled time")

// ParseScheduledTime parses a user-supplied scheduled time in any of the
// common layouts (RFC3339, "2006-01-02 15:04", datetime-local, ...) and
// normalizes it to UTC for storage. Inputs without an explicit zone are
// interpreted in local time.
func ParseScheduledTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.Wrap(ErrInvalidTime, "empty")
	}
	t, err := dateparse.ParseIn(s, time.Local)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidTime, "%q", s)
	}
	return t.UTC(), nil
}
