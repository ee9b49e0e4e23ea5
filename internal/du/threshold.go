package du

import (
	"fmt"
	"strings"
)

// Threshold selects which nodes are displayed. It never alters usage values.
//
// A positive threshold admits usage >= threshold. A negative threshold admits
// usage <= |threshold|. Zero admits everything.
type Threshold struct {
	limit   uint64
	atMost  bool
	enabled bool
}

// NewThreshold creates a threshold from a byte count and direction.
func NewThreshold(limit uint64, atMost bool) Threshold {
	return Threshold{limit: limit, atMost: atMost, enabled: limit > 0 || atMost}
}

// ParseThreshold parses sizes like "10M" or "-512K". An empty string yields
// a threshold that admits everything.
func ParseThreshold(s string) (Threshold, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Threshold{}, nil
	}

	atMost := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	limit, err := ParseSize(s)
	if err != nil {
		return Threshold{}, &ConfigError{Field: "threshold", Reason: fmt.Sprintf("parsing %q: %v", s, err)}
	}

	return NewThreshold(limit, atMost), nil
}

// Admits reports whether a node with usage u passes the threshold.
func (t Threshold) Admits(u Usage) bool {
	switch {
	case !t.enabled:
		return true
	case t.atMost:
		return uint64(u) <= t.limit
	default:
		return uint64(u) >= t.limit
	}
}

// String renders the threshold in its parseable form.
func (t Threshold) String() string {
	if t.atMost {
		return fmt.Sprintf("-%d", t.limit)
	}

	return fmt.Sprintf("%d", t.limit)
}
