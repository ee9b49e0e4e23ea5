package du

import (
	"log/slog"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Options configures a scan.
type Options struct {
	// Policy decides which entries are counted and which directories are entered.
	Policy Policy
	// BlockSize is the unit every entry's usage is rounded up to.
	BlockSize BlockSize
	// Apparent counts logical lengths instead of allocated blocks.
	Apparent bool
	// Files retains a node for every counted non-directory entry.
	Files bool
	// Summarize retains only the root node; totals are unaffected.
	Summarize bool
	// Logger receives debug records about skipped entries. Nil discards them.
	Logger *slog.Logger
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// DefaultOptions returns options reporting allocated usage in 1K blocks.
func DefaultOptions() Options {
	return Options{
		Policy:           DefaultPolicy(),
		BlockSize:        DefaultBlockSize,
		ProgressInterval: DefaultProgressInterval,
	}
}

// Validate checks options before any filesystem access.
func (o Options) Validate() error {
	if _, err := NewBlockSize(uint64(o.BlockSize)); err != nil {
		return err
	}

	return o.Policy.Validate()
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return o.Logger
}

// ProgressFunc receives the number of counted entries and bytes so far.
type ProgressFunc func(entries int64, bytes uint64)

// progress throttles calls to a ProgressFunc. A nil *progress is a no-op.
type progress struct {
	hook     ProgressFunc
	interval time.Duration
	last     time.Time
	entries  int64
	bytes    uint64
}

func newProgress(hook ProgressFunc, interval time.Duration) *progress {
	if hook == nil {
		return nil
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	return &progress{hook: hook, interval: interval, last: time.Now()}
}

func (p *progress) add(u Usage) {
	if p == nil {
		return
	}

	p.entries++
	p.bytes += uint64(u)

	if now := time.Now(); now.Sub(p.last) >= p.interval {
		p.last = now
		p.hook(p.entries, p.bytes)
	}
}
