package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/moby/sys/mountinfo"

	"github.com/idelchi/dusage/internal/du"
)

// ErrIncomplete is returned when some paths could not be scanned fully.
// The individual failures have already been written to stderr.
var ErrIncomplete = errors.New("some paths could not be scanned")

func logic(ctx context.Context, s settings, stdout, stderr io.Writer) error {
	logger := newLogger(stderr, s.Debug)
	s.Options.Logger = logger

	if s.Options.Policy.OneFileSystem {
		logMounts(logger, s.Roots)
	}

	enableProgress := s.Output != "json" && !s.Debug && isTerminal(stderr)

	// Simple progress callback that prints directly to stderr
	var progressHook du.ProgressFunc

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(entries int64, bytes uint64) {
			msg := fmt.Sprintf("Scanning… %d entries, %s", entries, humanize.IBytes(bytes))
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	report, err := du.Run(ctx, s.Options, s.Roots, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	v := view{
		Units:     s.Units,
		BlockSize: s.Options.BlockSize,
		Threshold: s.Threshold,
		Summarize: s.Options.Summarize,
		Total:     s.Total,
	}

	switch s.Output {
	case "json":
		err = PrintJSON(report, v, stdout)
	default:
		err = PrintTable(report, v, stdout)
	}

	if err != nil {
		return err
	}

	if report.Err() != nil {
		PrintErrors(report, stderr)

		return ErrIncomplete
	}

	return nil
}

// newLogger returns a text logger on w at debug level when enabled,
// otherwise at warn level.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

// logMounts reports the mount points below each root, which --one-file-system
// will not enter.
func logMounts(logger *slog.Logger, roots []string) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			logger.Debug("resolving root", "root", root, "error", err)

			continue
		}

		mounts, err := mountinfo.GetMounts(mountinfo.PrefixFilter(abs))
		if err != nil {
			logger.Debug("reading mount table", "error", err)

			return
		}

		for _, m := range mounts {
			if m.Mountpoint == abs {
				continue
			}

			logger.Debug("mount point will be skipped", "root", root, "mountpoint", m.Mountpoint, "fstype", m.FSType)
		}
	}
}
