package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/dusage/internal/config"
	"github.com/idelchi/dusage/internal/du"
	"github.com/idelchi/dusage/internal/exclude"
	"github.com/idelchi/dusage/internal/integration"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// allowedOutputs lists the supported output formats.
//
//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"table", "json"}

// flags holds the raw command-line values.
type flags struct {
	all           bool
	hidden        bool
	human         bool
	si            bool
	bytes         bool
	apparent      bool
	summarize     bool
	total         bool
	oneFileSystem bool
	countLinks    bool
	debug         bool
	version       bool
	integration   bool
	help          bool
	maxDepth      int
	blockSize     string
	threshold     string
	excludeFrom   string
	excludes      []string
	output        string
	configPath    string
}

// settings is the validated form of flags handed to logic.
type settings struct {
	Options   du.Options
	Roots     []string
	Units     du.Units
	Threshold du.Threshold
	Total     bool
	Output    string
	Debug     bool
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute(ctx context.Context) error {
	return c.Command().ExecuteContext(ctx)
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "dusage [flags] [path...]",
		Short: "Estimate disk usage of directory trees",
		Long: heredoc.Doc(`
			dusage estimates the disk space used by each directory below the given paths.

			Positional Arguments:
			  path                   Files or directories to analyze. Defaults to the current directory.

			Sizes are reported in 1K blocks unless -h, --si, -b or -B is given.
			Depth, exclusion and --one-file-system prune directories before they are read.
			The threshold only hides lines; totals always include hidden entries.

			Defaults can be set in $XDG_CONFIG_HOME/dusage/config.toml under [defaults].

			The '-i' flag prints a zsh integration that browses the output with 'fzf'.
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.help {
				return cmd.Help()
			}

			if f.version {
				fmt.Fprintln(cmd.OutOrStdout(), c.version)

				return nil
			}

			if f.integration {
				rendered, err := integration.Render()
				if err != nil {
					return fmt.Errorf("rendering integration script: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), rendered)

				return nil
			}

			fsys := afero.NewOsFs()

			cfg, err := config.Load(fsys, f.configPath)
			if err != nil {
				return err
			}

			if err := applyConfigDefaults(cmd.Flags(), cfg.Defaults); err != nil {
				return err
			}

			s, err := f.settings(fsys, args)
			if err != nil {
				return err
			}

			return logic(cmd.Context(), s, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	fs := cmd.Flags()
	fs.SortFlags = false

	fs.BoolVarP(&f.all, "all", "a", false, "List files as well as directories, including hidden entries")
	fs.BoolVar(&f.hidden, "hidden", false, "Include hidden entries")
	fs.BoolVarP(&f.human, "human-readable", "h", false, "Print sizes in powers of 1024 (KiB, MiB, ...)")
	fs.BoolVar(&f.si, "si", false, "Print sizes in powers of 1000 (kB, MB, ...)")
	fs.BoolVarP(&f.bytes, "bytes", "b", false, "Print apparent sizes in bytes")
	fs.BoolVar(&f.apparent, "apparent-size", false, "Count logical sizes instead of allocated blocks")
	fs.StringVarP(&f.blockSize, "block-size", "B", "", "Count and print sizes in blocks of this size (e.g., 4K, 1M)")
	fs.BoolVarP(&f.summarize, "summarize", "s", false, "Display only a total for each argument")
	fs.BoolVarP(&f.total, "total", "c", false, "Produce a grand total")
	fs.IntVarP(&f.maxDepth, "max-depth", "d", du.Unlimited, "Do not descend more than N levels below a path (-1=unlimited)")
	fs.StringVarP(&f.threshold, "threshold", "t", "",
		"Hide entries smaller than SIZE, or larger than SIZE when negative (e.g., 1M, -4K)")
	fs.BoolVarP(&f.oneFileSystem, "one-file-system", "x", false, "Skip directories on different file systems")
	fs.StringVarP(&f.excludeFrom, "exclude-from", "X", "", "Exclude paths matching any pattern in FILE")
	fs.StringSliceVarP(&f.excludes, "exclude", "e", nil, "Exclude paths matching PATTERN (prefix or glob)")
	fs.BoolVarP(&f.countLinks, "count-links", "l", false, "Count sizes many times if hard linked")
	fs.StringVarP(&f.output, "output", "o", "table", "Output format: json or table")
	fs.StringVar(&f.configPath, "config", config.Path(), "Path to the config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug output")
	fs.BoolVarP(&f.version, "version", "v", false, "Show version and exit")
	fs.BoolVarP(&f.integration, "init", "i", false, "Output init script for shell usage")
	// Registered without shorthand so that -h stays --human-readable.
	fs.BoolVar(&f.help, "help", false, "Show help")

	return cmd
}

// applyConfigDefaults sets config values for flags not explicitly given.
func applyConfigDefaults(fs *pflag.FlagSet, defaults config.Defaults) error {
	for name, values := range defaults.Flags() {
		flag := fs.Lookup(name)
		if flag == nil || flag.Changed {
			continue
		}

		for _, v := range values {
			if err := fs.Set(name, v); err != nil {
				return fmt.Errorf("config default for --%s: %w", name, err)
			}
		}
	}

	return nil
}

// settings validates the flags and builds the scan options.
func (f flags) settings(fsys afero.Fs, args []string) (settings, error) {
	if !slices.Contains(allowedOutputs, f.output) {
		return settings{}, fmt.Errorf("invalid output format %q: must be one of %v", f.output, allowedOutputs)
	}

	opts := du.DefaultOptions()
	opts.Policy.IncludeHidden = f.hidden || f.all
	opts.Policy.OneFileSystem = f.oneFileSystem
	opts.Policy.MaxDepth = f.maxDepth
	opts.Policy.CountLinks = f.countLinks
	opts.Files = f.all
	opts.Summarize = f.summarize
	opts.Apparent = f.apparent

	units := du.UnitsBlocks

	switch {
	case f.human:
		units, opts.BlockSize = du.UnitsHuman, 1
	case f.si:
		units, opts.BlockSize = du.UnitsSI, 1
	case f.bytes:
		units, opts.BlockSize, opts.Apparent = du.UnitsBytes, 1, true
	case f.blockSize != "":
		n, err := du.ParseSize(f.blockSize)
		if err != nil {
			return settings{}, fmt.Errorf("invalid block-size: %w", err)
		}

		if opts.BlockSize, err = du.NewBlockSize(n); err != nil {
			return settings{}, err
		}
	}

	threshold, err := du.ParseThreshold(f.threshold)
	if err != nil {
		return settings{}, err
	}

	patterns := slices.Clone(f.excludes)

	if f.excludeFrom != "" {
		loaded, err := exclude.Load(fsys, f.excludeFrom)
		if err != nil {
			return settings{}, err
		}

		patterns = append(patterns, loaded...)
	}

	if opts.Policy.Excludes, err = du.NewPatterns(patterns...); err != nil {
		return settings{}, err
	}

	if err := opts.Validate(); err != nil {
		return settings{}, err
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	return settings{
		Options:   opts,
		Roots:     roots,
		Units:     units,
		Threshold: threshold,
		Total:     f.total,
		Output:    f.output,
		Debug:     f.debug,
	}, nil
}
