// Package config reads the optional dusage configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// Config represents the optional configuration file.
type Config struct {
	Defaults Defaults `toml:"defaults"`
}

// Defaults holds persistent flag defaults. Nil fields leave the built-in
// default untouched.
type Defaults struct {
	HumanReadable *bool    `toml:"human_readable"`
	SI            *bool    `toml:"si"`
	BlockSize     *string  `toml:"block_size"`
	Hidden        *bool    `toml:"hidden"`
	OneFileSystem *bool    `toml:"one_file_system"`
	CountLinks    *bool    `toml:"count_links"`
	Threshold     *string  `toml:"threshold"`
	ExcludeFrom   *string  `toml:"exclude_from"`
	Exclude       []string `toml:"exclude"`
	Output        *string  `toml:"output"`
}

// Flags maps each set default to the long flag name it provides, with the
// value in the form pflag accepts.
func (d Defaults) Flags() map[string][]string {
	out := make(map[string][]string)

	setBool := func(name string, v *bool) {
		if v != nil {
			out[name] = []string{fmt.Sprint(*v)}
		}
	}
	setString := func(name string, v *string) {
		if v != nil {
			out[name] = []string{*v}
		}
	}

	setBool("human-readable", d.HumanReadable)
	setBool("si", d.SI)
	setString("block-size", d.BlockSize)
	setBool("hidden", d.Hidden)
	setBool("one-file-system", d.OneFileSystem)
	setBool("count-links", d.CountLinks)
	setString("threshold", d.Threshold)
	setString("exclude-from", d.ExcludeFrom)
	setString("output", d.Output)

	if len(d.Exclude) > 0 {
		out["exclude"] = d.Exclude
	}

	return out
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}

	return filepath.Join(dir, "dusage", "config.toml")
}

// Load reads the config file at path. Returns a zero Config (no error) if
// path is empty or the file does not exist. Unknown keys are an error.
func Load(fsys afero.Fs, path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}

		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return cfg, nil
}
