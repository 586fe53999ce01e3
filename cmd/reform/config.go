package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"reform/internal/diag"
	"reform/internal/dialect"
	"reform/internal/options"
	"reform/internal/source"
)

// defaultConfigFile is read from the working directory when -c is not given.
const defaultConfigFile = "reform.cfg"

// configSource collects everything that shapes the option set of a run.
type configSource struct {
	path  string
	types []string
	sets  []string
}

// loadedConfig is the option set plus whatever the loaders had to say.
type loadedConfig struct {
	cfg  *options.Config
	fs   *source.FileSet
	bag  *diag.Bag
	path string
}

// loadConfig builds the run configuration: defaults, then the config file,
// then type files, then --set overrides. Unknown keys end up as warnings in
// the returned bag; a bad value is a fatal error.
func loadConfig(src configSource, maxDiagnostics int) (*loadedConfig, error) {
	out := &loadedConfig{
		cfg: options.Defaults(),
		fs:  source.NewFileSet(),
		bag: diag.NewBag(maxDiagnostics),
	}

	path := src.path
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		if err := options.LoadFile(out.fs, path, out.cfg, diag.BagReporter{Bag: out.bag}); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		out.path = path
	}

	for _, tp := range src.types {
		if err := options.LoadTypes(tp, out.cfg); err != nil {
			return nil, fmt.Errorf("types %s: %w", tp, err)
		}
	}

	for _, kv := range src.sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: expected name=value", kv)
		}
		if err := out.cfg.Set(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
			return nil, fmt.Errorf("--set: %w", err)
		}
	}
	return out, nil
}

// parseLangFlag maps -l to a language. An unknown tag is not fatal: the
// warning goes to warn and the language is inferred per file.
func parseLangFlag(tag string, warn io.Writer) dialect.Lang {
	if tag == "" {
		return dialect.None
	}
	lang, ok := dialect.FromTag(tag)
	if !ok {
		fmt.Fprintf(warn, "reform: ignoring unknown language %q\n", tag)
		return dialect.None
	}
	return lang
}
