package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"reform/internal/diag"
	"reform/internal/dialect"
	"reform/internal/observ"
	"reform/internal/options"
	"reform/internal/output"
	"reform/internal/source"
	"reform/internal/state"
	"reform/internal/trace"
	"reform/internal/version"
)

// FormatOptions configures code formatting.
type FormatOptions struct {
	Config *options.Config
	// Lang forces the language; dialect.None picks it from the file name.
	Lang dialect.Lang
	// SniffHeaders re-classifies .h files whose content looks like C++.
	SniffHeaders   bool
	Check          bool
	Stdout         bool
	MaxDiagnostics int

	// Parsed receives the annotated chunk dump of every file.
	Parsed       io.Writer
	ParsedFormat string

	Timer    *observ.Timer
	Progress ProgressSink
	Cache    *DiskCache
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Lang      dialect.Lang
	Changed   bool
	Cached    bool
	Err       error
	Formatted []byte
	Stats     state.Stats
	FileSet   *source.FileSet
	Bag       *diag.Bag
}

func (o *FormatOptions) config() *options.Config {
	if o.Config == nil {
		o.Config = options.Defaults()
	}
	return o.Config
}

func (o *FormatOptions) newBag() *diag.Bag {
	maxDiag := o.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 256
	}
	return diag.NewBag(maxDiag)
}

// FormatPaths formats provided files or directories (recursively collecting
// files with a known extension). Files are handled one after another; ctx
// is checked between files. When opts.Check is true, files are not
// modified; Changed indicates whether formatting would update the file.
// When opts.Stdout is true, formatted content is returned in the results
// without touching files on disk.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := CollectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "format", trace.CurrentSpan(ctx))
	defer span.End(fmt.Sprintf("%d files", len(files)))
	ctx = trace.WithSpan(ctx, span.ID())

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		started := time.Now()
		result := formatFile(ctx, path, &opts)
		ev := Event{File: path, Phase: PhaseWrite, Status: StatusDone, Changed: result.Changed, Elapsed: time.Since(started)}
		if result.Err != nil {
			ev.Status, ev.Err = StatusError, result.Err
		}
		emit(opts.Progress, ev)
		results = append(results, result)
	}
	return results, nil
}

func formatFile(ctx context.Context, path string, opts *FormatOptions) FormatResult {
	result := FormatResult{Path: path}
	// #nosec G304 -- path comes from the command line
	raw, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("read %s: %w", path, err)
		return result
	}

	res, err := FormatBytes(ctx, path, raw, opts)
	res.Path = path
	if err != nil {
		res.Err = err
		return res
	}
	if opts.Check || opts.Stdout || !res.Changed {
		return res
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, res.Formatted, mode.Perm()); err != nil {
		res.Err = fmt.Errorf("write %s: %w", path, err)
		res.Changed = false
	}
	return res
}

// FormatBytes formats raw file content. name picks the language unless
// opts.Lang is set and is used in diagnostics. The returned Formatted
// carries the input's line endings and BOM.
func FormatBytes(ctx context.Context, name string, raw []byte, opts *FormatOptions) (FormatResult, error) {
	result := FormatResult{Path: name, FileSet: source.NewFileSet(), Bag: opts.newBag()}
	cfg := opts.config()

	content, flags, err := source.Normalize(raw)
	if err != nil {
		return result, fmt.Errorf("%s: %w", name, err)
	}
	file := result.FileSet.Get(result.FileSet.Add(name, content, flags))
	result.Lang = ResolveLang(name, file.Content, opts.Lang, opts.SniffHeaders)

	var key Digest
	useCache := opts.Cache != nil && opts.Parsed == nil
	if useCache {
		key = CacheKey(file, result.Lang, cfg)
		var hit DiskPayload
		if ok, err := opts.Cache.Get(key, &hit); err == nil && ok && hit.Clean && hit.ContentHash == Digest(file.Hash) {
			result.Cached = true
			result.Formatted = raw
			return result, nil
		}
	}

	out, sc, err := FormatSource(ctx, file, result.Lang, cfg, result.Bag, opts)
	if sc != nil {
		result.Stats = sc.Stats
	}
	if err != nil {
		return result, err
	}
	result.Formatted = out
	result.Changed = !bytes.Equal(raw, out)

	if useCache && !result.Changed {
		_ = opts.Cache.Put(key, &DiskPayload{
			Path:        name,
			Lang:        result.Lang.String(),
			Version:     version.Version,
			ContentHash: Digest(file.Hash),
			ConfigHash:  cfg.Hash(),
			Clean:       true,
			Warnings:    result.Stats.Warnings,
			Stored:      time.Now(),
		})
	}
	return result, nil
}

// FormatSource runs the whole pipeline over file and returns the rendered
// text. Diagnostics go to bag. A panic inside a stage is turned into an
// error; nothing is rendered in that case.
func FormatSource(ctx context.Context, file *source.File, lang dialect.Lang, cfg *options.Config, bag *diag.Bag, opts *FormatOptions) (out []byte, sc *state.Ctx, err error) {
	if opts == nil {
		opts = &FormatOptions{}
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, file.Path, trace.CurrentSpan(ctx))
	span.WithExtra("lang", lang.String())

	sc = state.New(file, nil, cfg, lang)
	sc.Tracer = tracer
	if bag != nil {
		sc.Reporter = diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	}

	defer func() {
		if r := recover(); r != nil {
			trace.Point(tracer, trace.ScopeFile, "panic", fmt.Sprint(r), span.ID())
			err = fmt.Errorf("%s: internal error: %v", file.Path, r)
			out = nil
			span.End("panic")
		}
	}()

	runStages(sc, span.ID(), opts.Timer, func(p Phase) {
		emit(opts.Progress, Event{File: file.Path, Phase: p, Status: StatusWorking})
	})

	if opts.Parsed != nil {
		if err := output.DumpParsed(sc, opts.Parsed, opts.ParsedFormat); err != nil {
			span.End("dump failed")
			return nil, sc, fmt.Errorf("parsed dump: %w", err)
		}
	}

	idx := opts.Timer.Begin("render")
	out = output.Text(sc)
	opts.Timer.End(idx, "")
	span.End(fmt.Sprintf("%d chunks", sc.List.Len()))
	return out, sc, nil
}

// ResolveLang picks the language of a file: forced wins, then the file
// extension, then (for .h with sniff) the content.
func ResolveLang(name string, content []byte, forced dialect.Lang, sniff bool) dialect.Lang {
	if forced != dialect.None {
		return forced
	}
	lang := dialect.FromFilename(name)
	if sniff && dialect.IsHeader(name) {
		lang = dialect.Sniff(content, lang)
	}
	return lang
}

// CollectSourceFiles expands directories into the files below them whose
// extension names a supported language. Explicit file arguments are kept
// whatever their extension.
func CollectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	exts := dialect.Extensions()
	known := func(path string) bool {
		return slices.Contains(exts, strings.ToLower(filepath.Ext(path)))
	}

	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if known(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
