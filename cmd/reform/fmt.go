package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reform/internal/diag"
	"reform/internal/diagfmt"
	"reform/internal/driver"
	"reform/internal/observ"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [path...]",
	Short: "Format C, C++, D, C# and Java source files",
	Long: `fmt rewrites files in place. Directories are searched for files with a
known extension. Without paths (or with "-") the source is read from stdin
and the result written to stdout.`,
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().StringP("config", "c", "", "config file (.cfg, .toml, .yml); default ./"+defaultConfigFile+" if present")
	fmtCmd.Flags().StringSliceP("types", "t", nil, "file with extra type names, may repeat")
	fmtCmd.Flags().StringSlice("set", nil, "override one option, name=value; may repeat")
	fmtCmd.Flags().StringP("lang", "l", "", "force the language (C|CPP|D|CS|JAVA)")
	fmtCmd.Flags().StringP("parsed", "p", "", "write the annotated chunk dump to this file")
	fmtCmd.Flags().String("parsed-format", "text", "chunk dump format (text|json)")
	fmtCmd.Flags().Bool("check", false, "report files that would change, write nothing")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().String("format", "text", "result report format (text|json)")
	fmtCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	fmtCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	fmtCmd.Flags().Bool("sniff-headers", false, "treat .h files that look like C++ as C++")
	fmtCmd.Flags().Bool("no-cache", false, "do not consult or update the formatted-file cache")
	fmtCmd.Flags().Bool("verify", false, "format twice and check idempotence and token preservation")
}

type fmtFlags struct {
	check        bool
	stdout       bool
	verify       bool
	format       string
	ui           uiMode
	quiet        bool
	timings      bool
	noCache      bool
	parsedPath   string
	parsedFormat string
	diagFormat   string
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, configSource, error) {
	var (
		ff  fmtFlags
		src configSource
		err error
	)
	flags := cmd.Flags()
	if src.path, err = flags.GetString("config"); err != nil {
		return ff, src, err
	}
	if src.types, err = flags.GetStringSlice("types"); err != nil {
		return ff, src, err
	}
	if src.sets, err = flags.GetStringSlice("set"); err != nil {
		return ff, src, err
	}
	if ff.check, err = flags.GetBool("check"); err != nil {
		return ff, src, err
	}
	if ff.stdout, err = flags.GetBool("stdout"); err != nil {
		return ff, src, err
	}
	if ff.verify, err = flags.GetBool("verify"); err != nil {
		return ff, src, err
	}
	if ff.format, err = flags.GetString("format"); err != nil {
		return ff, src, err
	}
	if ff.noCache, err = flags.GetBool("no-cache"); err != nil {
		return ff, src, err
	}
	if ff.parsedPath, err = flags.GetString("parsed"); err != nil {
		return ff, src, err
	}
	if ff.parsedFormat, err = flags.GetString("parsed-format"); err != nil {
		return ff, src, err
	}
	diagValue, err := flags.GetString("diag-format")
	if err != nil {
		return ff, src, err
	}
	if ff.diagFormat, err = readDiagFormat(diagValue); err != nil {
		return ff, src, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return ff, src, err
	}
	if ff.ui, err = readUIMode(uiValue); err != nil {
		return ff, src, err
	}
	if ff.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return ff, src, err
	}
	if ff.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return ff, src, err
	}

	if ff.stdout && ff.check {
		return ff, src, fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if ff.stdout && ff.format != "text" {
		return ff, src, fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	switch ff.format {
	case "text", "json":
	default:
		return ff, src, fmt.Errorf("fmt: unsupported output format %q", ff.format)
	}
	return ff, src, nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	ff, src, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	langTag, err := cmd.Flags().GetString("lang")
	if err != nil {
		return err
	}
	sniff, err := cmd.Flags().GetBool("sniff-headers")
	if err != nil {
		return err
	}

	loaded, err := loadConfig(src, maxDiagnostics)
	if err != nil {
		return err
	}
	diags := diagPrinter{
		format: ff.diagFormat,
		pretty: diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 2, ShowNotes: true},
	}
	if !ff.quiet {
		diags.print(loaded.bag, loaded.fs)
	}

	opts := driver.FormatOptions{
		Config:         loaded.cfg,
		Lang:           parseLangFlag(langTag, os.Stderr),
		SniffHeaders:   sniff,
		Check:          ff.check,
		Stdout:         ff.stdout,
		MaxDiagnostics: maxDiagnostics,
		ParsedFormat:   ff.parsedFormat,
	}
	if ff.timings {
		opts.Timer = observ.NewTimer()
		defer printTimings(os.Stderr, opts.Timer, ff.format == "json")
	}
	if ff.parsedPath != "" {
		dump, err := os.Create(ff.parsedPath)
		if err != nil {
			return fmt.Errorf("fmt: %w", err)
		}
		defer dump.Close()
		opts.Parsed = dump
	}
	if !ff.noCache && !ff.verify {
		// кэш необязателен: без каталога просто работаем без него
		if cache, err := driver.OpenDiskCache("reform"); err == nil {
			opts.Cache = cache
		}
	}

	ctx := cmd.Context()
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		return formatStdin(ctx, &opts, ff, diags)
	}
	if ff.verify {
		return verifyPaths(ctx, args, &opts, ff.quiet)
	}

	files, err := driver.CollectSourceFiles(ctx, args)
	if err != nil {
		return fmt.Errorf("fmt: %w", err)
	}
	var results []driver.FormatResult
	if !ff.stdout && ff.format == "text" && shouldUseTUI(ff.ui, len(files)) {
		results, err = runFormatWithUI(ctx, "reform fmt", files, opts)
	} else {
		results, err = driver.FormatPaths(ctx, args, opts)
	}
	if err != nil {
		return err
	}

	if !ff.quiet {
		for _, res := range results {
			diags.print(res.Bag, res.FileSet)
		}
	}

	var hasErrors, hasChanges bool
	switch {
	case ff.format == "json":
		if err := renderFmtJSON(os.Stdout, results, ff.check); err != nil {
			return err
		}
		hasErrors, hasChanges = summarize(results)
	case ff.stdout:
		hasErrors = renderFmtStdout(os.Stdout, os.Stderr, results)
	default:
		hasErrors, hasChanges = renderFmtText(os.Stdout, os.Stderr, results, ff.check, ff.quiet)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if ff.check && hasChanges {
		return errSilent
	}
	return nil
}

// formatStdin formats a single source read from stdin. The language comes
// from -l, defaulting to C.
func formatStdin(ctx context.Context, opts *driver.FormatOptions, ff fmtFlags, diags diagPrinter) error {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("fmt: read stdin: %w", err)
	}
	opts.Cache = nil
	if ff.verify {
		ok, msg := driver.Verify(ctx, "<stdin>", raw, opts)
		fmt.Fprintln(os.Stderr, msg)
		if !ok {
			return errSilent
		}
		return nil
	}
	res, err := driver.FormatBytes(ctx, "<stdin>", raw, opts)
	if err != nil {
		return err
	}
	if !ff.quiet {
		diags.print(res.Bag, res.FileSet)
	}
	if ff.check {
		if res.Changed {
			return errSilent
		}
		return nil
	}
	_, err = os.Stdout.Write(res.Formatted)
	return err
}

func verifyPaths(ctx context.Context, paths []string, opts *driver.FormatOptions, quiet bool) error {
	files, err := driver.CollectSourceFiles(ctx, paths)
	if err != nil {
		return fmt.Errorf("fmt: %w", err)
	}
	failed := 0
	for _, path := range files {
		// #nosec G304 -- path comes from the command line
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("fmt: %w", err)
		}
		ok, msg := driver.Verify(ctx, path, raw, opts)
		if !ok {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, msg)
		} else if !quiet {
			fmt.Fprintf(os.Stdout, "%s: %s\n", path, msg)
		}
	}
	if failed > 0 {
		return fmt.Errorf("fmt: verification failed for %d of %d files", failed, len(files))
	}
	return nil
}

func summarize(results []driver.FormatResult) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
		}
		if res.Changed {
			hasChanges = true
		}
	}
	return hasErrors, hasChanges
}

func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
	return hasErrors
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, check, quiet bool) (hasErrors, hasChanges bool) {
	changed := color.New(color.FgYellow)
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		if quiet {
			continue
		}
		if check {
			if _, err := fmt.Fprintln(out, res.Path); err != nil {
				panic(err)
			}
			continue
		}
		if _, err := changed.Fprintf(out, "reformatted %s\n", res.Path); err != nil {
			panic(err)
		}
	}
	return hasErrors, hasChanges
}

type jsonDiagCount struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

type jsonResult struct {
	Path        string        `json:"path"`
	Lang        string        `json:"lang,omitempty"`
	Changed     bool          `json:"changed"`
	Cached      bool          `json:"cached,omitempty"`
	Error       string        `json:"error,omitempty"`
	CheckRun    bool          `json:"check"`
	Diagnostics jsonDiagCount `json:"diagnostics"`
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, Cached: res.Cached, CheckRun: check}
		if res.Lang != 0 {
			jr.Lang = res.Lang.String()
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		jr.Diagnostics = countDiagnostics(res.Bag)
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func countDiagnostics(bag *diag.Bag) jsonDiagCount {
	var c jsonDiagCount
	if bag == nil {
		return c
	}
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			c.Errors++
		case diag.SevWarning:
			c.Warnings++
		}
	}
	return c
}
