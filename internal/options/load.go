package options

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"reform/internal/diag"
	"reform/internal/source"
)

// DefaultPath is the config file looked up when -c is not given.
const DefaultPath = "reform.cfg"

// Format is the syntax of a config file.
type Format uint8

const (
	FormatCfg Format = iota
	FormatTOML
	FormatYAML
)

// FormatOf picks the syntax from the file extension; anything unknown is
// treated as the classic syntax.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yml", ".yaml":
		return FormatYAML
	}
	return FormatCfg
}

// BadValueError is a fatal config error tied to a location.
type BadValueError struct {
	Path string
	Line uint32
	Err  error
}

func (e *BadValueError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *BadValueError) Unwrap() error { return e.Err }

// LoadFile reads path into cfg. The file is registered in fs so unknown keys
// can be reported at their position; those are warnings sent to rep. A value
// that does not parse aborts the load.
func LoadFile(fs *source.FileSet, path string, cfg *Config, rep diag.Reporter) error {
	id, err := fs.Load(path)
	if err != nil {
		return err
	}
	file := fs.Get(id)
	l := loader{file: file, cfg: cfg, rep: rep}
	switch FormatOf(path) {
	case FormatTOML:
		return l.loadTOML()
	case FormatYAML:
		return l.loadYAML()
	default:
		return l.loadCfg()
	}
}

// LoadTypes reads a file of extra type names, whitespace separated, "#"
// starting a comment.
func LoadTypes(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		cfg.addTypes(strings.Fields(line)...)
	}
	return sc.Err()
}

func (c *Config) addTypes(words ...string) {
	for _, w := range words {
		if w == "" || c.HasType(w) {
			continue
		}
		c.Types = append(c.Types, w)
	}
}

type loader struct {
	file *source.File
	cfg  *Config
	rep  diag.Reporter
}

func (l *loader) span(off, n int) source.Span {
	if off < 0 {
		off, n = 0, 0
	}
	return source.Span{File: l.file.ID, Start: uint32(off), End: uint32(off + n)}
}

func (l *loader) unknown(name string, off int) {
	if l.rep == nil {
		return
	}
	diag.ReportWarning(l.rep, diag.CfgUnknownOption, l.span(off, len(name)),
		fmt.Sprintf("unknown option %q ignored", name)).Emit()
}

func (l *loader) set(name, value string, off int) error {
	err := l.cfg.Set(name, value)
	var unk *ErrUnknownOption
	switch {
	case err == nil:
		return nil
	case errors.As(err, &unk):
		l.unknown(name, off)
		return nil
	}
	line := uint32(0)
	if off >= 0 {
		line = l.file.Position(uint32(off)).Line
	}
	return &BadValueError{Path: l.file.Path, Line: line, Err: err}
}

// "name = value" или "name value"; строки "type a b c" добавляют типы
func (l *loader) loadCfg() error {
	content := l.file.Content
	off := 0
	for len(content) > 0 {
		lineEnd := bytes.IndexByte(content, '\n')
		var raw []byte
		if lineEnd < 0 {
			raw, content = content, nil
		} else {
			raw, content = content[:lineEnd], content[lineEnd+1:]
		}
		lineOff := off
		off += len(raw) + 1

		if i := bytes.IndexByte(raw, '#'); i >= 0 {
			raw = raw[:i]
		}
		line := string(raw)
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		keyOff := lineOff + strings.Index(line, trimmed)

		name, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			fields := strings.Fields(trimmed)
			name = fields[0]
			value = strings.Join(fields[1:], " ")
		}
		name = strings.TrimSpace(name)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if strings.EqualFold(name, "type") {
			l.cfg.addTypes(strings.Fields(value)...)
			continue
		}
		if err := l.set(name, value, keyOff); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) loadTOML() error {
	var doc map[string]any
	if _, err := toml.Decode(string(l.file.Content), &doc); err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return &BadValueError{Path: l.file.Path, Line: uint32(perr.Position.Line), Err: errors.New(perr.Message)}
		}
		return &BadValueError{Path: l.file.Path, Err: err}
	}
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		off := findKey(l.file.Content, key)
		if key == "types" {
			list, ok := doc[key].([]any)
			if !ok {
				return &BadValueError{Path: l.file.Path, Line: l.lineOf(off), Err: errors.New("types must be an array of strings")}
			}
			for _, v := range list {
				l.cfg.addTypes(fmt.Sprint(v))
			}
			continue
		}
		if err := l.set(key, scalarText(doc[key]), off); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) loadYAML() error {
	var root yaml.Node
	if err := yaml.Unmarshal(l.file.Content, &root); err != nil {
		return &BadValueError{Path: l.file.Path, Err: err}
	}
	if len(root.Content) == 0 {
		return nil
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return &BadValueError{Path: l.file.Path, Line: uint32(m.Line), Err: errors.New("top level must be a mapping")}
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		off := l.offsetOf(k.Line, k.Column)
		if k.Value == "types" {
			var list []string
			if err := v.Decode(&list); err != nil {
				return &BadValueError{Path: l.file.Path, Line: uint32(v.Line), Err: err}
			}
			l.cfg.addTypes(list...)
			continue
		}
		if v.Kind != yaml.ScalarNode {
			return &BadValueError{Path: l.file.Path, Line: uint32(v.Line), Err: fmt.Errorf("option %s: expected a scalar", k.Value)}
		}
		if err := l.set(k.Value, v.Value, off); err != nil {
			return err
		}
	}
	return nil
}

// LineIdx holds the offsets of '\n', so line n starts right after entry n-2.
func (l *loader) offsetOf(line, col int) int {
	if line <= 0 || line > len(l.file.LineIdx)+1 {
		return -1
	}
	start := 0
	if line > 1 {
		start = int(l.file.LineIdx[line-2]) + 1
	}
	return start + col - 1
}

func (l *loader) lineOf(off int) uint32 {
	if off < 0 {
		return 0
	}
	return l.file.Position(uint32(off)).Line
}

// findKey locates a bare key at the start of a line.
func findKey(content []byte, key string) int {
	off := 0
	for _, line := range bytes.SplitAfter(content, []byte{'\n'}) {
		trimmed := bytes.TrimLeft(line, " \t")
		if bytes.HasPrefix(trimmed, []byte(key)) {
			rest := bytes.TrimLeft(trimmed[len(key):], " \t")
			if len(rest) > 0 && rest[0] == '=' {
				return off + len(line) - len(trimmed)
			}
		}
		off += len(line)
	}
	return -1
}

func scalarText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	}
	return fmt.Sprint(v)
}
