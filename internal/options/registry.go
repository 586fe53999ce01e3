package options

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Kind is the value type of an option.
type Kind uint8

const (
	KindInt Kind = iota
	KindBool
	KindIARF
	KindLineEnding
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindIARF:
		return "ignore/add/remove/force"
	case KindLineEnding:
		return "auto/lf/crlf"
	}
	return "number"
}

// Info describes one option.
type Info struct {
	Name    string
	Kind    Kind
	Default string
	Help    string
	Group   string

	field int
}

var (
	registryOnce sync.Once
	registry     []Info
	byName       map[string]int
)

var (
	iarfType = reflect.TypeFor[IARF]()
	leType   = reflect.TypeFor[LineEnding]()
)

func buildRegistry() {
	t := reflect.TypeFor[Config]()
	byName = make(map[string]int, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		name, ok := f.Tag.Lookup("opt")
		if !ok {
			continue
		}
		info := Info{
			Name:    name,
			Default: f.Tag.Get("default"),
			Help:    f.Tag.Get("help"),
			Group:   groupOf(name),
			field:   i,
		}
		switch {
		case f.Type == iarfType:
			info.Kind = KindIARF
		case f.Type == leType:
			info.Kind = KindLineEnding
		case f.Type.Kind() == reflect.Bool:
			info.Kind = KindBool
		case f.Type.Kind() == reflect.Int:
			info.Kind = KindInt
		default:
			panic(fmt.Sprintf("options: unsupported field type %s for %s", f.Type, name))
		}
		byName[name] = len(registry)
		registry = append(registry, info)
	}
}

func groupOf(name string) string {
	prefix, _, _ := strings.Cut(name, "_")
	switch prefix {
	case "indent", "pp":
		return "indent"
	case "nl":
		return "newline"
	case "sp":
		return "space"
	case "align":
		return "align"
	case "mod":
		return "modify"
	case "cmt":
		return "comment"
	}
	return "general"
}

// All returns every option in declaration order.
func All() []Info {
	registryOnce.Do(buildRegistry)
	return slices.Clone(registry)
}

// Lookup finds an option by name.
func Lookup(name string) (Info, bool) {
	registryOnce.Do(buildRegistry)
	idx, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Info{}, false
	}
	return registry[idx], true
}

// Defaults returns a Config with every option at its default.
func Defaults() *Config {
	registryOnce.Do(buildRegistry)
	cfg := &Config{}
	for _, info := range registry {
		if err := cfg.setField(info, info.Default); err != nil {
			panic(fmt.Sprintf("options: bad default for %s: %v", info.Name, err))
		}
	}
	return cfg
}

// ErrUnknownOption is returned by Set for names not in the registry.
type ErrUnknownOption struct{ Name string }

func (e *ErrUnknownOption) Error() string { return "unknown option " + strconv.Quote(e.Name) }

// Set parses value and stores it into the named option.
func (c *Config) Set(name, value string) error {
	info, ok := Lookup(name)
	if !ok {
		return &ErrUnknownOption{Name: name}
	}
	if err := c.setField(info, value); err != nil {
		return fmt.Errorf("option %s: %w", info.Name, err)
	}
	return nil
}

func (c *Config) setField(info Info, value string) error {
	fv := reflect.ValueOf(c).Elem().Field(info.field)
	value = strings.TrimSpace(value)
	switch info.Kind {
	case KindIARF:
		v, err := ParseIARF(value)
		if err != nil {
			return err
		}
		fv.SetUint(uint64(v))
	case KindLineEnding:
		v, err := ParseLineEnding(value)
		if err != nil {
			return err
		}
		fv.SetUint(uint64(v))
	case KindBool:
		v, err := parseBool(value)
		if err != nil {
			return err
		}
		fv.SetBool(v)
	case KindInt:
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("expected a number, got %q", value)
		}
		fv.SetInt(int64(v))
	}
	return nil
}

// старые конфиги пишут true/false, 1/0 и yes/no вперемешку
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("expected true|false, got %q", s)
}

// Get returns the current value of the named option as text.
func (c *Config) Get(name string) (string, bool) {
	info, ok := Lookup(name)
	if !ok {
		return "", false
	}
	return c.format(info), true
}

func (c *Config) format(info Info) string {
	fv := reflect.ValueOf(c).Elem().Field(info.field)
	switch info.Kind {
	case KindIARF:
		return IARF(fv.Uint()).String()
	case KindLineEnding:
		return LineEnding(fv.Uint()).String()
	case KindBool:
		return strconv.FormatBool(fv.Bool())
	}
	return strconv.FormatInt(fv.Int(), 10)
}

// Changed lists the options whose value differs from the default.
func (c *Config) Changed() []Info {
	def := Defaults()
	var out []Info
	for _, info := range All() {
		if c.format(info) != def.format(info) {
			out = append(out, info)
		}
	}
	return out
}

// Hash fingerprints the option values and the type list. Two configs that
// format identically hash identically.
func (c *Config) Hash() string {
	h := sha256.New()
	for _, info := range All() {
		fmt.Fprintf(h, "%s=%s\n", info.Name, c.format(info))
	}
	types := slices.Clone(c.Types)
	slices.Sort(types)
	for _, t := range types {
		fmt.Fprintf(h, "type %s\n", t)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Types = slices.Clone(c.Types)
	return &cp
}

// Describe writes the config back in the classic .cfg syntax. With onlyChanged
// it skips options still at their default.
func (c *Config) Describe(onlyChanged, withHelp bool) string {
	var b strings.Builder
	group := ""
	list := All()
	if onlyChanged {
		list = c.Changed()
	}
	for _, info := range list {
		if info.Group != group {
			if group != "" {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "# %s\n", info.Group)
			group = info.Group
		}
		if withHelp {
			fmt.Fprintf(&b, "# %s (%s)\n", info.Help, info.Kind)
		}
		fmt.Fprintf(&b, "%s = %s\n", info.Name, c.format(info))
	}
	if len(c.Types) > 0 {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "type %s\n", strings.Join(c.Types, " "))
	}
	return b.String()
}
