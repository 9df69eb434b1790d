package docpress

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// OptionType validates and converts raw configuration values.
// Parse handles strings from line-based config files; Coerce handles the
// untyped values a YAML source or frontmatter produces.
type OptionType interface {
	Parse(raw string) (any, error)
	Coerce(v any) (any, error)
	String() string
}

// BoolType accepts true/false, yes/no, on/off, 1/0.
type BoolType struct{}

func (BoolType) String() string { return "boolean" }

func (BoolType) Parse(raw string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "on", "1", "":
		// A bare "name:" line enables a boolean option.
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return nil, fmt.Errorf("%w: %q is not a boolean", ErrConfigValue, raw)
}

func (t BoolType) Coerce(v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return t.Parse(b)
	}
	return nil, fmt.Errorf("%w: %v is not a boolean", ErrConfigValue, v)
}

// IntType accepts integers in the inclusive range [Min, Max].
type IntType struct {
	Min, Max int
}

func (t IntType) String() string { return fmt.Sprintf("integer %d..%d", t.Min, t.Max) }

func (t IntType) Parse(raw string) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not an integer", ErrConfigValue, raw)
	}
	return t.Coerce(n)
}

func (t IntType) Coerce(v any) (any, error) {
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case int64:
		n = int(x)
	case uint64:
		n = int(x)
	case float64:
		n = int(x)
		if float64(n) != x {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrConfigValue, v)
		}
	case string:
		return t.Parse(x)
	default:
		return nil, fmt.Errorf("%w: %v is not an integer", ErrConfigValue, v)
	}
	if n < t.Min || n > t.Max {
		return nil, fmt.Errorf("%w: %d outside range %d..%d", ErrConfigValue, n, t.Min, t.Max)
	}
	return n, nil
}

// StringType accepts any string; empty only when AllowEmpty is set.
type StringType struct {
	AllowEmpty bool
}

func (StringType) String() string { return "string" }

func (t StringType) Parse(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" && !t.AllowEmpty {
		return nil, fmt.Errorf("%w: value cannot be empty", ErrConfigValue)
	}
	return raw, nil
}

func (t StringType) Coerce(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a string", ErrConfigValue, v)
	}
	return t.Parse(s)
}

// PathType accepts a filesystem path, cleaned but not required to exist.
type PathType struct {
	AllowEmpty bool
}

func (PathType) String() string { return "path" }

func (t PathType) Parse(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if t.AllowEmpty {
			return "", nil
		}
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigValue)
	}
	return filepath.Clean(raw), nil
}

func (t PathType) Coerce(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a path", ErrConfigValue, v)
	}
	return t.Parse(s)
}

// EnumType accepts one symbol from a fixed set.
type EnumType struct {
	Choices []string
}

func (t EnumType) String() string { return "one of " + strings.Join(t.Choices, ", ") }

func (t EnumType) Parse(raw string) (any, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, c := range t.Choices {
		if raw == c {
			return raw, nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not %s", ErrConfigValue, raw, t.String())
}

func (t EnumType) Coerce(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a symbol", ErrConfigValue, v)
	}
	return t.Parse(s)
}

// ListType accepts a comma-separated list of element values.
type ListType struct {
	Elem OptionType
}

func (t ListType) String() string { return "list of " + t.Elem.String() }

func (t ListType) Parse(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []any{}, nil
	}
	items := strings.Split(raw, ",")
	out := make([]any, 0, len(items))
	for _, item := range items {
		v, err := t.Elem.Parse(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (t ListType) Coerce(v any) (any, error) {
	switch list := v.(type) {
	case []any:
		out := make([]any, 0, len(list))
		for _, item := range list {
			cv, err := t.Elem.Coerce(item)
			if err != nil {
				return nil, err
			}
			out = append(out, cv)
		}
		return out, nil
	case string:
		return t.Parse(list)
	}
	return nil, fmt.Errorf("%w: %v is not a list", ErrConfigValue, v)
}

// Option declares one recognized configuration option.
type Option struct {
	Name        string
	Type        OptionType
	Default     any
	Description string
}

// reservedOption is the key whose value names another configuration file to
// include; it can never be registered as an ordinary option.
const reservedOption = "config"

// Registry is the process-wide catalogue of recognized options. Readers,
// writers, and transforms register their options before any document run.
// Re-registering a name replaces its definition (last registration wins).
type Registry struct {
	mu   sync.RWMutex
	opts map[string]Option
}

// NewRegistry creates an empty option catalogue.
func NewRegistry() *Registry {
	return &Registry{opts: make(map[string]Option)}
}

// Register merges an option definition into the catalogue.
// Option names are case-normalized; underscores fold to hyphens.
func (r *Registry) Register(opt Option) error {
	name := NormalizeOptionName(opt.Name)
	if name == reservedOption {
		return fmt.Errorf("%w: %q", ErrReservedOption, opt.Name)
	}
	if name == "" {
		return fmt.Errorf("%w: empty option name", ErrConfigValue)
	}
	opt.Name = name
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts[name] = opt
	return nil
}

// MustRegister registers an option and panics on error.
// Intended for built-in catalogue entries at init time.
func (r *Registry) MustRegister(opt Option) {
	if err := r.Register(opt); err != nil {
		panic(err)
	}
}

// Lookup returns the definition for a normalized or raw option name.
func (r *Registry) Lookup(name string) (Option, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	opt, ok := r.opts[NormalizeOptionName(name)]
	return opt, ok
}

// Names returns all registered option names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.opts))
	for n := range r.opts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NormalizeOptionName lowercases a name and folds underscores to hyphens.
func NormalizeOptionName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// Values is one resolved settings mapping: every catalogue entry has a value
// (its default if nothing overrode it), plus raw strings for unrecognized
// keys found in configuration sources. A mapping is built once per run and
// must be treated as immutable once the run begins.
type Values map[string]any

// Bool returns a boolean option value.
func (v Values) Bool(name string) bool {
	b, _ := v[NormalizeOptionName(name)].(bool)
	return b
}

// Int returns an integer option value.
func (v Values) Int(name string) int {
	n, _ := v[NormalizeOptionName(name)].(int)
	return n
}

// String returns a string, path, or enum option value.
func (v Values) String(name string) string {
	s, _ := v[NormalizeOptionName(name)].(string)
	return s
}

// ReportLevel returns the run's report threshold.
func (v Values) ReportLevel() Severity { return Severity(v.Int("report-level")) }

// HaltLevel returns the run's halt threshold.
func (v Values) HaltLevel() Severity { return Severity(v.Int("halt-level")) }

// defaultRegistry holds the core catalogue shared by all publishers that do
// not supply their own.
var defaultRegistry = NewRegistry()

func init() {
	for _, opt := range coreOptions() {
		defaultRegistry.MustRegister(opt)
	}
}

// DefaultRegistry returns the shared core catalogue.
func DefaultRegistry() *Registry { return defaultRegistry }

// coreOptions declares the options every run recognizes.
func coreOptions() []Option {
	return []Option{
		{Name: "report-level", Type: IntType{Min: 0, Max: 10}, Default: int(DefaultReportLevel),
			Description: "Conditions at or above this severity are reported."},
		{Name: "halt-level", Type: IntType{Min: 0, Max: 10}, Default: int(DefaultHaltLevel),
			Description: "Conditions at or above this severity abort the run."},
		{Name: "generator", Type: BoolType{}, Default: true,
			Description: "Include a generator note in the output."},
		{Name: "datestamp", Type: StringType{AllowEmpty: true}, Default: "",
			Description: "Datestamp text included in the output, empty to omit."},
		{Name: "source-link", Type: BoolType{}, Default: false,
			Description: "Link the output back to its source."},
		{Name: "stylesheet", Type: PathType{AllowEmpty: true}, Default: "",
			Description: "Stylesheet path referenced by the HTML writer."},
		{Name: "initial-header-level", Type: IntType{Min: 1, Max: 6}, Default: 1,
			Description: "Heading level for top-level sections in HTML output."},
		{Name: "language-code", Type: StringType{}, Default: "en",
			Description: "BCP 47 language tag for the output document."},
		{Name: "tab-width", Type: IntType{Min: 1, Max: 16}, Default: 8,
			Description: "Number of spaces a tab expands to."},
		{Name: "strip-comments", Type: BoolType{}, Default: false,
			Description: "Drop comment constructs during reading."},
		{Name: "toc-backlinks", Type: EnumType{Choices: []string{"none", "entry", "top"}}, Default: "entry",
			Description: "Backlink style from section titles to the table of contents."},
		{Name: "output-encoding", Type: StringType{}, Default: "utf-8",
			Description: "Character encoding declared in the output."},
	}
}
