package docpress

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docpress/internal/fileutil"
	"github.com/alnah/go-docpress/internal/yamlutil"
)

// FallbackPolicy decides what happens when a configuration source carries an
// invalid value for a recognized option. Returning a value recovers the
// resolution with it; returning an error aborts the resolution.
type FallbackPolicy func(opt Option, raw string, parseErr error) (any, error)

// UseDefault recovers from invalid values by substituting the option default.
func UseDefault(opt Option, raw string, parseErr error) (any, error) {
	return opt.Default, nil
}

// Abort propagates invalid values as resolution failures.
func Abort(opt Option, raw string, parseErr error) (any, error) {
	return nil, parseErr
}

// ConfFileName is the well-known configuration file name.
const ConfFileName = "docpress.conf"

// ProjectFileName is the YAML project-level configuration file name.
const ProjectFileName = ".docpress.yaml"

// StandardSearchPath returns the fixed, ordered list of configuration
// sources, earliest (lowest precedence) first: system file, user file,
// working-directory file, working-directory project file.
func StandardSearchPath() []string {
	paths := []string{filepath.Join("/etc", ConfFileName)}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "docpress", ConfFileName))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+ConfFileName))
	}
	return append(paths, ConfFileName, ProjectFileName)
}

// Resolver builds one resolved settings mapping per document-processing run
// by applying catalogue defaults, then merging configuration sources in
// precedence order: defaults < system < user < working directory < project
// file < document-local file. The document-local file is processed last and
// therefore wins. Inside any one file, a "config:" include is merged before
// the rest of that file, so a file's own inline keys override the files it
// includes.
type Resolver struct {
	Registry *Registry
	Reporter *Reporter
	Fallback FallbackPolicy // nil aborts on invalid values
	// SearchPath overrides StandardSearchPath; used by tests and embedders.
	SearchPath []string
}

// Resolve builds the settings mapping for a source. sourcePath is the
// file-backed source path, or empty for stream and in-memory sources; when
// present, its sibling "<name>.conf" (extension replaced) is consulted after
// every standard source.
func (r *Resolver) Resolve(sourcePath string) (Values, error) {
	reg := r.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}

	// Base mapping: every catalogue entry gets its default.
	values := make(Values)
	for _, name := range reg.Names() {
		opt, _ := reg.Lookup(name)
		values[name] = opt.Default
	}

	sources := r.SearchPath
	if sources == nil {
		sources = StandardSearchPath()
	}
	if sourcePath != "" {
		local := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + ".conf"
		sources = append(append([]string{}, sources...), local)
	}

	seen := make(map[string]bool)
	for _, path := range sources {
		if !fileutil.FileExists(path) {
			continue
		}
		if err := r.mergeFile(reg, values, path, seen); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// mergeFile merges one configuration source into values, tracking processed
// files so "config:" include chains cannot loop.
func (r *Resolver) mergeFile(reg *Registry, values Values, path string, seen map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if seen[abs] {
		return nil
	}
	seen[abs] = true

	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		return r.mergeYAMLFile(reg, values, path)
	}
	return r.mergeConfFile(reg, values, path, seen)
}

// mergeConfFile parses the line-based "name: value" format. Blank lines and
// "#" comments are skipped; a line with no separator is a format error that
// warns and skips; the reserved "config" key includes another file
// depth-first before the rest of the current file.
func (r *Resolver) mergeConfFile(reg *Registry, values Values, path string, seen map[string]bool) error {
	f, err := os.Open(path) // #nosec G304 -- config paths come from the fixed search list
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, raw, ok := strings.Cut(line, ":")
		if !ok {
			r.Reporter.Warn("%s:%d: %v: %q", path, lineno, ErrConfigLine, line)
			continue
		}
		name = NormalizeOptionName(name)
		raw = strings.TrimSpace(raw)

		if name == reservedOption {
			include := raw
			if !filepath.IsAbs(include) {
				include = filepath.Join(filepath.Dir(path), include)
			}
			if !fileutil.FileExists(include) {
				r.Reporter.Warn("%s:%d: included config not found: %s", path, lineno, raw)
				continue
			}
			if err := r.mergeFile(reg, values, include, seen); err != nil {
				return err
			}
			continue
		}

		if err := r.setValue(reg, values, name, raw, nil); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

// mergeYAMLFile merges a flat YAML mapping of option names to values.
func (r *Resolver) mergeYAMLFile(reg *Registry, values Values, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- config paths come from the fixed search list
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	var raw map[string]any
	if err := yamlutil.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for name, v := range raw {
		if err := r.setValue(reg, values, NormalizeOptionName(name), "", v); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// setValue validates one key against the catalogue and merges it.
// Recognized keys parse per their declared type, consulting the fallback
// policy on failure; unrecognized keys are stored as raw strings.
func (r *Resolver) setValue(reg *Registry, values Values, name, raw string, yamlValue any) error {
	opt, ok := reg.Lookup(name)
	if !ok {
		if yamlValue != nil {
			values[name] = fmt.Sprintf("%v", yamlValue)
		} else {
			values[name] = raw
		}
		return nil
	}

	var parsed any
	var err error
	if yamlValue != nil {
		parsed, err = opt.Type.Coerce(yamlValue)
	} else {
		parsed, err = opt.Type.Parse(raw)
	}
	if err != nil {
		fallback := r.Fallback
		if fallback == nil {
			fallback = Abort
		}
		parsed, err = fallback(opt, raw, fmt.Errorf("option %s: %w", name, err))
		if err != nil {
			return err
		}
		r.Reporter.Warn("option %s: invalid value %q, using fallback", name, raw)
	}
	values[opt.Name] = parsed
	return nil
}
