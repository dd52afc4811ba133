// Package config loads transform options from CUE files.
//
// A remap.cue file is unified with the embedded #Options schema, so every
// field is optional and typos are rejected with a source position:
//
//	wrapAsync:   "babelHelpers.asyncToGenerator"
//	noNewArrows: false
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/remap/internal/ast"
	"github.com/roach88/remap/internal/remap"
)

//go:embed schema.cue
var schemaCUE string

// DefaultWrapAsync is the driver helper used when none is configured.
const DefaultWrapAsync = "babelHelpers.asyncToGenerator"

// Options are the user-facing transform options. Helpers are dotted paths.
type Options struct {
	WrapAsync            string
	WrapAwait            string
	NoNewArrows          bool
	IgnoreFunctionLength bool
}

// Default returns the options an empty file yields.
func Default() Options {
	return Options{WrapAsync: DefaultWrapAsync, NoNewArrows: true}
}

// ConfigError reports an invalid options file.
type ConfigError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ConfigError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads the options file at path. An empty path yields Default().
func Load(path string) (Options, error) {
	if path == "" {
		return Default(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options: %w", err)
	}
	return Parse(path, src)
}

// Parse compiles src, unifies it with the schema and extracts the options.
func Parse(filename string, src []byte) (Options, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Options{}, fmt.Errorf("compile schema: %w", err)
	}

	file := ctx.CompileBytes(src, cue.Filename(filename))
	if err := file.Err(); err != nil {
		return Options{}, formatCUEError(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Options")).Unify(file)
	if err := v.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return Options{}, formatCUEError(err)
	}

	var opts Options
	var err error
	if opts.WrapAsync, err = field(v, "wrapAsync").String(); err != nil {
		return Options{}, formatCUEError(err)
	}
	if f := field(v, "wrapAwait"); f.Exists() {
		if opts.WrapAwait, err = f.String(); err != nil {
			return Options{}, formatCUEError(err)
		}
		if opts.WrapAwait == opts.WrapAsync {
			return Options{}, &ConfigError{
				Field:   "wrapAwait",
				Message: "must differ from wrapAsync",
				Pos:     f.Pos(),
			}
		}
	}
	if opts.NoNewArrows, err = field(v, "noNewArrows").Bool(); err != nil {
		return Options{}, formatCUEError(err)
	}
	if opts.IgnoreFunctionLength, err = field(v, "ignoreFunctionLength").Bool(); err != nil {
		return Options{}, formatCUEError(err)
	}
	return opts, nil
}

// field looks up name and resolves its default.
func field(v cue.Value, name string) cue.Value {
	f := v.LookupPath(cue.ParsePath(name))
	if d, ok := f.Default(); ok {
		return d
	}
	return f
}

// Hash returns the content-addressed identity of the options, used as part
// of the transform cache key.
func (o Options) Hash() (string, error) {
	return ast.HashValue(ast.DomainOptions, map[string]any{
		"wrapAsync":            o.WrapAsync,
		"wrapAwait":            o.WrapAwait,
		"noNewArrows":          o.NoNewArrows,
		"ignoreFunctionLength": o.IgnoreFunctionLength,
	})
}

// Build resolves the helper paths into detached expressions of t.
func (o Options) Build(t *ast.Tree) (remap.Options, error) {
	wrapAsync, err := t.ParseDotted(o.WrapAsync)
	if err != nil {
		return remap.Options{}, &ConfigError{Field: "wrapAsync", Message: err.Error()}
	}
	opts := remap.Options{
		WrapAsync:            wrapAsync,
		NoNewArrows:          o.NoNewArrows,
		IgnoreFunctionLength: o.IgnoreFunctionLength,
	}
	if o.WrapAwait != "" {
		if opts.WrapAwait, err = t.ParseDotted(o.WrapAwait); err != nil {
			return remap.Options{}, &ConfigError{Field: "wrapAwait", Message: err.Error()}
		}
	}
	return opts, nil
}

// formatCUEError extracts path and position info from CUE errors.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	format, args := first.Msg()
	ce := &ConfigError{Field: "cue", Message: fmt.Sprintf(format, args...)}
	if path := errors.Path(first); len(path) > 0 {
		ce.Field = strings.Join(path, ".")
	}
	if positions := errors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
