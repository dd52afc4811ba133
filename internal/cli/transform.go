package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/remap/internal/ast"
	"github.com/roach88/remap/internal/config"
	"github.com/roach88/remap/internal/metrics"
	"github.com/roach88/remap/internal/printer"
	"github.com/roach88/remap/internal/remap"
	"github.com/roach88/remap/internal/store"
)

// TransformOptions holds flags for the transform command.
type TransformOptions struct {
	*RootOptions
	Output               string // output file path
	DB                   string // transform cache path
	MetricsFile          string // Prometheus text exposition output
	WrapAsync            string
	WrapAwait            string
	NoNewArrows          bool
	IgnoreFunctionLength bool

	// IDs names new cache records. Defaults to UUIDv7.
	IDs store.IDGenerator
}

// TransformResult is the payload of a successful transform.
type TransformResult struct {
	Output    string         `json:"output"`
	Functions int            `json:"functions"`
	Awaits    int            `json:"awaits"`
	IIFEs     int            `json:"iifes"`
	Annotated int            `json:"annotated"`
	ByKind    map[string]int `json:"by_kind"`
	InputHash string         `json:"input_hash"`
	Cached    bool           `json:"cached"`
}

// NewTransformCommand creates the transform command.
func NewTransformCommand(rootOpts *RootOptions) *cobra.Command {
	return newTransformCommand(&TransformOptions{RootOptions: rootOpts})
}

func newTransformCommand(opts *TransformOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform <ast-file>",
		Short: "Lower every async function of an AST document",
		Long: `Lower every async function of a Babel/ESTree AST document (JSON or YAML)
to a generator driven by the configured helper, and print the result as
JavaScript.

Options come from --config, then from flags. With --db results are cached
by input and options hash.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.DB, "db", "", "transform cache database")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "write pass metrics in Prometheus text format")
	cmd.Flags().StringVar(&opts.WrapAsync, "wrap-async", config.DefaultWrapAsync, "driver helper")
	cmd.Flags().StringVar(&opts.WrapAwait, "wrap-await", "", "helper wrapped around awaited values")
	cmd.Flags().BoolVar(&opts.NoNewArrows, "no-new-arrows", true, "alias this in arrows instead of binding")
	cmd.Flags().BoolVar(&opts.IgnoreFunctionLength, "ignore-function-length", false, "do not preserve Function#length")

	return cmd
}

func runTransform(ctx context.Context, opts *TransformOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := resolveOptions(cmd, opts)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfigInvalid, err.Error(), nil)
	}
	optionsHash, err := cfg.Hash()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	tree, root, err := readTree(formatter, path)
	if err != nil {
		return err
	}
	inputHash, err := ast.Hash(tree, root)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDecodeFailed, err.Error(), nil)
	}

	var cache *store.Store
	if opts.DB != "" {
		cache, err = store.Open(opts.DB)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeCacheFailed, err.Error(), nil)
		}
		defer cache.Close()

		rec, ok, err := cache.Lookup(ctx, inputHash, optionsHash)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeCacheFailed, err.Error(), nil)
		}
		if ok {
			formatter.VerboseLog("cache hit: %s", rec.ID)
			return emitTransform(formatter, opts, resultFromRecord(rec))
		}
	}

	remapOpts, err := cfg.Build(tree)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfigInvalid, err.Error(), nil)
	}
	reg := prometheus.NewRegistry()
	recorder, err := metrics.New(reg)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	remapOpts.Observer = recorder

	start := time.Now()
	stats, err := remap.Program(tree, root, remapOpts)
	recorder.ObserveProgram(time.Since(start))
	if err != nil {
		if remap.IsUnsupported(err) {
			return formatter.Fail(ExitFailure, ErrCodeUnsupported, err.Error(), nil)
		}
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	res := TransformResult{
		Output:    printer.Print(tree, root),
		Functions: stats.Functions,
		Awaits:    stats.Awaits,
		IIFEs:     stats.IIFEs,
		Annotated: stats.Annotated,
		ByKind:    stats.ByKind,
		InputHash: inputHash,
	}

	if cache != nil {
		if err := cacheResult(ctx, cache, opts.IDs, optionsHash, res); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeCacheFailed, err.Error(), nil)
		}
	}

	if opts.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.MetricsFile, reg); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing metrics: %v", err), nil)
		}
	}

	return emitTransform(formatter, opts, res)
}

// resolveOptions loads the options file and applies explicitly set flags.
func resolveOptions(cmd *cobra.Command, opts *TransformOptions) (config.Options, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return config.Options{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("wrap-async") {
		cfg.WrapAsync = opts.WrapAsync
	}
	if flags.Changed("wrap-await") {
		cfg.WrapAwait = opts.WrapAwait
	}
	if flags.Changed("no-new-arrows") {
		cfg.NoNewArrows = opts.NoNewArrows
	}
	if flags.Changed("ignore-function-length") {
		cfg.IgnoreFunctionLength = opts.IgnoreFunctionLength
	}
	return cfg, nil
}

// readTree decodes the AST document at path, reporting failures through f.
func readTree(f *OutputFormatter, path string) (*ast.Tree, ast.NodeID, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ast.NoNode, f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("input not found: %s", path), nil)
	}
	if err != nil {
		return nil, ast.NoNode, f.Fail(ExitCommandError, ErrCodeReadFailed, err.Error(), nil)
	}
	defer file.Close()

	tree, root, err := ast.Decode(file)
	if err != nil {
		return nil, ast.NoNode, f.Fail(ExitCommandError, ErrCodeDecodeFailed, err.Error(), nil)
	}
	return tree, root, nil
}

func cacheResult(ctx context.Context, cache *store.Store, ids store.IDGenerator, optionsHash string, res TransformResult) error {
	if ids == nil {
		ids = store.UUIDv7Generator{}
	}
	seq, err := cache.NextSeq(ctx)
	if err != nil {
		return err
	}
	_, err = cache.Put(ctx, store.Record{
		ID:          ids.Generate(),
		InputHash:   res.InputHash,
		OptionsHash: optionsHash,
		Output:      res.Output,
		Functions:   res.Functions,
		Awaits:      res.Awaits,
		IIFEs:       res.IIFEs,
		Annotated:   res.Annotated,
		ByKind:      res.ByKind,
		Seq:         seq,
	})
	return err
}

func resultFromRecord(rec store.Record) TransformResult {
	return TransformResult{
		Output:    rec.Output,
		Functions: rec.Functions,
		Awaits:    rec.Awaits,
		IIFEs:     rec.IIFEs,
		Annotated: rec.Annotated,
		ByKind:    rec.ByKind,
		InputHash: rec.InputHash,
		Cached:    true,
	}
}

func emitTransform(f *OutputFormatter, opts *TransformOptions, res TransformResult) error {
	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(res.Output+"\n"), 0o644); err != nil {
			return f.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	if f.Format == "json" {
		return f.Success(res)
	}

	f.VerboseLog("remapped %d function(s): %d await(s), %d iife(s), %d pure",
		res.Functions, res.Awaits, res.IIFEs, res.Annotated)
	if opts.Output != "" {
		fmt.Fprintf(f.Writer, "✓ Remapped %d function(s) to %s\n", res.Functions, opts.Output)
		return nil
	}
	fmt.Fprintln(f.Writer, res.Output)
	return nil
}
