package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/remap/internal/store"
)

// CacheOptions holds flags for the cache commands.
type CacheOptions struct {
	*RootOptions
	DB string
}

// CacheEntry is the listing form of a cached transform.
type CacheEntry struct {
	ID          string         `json:"id"`
	Seq         int64          `json:"seq"`
	InputHash   string         `json:"input_hash"`
	OptionsHash string         `json:"options_hash"`
	Functions   int            `json:"functions"`
	Awaits      int            `json:"awaits"`
	IIFEs       int            `json:"iifes"`
	Annotated   int            `json:"annotated"`
	ByKind      map[string]int `json:"by_kind"`
}

// NewCacheCommand creates the cache command group.
func NewCacheCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CacheOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the transform cache",
	}
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "transform cache database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	ls := &cobra.Command{
		Use:           "ls",
		Short:         "List cached transforms in insertion order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheList(cmd.Context(), opts, cmd)
		},
	}
	cmd.AddCommand(ls)

	return cmd
}

func runCacheList(ctx context.Context, opts *CacheOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(opts.DB); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("cache not found: %s", opts.DB), nil)
	}
	cache, err := store.Open(opts.DB)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeCacheFailed, err.Error(), nil)
	}
	defer cache.Close()

	records, err := cache.List(ctx)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeCacheFailed, err.Error(), nil)
	}

	entries := make([]CacheEntry, len(records))
	for i, r := range records {
		entries[i] = CacheEntry{
			ID:          r.ID,
			Seq:         r.Seq,
			InputHash:   r.InputHash,
			OptionsHash: r.OptionsHash,
			Functions:   r.Functions,
			Awaits:      r.Awaits,
			IIFEs:       r.IIFEs,
			Annotated:   r.Annotated,
			ByKind:      r.ByKind,
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "cache is empty")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%4d  %s  input=%s  functions=%d awaits=%d pure=%d\n",
			e.Seq, e.ID, short(e.InputHash), e.Functions, e.Awaits, e.Annotated)
	}
	return nil
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
