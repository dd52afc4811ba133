package cli

import (
	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/roach88/remap/internal/ast"
	"github.com/roach88/remap/internal/config"
	"github.com/roach88/remap/internal/remap"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	Transformed bool
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dump <ast-file>",
		Short: "Print the decoded AST",
		Long: `Decode an AST document and print it back as a node tree, optionally after
the transform has run. Useful to inspect what the decoder kept.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Transformed, "transformed", "t", false, "dump the tree after the transform")

	return cmd
}

func runDump(opts *DumpOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	tree, root, err := readTree(formatter, path)
	if err != nil {
		return err
	}

	if opts.Transformed {
		cfg, err := config.Load(opts.Config)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeConfigInvalid, err.Error(), nil)
		}
		remapOpts, err := cfg.Build(tree)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeConfigInvalid, err.Error(), nil)
		}
		if _, err := remap.Program(tree, root, remapOpts); err != nil {
			return formatter.Fail(ExitFailure, ErrCodeUnsupported, err.Error(), nil)
		}
	}

	doc := ast.Encode(tree, root)
	if formatter.Format == "json" {
		return formatter.Success(doc)
	}
	_, err = pretty.Fprintf(formatter.Writer, "%# v\n", doc)
	return err
}
