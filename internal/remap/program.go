package remap

import (
	"go.uber.org/zap"

	"github.com/roach88/remap/internal/ast"
	"github.com/roach88/remap/internal/traverse"
)

// Stats summarizes a Program run.
type Stats struct {
	Functions int            // async functions transformed
	Awaits    int            // awaits rewritten to yields
	IIFEs     int            // functions invoked where defined
	Annotated int            // driver calls marked pure
	ByKind    map[string]int // transformed functions per node kind
}

// Program transforms every async, non-generator function under root.
//
// Targets are collected in pre-order before any rewrite, so an outer
// function is lowered before the functions nested in it. Nodes are moved,
// never copied, which keeps the collected IDs valid across rewrites.
// Processing stops at the first error; earlier rewrites stay applied.
func Program(t *ast.Tree, root ast.NodeID, opts Options) (Stats, error) {
	var targets []ast.NodeID
	traverse.Inspect(t, root, func(id ast.NodeID) traverse.Action {
		n := t.Node(id)
		if n.Kind.IsFunction() && n.Flags.Has(ast.FlagAsync) && !n.Flags.Has(ast.FlagGenerator) {
			targets = append(targets, id)
		}
		return traverse.Continue
	})

	stats := Stats{ByKind: make(map[string]int)}
	for _, fn := range targets {
		res, err := transform(t, fn, opts)
		if err != nil {
			return stats, err
		}
		stats.Functions++
		stats.Awaits += res.awaits
		stats.ByKind[res.kind.String()]++
		if res.iife {
			stats.IIFEs++
		}
		if res.annotated {
			stats.Annotated++
		}
	}

	Logger().Debug("remapped program",
		zap.Int("functions", stats.Functions),
		zap.Int("awaits", stats.Awaits),
		zap.Int("iifes", stats.IIFEs),
		zap.Int("annotated", stats.Annotated))
	return stats, nil
}
