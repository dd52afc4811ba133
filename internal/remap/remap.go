// Package remap lowers async functions to generator functions driven by a
// runtime helper.
//
// Function rewrites one function: every `await` in its own scope becomes a
// `yield`, the function turns into a generator and is handed to the driver
// helper through wrapfn. When the result is a call that nothing invokes on
// the spot, it is annotated /*#__PURE__*/ so minifiers may drop it if unused.
// Program applies Function to every async function of a tree.
//
// Helper expressions passed in Options must belong to the same tree; every
// use inserts a fresh clone.
package remap

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/remap/internal/ast"
	"github.com/roach88/remap/internal/wrapfn"
)

var (
	// ErrNotFunction is returned when the target node is not function-like.
	ErrNotFunction = errors.New("remap: target is not a function")
	// ErrNotAsync is returned when the target function is not async.
	ErrNotAsync = errors.New("remap: function is not async")
	// ErrAsyncGenerator is returned for async generator functions, which
	// need a different lowering.
	ErrAsyncGenerator = errors.New("remap: async generators are not supported")
	// ErrForAwait is returned when the function's own scope holds a
	// `for await` loop, which a generator cannot express.
	ErrForAwait = errors.New("remap: for await loops are not supported")
	// ErrNoDriver is returned when Options.WrapAsync is missing.
	ErrNoDriver = errors.New("remap: driver helper expression is required")
)

// IsUnsupported reports whether err names input the transform cannot lower,
// as opposed to a misuse of the API.
func IsUnsupported(err error) bool {
	return wrapfn.IsUnsupported(err) || errors.Is(err, ErrForAwait)
}

// Observer receives one notification per transformed function.
type Observer interface {
	ObserveFunction(kind ast.Kind, iife, annotated bool)
}

// Options configure a transform.
type Options struct {
	// WrapAsync is the driver helper, e.g. `babelHelpers.asyncToGenerator`.
	WrapAsync ast.NodeID
	// WrapAwait optionally wraps every awaited value: `yield WRAP(value)`.
	WrapAwait ast.NodeID
	// NoNewArrows lowers async arrows by aliasing `this` instead of binding.
	NoNewArrows bool
	// IgnoreFunctionLength drops the wrapper that keeps Function#length.
	IgnoreFunctionLength bool
	// Observer, if set, is notified after each function.
	Observer Observer
}

// result describes one transformed function.
type result struct {
	node      ast.NodeID
	kind      ast.Kind
	awaits    int
	iife      bool
	annotated bool
}

// Function transforms the async function fn in place and returns the node
// now occupying its position: fn itself for methods, the wrapper declaration
// for declarations and the driver call for expressions. For arrows that is
// the outermost node built around the driver call: `WRAP(...).bind(this)`
// unless NoNewArrows is set, or the `(() => ...)()` that gives a class field
// arrow its own environment.
//
// Errors from the wrapper are returned wrapped; the tree is not restored.
func Function(t *ast.Tree, fn ast.NodeID, opts Options) (ast.NodeID, error) {
	res, err := transform(t, fn, opts)
	if err != nil {
		return ast.NoNode, err
	}
	return res.node, nil
}

func transform(t *ast.Tree, fn ast.NodeID, opts Options) (result, error) {
	n := t.Node(fn)
	switch {
	case n == nil || !n.Kind.IsFunction():
		return result{}, fmt.Errorf("%w: got %s", ErrNotFunction, t.Kind(fn))
	case !n.Flags.Has(ast.FlagAsync):
		return result{}, ErrNotAsync
	case n.Flags.Has(ast.FlagGenerator):
		return result{}, ErrAsyncGenerator
	case opts.WrapAsync == ast.NoNode:
		return result{}, ErrNoDriver
	case containsForAwait(t, fn):
		return result{}, ErrForAwait
	}

	res := result{kind: n.Kind}
	res.awaits = RewriteAwaits(t, fn, opts.WrapAwait)
	res.iife = IsIIFE(t, fn)

	n.Flags = n.Flags&^ast.FlagAsync | ast.FlagGenerator

	wrapped, err := wrapfn.Wrap(t, fn, t.Clone(opts.WrapAsync), wrapfn.Options{
		NoNewArrows:          opts.NoNewArrows,
		IgnoreFunctionLength: opts.IgnoreFunctionLength,
	})
	if err != nil {
		return result{}, fmt.Errorf("remap %s: %w", res.kind, err)
	}
	res.node = wrapped

	if !isProperty(t, wrapped) && !res.iife && t.Kind(wrapped) == ast.KindCallExpression {
		res.annotated = ast.AnnotateAsPure(t, wrapped)
	}

	Logger().Debug("remapped async function",
		zap.Stringer("kind", res.kind),
		zap.Int("awaits", res.awaits),
		zap.Bool("iife", res.iife),
		zap.Bool("annotated", res.annotated))
	if opts.Observer != nil {
		opts.Observer.ObserveFunction(res.kind, res.iife, res.annotated)
	}
	return res, nil
}

// isProperty reports whether id is a method or the value of an object
// property or class field.
func isProperty(t *ast.Tree, id ast.NodeID) bool {
	if t.Kind(id).IsMethod() {
		return true
	}
	switch p := t.Kind(t.Parent(id)); {
	case p == ast.KindObjectProperty, p.IsClassField():
		return true
	}
	return false
}
