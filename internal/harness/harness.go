package harness

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/remap/internal/ast"
	"github.com/roach88/remap/internal/config"
	"github.com/roach88/remap/internal/printer"
	"github.com/roach88/remap/internal/remap"
)

// Harness is the scenario execution engine.
// Each run decodes the scenario input into a fresh tree, so scenarios are
// isolated from one another and from helper identifiers of earlier runs.
type Harness struct {
	logger *zap.Logger
}

// New returns a harness logging to logger. A nil logger discards output.
func New(logger *zap.Logger) *Harness {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with a discarding logger.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a test scenario and returns the result.
//
// An error is returned only when the scenario cannot be set up: invalid
// options or an undecodable input. Transform failures are part of the
// result and are checked against the expect clause.
//
// Execution flow:
// 1. Resolve options (schema defaults unified with the scenario's CUE)
// 2. Decode the input into a fresh tree
// 3. Run the whole-program pass
// 4. Check the expect clause, then evaluate assertions on the output
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	cfg := config.Default()
	if scenario.Options != "" {
		var err error
		cfg, err = config.Parse(scenario.Name+".cue", []byte(scenario.Options))
		if err != nil {
			return nil, fmt.Errorf("scenario %s: options: %w", scenario.Name, err)
		}
	}

	tree, root, err := ast.DecodeNode(&scenario.Input)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: input: %w", scenario.Name, err)
	}
	opts, err := cfg.Build(tree)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: options: %w", scenario.Name, err)
	}

	result := NewResult()
	result.Stats, result.Err = remap.Program(tree, root, opts)

	expect := scenario.Expect
	switch {
	case result.Err != nil:
		h.checkError(expect, result)
	case expect.Error != "":
		result.AddError(fmt.Sprintf("expected error containing %q, transform succeeded", expect.Error))
	default:
		result.Output = printer.Print(tree, root)
		checkCount(result, "functions", expect.Functions, result.Stats.Functions)
		checkCount(result, "awaits", expect.Awaits, result.Stats.Awaits)
		checkCount(result, "iifes", expect.IIFEs, result.Stats.IIFEs)
		checkCount(result, "annotated", expect.Annotated, result.Stats.Annotated)

		actx := &AssertionContext{Tree: tree, Root: root}
		for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
			result.AddError(msg)
		}
	}

	h.logger.Info("scenario completed",
		zap.String("scenario", scenario.Name),
		zap.Bool("pass", result.Pass),
		zap.Int("functions", result.Stats.Functions),
		zap.Int("awaits", result.Stats.Awaits),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func (h *Harness) checkError(expect Expect, result *Result) {
	msg := result.Err.Error()
	if expect.Error == "" {
		result.AddError(fmt.Sprintf("unexpected error: %s", msg))
		return
	}
	if !strings.Contains(msg, expect.Error) {
		result.AddError(fmt.Sprintf("error: expected %q in %q", expect.Error, msg))
	}
	if expect.Unsupported && !remap.IsUnsupported(result.Err) {
		result.AddError(fmt.Sprintf("error: expected an unsupported construct, got %q", msg))
	}
	h.logger.Debug("transform failed as expected",
		zap.String("error", msg))
}

func checkCount(result *Result, name string, want *int, got int) {
	if want != nil && *want != got {
		result.AddError(fmt.Sprintf("%s: expected %d, got %d", name, *want, got))
	}
}
