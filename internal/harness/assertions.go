package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/remap/internal/ast"
	"github.com/roach88/remap/internal/traverse"
)

// AssertionError is returned when an assertion fails.
// It includes the printed program to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Output   string // Printed program
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Output != "" {
		fmt.Fprintf(&buf, "\nOutput:\n")
		for _, line := range strings.Split(e.Output, "\n") {
			fmt.Fprintf(&buf, "  %s\n", line)
		}
	}

	return buf.String()
}

// AssertionContext carries the transformed tree for node assertions.
type AssertionContext struct {
	Tree *ast.Tree
	Root ast.NodeID
}

func assertOutputContains(output string, assertion Assertion) error {
	if strings.Contains(output, assertion.Text) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputContains,
		Expected: fmt.Sprintf("output contains %q", assertion.Text),
		Actual:   "not found",
		Output:   output,
	}
}

func assertOutputExcludes(output string, assertion Assertion) error {
	n := strings.Count(output, assertion.Text)
	if n == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputExcludes,
		Expected: fmt.Sprintf("output does not contain %q", assertion.Text),
		Actual:   fmt.Sprintf("found %d time(s)", n),
		Output:   output,
	}
}

// assertNodeCount counts nodes of the asserted kind anywhere under the root,
// nested functions included.
func assertNodeCount(actx *AssertionContext, output string, assertion Assertion) error {
	kind := ast.KindOf(assertion.Kind)
	n := 0
	traverse.Inspect(actx.Tree, actx.Root, func(id ast.NodeID) traverse.Action {
		if actx.Tree.Kind(id) == kind {
			n++
		}
		return traverse.Continue
	})
	if n == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertNodeCount,
		Expected: fmt.Sprintf("%s appears %d time(s)", assertion.Kind, assertion.Count),
		Actual:   fmt.Sprintf("%s appears %d time(s)", assertion.Kind, n),
		Output:   output,
	}
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides the tree for node_count assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertOutputContains:
			err = assertOutputContains(result.Output, assertion)
		case AssertOutputExcludes:
			err = assertOutputExcludes(result.Output, assertion)
		case AssertNodeCount:
			if actx == nil || actx.Tree == nil {
				err = fmt.Errorf("assertion[%d]: node_count requires a tree", i)
			} else {
				err = assertNodeCount(actx, result.Output, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
