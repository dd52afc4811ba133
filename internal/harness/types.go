package harness

import "github.com/roach88/remap/internal/remap"

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Output is the printed program after the transform.
	// Empty when the transform failed.
	Output string `json:"output"`

	// Stats are the counters reported by the whole-program pass.
	Stats remap.Stats `json:"stats"`

	// Err is the transform error, if any. An expected error still passes.
	Err error `json:"-"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
