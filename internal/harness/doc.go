// Package harness runs conformance scenarios for the async-to-generator
// transform.
//
// # Scenario Format
//
// Scenarios are YAML files. The input is an inline Babel/ESTree program and
// the options are a CUE document unified with the remap.cue schema:
//
//	name: declaration
//	description: "Async declaration is split into a wrapper and a worker"
//	options: |
//	  wrapAsync: "_asyncToGenerator"
//	input:
//	  type: Program
//	  body: [...]
//	expect:
//	  functions: 1
//	  awaits: 1
//	assertions:
//	  - type: node_count
//	    kind: AwaitExpression
//	    count: 0
//
// A scenario that must fail names a substring of the error instead:
//
//	expect:
//	  error: "update expressions on super properties"
//	  unsupported: true
//
// # Assertion Types
//
//   - output_contains: the printed program contains text
//   - output_excludes: the printed program does not contain text
//   - node_count: the transformed tree holds exactly count nodes of kind
//
// # Golden Files
//
// RunWithGolden compares the printed program (or the error text) against
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
