// Package errors provides structured error handling for the simulation.
package errors

// Code is a machine-readable error code. Lifecycle operations that hit
// bad input report it through neutral results instead of errors, so the
// catalog only covers the paths that surface a wrapped failure.
type Code string

const (
	// Graph errors
	CodeGraphDecodeInvalid Code = "GRAPH_DECODE_INVALID"

	// Scenario errors
	CodeScenarioLoadFailed Code = "SCENARIO_LOAD_FAILED"
	CodeScenarioStepFailed Code = "SCENARIO_STEP_FAILED"
)
