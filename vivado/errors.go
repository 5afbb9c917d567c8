package vivado

import "fmt"

// ConfigurationError indicates a request the toolchain cannot express, such
// as an unknown constraint kind or synthesis mode. It is reported before any
// output is produced.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}

// ConflictingConstraintError indicates that a clock was constrained twice
// with different periods.
type ConflictingConstraintError struct {
	Clock    string
	Existing float64
	New      float64
}

func (e *ConflictingConstraintError) Error() string {
	return fmt.Sprintf("clock %s already constrained to %.2fns, new constraint to %.2fns",
		e.Clock, e.Existing, e.New)
}

// StateError indicates a registration on a timing registry that has already
// been drained. It always indicates a caller ordering bug.
type StateError struct {
	Op string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: timing constraints already finalized", e.Op)
}

// ToolExecutionError indicates that an external tool exited with a non-zero
// status.
type ToolExecutionError struct {
	Script   string
	ExitCode int
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("%s failed with exit status %d", e.Script, e.ExitCode)
}
