// Package failure defines the error markers shared by the organizing pass and
// the CLI.
//
// Components wrap low-level errors with Wrap so the message carries the
// component and operation that failed while errors.Is still matches the
// marker. The CLI uses Recoverable to decide whether a failure is reported as
// a plain message (input validation) or aborts the run with a non-zero exit.
package failure
