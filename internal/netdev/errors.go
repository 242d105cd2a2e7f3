package netdev

import "fmt"

// ConnectionError wraps an authentication or reachability failure while
// opening a session. When it surfaces, no remote command has executed.
type ConnectionError struct {
	Host string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connecting to %s: %v", e.Host, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// CommandError carries the raw text of a command the device rejected.
// The output is passed through untouched; no normalization of
// device-specific error formats is attempted.
type CommandError struct {
	Cmd    string
	Output string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("device rejected %q: %s", e.Cmd, e.Output)
}
