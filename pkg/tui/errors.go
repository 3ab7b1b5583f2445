package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions is reported when a dropdown has no valid choice for the
	// current values, typically because its controlling field is empty.
	ErrNoOptions = errors.New("tui: no options available")
)
