package evtfilter

import "fmt"

// ErrChannelNotMapped represents a channel missing from a lookup table.
type ErrChannelNotMapped struct {
	Channel ChannelID
	Table   string
}

func (e *ErrChannelNotMapped) Error() string {
	return fmt.Sprintf("channel %d not found in %s map", e.Channel, e.Table)
}

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// ErrParseEvent represents a malformed line in an event file.
type ErrParseEvent struct {
	Line int
	Err  error
}

func (e *ErrParseEvent) Error() string {
	return fmt.Sprintf("error parsing event at line %d: %v", e.Line, e.Err)
}

func (e *ErrParseEvent) Unwrap() error {
	return e.Err
}

// ErrQueryDatabase represents a failed query on a mapping table.
type ErrQueryDatabase struct {
	TableName string
	Err       error
}

func (e *ErrQueryDatabase) Error() string {
	return fmt.Sprintf("error querying table %q: %v", e.TableName, e.Err)
}

func (e *ErrQueryDatabase) Unwrap() error {
	return e.Err
}

type ErrInvalidConfiguration struct {
	Field  string
	Reason string
}

func (e *ErrInvalidConfiguration) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}
