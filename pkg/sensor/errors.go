package sensor

import "fmt"

// ConnectionError means the sink could not hand out a connection. The
// caller may retry; the store itself never does.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// WriteError means the insert itself was rejected.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("database write failed: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
