package assistant

import "fmt"

// TransportError means the service could not be reached or its reply could
// not be read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("assistant %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError means the service answered but reported a failure.
type ServiceError struct {
	Op      string
	Status  int    // HTTP status code
	Message string // "error" field of the reply, if any
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("assistant %s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("assistant %s: status %d", e.Op, e.Status)
}
