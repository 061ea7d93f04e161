package domain

import "fmt"

// InputError is a request rejected before any I/O.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

var (
	ErrEmptyClaim        = &InputError{Message: "No claim provided."}
	ErrMissingCredential = &InputError{Message: "No key available."}
)

// UpstreamError is a failed language model call. It is fatal to the pipeline.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
