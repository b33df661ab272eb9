package answer

import "fmt"

// FallbackDetail is used when a failed response carries no parseable detail.
const FallbackDetail = "the request could not be completed"

// RequestError reports a non-success HTTP status from the Answer Endpoint.
// Detail holds the human-readable message extracted from the error body, or
// FallbackDetail when the body could not be parsed.
type RequestError struct {
	StatusCode int
	Detail     string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("answer endpoint returned status %d: %s", e.StatusCode, e.Detail)
}

// MalformedError reports a success response whose body does not match the
// expected structured shape.
type MalformedError struct {
	Cause error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed answer endpoint response: %v", e.Cause)
}

func (e *MalformedError) Unwrap() error {
	return e.Cause
}
