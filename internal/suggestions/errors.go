package suggestions

import "fmt"

// APICallError represents a failed call to the generative-language API
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// InputError represents missing resume or job input
type InputError struct {
	Field string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("missing input: %s", e.Field)
}
