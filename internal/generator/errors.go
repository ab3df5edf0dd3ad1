package generator

import (
	"fmt"
	"net/http"
)

// Kind classifies a generation failure.
type Kind string

const (
	KindInvalidInput     Kind = "INVALID_INPUT"
	KindConfiguration    Kind = "CONFIGURATION_ERROR"
	KindAuth             Kind = "AUTH_ERROR"
	KindGenerationFailed Kind = "GENERATION_FAILED"
)

// User-facing messages for each kind.
const (
	MsgNoIngredients    = "Please provide at least one ingredient"
	MsgAuth             = "Invalid or missing Gemini API key. Please check your configuration."
	MsgGenerationFailed = "Failed to generate recipe. Please try again."
)

// Error is a classified generation failure carrying a message safe to show
// to the caller.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause error
func (e *Error) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status for the error kind.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// ConfigurationMessage names the missing credential.
func ConfigurationMessage(credential string) string {
	return fmt.Sprintf("Gemini API key not configured. Please add %s to your environment variables.", credential)
}
