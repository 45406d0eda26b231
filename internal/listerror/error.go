package listerror

import "net/http"

// Tags rendered with the errors.
const (
	TagInvalidParameters = "invalid-parameters"
	TagInvalidValue      = "invalid-value"
	TagNotFound          = "not-found"
	TagConflict          = "conflict"
)

type (
	// A ListError represents the error format that can be rendered by the lists server.
	ListError struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if lerr, ok := err.(*ListError); ok && lerr.HTTPCode != 0 {
		return lerr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new ListError with the given message.
func New(message string) *ListError {
	return &ListError{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new ListError with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *ListError {
	return &ListError{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// NotFound returns a 404 ListError.
func NotFound(message string) *ListError {
	return NewWithTagCode(http.StatusNotFound, TagNotFound, message)
}

// Conflict returns a 409 ListError.
func Conflict(message string) *ListError {
	return NewWithTagCode(http.StatusConflict, TagConflict, message)
}

// InvalidParameters returns a 400 ListError.
func InvalidParameters(message string) *ListError {
	return NewWithTagCode(http.StatusBadRequest, TagInvalidParameters, message)
}

// InvalidValue returns a 400 ListError.
func InvalidValue(message string) *ListError {
	return NewWithTagCode(http.StatusBadRequest, TagInvalidValue, message)
}

// Tag returns the tag of the error.
func (e *ListError) Tag() string {
	return e.FieldError.Tag
}

// Error implements error interface.
func (e *ListError) Error() string {
	return e.FieldError.Message
}
