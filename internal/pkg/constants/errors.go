package constants

import "net/http"

// CodedError is an error carrying the HTTP status the API layer should
// respond with. The echo error handler unwraps down to the first CodedError
// in the chain.
type CodedError struct {
	message string
	code    int
}

func NewCodedError(message string, code int) *CodedError {
	return &CodedError{message: message, code: code}
}

func (e *CodedError) Error() string {
	return e.message
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound        = NewCodedError("not found", http.StatusNotFound)
	ErrUnauthorized      = NewCodedError("unauthorized", http.StatusUnauthorized)
	ErrMissingAuthCookie = NewCodedError("missing auth cookie", http.StatusUnauthorized)
	ErrEmailAlreadyTaken = NewCodedError("email already taken", http.StatusConflict)
	ErrBadRequest        = NewCodedError("bad request", http.StatusBadRequest)
)
