package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error carrying the HTTP status it maps to.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequest builds a 400 error with the given message.
func BadRequest(message string, err error) *Error {
	return New(http.StatusBadRequest, message, err)
}

// NotFound builds a 404 error with the given message.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// Forbidden builds a 403 error with the given message.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message, nil)
}

// Upstream builds a 500 error for a failed storage, object-store or broker call.
func Upstream(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden      = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Respond maps err to an HTTP response on the gin context. Errors that are not
// *Error become a generic 500 carrying the failure's message.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = New(http.StatusInternalServerError, err.Error(), err)
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
