package errormapper

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

var internalToHTTP = map[string]int{
	ErrorCodeValidationFailure: http.StatusBadRequest,
	ErrorCodeNotFound:          http.StatusNotFound,
	ErrorCodeUnauthorized:      http.StatusUnauthorized,
	ErrorCodeRateLimited:       http.StatusTooManyRequests,
	ErrorCodeUnknownCountry:    http.StatusBadRequest,
	ErrorCodeConflict:          http.StatusConflict,
	ErrorCodeEmptyCart:         http.StatusBadRequest,
	ErrorCodeOutOfStock:        http.StatusConflict,
	ErrorCodeProductInactive:   http.StatusConflict,
	ErrorCodeSessionNotFound:   http.StatusBadRequest,
	ErrorCodeInvalidTransition: http.StatusConflict,
	ErrorCodePaymentFailure:    http.StatusBadGateway,
	ErrorCodeInvalidSignature:  http.StatusBadRequest,
	ErrorCodeSystemError:       http.StatusInternalServerError,
	ErrorCodeDatabaseError:     http.StatusInternalServerError,
	ErrorCodeConfigError:       http.StatusInternalServerError,
}

// Error carries an internal code alongside a message safe to show callers.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the internal code carried by err, or SYS_ERR.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrorCodeSystemError
}

// HTTPStatus translates an internal error code to an HTTP status.
func HTTPStatus(internalCode string) int {
	internalCode = strings.ToUpper(internalCode)
	if status, ok := internalToHTTP[internalCode]; ok {
		return status
	}
	slog.Debug("No specific mapping found for error code, returning default",
		slog.String("internal_code", internalCode),
	)
	return http.StatusInternalServerError
}

// Describe returns the status, code and public message for err. Errors
// without a code are reported as internal failures without their details.
func Describe(err error) (status int, code, message string) {
	var e *Error
	if errors.As(err, &e) {
		return HTTPStatus(e.Code), e.Code, e.Message
	}
	return http.StatusInternalServerError, ErrorCodeSystemError, "internal server error"
}
