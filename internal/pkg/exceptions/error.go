package exceptions

import (
	"errors"
	"fmt"
	"medibook-service/internal/pkg/constvars"
	"runtime"
)

type CustomError struct {
	StatusCode    int        `json:"-"`
	Code          string     `json:"code"`
	ClientMessage string     `json:"message"`
	Issues        []Issue    `json:"issues,omitempty"`
	DevMessage    string     `json:"-"`
	Locations     []Location `json:"-"`
	cause         error
}

// Issue is a single field level validation failure.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.DevMessage)
	}
	loc := e.Locations[0]
	return fmt.Sprintf("[%s] %s (%s:%d %s)", e.Code, e.DevMessage, loc.File, loc.Line, loc.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// BuildNewCustomError wraps err with the caller location. When err already is a
// CustomError the original classification is kept and only the location is added.
func BuildNewCustomError(err error, statusCode int, code, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)

	var existing *CustomError
	if errors.As(err, &existing) {
		existing.Locations = append(existing.Locations, location)
		return existing
	}

	dev := devMessage
	if err != nil {
		dev = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		Code:          code,
		ClientMessage: clientMessage,
		DevMessage:    dev,
		Locations:     []Location{location},
		cause:         err,
	}
}

// HasCode reports whether err carries the given error code.
func HasCode(err error, code string) bool {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Code == code
	}
	return false
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
