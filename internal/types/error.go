// Package types holds the error shape shared by the middleware and the
// server's fiber error handler, which renders it as the JSON error envelope.
package types

import (
	"fmt"
	"net/http"
)

// CustomError is an HTTP-mapped failure carrying a dotted category tag,
// such as auth.session or auth.origin, surfaced in the response envelope.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Unauthorized builds a 401 error in the given category.
func Unauthorized(message, kind string) *CustomError {
	return &CustomError{Code: http.StatusUnauthorized, Message: message, Type: kind}
}

// Forbidden builds a 403 error in the given category.
func Forbidden(message, kind string) *CustomError {
	return &CustomError{Code: http.StatusForbidden, Message: message, Type: kind}
}
