package types

import (
	"errors"
	"net/http"

	appErr "github.com/trackr/api/pkg/errors"
)

// FromAppError converts err into the wire error. Errors without a code are
// reported as internal and their text is not exposed.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	var e *appErr.AppError
	if !errors.As(err, &e) {
		return &APIError{Code: string(appErr.CodeInternal), Message: "internal server error"}
	}
	if appErr.HTTPStatus(e.Code) == http.StatusInternalServerError {
		return &APIError{Code: string(e.Code), Message: "internal server error"}
	}
	out := &APIError{Code: string(e.Code), Message: e.Message}
	if len(e.Meta) > 0 {
		out.Details = e.Meta
	}
	return out
}
