// Package response defines the uniform API envelope and the single place
// where domain errors are mapped onto HTTP responses.
package response

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "pressroom/internal/errors"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Data    interface{}           `json:"data,omitempty"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

// JSON writes a success envelope.
func JSON(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// NewHTTPErrorHandler returns an echo error handler that maps the error
// taxonomy to status codes and envelopes exactly once. In production builds
// unexpected errors are reduced to a generic message.
func NewHTTPErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := Envelope{Success: false}

		var ve *apperrors.ValidationError
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ve):
			status = http.StatusBadRequest
			body.Message = "Validation failed"
			body.Errors = ve.Fields
		case errors.As(err, &he):
			status = he.Code
			body.Message = httpErrorMessage(he)
		default:
			status = apperrors.Status(err)
			if status == http.StatusInternalServerError {
				body.Message = "Internal server error"
				if !production {
					body.Message = err.Error()
				}
				c.Logger().Error(err)
			} else {
				body.Message = err.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

// httpErrorMessage shapes framework-originated errors (routing, binding,
// bearer-token middleware) into user-facing messages.
func httpErrorMessage(he *echo.HTTPError) string {
	switch he.Code {
	case http.StatusNotFound:
		return "Route not found"
	case http.StatusMethodNotAllowed:
		return "Method not allowed"
	case http.StatusUnauthorized:
		if isExpired(he.Internal) {
			return "Token expired"
		}
		return "Invalid or missing token"
	}
	if msg, ok := he.Message.(string); ok {
		return msg
	}
	return http.StatusText(he.Code)
}

func isExpired(err error) bool {
	var jwtErr *jwt.ValidationError
	if errors.As(err, &jwtErr) {
		return jwtErr.Errors&jwt.ValidationErrorExpired != 0
	}
	return false
}
