package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/relaypoint/mailgate/internal/core/domain/email"
)

// sendEmail handles POST /ses. The whole body is unmarshalled rather than
// bound, so a non-JSON payload (including one with trailing content after a
// JSON value) is always reported as invalid JSON regardless of the
// Content-Type header.
func (s *Server) sendEmail(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid JSON in request body",
		})
	}

	var req email.SendEmailRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid JSON in request body",
		})
	}

	result, err := s.emailSvc.SendFromRequest(c.Request().Context(), &req)
	if err != nil {
		return s.sendEmailError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Email sent successfully",
		"response": result,
	})
}

// sendEmailError maps pipeline errors to the response contract. Every error
// is terminal for the invocation; nothing is retried.
func (s *Server) sendEmailError(c echo.Context, err error) error {
	var missingField *email.MissingFieldError
	var providerErr *email.ProviderError

	switch {
	case errors.Is(err, email.ErrInvalidAPIKey):
		return c.JSON(http.StatusForbidden, map[string]string{
			"error": "Access Denied: Invalid API key",
		})
	case errors.As(err, &missingField):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Missing required field: " + missingField.Field,
		})
	case errors.Is(err, email.ErrInvalidAddress):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid email address format",
		})
	case errors.As(err, &providerErr):
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("Error sending email via %s: %v", providerErr.Provider, providerErr.Err),
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}
}
