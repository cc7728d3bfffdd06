package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moneymate/backend/internal/service"
)

// ok writes the success envelope, merging payload into the body.
func ok(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// fail maps a service error to its HTTP status and writes the failure
// envelope. Unrecognized errors are reported as 500 with a generic
// message; the detail goes to the log, not the client.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("Internal error", "path", c.Request.URL.Path, "error", err)
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// failMsg writes the failure envelope with an explicit status and message.
func failMsg(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// statusFor maps the service error taxonomy to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
