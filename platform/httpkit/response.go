// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"errors"
	"net/http"

	"tradie_receptionist/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// emptyTwiML is the acknowledgment body the SMS platform expects from inbound webhooks.
const emptyTwiML = "<Response></Response>"

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// OK sends a 200 OK response with the given payload.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Ack sends an empty JSON object. Webhook callers get this whenever there is nothing else to say.
func Ack(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{})
}

// TwiMLAck sends the empty XML acknowledgment document.
func TwiMLAck(c *gin.Context) {
	TwiML(c, http.StatusOK)
}

// TwiML sends the empty XML document with the given status. The SMS platform
// parses every webhook response as XML, rejections included.
func TwiML(c *gin.Context, status int) {
	c.Data(status, "text/xml", []byte(emptyTwiML))
}

// HandleError maps domain errors to HTTP responses.
// Typed *apperr.Error values use their Kind; anything else becomes a 500.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		c.JSON(domainErr.HTTPStatus(), ErrorResponse{Error: domainErr.Message})
		return true
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	return true
}
