package vapi

import (
	"net/http"

	"tradie_receptionist/platform/httpkit"
	"tradie_receptionist/platform/logger"

	"github.com/gin-gonic/gin"
)

// Handler serves the voice platform webhook.
type Handler struct {
	service *Service
	log     *logger.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// HandleWebhook processes one server message. It always answers 200 so the
// platform never retries on our account.
// POST /webhook/vapi
func (h *Handler) HandleWebhook(c *gin.Context) {
	var env Envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		h.log.WithContext(c.Request.Context()).Warn("unreadable webhook body", "error", err)
		httpkit.Ack(c)
		return
	}
	if env.Message == nil {
		httpkit.Ack(c)
		return
	}

	c.JSON(http.StatusOK, h.service.HandleEvent(c.Request.Context(), env.Message))
}
