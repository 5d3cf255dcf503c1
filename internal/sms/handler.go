package sms

import (
	"context"
	"strings"

	"tradie_receptionist/internal/calls"
	"tradie_receptionist/internal/operators"
	"tradie_receptionist/platform/apperr"
	"tradie_receptionist/platform/httpkit"
	"tradie_receptionist/platform/logger"

	"github.com/gin-gonic/gin"
)

// OperatorLookup resolves an operator from the number a reply came from.
type OperatorLookup interface {
	ByPersonalPhone(number string) (operators.Operator, bool)
}

// LastCallerSource returns the latest genuine caller for an operator.
type LastCallerSource interface {
	LastCaller(operatorID string) (calls.LastCaller, bool)
}

// Handler processes inbound SMS replies from operators.
type Handler struct {
	operators OperatorLookup
	callers   LastCallerSource
	notifier  *Notifier
	log       *logger.Logger
}

// NewHandler creates a new inbound SMS handler.
func NewHandler(ops OperatorLookup, callers LastCallerSource, notifier *Notifier, log *logger.Logger) *Handler {
	return &Handler{operators: ops, callers: callers, notifier: notifier, log: log}
}

// HandleIncoming acts on an operator's reply. The platform always gets an empty TwiML document.
// POST /webhook/sms-incoming
func (h *Handler) HandleIncoming(c *gin.Context) {
	from := strings.TrimSpace(c.PostForm("From"))
	body := c.PostForm("Body")

	h.Process(c.Request.Context(), from, body)
	httpkit.TwiMLAck(c)
}

// Process runs the command in body on behalf of the sender. It reports whether
// a reply was sent.
func (h *Handler) Process(ctx context.Context, from, body string) bool {
	log := h.log.WithContext(ctx)
	cmd := ParseCommand(body)
	log.Info("sms received", "from", from, "command", cmd.String())

	switch cmd {
	case CommandCall:
		return h.sendLastCaller(ctx, from)
	case CommandBusy, CommandBack, CommandOff, CommandOn:
		// Recognised keywords with no effect yet; acknowledged without a reply.
		log.Info("sms command reserved, ignoring", "command", cmd.String())
		return false
	case CommandNone:
		return false
	}
	return false
}

func (h *Handler) sendLastCaller(ctx context.Context, from string) bool {
	log := h.log.WithContext(ctx)

	op, ok := h.operators.ByPersonalPhone(from)
	if !ok {
		log.Warn("sms command ignored", "command", CommandCall.String(),
			"error", apperr.NotFound("no operator for number "+from).WithOp("sms-incoming"))
		return false
	}

	caller, ok := h.callers.LastCaller(op.ID)
	if !ok {
		log.Info("no last caller recorded", "operator_id", op.ID)
		return false
	}

	return h.notifier.SendLastCaller(ctx, op, caller).Success
}
