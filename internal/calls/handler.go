package calls

import (
	"strconv"
	"strings"

	"tradie_receptionist/platform/apperr"
	"tradie_receptionist/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const errInvalidLimit = "limit must be a positive integer"

// Handler serves the read-only dashboard queries.
type Handler struct {
	store *Store
}

// NewHandler creates a new calls handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// HandleListCalls returns counts and recent genuine calls for one operator.
// GET /api/calls/:tradieId?limit=N
func (h *Handler) HandleListCalls(c *gin.Context) {
	operatorID, ok := h.operatorParam(c)
	if !ok {
		return
	}

	limit := DefaultRecentLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httpkit.HandleError(c, apperr.BadRequest(errInvalidLimit))
			return
		}
		limit = n
	}

	httpkit.OK(c, h.store.Summarize(operatorID, limit))
}

// HandleSpamStats returns the operator's spam count since the last daily report.
// GET /api/spam-stats/:tradieId
func (h *Handler) HandleSpamStats(c *gin.Context) {
	operatorID, ok := h.operatorParam(c)
	if !ok {
		return
	}
	httpkit.OK(c, h.store.SpamStats(operatorID))
}

func (h *Handler) operatorParam(c *gin.Context) (string, bool) {
	operatorID := strings.TrimSpace(c.Param("tradieId"))
	if operatorID == "" {
		httpkit.HandleError(c, apperr.BadRequest("tradie id is required"))
		return "", false
	}
	if !httpkit.GetIdentity(c).CanView(operatorID) {
		httpkit.HandleError(c, apperr.Forbidden("not allowed to view this tradie"))
		return "", false
	}
	return operatorID, true
}
