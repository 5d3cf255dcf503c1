package calls

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "tradie_receptionist/internal/http"
	"tradie_receptionist/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(store *Store, identity *httpkit.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api")
	if identity != nil {
		api.Use(func(c *gin.Context) {
			c.Set(httpkit.ContextIdentityKey, *identity)
			c.Next()
		})
	}
	NewModule(store).RegisterRoutes(&apphttp.RouterContext{Engine: engine, API: api})
	return engine
}

func doGet(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestHandleListCalls(t *testing.T) {
	store := NewStore()
	store.Append(record("dave", "c1", false))
	store.Append(record("dave", "c2", true))
	store.Append(record("dave", "c3", false))

	w := doGet(newTestEngine(store, nil), "/api/calls/dave")
	require.Equal(t, http.StatusOK, w.Code)

	var body Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "dave", body.OperatorID)
	assert.Equal(t, 3, body.TotalCalls)
	assert.Equal(t, 2, body.RealLeads)
	assert.Equal(t, 1, body.SpamBlocked)
	require.Len(t, body.Calls, 2)
	assert.Equal(t, "c3", body.Calls[0].CallID)
}

func TestHandleListCallsLimit(t *testing.T) {
	store := NewStore()
	store.Append(record("dave", "c1", false))
	store.Append(record("dave", "c2", false))
	engine := newTestEngine(store, nil)

	w := doGet(engine, "/api/calls/dave?limit=1")
	require.Equal(t, http.StatusOK, w.Code)
	var body Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Calls, 1)

	w = doGet(engine, "/api/calls/dave?limit=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doGet(engine, "/api/calls/dave?limit=0")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleListCallsUnknownOperatorReturnsZeroes(t *testing.T) {
	w := doGet(newTestEngine(NewStore(), nil), "/api/calls/nobody")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tradie_id":"nobody","total_calls":0,"real_leads":0,"spam_blocked":0,"calls":[]}`, w.Body.String())
}

func TestHandleSpamStats(t *testing.T) {
	store := NewStore()
	store.IncrementSpam("dave")
	store.IncrementSpam("dave")

	w := doGet(newTestEngine(store, nil), "/api/spam-stats/dave")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tradie_id":"dave","spam_blocked_today":2}`, w.Body.String())
}

func TestHandlersRespectIdentityScope(t *testing.T) {
	id := httpkit.Identity{Subject: "dave@example", OperatorID: "dave"}
	engine := newTestEngine(NewStore(), &id)

	assert.Equal(t, http.StatusOK, doGet(engine, "/api/calls/dave").Code)
	assert.Equal(t, http.StatusForbidden, doGet(engine, "/api/calls/sam").Code)
	assert.Equal(t, http.StatusForbidden, doGet(engine, "/api/spam-stats/sam").Code)
}
