package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumni-portal/backend/internal/seed"
	"github.com/alumni-portal/backend/internal/testdb"
	"github.com/alumni-portal/backend/routes"
)

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testdb.New(t)
	require.NoError(t, seed.Run(context.Background(), db, time.UTC))

	r := gin.New()
	require.NoError(t, routes.Setup(r, db, routes.Options{
		AllowedOrigins: []string{"http://localhost:5173"},
		RateLimit:      "1000-M",
		Location:       time.UTC,
		Logger:         zerolog.Nop(),
	}))
	return r
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	return rec
}

func TestEventsEndToEnd(t *testing.T) {
	r := newServer(t)

	rec := send(r, http.MethodGet, "/api/events", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "Baisakhi Celebration", listed[0]["title"])
	assert.Equal(t, "Completed", listed[0]["status"])
	assert.Equal(t, "Punjabi Cultural Club", listed[0]["organizer_name"])

	rec = send(r, http.MethodGet, "/api/events/9999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"event with id 9999 not found","id":9999}`, rec.Body.String())

	rec = send(r, http.MethodGet, "/api/events/export?format=csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Punjabi Folk Music Night")

	rec = send(r, http.MethodGet, "/api/analytics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"alumni_count":1,"event_count":2,"donations":"0"}`, rec.Body.String())
}

func TestSignupAndLogin(t *testing.T) {
	r := newServer(t)

	rec := send(r, http.MethodPost, "/api/signup", `{"username":"harleen","email":"harleen@example.com","password":"secret1","role":"student"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = send(r, http.MethodPost, "/api/signup", `{"username":"harleen","password":"secret1","role":"Student"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = send(r, http.MethodPost, "/api/login", `{"username":"harleen@example.com","password":"secret1","role":"Student"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = send(r, http.MethodPost, "/api/login", `{"username":"gurpreet","password":"hash1","role":"Student"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthAndCORS(t *testing.T) {
	r := newServer(t)

	rec := send(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	out := httptest.NewRecorder()
	r.ServeHTTP(out, req)
	assert.Equal(t, http.StatusNoContent, out.Code)
	assert.Equal(t, "http://localhost:5173", out.Header().Get("Access-Control-Allow-Origin"))

	rec = send(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alumni_portal_http_requests_total")
}
