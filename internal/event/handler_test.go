package event

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumni-portal/backend/internal/validation"
)

func newRouter(t *testing.T, now time.Time) (*gin.Engine, *fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Register()

	f := newFixture(t, now)
	h := NewHandler(f.svc)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/events", h.ListEvents)
	api.POST("/events", h.CreateEvent)
	api.GET("/events/:id", h.GetEvent)
	api.PUT("/events/:id", h.UpdateEvent)
	api.PATCH("/events/:id", h.UpdateEvent)
	api.DELETE("/events/:id", h.DeleteEvent)
	api.GET("/events/:id/participants", h.ListParticipants)
	api.POST("/events/:id/participants", h.AddParticipant)
	api.DELETE("/events/:id/participants/:alumni_id", h.RemoveParticipant)
	api.GET("/organizers", h.ListOrganizers)
	api.POST("/organizers", h.CreateOrganizer)
	api.DELETE("/organizers/:id", h.DeleteOrganizer)
	return r, f
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GetMissingEvent(t *testing.T) {
	r, _ := newRouter(t, time.Now())

	rec := do(r, http.MethodGet, "/api/events/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(999), body["id"])
	assert.Contains(t, body["error"], "999")
}

func TestHandler_CreateListGet(t *testing.T) {
	r, f := newRouter(t, at("2024-04-13T20:00"))

	rec := do(r, http.MethodPost, "/api/events", map[string]any{
		"event_name":   "Baisakhi Celebration",
		"event_type":   "Cultural",
		"start_time":   "2024-04-13T18:00:00",
		"end_time":     "2024-04-13T22:00:00",
		"event_org_id": f.org.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)

	rec = do(r, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{
		"id": `+jsonNumber(created.ID)+`,
		"title": "Baisakhi Celebration",
		"description": null,
		"start_time": "2024-04-13T18:00:00Z",
		"end_time": "2024-04-13T22:00:00Z",
		"status": "Ongoing",
		"organizer_name": "Punjabi Cultural Club"
	}]`, rec.Body.String())

	rec = do(r, http.MethodGet, "/api/events/"+jsonNumber(created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var one EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &one))
	assert.Equal(t, StatusOngoing, one.Status)
}

func TestHandler_EmptyListIsArray(t *testing.T) {
	r, _ := newRouter(t, time.Now())
	rec := do(r, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_CreateRejectsBadInput(t *testing.T) {
	r, f := newRouter(t, time.Now())

	cases := map[string]any{
		"missing name":  map[string]any{"event_type": "Cultural", "start_time": "2024-04-13T18:00", "event_org_id": f.org.ID},
		"bad enum":      map[string]any{"event_name": "x", "event_type": "Gala", "start_time": "2024-04-13T18:00", "event_org_id": f.org.ID},
		"bad timestamp": map[string]any{"event_name": "x", "event_type": "Cultural", "start_time": "soon", "event_org_id": f.org.ID},
		"malformed":     `{"event_name":`,
	}
	for name, body := range cases {
		rec := do(r, http.MethodPost, "/api/events", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestHandler_PatchAppliesOnlyPresentKeys(t *testing.T) {
	r, f := newRouter(t, time.Now())
	e := f.create(t, "Baisakhi", "2024-04-13T18:00:00", ptr("2024-04-13T22:00:00"))
	path := "/api/events/" + jsonNumber(e.ID)

	rec := do(r, http.MethodPatch, path, `{"description":"Harvest festival"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Baisakhi", got.Name)
	assert.Equal(t, "Harvest festival", *got.Description)
	assert.NotNil(t, got.EndTime)

	rec = do(r, http.MethodPut, path, `{"end_time":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Nil(t, got.EndTime)
	assert.Equal(t, "Harvest festival", *got.Description)

	rec = do(r, http.MethodPatch, "/api/events/555", `{"event_name":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	r, f := newRouter(t, time.Now())
	e := f.create(t, "Folk Night", "2024-08-20T19:00:00", nil)
	path := "/api/events/" + jsonNumber(e.ID)

	rec := do(r, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = do(r, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(e.ID), body["id"])

	rec = do(r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_InvalidID(t *testing.T) {
	r, _ := newRouter(t, time.Now())
	rec := do(r, http.MethodGet, "/api/events/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ParticipantsAndOrganizers(t *testing.T) {
	r, f := newRouter(t, time.Now())
	e := f.create(t, "Baisakhi", "2024-04-13T18:00:00", nil)
	base := "/api/events/" + jsonNumber(e.ID) + "/participants"

	rec := do(r, http.MethodPost, base, map[string]any{"alumni_id": 3, "role": "Speaker"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(r, http.MethodPost, base, map[string]any{"alumni_id": 4, "role": "Juggler"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"event_id":`+jsonNumber(e.ID)+`,"alumni_id":3,"role":"Speaker","feedback":null}]`, rec.Body.String())

	rec = do(r, http.MethodDelete, base+"/3", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodDelete, "/api/organizers/"+jsonNumber(f.org.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(r, http.MethodPost, "/api/organizers", map[string]any{"event_org_type": "Hostel", "event_org_name": "Hostel 4"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(r, http.MethodGet, "/api/organizers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orgs []EventOrganizer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orgs))
	assert.Len(t, orgs, 2)
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
