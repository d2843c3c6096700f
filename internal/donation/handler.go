package donation

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alumni-portal/backend/internal/apperr"
	"github.com/alumni-portal/backend/middleware"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ==============================
// POST /donations
func (h *Handler) CreateDonation(c *gin.Context) {
	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.BindError(err))
		return
	}
	d, err := h.svc.CreateDonation(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// ==============================
// GET /donations/:id
func (h *Handler) GetDonation(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.GetDonation(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ==============================
// GET /donations?alumni_id=&event_id=&from=&to=&page=&limit=
func (h *Handler) ListDonations(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	h.list(c, filters)
}

// GET /events/:id/donations
func (h *Handler) ListEventDonations(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	filters, err := parseFilters(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	filters.EventID = &id
	h.list(c, filters)
}

func (h *Handler) list(c *gin.Context, filters DonationFilters) {
	out, err := h.svc.ListDonations(c.Request.Context(), filters)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /donations/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func parseFilters(c *gin.Context) (DonationFilters, error) {
	var f DonationFilters
	for key, dst := range map[string]**uint{"alumni_id": &f.AlumniID, "event_id": &f.EventID} {
		if raw := c.Query(key); raw != "" {
			v, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return f, apperr.Validation("invalid %s", key)
			}
			u := uint(v)
			*dst = &u
		}
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return f, apperr.Validation("invalid from, use YYYY-MM-DD")
		}
		f.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return f, apperr.Validation("invalid to, use YYYY-MM-DD")
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.To = &end
	}
	f.Page, _ = strconv.Atoi(c.Query("page"))
	f.Limit, _ = strconv.Atoi(c.Query("limit"))
	return f, nil
}
