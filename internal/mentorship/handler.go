package mentorship

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alumni-portal/backend/internal/apperr"
	"github.com/alumni-portal/backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// GET /mentorship-requests?status=Pending
func (h *Handler) ListRequests(c *gin.Context) {
	out, err := h.Service.ListRequests(c.Request.Context(), Status(c.Query("status")))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetRequest(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	req, err := h.Service.GetRequest(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *Handler) CreateRequest(c *gin.Context) {
	var in CreateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.BindError(err))
		return
	}
	req, err := h.Service.CreateRequest(c.Request.Context(), in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// POST /mentorship-requests/:id/decision
func (h *Handler) Decide(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	var in DecisionRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.BindError(err))
		return
	}
	d, err := h.Service.Decide(c.Request.Context(), id, in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) ListMentorships(c *gin.Context) {
	out, err := h.Service.ListMentorships(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
