package alumni

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

// GET /alumni
func (h *Handler) List(c *gin.Context) {
	out, err := h.Service.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /alumni/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	e, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// POST /alumni
func (h *Handler) Create(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.BindError(err))
		return
	}
	p, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PUT|PATCH /alumni/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.BindError(err))
		return
	}
	p, err := h.Service.Update(c.Request.Context(), id, req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /alumni/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /alumni/:id/careers
func (h *Handler) ListCareers(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	out, err := h.Service.ListCareers(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /alumni/:id/careers
func (h *Handler) CreateCareer(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	var req CreateCareerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.BindError(err))
		return
	}
	career, err := h.Service.CreateCareer(c.Request.Context(), id, req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, career)
}
