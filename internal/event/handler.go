package event

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

// ===========================
// 📄 GET /events
func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.Service.ListEvents(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// ===========================
// 🔍 GET /events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	e, err := h.Service.GetEvent(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// ===========================
// 🎯 POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.BindError(err))
		return
	}
	e, err := h.Service.CreateEvent(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// ===========================
// 🔄 PUT|PATCH /events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.BindError(err))
		return
	}
	e, err := h.Service.UpdateEvent(c.Request.Context(), id, req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// ===========================
// 🗑️ DELETE /events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	err := h.Service.DeleteEvent(c.Request.Context(), id)
	if apperr.KindOf(err) == apperr.KindNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error(), "id": id})
		return
	}
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ===========================
// 🏷️ Organizers
func (h *Handler) ListOrganizers(c *gin.Context) {
	orgs, err := h.Service.ListOrganizers(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, orgs)
}

func (h *Handler) GetOrganizer(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	o, err := h.Service.GetOrganizer(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) CreateOrganizer(c *gin.Context) {
	var req CreateOrganizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.BindError(err))
		return
	}
	o, err := h.Service.CreateOrganizer(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *Handler) UpdateOrganizer(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrganizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.BindError(err))
		return
	}
	o, err := h.Service.UpdateOrganizer(c.Request.Context(), id, req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) DeleteOrganizer(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteOrganizer(c.Request.Context(), id); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ===========================
// 👥 Participants
func (h *Handler) ListParticipants(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	ps, err := h.Service.ListParticipants(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ps)
}

func (h *Handler) AddParticipant(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	var req AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.BindError(err))
		return
	}
	p, err := h.Service.AddParticipant(c.Request.Context(), id, req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) RemoveParticipant(c *gin.Context) {
	id, ok := middleware.ParamID(c, "id")
	if !ok {
		return
	}
	alumniID, ok := middleware.ParamID(c, "alumni_id")
	if !ok {
		return
	}
	if err := h.Service.RemoveParticipant(c.Request.Context(), id, alumniID); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
