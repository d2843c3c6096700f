package reports

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alumni-portal/backend/internal/apperr"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// GET /alumni/export?format=csv|xlsx|pdf
func (h *Handler) ExportAlumni(c *gin.Context) {
	h.send(c, h.service.AlumniDirectory)
}

// GET /events/export?format=csv|xlsx|pdf
func (h *Handler) ExportEvents(c *gin.Context) {
	h.send(c, h.service.EventListing)
}

func (h *Handler) send(c *gin.Context, export func(context.Context, string) (*File, error)) {
	f, err := export(c.Request.Context(), c.Query("format"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", f.Filename))
	c.Data(http.StatusOK, f.MIME, f.Data)
}
