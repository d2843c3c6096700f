package auditlog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alumni-portal/backend/internal/apperr"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func queryUint(c *gin.Context, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, apperr.Validation("invalid %s", key)
	}
	u := uint(v)
	return &u, nil
}

// GetAuditLogs handles GET /auditlogs
func (h *Handler) GetAuditLogs(c *gin.Context) {
	filter := AuditLogFilter{
		Resource: c.Query("resource"),
		Action:   c.Query("action"),
		Status:   c.Query("status"),
	}

	var err error
	if filter.UserID, err = queryUint(c, "user_id"); err != nil {
		apperr.Respond(c, err)
		return
	}
	if filter.ResourceID, err = queryUint(c, "resource_id"); err != nil {
		apperr.Respond(c, err)
		return
	}

	if fromDateStr := c.Query("from_date"); fromDateStr != "" {
		fromDate, err := time.Parse("2006-01-02", fromDateStr)
		if err != nil {
			apperr.Respond(c, apperr.Validation("invalid from_date format, use YYYY-MM-DD"))
			return
		}
		filter.FromDate = &fromDate
	}
	if toDateStr := c.Query("to_date"); toDateStr != "" {
		toDate, err := time.Parse("2006-01-02", toDateStr)
		if err != nil {
			apperr.Respond(c, apperr.Validation("invalid to_date format, use YYYY-MM-DD"))
			return
		}
		endOfDay := toDate.Add(24*time.Hour - time.Nanosecond)
		filter.ToDate = &endOfDay
	}

	filter.Page, _ = strconv.Atoi(c.Query("page"))
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))

	result, err := h.service.GetAuditLogs(c.Request.Context(), filter)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAuditLogByID handles GET /auditlogs/:id
func (h *Handler) GetAuditLogByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperr.Respond(c, apperr.Validation("invalid audit log id"))
		return
	}

	log, err := h.service.GetAuditLogByID(c.Request.Context(), uint(id))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}
