package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alumni-portal/backend/internal/apperr"
)

// ParamID parses a positive integer path parameter. On failure it writes a
// 400 response and returns false.
func ParamID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperr.Respond(c, apperr.Validation("invalid %s", name))
		return 0, false
	}
	return uint(id), true
}
