package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alumni-portal/backend/internal/auditlog"
)

// AuditMiddleware resolves the client address and carries it on the request
// context so audit rows written by services record it.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)
		c.Set("client_ip", ip)
		c.Request = c.Request.WithContext(auditlog.WithClientIP(c.Request.Context(), ip))
		c.Next()
	}
}

// getClientIP checks proxy headers first, then falls back to RemoteAddr.
func getClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if isValidIP(ip) {
			return ip
		}
	}

	for _, header := range []string{"X-Real-Ip", "CF-Connecting-IP"} {
		if v := c.GetHeader(header); v != "" && isValidIP(v) {
			return v
		}
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}

func isValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// GetIPFromContext retrieves the address stored by AuditMiddleware.
func GetIPFromContext(c *gin.Context) string {
	if ip, ok := c.Get("client_ip"); ok {
		if s, ok := ip.(string); ok {
			return s
		}
	}
	return getClientIP(c)
}
