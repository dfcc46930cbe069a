package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP sets the client IP into Gin context (key: "real_ip").
// With trustProxy the left-most valid address of CF-Connecting-IP or
// X-Forwarded-For wins; otherwise only c.ClientIP() is used.
func RealIP(trustProxy bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ""
		if trustProxy {
			ip = headerIP(c.GetHeader("CF-Connecting-IP"))
			if ip == "" {
				ip = headerIP(c.GetHeader("X-Forwarded-For"))
			}
		}
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set("real_ip", ip)
		c.Next()
	}
}

func headerIP(v string) string {
	first, _, _ := strings.Cut(v, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
