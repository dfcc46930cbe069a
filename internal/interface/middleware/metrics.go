package middleware

import (
	"expvar"
	"strconv"

	"github.com/gin-gonic/gin"
)

var (
	requestsByStatus = expvar.NewMap("http_requests_by_status")
	requestsInFlight = new(expvar.Int)
)

func init() {
	expvar.Publish("http_requests_in_flight", requestsInFlight)
}

// Metrics counts finished requests per status code, visible at /api/debug/vars.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestsInFlight.Add(1)
		c.Next()
		requestsInFlight.Add(-1)
		requestsByStatus.Add(strconv.Itoa(c.Writer.Status()), 1)
	}
}
