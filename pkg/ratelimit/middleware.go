package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"busline/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Middleware applies the per-route-class limit to every request. The
// class is derived from the matched route path.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return limitWith(rateLimiter, func(c *gin.Context) RateLimitType {
		return getRateLimitType(c.FullPath())
	})
}

// ForType pins a route to one limit class regardless of its path. The
// booking and payment routes use this to keep their stricter budget
// even when mounted under other prefixes.
func ForType(rateLimiter *RateLimiter, limitType RateLimitType) gin.HandlerFunc {
	return limitWith(rateLimiter, func(*gin.Context) RateLimitType {
		return limitType
	})
}

// Noop passes every request through. Used when rate limiting is
// disabled so routers can still take a limiter handler.
func Noop() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

func limitWith(rateLimiter *RateLimiter, classify func(*gin.Context) RateLimitType) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		limitType := classify(c)

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusInternalServerError,
				"Rate limit check failed", nil, nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			response.RespondJSON(c, "error", http.StatusTooManyRequests,
				"Rate limit exceeded", nil, map[string]interface{}{
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

func getRateLimitType(path string) RateLimitType {
	switch {
	case strings.Contains(path, "/admin/"):
		return RateLimitTypeAdmin

	// Booking flow endpoints share the stricter budget.
	case strings.Contains(path, "/bookings"),
		strings.Contains(path, "/payments"),
		strings.Contains(path, "/tickets"):
		return RateLimitTypeBooking

	default:
		return RateLimitTypeDefault
	}
}

// extracts real client IP
func getClientIP(c *gin.Context) string {
	xForwardedFor := c.GetHeader("X-Forwarded-For")
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	xRealIP := c.GetHeader("X-Real-IP")
	if xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}

	return ip
}
