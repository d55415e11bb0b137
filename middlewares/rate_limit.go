package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Bursts for the two limiter classes. Auth routes get a much smaller
// allowance to slow down credential stuffing.
const (
	apiBurst  = 50
	authBurst = 5
)

// visitor holds the rate limiter and the last time we saw this IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors   = make(map[string]*visitor)
	visitorsMu sync.Mutex

	authVisitors   = make(map[string]*visitor)
	authVisitorsMu sync.Mutex
)

func newVisitorLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Second), apiBurst)
}

func newAuthVisitorLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(10*time.Second), authBurst)
}

func getVisitor(ip string) *rate.Limiter {
	visitorsMu.Lock()
	defer visitorsMu.Unlock()

	v, exists := visitors[ip]
	if !exists {
		limiter := newVisitorLimiter()
		visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func getAuthVisitor(ip string) *rate.Limiter {
	authVisitorsMu.Lock()
	defer authVisitorsMu.Unlock()

	v, exists := authVisitors[ip]
	if !exists {
		limiter := newAuthVisitorLimiter()
		authVisitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// RateLimitMiddleware applies a per-IP rate limit for all routes.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !getVisitor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please slow down.",
			})
			return
		}
		c.Next()
	}
}

// AuthRateLimitMiddleware applies a stricter per-IP rate limit for login
// and signup.
func AuthRateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !getAuthVisitor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many authentication attempts. Please wait and try again.",
			})
			return
		}
		c.Next()
	}
}
