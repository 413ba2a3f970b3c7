package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(limiter Limiter) *gin.Engine {
	router := gin.New()
	router.POST("/recipes", RateLimitMiddleware(limiter), func(c *gin.Context) {
		c.String(http.StatusOK, "created")
	})
	return router
}

func post(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/recipes", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestLocalRateLimiterRejectsOverLimit(t *testing.T) {
	router := limitedRouter(NewRecipeMutationRateLimiter(nil, 2, time.Hour))

	assert.Equal(t, http.StatusOK, post(router, "10.0.0.1:1234").Code)
	second := post(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "2", second.Header().Get("X-RateLimit-Limit"))

	third := post(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.NotEmpty(t, third.Header().Get("Retry-After"))
	assert.Contains(t, third.Body.String(), "Too many changes")

	// Other clients have their own bucket.
	assert.Equal(t, http.StatusOK, post(router, "10.0.0.2:1234").Code)
}

func TestRedisRateLimiterWindowKey(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{Window: time.Minute, Limit: 5, KeyPrefix: "rate_limit:test"})
	now := time.Date(2026, 1, 2, 3, 4, 35, 0, time.UTC)

	key, reset := rl.windowKey("10.0.0.1", now)

	start := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)
	assert.Equal(t, "rate_limit:test:10.0.0.1:"+strconv.FormatInt(start.Unix(), 10), key)
	assert.Equal(t, start.Add(time.Minute), reset)
}

func TestRedisFailureDoesNotBlock(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	router := limitedRouter(NewRecipeMutationRateLimiter(client, 1, time.Minute))
	rr := post(router, "10.0.0.1:1234")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "rate limit check failed", rr.Header().Get("X-RateLimit-Error"))
}
