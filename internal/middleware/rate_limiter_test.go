package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func serve(e *echo.Echo, handler echo.HandlerFunc, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(req, rec))
	return rec
}

func TestRateLimiter(t *testing.T) {
	e := echo.New()
	handler := NewRateLimiter(2, 4).Middleware()(okHandler)

	for i := 0; i < 4; i++ {
		rec := serve(e, handler, "192.168.1.2:12345")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d within burst", i)
	}

	rec := serve(e, handler, "192.168.1.2:12345")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "SYSTEM_006")
}

func TestRateLimiterDefaults(t *testing.T) {
	rl := NewRateLimiter(0, -1)

	assert.Equal(t, float64(defaultRequestsPerSecond), float64(rl.rps))
	assert.Equal(t, defaultBurstSize, rl.burst)
}

func TestRateLimiterDifferentIPs(t *testing.T) {
	e := echo.New()
	handler := NewRateLimiter(1, 2).Middleware()(okHandler)

	for _, ip := range []string{"192.168.1.1:1234", "192.168.1.2:1234", "192.168.1.3:1234"} {
		for i := 0; i < 2; i++ {
			rec := serve(e, handler, ip)
			assert.Equal(t, http.StatusOK, rec.Code, "request %d for %s", i, ip)
		}
	}
}

func TestRateLimiterUsesForwardedFor(t *testing.T) {
	e := echo.New()
	handler := NewRateLimiter(1, 1).Middleware()(okHandler)

	first := httptest.NewRequest(http.MethodGet, "/test", nil)
	first.Header.Set("X-Forwarded-For", "10.0.0.1, 172.16.0.1")
	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(first, rec))
	assert.Equal(t, http.StatusOK, rec.Code)

	second := httptest.NewRequest(http.MethodGet, "/test", nil)
	second.Header.Set("X-Forwarded-For", "10.0.0.1")
	rec = httptest.NewRecorder()
	_ = handler(e.NewContext(second, rec))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestVisitorEviction(t *testing.T) {
	rl := NewRateLimiter(5, 10)
	now := time.Now()

	rl.visitors["old_ip"] = &visitor{lastSeen: now.Add(-5 * time.Minute)}
	rl.visitors["new_ip"] = &visitor{lastSeen: now}

	rl.evictIdle(now)

	_, oldExists := rl.visitors["old_ip"]
	_, newExists := rl.visitors["new_ip"]
	assert.False(t, oldExists)
	assert.True(t, newExists)
}

func TestRateLimiterRunStopsOnCancel(t *testing.T) {
	rl := NewRateLimiter(5, 10)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		rl.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRateLimiterConcurrency(t *testing.T) {
	e := echo.New()
	handler := NewRateLimiter(5, 10).Middleware()(okHandler)

	var (
		wg             sync.WaitGroup
		mu             sync.Mutex
		successCount   int
		rateLimitCount int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := serve(e, handler, "192.168.1.100:12345")

			mu.Lock()
			defer mu.Unlock()
			switch rec.Code {
			case http.StatusOK:
				successCount++
			case http.StatusTooManyRequests:
				rateLimitCount++
			}
		}()
	}

	wg.Wait()

	assert.Greater(t, successCount, 0)
	assert.Greater(t, rateLimitCount, 0)
	assert.Equal(t, 20, successCount+rateLimitCount)
}
