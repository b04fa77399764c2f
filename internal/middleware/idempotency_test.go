package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mini-payrun/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func newIdempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, redisMock := redismock.NewClientMock()
	r := gin.New()
	r.POST("/payruns", middleware.Idempotency(rdb), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	return r, redisMock
}

func TestIdempotency(t *testing.T) {
	t.Run("no key passes through", func(t *testing.T) {
		r, redisMock := newIdempotencyRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payruns", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("first request takes the lock", func(t *testing.T) {
		r, redisMock := newIdempotencyRouter(t)

		redisMock.ExpectGet("idemp:/payruns:abc").RedisNil()
		redisMock.ExpectSetNX("idemp:/payruns:abc:lock", "locked", 30*time.Second).SetVal(true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payruns", nil)
		req.Header.Set("Idempotency-Key", "abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cached result is replayed without running the handler", func(t *testing.T) {
		r, redisMock := newIdempotencyRouter(t)

		redisMock.ExpectGet("idemp:/payruns:abc").SetVal(`{"id":"cached"}`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payruns", nil)
		req.Header.Set("Idempotency-Key", "abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"cached"`)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("in-flight duplicate is a 409", func(t *testing.T) {
		r, redisMock := newIdempotencyRouter(t)

		redisMock.ExpectGet("idemp:/payruns:abc").RedisNil()
		redisMock.ExpectSetNX("idemp:/payruns:abc:lock", "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payruns", nil)
		req.Header.Set("Idempotency-Key", "abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
