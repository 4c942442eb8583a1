package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viccjiang/hexadmin/internal/http/flash"
	"github.com/viccjiang/hexadmin/pkg/view"
)

func TestRequestIDKeepsOnlyUUIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	given := uuid.NewString()
	for in, kept := range map[string]bool{
		given:                       true,
		"":                          false,
		"<script>alert(1)</script>": false,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, in)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		got := w.Body.String()
		assert.Equal(t, got, w.Header().Get(HeaderRequestID))
		if kept {
			assert.Equal(t, in, got)
		} else {
			_, err := uuid.Parse(got)
			assert.NoError(t, err, "generated id for %q", in)
		}
	}
}

func TestFlashMiddlewareShowsOnceAndDropsTampered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := flash.NewCodec([]byte("0123456789abcdef"), "", false)
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	r := gin.New()
	r.Use(FlashMiddleware(codec, log))
	r.GET("/", func(c *gin.Context) {
		if f := GetFlash(c); f != nil {
			c.String(http.StatusOK, f.Message)
			return
		}
		c.String(http.StatusOK, "-")
	})

	good, err := codec.Encode(view.Flash{Kind: view.FlashError, Message: "Operation failed: Unknown error"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: codec.CookieName, Value: good})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "Operation failed: Unknown error", w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0", "cookie is cleared after one read")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: codec.CookieName, Value: good + "x"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "-", w.Body.String())
	assert.Contains(t, logs.String(), "flash_rejected")
}
