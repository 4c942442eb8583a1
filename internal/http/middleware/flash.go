package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viccjiang/hexadmin/internal/http/flash"
	"github.com/viccjiang/hexadmin/pkg/view"
)

const CtxKeyFlash = "flash"

// FlashMiddleware takes the pending alert out of its cookie so the next page
// shows it once. A cookie that fails verification is dropped and logged.
func FlashMiddleware(codec *flash.Codec, l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := c.Cookie(codec.CookieName)
		if err != nil || v == "" {
			c.Next()
			return
		}

		f, err := codec.Decode(v)
		if err != nil {
			l.LogAttrs(c.Request.Context(), slog.LevelWarn, "flash_rejected",
				slog.String("request_id", GetRequestID(c)),
				slog.Any("err", err),
			)
		} else {
			c.Set(CtxKeyFlash, f)
		}
		clearCookie(c, codec.CookieName, codec.Secure)
		c.Next()
	}
}

func GetFlash(c *gin.Context) *view.Flash {
	if v, ok := c.Get(CtxKeyFlash); ok {
		if f, ok := v.(*view.Flash); ok {
			return f
		}
	}
	return nil
}

// SetFlashCookie queues f for the page after the redirect. It reports an
// encoding failure so the caller can still redirect without the alert.
func SetFlashCookie(c *gin.Context, codec *flash.Codec, f view.Flash) error {
	val, err := codec.Encode(f)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(codec.CookieName, val, codec.CookieMaxAge(), "/", "", codec.Secure, true)
	return nil
}

func clearCookie(c *gin.Context, name string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", secure, true)
}
