package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/viccjiang/hexadmin/internal/shared/apperr"
)

// Recovery turns a panic into a 500 page. The workspace lock is released by
// the Workspace middleware's defer, so the browser can keep using its
// console afterwards.
func Recovery(l *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		attrs := []slog.Attr{
			slog.String("request_id", GetRequestID(c)),
			slog.String("route", c.FullPath()),
			slog.Any("panic", recovered),
			slog.String("stack", string(debug.Stack())),
		}
		if ws, ok := CurrentWorkspace(c); ok {
			attrs = append(attrs, slog.String("workspace", ws.ID))
		}
		l.LogAttrs(c.Request.Context(), slog.LevelError, "panic_recovered", attrs...)
		Fail(c, apperr.Wrap(fmt.Errorf("panic: %v", recovered)))
	})
}
