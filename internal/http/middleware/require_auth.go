package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viccjiang/hexadmin/internal/http/flash"
	"github.com/viccjiang/hexadmin/pkg/view"
)

// RequireSignedIn guards the dialog routes: only the login form is usable
// while the workspace is unauthenticated.
func RequireSignedIn(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ws, ok := CurrentWorkspace(c); ok && ws.Session.Authenticated() {
			c.Next()
			return
		}

		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"request_id": GetRequestID(c),
			})
			return
		}

		_ = SetFlashCookie(c, flashCodec, view.Flash{
			Kind:    view.FlashWarning,
			Message: "Please sign in to continue.",
		})
		c.Redirect(http.StatusFound, "/")
		c.Abort()
	}
}
