package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viccjiang/hexadmin/internal/http/flash"
	"github.com/viccjiang/hexadmin/internal/http/middleware"
	"github.com/viccjiang/hexadmin/pkg/view"
)

// RedirectWithFlash is the console's alert: the message is shown once on the
// page the browser lands on.
func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	if err := middleware.SetFlashCookie(c, codec, view.Flash{Kind: kind, Message: msg}); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusSeeOther, location)
}
