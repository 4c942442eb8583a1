package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viccjiang/hexadmin/internal/http/middleware"
	"github.com/viccjiang/hexadmin/pkg/view"
)

func Console(c *gin.Context, status int, page view.ConsolePage) {
	if page.Flash == nil {
		page.Flash = middleware.GetFlash(c)
	}
	page.RequestID = middleware.GetRequestID(c)
	c.HTML(status, "console", page)
}

func ErrorPage(c *gin.Context, status int, msg string) {
	c.HTML(status, "error", view.ErrorPage{
		Status:    status,
		Title:     http.StatusText(status),
		Message:   msg,
		RequestID: middleware.GetRequestID(c),
		Flash:     middleware.GetFlash(c),
	})
}
