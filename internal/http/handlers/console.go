package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viccjiang/hexadmin/internal/http/render"
)

type ConsoleHandler struct {
	UploadsEnabled bool
}

func NewConsoleHandler(uploads bool) *ConsoleHandler {
	return &ConsoleHandler{UploadsEnabled: uploads}
}

// Index renders the login form or the product table, with the dialog
// overlay when open and the detail pane for ?view=<id>.
func (h *ConsoleHandler) Index(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}

	page := consolePage(ws, h.UploadsEnabled)
	if id := c.Query("view"); id != "" && page.Authenticated {
		if p, found := ws.Catalog.Find(id); found {
			row := productRow(p)
			page.Selected = &row
		}
	}
	render.Console(c, http.StatusOK, page)
}

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
