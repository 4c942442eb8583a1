package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/viccjiang/hexadmin/internal/console"
	"github.com/viccjiang/hexadmin/internal/http/tokencookie"
	"github.com/viccjiang/hexadmin/internal/http/wscookie"
)

const (
	CtxKeyWorkspace = "workspace"
	// CtxKeySignedIn is the workspace's session state after the handler ran,
	// read while the lock was still held.
	CtxKeySignedIn = "signed_in"
)

type WorkspaceCfg struct {
	Registry     *console.Registry
	Cookie       *wscookie.Codec
	SecureCookie bool
}

// Workspace attaches the browser's workspace to the request and holds its
// lock until the chain returns, so events on one workspace never interleave.
// A new workspace runs the startup session check once.
func Workspace(cfg WorkspaceCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := cfg.Cookie.Get(c)
		ws, created := cfg.Registry.Acquire(id)
		if created {
			cfg.Cookie.Set(c, ws.ID)
		}

		ws.Lock()
		defer ws.Unlock()

		if !ws.Session.Checked() {
			ws.Session.CheckExisting(c.Request.Context(), tokencookie.New(c, cfg.SecureCookie))
		}

		c.Set(CtxKeyWorkspace, ws)
		c.Next()
		c.Set(CtxKeySignedIn, ws.Session.Authenticated())
	}
}

func CurrentWorkspace(c *gin.Context) (*console.Workspace, bool) {
	v, ok := c.Get(CtxKeyWorkspace)
	if !ok {
		return nil, false
	}
	ws, ok := v.(*console.Workspace)
	return ws, ok
}
