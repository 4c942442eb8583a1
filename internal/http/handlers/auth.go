package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viccjiang/hexadmin/internal/http/flash"
	"github.com/viccjiang/hexadmin/internal/http/render"
	"github.com/viccjiang/hexadmin/internal/http/tokencookie"
	"github.com/viccjiang/hexadmin/internal/http/validation"
	"github.com/viccjiang/hexadmin/internal/modules/session"
	"github.com/viccjiang/hexadmin/pkg/view"
)

type loginInput struct {
	Username string `form:"username" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type AuthHandler struct {
	Flash        *flash.Codec
	SecureCookie bool
}

func NewAuthHandler(f *flash.Codec, secureCookie bool) *AuthHandler {
	return &AuthHandler{Flash: f, SecureCookie: secureCookie}
}

func (h *AuthHandler) Login(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}

	var in loginInput
	bindErr := c.ShouldBind(&in)
	ws.Session.UpdateField("username", in.Username)
	ws.Session.UpdateField("password", in.Password)

	if bindErr != nil {
		page := consolePage(ws, false)
		page.LoginErrors = validation.FromBindError(bindErr, &in)
		render.Console(c, http.StatusBadRequest, page)
		return
	}

	if err := ws.Session.SubmitLogin(c.Request.Context(), tokencookie.New(c, h.SecureCookie)); err != nil {
		render.RedirectWithFlash(c, h.Flash, "/", view.FlashError, session.FailureMessage(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	ws.Session.Logout(c.Request.Context(), tokencookie.New(c, h.SecureCookie))
	ws.SignedOut()
	render.RedirectWithFlash(c, h.Flash, "/", view.FlashInfo, "Signed out.")
}
