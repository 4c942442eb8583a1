// Package tokencookie keeps the backend token in the browser's hexToken
// cookie.
package tokencookie

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/viccjiang/hexadmin/internal/modules/session"
)

// Jar reads and writes the token cookie of one request.
type Jar struct {
	c      *gin.Context
	secure bool
}

func New(c *gin.Context, secure bool) *Jar {
	return &Jar{c: c, secure: secure}
}

func (j *Jar) Token() (string, bool) {
	v, err := j.c.Cookie(session.CookieName)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

// SetToken writes the cookie to expire exactly at expires. A zero expiry
// yields a browser-session cookie.
func (j *Jar) SetToken(token string, expires time.Time) {
	http.SetCookie(j.c.Writer, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		Secure:   j.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (j *Jar) ClearToken() {
	http.SetCookie(j.c.Writer, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   j.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
