// Package wscookie signs the cookie that ties a browser to its workspace.
package wscookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var ErrInvalid = errors.New("invalid workspace cookie")

const DefaultName = "hexadmin_ws"

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
	MaxAge     time.Duration
}

func New(secret []byte, name string, secure bool, maxAge time.Duration) *Codec {
	if name == "" {
		name = DefaultName
	}
	return &Codec{Secret: secret, CookieName: name, Secure: secure, MaxAge: maxAge}
}

// value format: workspaceID.base64(hmac(workspaceID))
func (c *Codec) Encode(id string) string {
	return id + "." + sign(c.Secret, id)
}

func (c *Codec) Decode(v string) (string, error) {
	id, sig, ok := strings.Cut(v, ".")
	if !ok || id == "" || strings.Contains(sig, ".") {
		return "", ErrInvalid
	}
	if !verify(c.Secret, id, sig) {
		return "", ErrInvalid
	}
	return id, nil
}

// Get returns the workspace id from the request, dropping a tampered cookie.
func (c *Codec) Get(ctx *gin.Context) (string, bool) {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return "", false
	}
	id, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return "", false
	}
	return id, true
}

// Set writes a session cookie when MaxAge is zero.
func (c *Codec) Set(ctx *gin.Context, id string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, c.Encode(id), int(c.MaxAge.Seconds()), "/", "", c.Secure, true)
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
