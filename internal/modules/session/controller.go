package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/viccjiang/hexadmin/internal/backend"
)

// CookieName is the cookie that mirrors the bearer value across reloads.
const CookieName = "hexToken"

// API is the part of the backend client used for authentication.
type API interface {
	SignIn(ctx context.Context, in backend.Credentials) (backend.SignInResult, error)
	CheckSession(ctx context.Context, sess *backend.Session) error
}

// TokenJar is where the token cookie lives (the browser, in practice).
type TokenJar interface {
	Token() (string, bool)
	SetToken(token string, expires time.Time)
	ClearToken()
}

// AuthenticatedFunc runs once per successful login or session check.
type AuthenticatedFunc func(ctx context.Context, sess *backend.Session)

type Credentials struct {
	Username string
	Password string
}

// Controller owns the authenticated flag, the login form values and the
// workspace's bearer credential.
type Controller struct {
	api    API
	sess   *backend.Session
	log    *slog.Logger
	onAuth AuthenticatedFunc

	creds         Credentials
	authenticated bool
	checked       bool
}

func NewController(api API, sess *backend.Session, log *slog.Logger, onAuth AuthenticatedFunc) *Controller {
	if log == nil {
		log = slog.Default()
	}
	if sess == nil {
		sess = &backend.Session{}
	}
	return &Controller{api: api, sess: sess, log: log, onAuth: onAuth}
}

func (c *Controller) Authenticated() bool       { return c.authenticated }
func (c *Controller) Session() *backend.Session { return c.sess }
func (c *Controller) Credentials() Credentials  { return c.creds }

// Checked reports whether the startup check (or a login) has happened.
func (c *Controller) Checked() bool { return c.checked }

// UpdateField overwrites one credential field. Unknown names are ignored.
func (c *Controller) UpdateField(name, value string) {
	switch name {
	case "username":
		c.creds.Username = value
	case "password":
		c.creds.Password = value
	}
}

// SubmitLogin signs in with the current credentials. On success the token is
// written to the jar with the backend's expiry, installed as the bearer, and
// the authenticated hook runs once. Failures are returned for the caller to
// alert on; nothing is retried.
func (c *Controller) SubmitLogin(ctx context.Context, jar TokenJar) error {
	res, err := c.api.SignIn(ctx, backend.Credentials{
		Username: c.creds.Username,
		Password: c.creds.Password,
	})
	c.creds.Password = ""
	if err != nil {
		c.authenticated = false
		c.log.LogAttrs(ctx, slog.LevelWarn, "login_failed",
			slog.String("username", c.creds.Username),
			slog.String("detail", backend.MessageOf(err)),
		)
		return err
	}

	jar.SetToken(res.Token, res.Expires)
	c.sess.Set(res.Token, res.Expires)
	c.checked = true
	c.log.LogAttrs(ctx, slog.LevelInfo, "login_ok",
		slog.String("username", c.creds.Username),
		slog.Time("expires", res.Expires),
	)
	c.becomeAuthenticated(ctx)
	return nil
}

// CheckExisting validates a token left over from an earlier visit. With no
// cookie it makes no call at all. A failed check is logged only; the cookie
// stays where it is.
func (c *Controller) CheckExisting(ctx context.Context, jar TokenJar) {
	c.checked = true
	token, ok := jar.Token()
	if !ok || token == "" {
		c.authenticated = false
		return
	}

	c.sess.Set(token, time.Time{})
	if err := c.api.CheckSession(ctx, c.sess); err != nil {
		c.authenticated = false
		c.sess.Clear()
		c.log.LogAttrs(ctx, slog.LevelInfo, "session_check_failed",
			slog.String("detail", backend.MessageOf(err)),
			slog.Bool("unauthorized", backend.IsUnauthorized(err)),
		)
		return
	}
	c.becomeAuthenticated(ctx)
}

// Logout drops the bearer and the cookie.
func (c *Controller) Logout(ctx context.Context, jar TokenJar) {
	jar.ClearToken()
	c.sess.Clear()
	c.authenticated = false
	c.creds = Credentials{}
	c.log.LogAttrs(ctx, slog.LevelInfo, "logout")
}

func (c *Controller) becomeAuthenticated(ctx context.Context) {
	c.authenticated = true
	if c.onAuth != nil {
		c.onAuth(ctx, c.sess)
	}
}

// FailureMessage is the alert text for a failed login.
func FailureMessage(err error) string {
	return "Login failed: " + backend.MessageOf(err)
}
