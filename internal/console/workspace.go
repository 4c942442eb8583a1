package console

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/viccjiang/hexadmin/internal/backend"
	"github.com/viccjiang/hexadmin/internal/modules/catalog"
	"github.com/viccjiang/hexadmin/internal/modules/modal"
	"github.com/viccjiang/hexadmin/internal/modules/session"
)

// Backend is everything a workspace asks of the remote API.
type Backend interface {
	session.API
	catalog.API
}

// Page holds view state that is not owned by any component.
type Page struct {
	ScrollLocked bool
	// DialogErrors are per-field messages from the last rejected dialog submit.
	DialogErrors map[string]string
}

func (p *Page) LockScroll()   { p.ScrollLocked = true }
func (p *Page) UnlockScroll() { p.ScrollLocked = false }

// Workspace is one browser's console: the components of a single page
// instance. Every event on it must run under Lock.
type Workspace struct {
	ID string

	Session *session.Controller
	Catalog *catalog.Editor
	Dialog  *modal.Dialog
	Page    *Page

	mu       sync.Mutex
	lastSeen time.Time
}

func newWorkspace(id string, api Backend, log *slog.Logger, now time.Time) *Workspace {
	log = log.With(slog.String("workspace", id))
	editor := catalog.NewEditor(api, log)
	page := &Page{}
	ws := &Workspace{
		ID:       id,
		Catalog:  editor,
		Dialog:   modal.New(page),
		Page:     page,
		lastSeen: now,
	}
	// The list is fetched exactly once per authentication.
	ws.Session = session.NewController(api, nil, log, func(ctx context.Context, sess *backend.Session) {
		_ = editor.Fetch(ctx, sess)
	})
	return ws
}

func (w *Workspace) Lock()   { w.mu.Lock() }
func (w *Workspace) Unlock() { w.mu.Unlock() }

// SignedOut resets everything that belongs to an authenticated page.
func (w *Workspace) SignedOut() {
	w.Dialog.Cancel()
	w.Catalog.Reset()
	w.Page.DialogErrors = nil
}
