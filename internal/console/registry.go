package console

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Registry keeps the live workspaces in memory. Workspaces idle for longer
// than the TTL are dropped by Sweep.
type Registry struct {
	api Backend
	log *slog.Logger
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	items map[string]*Workspace
}

func NewRegistry(api Backend, log *slog.Logger, ttl time.Duration) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		api:   api,
		log:   log,
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]*Workspace),
	}
}

// Acquire returns the workspace for id, creating a fresh one under a new id
// when id is empty or unknown. created reports the latter.
func (r *Registry) Acquire(id string) (ws *Workspace, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if ws, ok := r.items[id]; ok && id != "" {
		ws.lastSeen = now
		return ws, false
	}

	ws = newWorkspace(uuid.NewString(), r.api, r.log, now)
	r.items[ws.ID] = ws
	r.log.Debug("workspace_created", slog.String("workspace", ws.ID))
	return ws, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep removes idle workspaces and reports how many went.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	n := 0
	for id, ws := range r.items {
		if ws.lastSeen.Before(cutoff) {
			delete(r.items, id)
			n++
		}
	}
	return n
}

// StartSweeper runs Sweep on a cron schedule such as "@every 5m".
// The returned func stops the schedule and waits for a running sweep.
func (r *Registry) StartSweeper(spec string) (stop func(), err error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if n := r.Sweep(); n > 0 {
			r.log.Info("workspaces_swept", slog.Int("removed", n), slog.Int("live", r.Len()))
		}
	}); err != nil {
		return nil, err
	}
	c.Start()
	return func() { <-c.Stop().Done() }, nil
}
