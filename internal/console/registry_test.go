package console

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viccjiang/hexadmin/internal/backend"
	"github.com/viccjiang/hexadmin/internal/modules/catalog"
)

type stubBackend struct {
	lists int
}

func (s *stubBackend) SignIn(context.Context, backend.Credentials) (backend.SignInResult, error) {
	return backend.SignInResult{Token: "t", Expires: time.Now().Add(time.Hour)}, nil
}
func (s *stubBackend) CheckSession(context.Context, *backend.Session) error { return nil }
func (s *stubBackend) ListProducts(context.Context, *backend.Session) ([]backend.ProductRecord, error) {
	s.lists++
	return []backend.ProductRecord{{ID: "1", Title: "Tea"}}, nil
}
func (s *stubBackend) CreateProduct(context.Context, *backend.Session, backend.ProductPayload) error {
	return nil
}
func (s *stubBackend) UpdateProduct(context.Context, *backend.Session, string, backend.ProductPayload) error {
	return nil
}
func (s *stubBackend) DeleteProduct(context.Context, *backend.Session, string) error { return nil }

type jar struct{ token string }

func (j *jar) Token() (string, bool)             { return j.token, j.token != "" }
func (j *jar) SetToken(token string, _ time.Time) { j.token = token }
func (j *jar) ClearToken()                        { j.token = "" }

func TestAcquireCreatesAndReuses(t *testing.T) {
	r := NewRegistry(&stubBackend{}, nil, time.Hour)

	ws, created := r.Acquire("")
	require.True(t, created)
	require.NotEmpty(t, ws.ID)

	again, created := r.Acquire(ws.ID)
	assert.False(t, created)
	assert.Same(t, ws, again)

	other, created := r.Acquire("not-a-known-id")
	assert.True(t, created)
	assert.NotEqual(t, ws.ID, other.ID)
	assert.Equal(t, 2, r.Len())
}

func TestSweepDropsIdleWorkspaces(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(&stubBackend{}, nil, 30*time.Minute)
	r.now = func() time.Time { return now }

	old, _ := r.Acquire("")
	now = now.Add(20 * time.Minute)
	fresh, _ := r.Acquire("")
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, r.Sweep())
	_, created := r.Acquire(fresh.ID)
	assert.False(t, created)
	_, created = r.Acquire(old.ID)
	assert.True(t, created)
}

func TestLoginFetchesCatalogOnce(t *testing.T) {
	api := &stubBackend{}
	r := NewRegistry(api, nil, time.Hour)
	ws, _ := r.Acquire("")

	ws.Lock()
	defer ws.Unlock()
	require.NoError(t, ws.Session.SubmitLogin(context.Background(), &jar{}))

	assert.Equal(t, 1, api.lists)
	assert.Len(t, ws.Catalog.Products(), 1)
}

func TestSignedOutClosesDialog(t *testing.T) {
	r := NewRegistry(&stubBackend{}, nil, time.Hour)
	ws, _ := r.Acquire("")

	ws.Dialog.Open(catalog.ModeCreate, nil)
	require.True(t, ws.Page.ScrollLocked)
	ws.SignedOut()

	assert.False(t, ws.Dialog.IsOpen())
	assert.False(t, ws.Page.ScrollLocked)
}

func TestStartSweeperRejectsBadSpec(t *testing.T) {
	r := NewRegistry(&stubBackend{}, nil, time.Hour)
	_, err := r.StartSweeper("every now and then")
	assert.Error(t, err)

	stop, err := r.StartSweeper("@every 1m")
	require.NoError(t, err)
	stop()
}
