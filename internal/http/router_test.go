package apphttp

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viccjiang/hexadmin/internal/backend"
	"github.com/viccjiang/hexadmin/internal/backend/fakeapi"
	"github.com/viccjiang/hexadmin/internal/console"
	"github.com/viccjiang/hexadmin/internal/http/flash"
	"github.com/viccjiang/hexadmin/internal/http/wscookie"
	"github.com/viccjiang/hexadmin/templates"
)

type harness struct {
	console *httptest.Server
	store   *fakeapi.MemoryStore
	backend *countingTransport
}

// countingTransport counts outgoing backend calls per "METHOD path".
type countingTransport struct {
	mu    sync.Mutex
	calls map[string]int
}

func (t *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.calls[r.Method+" "+r.URL.Path]++
	t.mu.Unlock()
	return http.DefaultTransport.RoundTrip(r)
}

func (t *countingTransport) count(call string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls[call]
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := fakeapi.NewMemoryStore(fakeapi.Product{
		ID: "p1", Title: "Oolong", Category: "tea", Unit: "box", OriginPrice: 1200, Price: 980, IsEnabled: 1,
	})
	hash, err := fakeapi.HashPassword("hunter2")
	require.NoError(t, err)
	api := httptest.NewServer(fakeapi.NewServer(fakeapi.Config{
		APIPath: "shop", Username: "admin@example.com", PasswordHash: hash,
		Secret: []byte("s3cret"), TokenTTL: time.Hour,
	}, store, log).Handler())
	t.Cleanup(api.Close)

	counter := &countingTransport{calls: map[string]int{}}
	client, err := backend.NewClient(backend.Config{BaseURL: api.URL, APIPath: "shop"})
	require.NoError(t, err)
	client.WithHTTPClient(&http.Client{Transport: counter})

	tpl, err := templates.Parse()
	require.NoError(t, err)

	secret := []byte("0123456789abcdef")
	router := NewRouter(Deps{
		Log:       log,
		Templates: tpl,
		Registry:  console.NewRegistry(client, log, time.Hour),
		Flash:     flash.NewCodec(secret, "", false),
		Workspace: wscookie.New(secret, "", false, 0),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &harness{console: srv, store: store, backend: counter}
}

func (h *harness) browser(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func body(t *testing.T) func(*http.Response, error) string {
	return func(res *http.Response, err error) string {
		t.Helper()
		require.NoError(t, err)
		defer res.Body.Close()
		b, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		return string(b)
	}
}

func (h *harness) login(t *testing.T, b *http.Client) string {
	t.Helper()
	return body(t)(b.PostForm(h.console.URL+"/login", url.Values{
		"username": {"admin@example.com"},
		"password": {"hunter2"},
	}))
}

func TestSignedOutShowsOnlyLogin(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)

	page := body(t)(b.Get(h.console.URL + "/"))
	assert.Contains(t, page, `action="/login"`)
	assert.NotContains(t, page, "Oolong")
	assert.Zero(t, h.backend.count("POST /api/user/check"), "no cookie, no check")

	page = body(t)(b.PostForm(h.console.URL+"/dialog/open", url.Values{"mode": {"create"}}))
	assert.Contains(t, page, "Please sign in to continue.")
}

func TestLoginFailureAlertsBackendMessage(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)

	page := body(t)(b.PostForm(h.console.URL+"/login", url.Values{
		"username": {"admin@example.com"},
		"password": {"wrong"},
	}))
	assert.Contains(t, page, "Login failed: 登入失敗")
	assert.Contains(t, page, `value="admin@example.com"`)
	assert.Zero(t, h.backend.count("GET /api/shop/admin/products"))
}

func TestLoginValidatesForm(t *testing.T) {
	h := newHarness(t)
	res, err := h.browser(t).PostForm(h.console.URL+"/login", url.Values{"username": {"not-an-email"}})
	page := body(t)(res, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, page, "Enter a valid email address.")
	assert.Zero(t, h.backend.count("POST /admin/signin"))
}

func TestLoginFetchesOnceAndSetsCookie(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)

	page := h.login(t, b)
	assert.Contains(t, page, "Oolong")
	assert.Contains(t, page, "1,200")
	assert.Equal(t, 1, h.backend.count("GET /api/shop/admin/products"))

	u, _ := url.Parse(h.console.URL)
	var token string
	for _, c := range b.Jar.Cookies(u) {
		if c.Name == "hexToken" {
			token = c.Value
		}
	}
	assert.NotEmpty(t, token)

	// A second browser holding only the token cookie is checked, not asked
	// to log in again.
	other := h.browser(t)
	other.Jar.SetCookies(u, []*http.Cookie{{Name: "hexToken", Value: token}})
	page = body(t)(other.Get(h.console.URL + "/"))
	assert.Contains(t, page, "Oolong")
	assert.Equal(t, 1, h.backend.count("POST /api/user/check"))
}

func TestCreateCoercesAndRefetches(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	h.login(t, b)

	page := body(t)(b.PostForm(h.console.URL+"/dialog/open", url.Values{"mode": {"create"}}))
	assert.Contains(t, page, "New product")
	assert.Contains(t, page, "modal-open")

	page = body(t)(b.PostForm(h.console.URL+"/dialog", url.Values{
		"title": {"Matcha"}, "category": {"tea"}, "unit": {"tin"},
		"origin_price": {"100"}, "price": {"80"}, "is_enabled": {"1"},
		"action": {"confirm"},
	}))
	assert.Contains(t, page, "Product created.")
	assert.Contains(t, page, "Matcha")
	assert.NotContains(t, page, "modal-open")
	assert.Equal(t, 2, h.backend.count("GET /api/shop/admin/products"))

	list, err := h.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 100.0, list[1].OriginPrice)
	assert.Equal(t, 80.0, list[1].Price)
	assert.Equal(t, 1, list[1].IsEnabled)
}

func TestConfirmRejectsIncompleteForm(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	h.login(t, b)
	body(t)(b.PostForm(h.console.URL+"/dialog/open", url.Values{"mode": {"create"}}))

	page := body(t)(b.PostForm(h.console.URL+"/dialog", url.Values{
		"category": {"tea"}, "unit": {"tin"}, "origin_price": {"-1"}, "price": {"abc"},
		"action": {"confirm"},
	}))
	assert.Contains(t, page, "This field is required.")
	assert.Contains(t, page, "Must be at least 0.")
	assert.Contains(t, page, "Must be a number.")
	assert.Contains(t, page, "modal-open", "dialog stays open")
	assert.Zero(t, h.backend.count("POST /api/shop/admin/product"))
}

func TestConfirmSendsDraftWithoutUnit(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	h.login(t, b)
	body(t)(b.PostForm(h.console.URL+"/dialog/open", url.Values{"mode": {"create"}}))

	page := body(t)(b.PostForm(h.console.URL+"/dialog", url.Values{
		"title": {"Matcha"}, "category": {"tea"}, "unit": {""},
		"origin_price": {"100"}, "price": {"80"},
		"action": {"confirm"},
	}))
	assert.NotContains(t, page, "This field is required.")
	assert.Equal(t, 1, h.backend.count("POST /api/shop/admin/product"))
	// The mock backend insists on unit, so the failure comes back as an alert.
	assert.Contains(t, page, "Operation failed: unit 屬性不得為空")
	assert.NotContains(t, page, "modal-open")
	assert.Equal(t, 1, h.backend.count("GET /api/shop/admin/products"), "no refetch after a failed create")
}

func TestConfirmAcceptsAnyFloatPriceForm(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	h.login(t, b)
	body(t)(b.PostForm(h.console.URL+"/dialog/open", url.Values{"mode": {"create"}}))

	page := body(t)(b.PostForm(h.console.URL+"/dialog", url.Values{
		"title": {"Sample"}, "category": {"tea"}, "unit": {"bag"},
		"origin_price": {"1e2"}, "price": {".5"},
		"action": {"confirm"},
	}))
	assert.Contains(t, page, "Product created.")

	list, err := h.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 100.0, list[1].OriginPrice)
	assert.Equal(t, 0.5, list[1].Price)
}

func TestImageSlotsAndCancel(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	h.login(t, b)
	body(t)(b.PostForm(h.console.URL+"/dialog/open", url.Values{"mode": {"edit"}, "id": {"p1"}}))

	form := url.Values{"title": {"Oolong"}, "category": {"tea"}, "unit": {"box"}, "origin_price": {"1200"}, "price": {"980"}}
	for i := 0; i < 3; i++ {
		form.Set("action", "add_image")
		body(t)(b.PostForm(h.console.URL+"/dialog", form))
	}
	form["imagesUrl"] = []string{"a", "b", "c"}
	form.Set("action", "remove_image:1")
	page := body(t)(b.PostForm(h.console.URL+"/dialog", form))
	assert.Contains(t, page, `name="imagesUrl" value="a"`)
	assert.Contains(t, page, `name="imagesUrl" value="c"`)
	assert.NotContains(t, page, `name="imagesUrl" value="b"`)

	page = body(t)(b.PostForm(h.console.URL+"/dialog", url.Values{"action": {"cancel"}}))
	assert.NotContains(t, page, "modal-open")
	assert.Zero(t, h.backend.count("PUT /api/shop/admin/product/p1"))
}

func TestDeleteIssuesOneDeleteThenOneRefetch(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	h.login(t, b)

	body(t)(b.PostForm(h.console.URL+"/dialog/open", url.Values{"mode": {"delete"}, "id": {"p1"}}))
	page := body(t)(b.PostForm(h.console.URL+"/dialog", url.Values{"action": {"confirm"}}))

	assert.Contains(t, page, "Product deleted.")
	assert.Contains(t, page, "No products yet.")
	assert.Equal(t, 1, h.backend.count("DELETE /api/shop/admin/product/p1"))
	assert.Equal(t, 2, h.backend.count("GET /api/shop/admin/products"))
}

func TestDetailPaneAndLogout(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	h.login(t, b)

	page := body(t)(b.Get(h.console.URL + "/?view=p1"))
	assert.Contains(t, page, "<aside")

	page = body(t)(b.PostForm(h.console.URL+"/logout", nil))
	assert.Contains(t, page, "Signed out.")
	assert.Contains(t, page, `action="/login"`)
}
