package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{BaseURL: srv.URL + "/", APIPath: "/shop/"})
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresBaseAndPath(t *testing.T) {
	_, err := NewClient(Config{APIPath: "shop"})
	assert.Error(t, err)
	_, err = NewClient(Config{BaseURL: "http://api.local"})
	assert.Error(t, err)
}

func TestSignIn(t *testing.T) {
	expires := time.Date(2026, 10, 23, 8, 0, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/signin", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var in Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, Credentials{Username: "admin@example.com", Password: "secret"}, in)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"token":"abc","expired":1792742400000}`)
	})

	res, err := c.SignIn(context.Background(), Credentials{Username: "admin@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Token)
	assert.True(t, res.Expires.Equal(expires), res.Expires)
}

func TestSignInFailureCarriesMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success":false,"message":"登入失敗"}`)
	})

	_, err := c.SignIn(context.Background(), Credentials{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "登入失敗", MessageOf(err))
}

func TestBearerIsSentVerbatim(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		assert.Equal(t, "/api/user/check", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	sess := &Session{}
	sess.Set("abc", time.Now().Add(time.Hour))
	require.NoError(t, c.CheckSession(context.Background(), sess))
	assert.Equal(t, "abc", got)
}

func TestListProductsNormalizesLooseTypes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/shop/admin/products", r.URL.Path)
		_, _ = io.WriteString(w, `{"products":[
			{"id":1,"title":"Tea","origin_price":"120","price":100,"is_enabled":1},
			{"id":"p-2","title":"Mug","origin_price":50,"price":45,"is_enabled":false,"imageUrl":"https://img/1","imagesUrl":["a","b"]}
		]}`)
	})

	recs, err := c.ListProducts(context.Background(), &Session{})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, FlexString("1"), recs[0].ID)
	assert.Equal(t, FlexFloat(120), recs[0].OriginPrice)
	assert.True(t, bool(recs[0].IsEnabled))
	assert.Nil(t, recs[0].ImageURL)

	assert.Equal(t, FlexString("p-2"), recs[1].ID)
	assert.False(t, bool(recs[1].IsEnabled))
	require.NotNil(t, recs[1].ImageURL)
	assert.Equal(t, []string{"a", "b"}, recs[1].ImagesURL)
}

func TestListProductsAcceptsObjectForm(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"products":{"b":{"title":"B"},"a":{"id":"a","title":"A"}}}`)
	})

	recs, err := c.ListProducts(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "A", recs[0].Title)
	assert.Equal(t, FlexString("b"), recs[1].ID)
}

func TestMutationsHitIdentifierAddressedEndpoints(t *testing.T) {
	type call struct{ method, path, body string }
	var calls []call
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls = append(calls, call{r.Method, r.URL.Path, string(b)})
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	ctx := context.Background()
	p := ProductPayload{Title: "Tea", OriginPrice: 100, Price: 80, IsEnabled: 1, ImagesURL: []string{}}

	require.NoError(t, c.CreateProduct(ctx, nil, p))
	require.NoError(t, c.UpdateProduct(ctx, nil, "7", p))
	require.NoError(t, c.DeleteProduct(ctx, nil, "7"))

	require.Len(t, calls, 3)
	assert.Equal(t, http.MethodPost, calls[0].method)
	assert.Equal(t, "/api/shop/admin/product", calls[0].path)
	assert.JSONEq(t, `{"data":{"title":"Tea","category":"","unit":"","origin_price":100,"price":80,"is_enabled":1,"description":"","content":"","imageUrl":"","imagesUrl":[]}}`, calls[0].body)
	assert.Equal(t, http.MethodPut, calls[1].method)
	assert.Equal(t, "/api/shop/admin/product/7", calls[1].path)
	assert.Equal(t, http.MethodDelete, calls[2].method)
	assert.Equal(t, "/api/shop/admin/product/7", calls[2].path)
	assert.Empty(t, calls[2].body)
}

func TestMessageOfFallsBack(t *testing.T) {
	assert.Equal(t, UnknownMessage, MessageOf(errors.New("dial tcp: refused")))
	assert.Equal(t, UnknownMessage, MessageOf(&APIError{Status: 500}))
	assert.Equal(t, "title required, price required",
		messageText([]any{"title required", "price required"}))
}

func TestTransportErrorOnUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c, err := NewClient(Config{BaseURL: srv.URL, APIPath: "shop"})
	require.NoError(t, err)

	err = c.CheckSession(context.Background(), nil)
	var te *TransportError
	assert.ErrorAs(t, err, &te)
	assert.False(t, IsUnauthorized(err))
}
