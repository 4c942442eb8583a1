package fakeapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreKeepsCreationOrder(t *testing.T) {
	s := NewMemoryStore(Product{ID: "b", Title: "first"}, Product{ID: "a", Title: "second"})
	ctx := context.Background()

	created, err := s.Create(ctx, Product{Title: "third"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{list[0].Title, list[1].Title, list[2].Title})
}

func TestMemoryStoreUpdateKeepsIdentity(t *testing.T) {
	s := NewMemoryStore(Product{ID: "a", Title: "old"})
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, "a", Product{ID: "ignored", Title: "new"}))
	list, _ := s.List(ctx)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "new", list[0].Title)

	assert.ErrorIs(t, s.Update(ctx, "zzz", Product{}), ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "zzz"), ErrNotFound)
}

func TestMemoryStoreListIsACopy(t *testing.T) {
	s := NewMemoryStore(Product{ID: "a", ImagesURL: []string{"x"}})
	list, _ := s.List(context.Background())
	list[0].ImagesURL[0] = "mutated"

	again, _ := s.List(context.Background())
	assert.Equal(t, "x", again[0].ImagesURL[0])
}
