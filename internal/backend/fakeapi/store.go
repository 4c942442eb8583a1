package fakeapi

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("fakeapi: product not found")

// Product is a stored catalog entry in wire shape.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Unit        string   `json:"unit"`
	OriginPrice float64  `json:"origin_price"`
	Price       float64  `json:"price"`
	IsEnabled   int      `json:"is_enabled"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	ImageURL    string   `json:"imageUrl"`
	ImagesURL   []string `json:"imagesUrl"`
	// Num is the creation sequence; listing is ordered by it.
	Num int64 `json:"num"`
}

type Store interface {
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id string, p Product) error
	Delete(ctx context.Context, id string) error
}

type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Product
	seq   int64
}

func NewMemoryStore(seed ...Product) *MemoryStore {
	s := &MemoryStore{items: make(map[string]Product)}
	for _, p := range seed {
		_, _ = s.Create(context.Background(), p)
	}
	return s
}

func (s *MemoryStore) List(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.items))
	for _, p := range s.items {
		p.ImagesURL = append([]string{}, p.ImagesURL...)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Num < out[j].Num })
	return out, nil
}

// Create keeps a caller-supplied id, otherwise assigns one.
func (s *MemoryStore) Create(_ context.Context, p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = newID()
	}
	s.seq++
	p.Num = s.seq
	p.ImagesURL = append([]string{}, p.ImagesURL...)
	s.items[p.ID] = p
	return p, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}
	p.ID, p.Num = id, old.Num
	p.ImagesURL = append([]string{}, p.ImagesURL...)
	s.items[id] = p
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// newID looks like the ids the real backend hands out: a time-ordered
// prefix plus a random tail.
func newID() string {
	return "-" + time.Now().UTC().Format("20060102150405") + uuid.NewString()[:8]
}
