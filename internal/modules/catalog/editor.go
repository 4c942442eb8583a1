package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/viccjiang/hexadmin/internal/backend"
	"github.com/viccjiang/hexadmin/internal/shared/apperr"
)

// API is the slice of the backend client the editor needs.
type API interface {
	ListProducts(ctx context.Context, sess *backend.Session) ([]backend.ProductRecord, error)
	CreateProduct(ctx context.Context, sess *backend.Session, p backend.ProductPayload) error
	UpdateProduct(ctx context.Context, sess *backend.Session, id string, p backend.ProductPayload) error
	DeleteProduct(ctx context.Context, sess *backend.Session, id string) error
}

var ErrNoProductID = errors.New("catalog: draft has no product id")

// Editor owns the product list. The list is always exactly the result of the
// last successful fetch; mutations never touch it directly.
//
// An Editor is not safe for concurrent use; its workspace serializes access.
type Editor struct {
	api      API
	log      *slog.Logger
	products []Product
}

func NewEditor(api API, log *slog.Logger) *Editor {
	if log == nil {
		log = slog.Default()
	}
	return &Editor{api: api, log: log, products: []Product{}}
}

// Products returns a copy of the current list.
func (e *Editor) Products() []Product {
	out := make([]Product, len(e.products))
	copy(out, e.products)
	return out
}

func (e *Editor) Find(id string) (Product, bool) {
	for _, p := range e.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Reset drops the list, e.g. after logout.
func (e *Editor) Reset() {
	e.products = []Product{}
}

// Fetch replaces the whole list. A failure is logged and leaves the previous
// list in place; the error is returned for callers that care.
func (e *Editor) Fetch(ctx context.Context, sess *backend.Session) error {
	recs, err := e.api.ListProducts(ctx, sess)
	if err != nil {
		e.log.LogAttrs(ctx, slog.LevelWarn, "catalog_fetch_failed",
			slog.String("detail", backend.MessageOf(err)),
			slog.Any("err", err),
		)
		return err
	}
	list := make([]Product, 0, len(recs))
	for _, r := range recs {
		list = append(list, fromRecord(r))
	}
	e.products = list
	e.log.LogAttrs(ctx, slog.LevelDebug, "catalog_fetched", slog.Int("count", len(list)))
	return nil
}

func (e *Editor) Create(ctx context.Context, sess *backend.Session, d Draft) error {
	p, err := ToPayload(d)
	if err != nil {
		return err
	}
	if err := e.api.CreateProduct(ctx, sess, p); err != nil {
		return err
	}
	e.refetch(ctx, sess)
	return nil
}

func (e *Editor) Update(ctx context.Context, sess *backend.Session, d Draft) error {
	if d.ID == "" {
		return ErrNoProductID
	}
	p, err := ToPayload(d)
	if err != nil {
		return err
	}
	if err := e.api.UpdateProduct(ctx, sess, d.ID, p); err != nil {
		return err
	}
	e.refetch(ctx, sess)
	return nil
}

func (e *Editor) Delete(ctx context.Context, sess *backend.Session, d Draft) error {
	if d.ID == "" {
		return ErrNoProductID
	}
	if err := e.api.DeleteProduct(ctx, sess, d.ID); err != nil {
		return err
	}
	e.refetch(ctx, sess)
	return nil
}

// Result is what the administrator is told once a mutation settles.
type Result struct {
	OK      bool
	Message string
}

var successMessages = map[Mode]string{
	ModeCreate: "Product created.",
	ModeEdit:   "Product updated.",
	ModeDelete: "Product deleted.",
}

// Apply runs the mutation a confirmed dialog asked for.
func (e *Editor) Apply(ctx context.Context, sess *backend.Session, mode Mode, d Draft) Result {
	var err error
	switch mode {
	case ModeCreate:
		err = e.Create(ctx, sess, d)
	case ModeEdit:
		err = e.Update(ctx, sess, d)
	case ModeDelete:
		err = e.Delete(ctx, sess, d)
	default:
		err = fmt.Errorf("catalog: unknown mode %q", mode)
	}
	if err != nil {
		e.log.LogAttrs(ctx, slog.LevelWarn, "catalog_mutation_failed",
			slog.String("mode", string(mode)),
			slog.String("product_id", d.ID),
			slog.Any("err", err),
		)
		return Result{Message: "Operation failed: " + FailureDetail(err)}
	}
	e.log.LogAttrs(ctx, slog.LevelInfo, "catalog_mutation",
		slog.String("mode", string(mode)),
		slog.String("product_id", d.ID),
	)
	return Result{OK: true, Message: successMessages[mode]}
}

// FailureDetail prefers the backend message, then a public validation
// message, then the generic fallback.
func FailureDetail(err error) string {
	if msg := backend.MessageOf(err); msg != backend.UnknownMessage {
		return msg
	}
	if ae, ok := apperr.As(err); ok && ae.Kind == apperr.Invalid && ae.PublicMsg != "" {
		return ae.PublicMsg
	}
	return backend.UnknownMessage
}

// refetch runs after every successful mutation; its own failure only logs.
func (e *Editor) refetch(ctx context.Context, sess *backend.Session) {
	_ = e.Fetch(ctx, sess)
}
