package catalog

import (
	"strconv"

	"github.com/viccjiang/hexadmin/internal/backend"
)

// Mode is the kind of change the dialog asks the editor to make.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
	ModeDelete Mode = "delete"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeCreate, ModeEdit, ModeDelete:
		return Mode(s), true
	}
	return "", false
}

// Product is a normalized catalog entry, read-only on this side.
type Product struct {
	ID          string
	Title       string
	Category    string
	Unit        string
	OriginPrice float64
	Price       float64
	IsEnabled   bool
	Description string
	Content     string
	ImageURL    string
	ImagesURL   []string
}

// Draft is the editable working copy of a product. Prices stay strings so an
// empty input is representable; IsEnabled is a strict bool.
type Draft struct {
	ID          string
	Title       string
	Category    string
	Unit        string
	OriginPrice string
	Price       string
	IsEnabled   bool
	Description string
	Content     string
	ImageURL    string
	ImagesURL   []string
}

// EmptyDraft is the all-empty sentinel a closed or fresh create dialog holds.
func EmptyDraft() Draft {
	return Draft{ImagesURL: []string{}}
}

// Clone returns a copy that shares no slice with d.
func (d Draft) Clone() Draft {
	out := d
	out.ImagesURL = append(make([]string, 0, len(d.ImagesURL)), d.ImagesURL...)
	return out
}

func DraftFromProduct(p Product) Draft {
	images := p.ImagesURL
	if images == nil {
		images = []string{}
	}
	return Draft{
		ID:          p.ID,
		Title:       p.Title,
		Category:    p.Category,
		Unit:        p.Unit,
		OriginPrice: formatPrice(p.OriginPrice),
		Price:       formatPrice(p.Price),
		IsEnabled:   p.IsEnabled,
		Description: p.Description,
		Content:     p.Content,
		ImageURL:    p.ImageURL,
		ImagesURL:   append([]string{}, images...),
	}
}

func fromRecord(r backend.ProductRecord) Product {
	p := Product{
		ID:          string(r.ID),
		Title:       r.Title,
		Category:    r.Category,
		Unit:        r.Unit,
		OriginPrice: float64(r.OriginPrice),
		Price:       float64(r.Price),
		IsEnabled:   bool(r.IsEnabled),
		Description: r.Description,
		Content:     r.Content,
		ImagesURL:   r.ImagesURL,
	}
	if r.ImageURL != nil {
		p.ImageURL = *r.ImageURL
	}
	if p.ImagesURL == nil {
		p.ImagesURL = []string{}
	}
	return p
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
