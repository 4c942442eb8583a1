package catalog

import (
	"errors"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/viccjiang/hexadmin/internal/backend"
	"github.com/viccjiang/hexadmin/internal/shared/apperr"
)

// ToPayload coerces a draft into the wire shape: numeric prices and a 0/1
// enabled flag. Empty price inputs become 0.
func ToPayload(d Draft) (backend.ProductPayload, error) {
	fields := map[string]string{}
	origin, err := ParsePrice(d.OriginPrice)
	if err != nil {
		fields["origin_price"] = "Must be a number."
	}
	price, err := ParsePrice(d.Price)
	if err != nil {
		fields["price"] = "Must be a number."
	}
	if len(fields) > 0 {
		return backend.ProductPayload{}, apperr.InvalidErr("Prices must be numbers.", fields)
	}

	enabled := 0
	if d.IsEnabled {
		enabled = 1
	}
	images := d.ImagesURL
	if images == nil {
		images = []string{}
	}

	return backend.ProductPayload{
		ID:          d.ID,
		Title:       d.Title,
		Category:    d.Category,
		Unit:        d.Unit,
		OriginPrice: origin,
		Price:       price,
		IsEnabled:   enabled,
		Description: d.Description,
		Content:     d.Content,
		ImageURL:    d.ImageURL,
		ImagesURL:   append([]string{}, images...),
	}, nil
}

var errNotFinite = errors.New("catalog: price is not a finite number")

// ParsePrice reads a price input the way a number input submits it: any
// float form (".5", "1e2"), empty meaning 0.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}
