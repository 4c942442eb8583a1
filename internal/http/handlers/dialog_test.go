package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viccjiang/hexadmin/internal/modules/catalog"
)

func TestCheckDraftLeavesUnitOptional(t *testing.T) {
	errs := checkDraft(catalog.Draft{Title: "Matcha", Category: "tea", OriginPrice: "100", Price: "80"})
	assert.Empty(t, errs)
}

func TestCheckDraftPrices(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{".5", ""},
		{"1e2", ""},
		{"0", ""},
		{"-1", "Must be at least 0."},
		{"abc", "Must be a number."},
		{"NaN", "Must be a number."},
		{"", "This field is required."},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			errs := checkDraft(catalog.Draft{Title: "t", Category: "c", OriginPrice: "1", Price: tc.in})
			assert.Equal(t, tc.want, errs["price"])
		})
	}
}

func TestCheckDraftRequiresTitleAndCategory(t *testing.T) {
	errs := checkDraft(catalog.Draft{OriginPrice: "1", Price: "1"})
	assert.Equal(t, "This field is required.", errs["title"])
	assert.Equal(t, "This field is required.", errs["category"])
	assert.NotContains(t, errs, "unit")
}
