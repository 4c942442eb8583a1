package backend

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Credentials is the sign-in request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignInResult is the decoded sign-in answer.
type SignInResult struct {
	Token   string
	Expires time.Time
}

type signInResponse struct {
	Token   string   `json:"token"`
	Expired FlexTime `json:"expired"`
}

// ProductRecord is a product as the backend sends it. The Flex* fields absorb
// the loose wire types (numeric or string ids, bool or 0/1 flags) so nothing
// past this point sees a union.
type ProductRecord struct {
	ID          FlexString `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Unit        string     `json:"unit"`
	OriginPrice FlexFloat  `json:"origin_price"`
	Price       FlexFloat  `json:"price"`
	IsEnabled   FlexBool   `json:"is_enabled"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	ImageURL    *string    `json:"imageUrl"`
	ImagesURL   []string   `json:"imagesUrl"`
}

// ProductPayload is the create/update body after coercion: numeric prices
// and an integer enabled flag.
type ProductPayload struct {
	ID          string   `json:"id,omitempty"`
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
}

type productEnvelope struct {
	Data ProductPayload `json:"data"`
}

type listResponse struct {
	Products jsoniter.RawMessage `json:"products"`
}

type messageResponse struct {
	Message any `json:"message"`
}

// decodeProducts accepts both an array and an id-keyed object; the object
// form has no order of its own and is sorted by id.
func decodeProducts(raw []byte) ([]ProductRecord, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []ProductRecord{}, nil
	}
	switch raw[0] {
	case '[':
		var out []ProductRecord
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	case '{':
		var byID map[string]ProductRecord
		if err := json.Unmarshal(raw, &byID); err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(byID))
		for k := range byID {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]ProductRecord, 0, len(keys))
		for _, k := range keys {
			rec := byID[k]
			if rec.ID == "" {
				rec.ID = FlexString(k)
			}
			out = append(out, rec)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("products: unexpected JSON %q", string(raw[:1]))
	}
}

// messageText flattens the backend's message, which is a string or a list of
// strings (validation errors).
func messageText(v any) string {
	switch m := v.(type) {
	case nil:
		return ""
	case string:
		return m
	case []any:
		parts := make([]string, 0, len(m))
		for _, p := range m {
			if s := cast.ToString(p); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return cast.ToString(m)
	}
}

// FlexString accepts a JSON string or number.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil {
		*f = ""
		return nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*f = FlexString(s)
	return nil
}

// FlexFloat accepts a JSON number or numeric string.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
		if v == "" {
			v = nil
		}
	}
	if v == nil {
		*f = 0
		return nil
	}
	n, err := cast.ToFloat64E(v)
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*f = FlexFloat(n)
	return nil
}

// FlexBool accepts true/false, 0/1 and their string forms.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*f = false
		return nil
	case float64:
		*f = x != 0
		return nil
	}
	ok, err := cast.ToBoolE(v)
	if err != nil {
		return fmt.Errorf("is_enabled: %w", err)
	}
	*f = FlexBool(ok)
	return nil
}

// FlexTime accepts unix milliseconds, unix seconds, a numeric string of
// either, or an RFC 3339 string.
type FlexTime time.Time

func (f *FlexTime) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	t, err := parseExpiry(v)
	if err != nil {
		return err
	}
	*f = FlexTime(t)
	return nil
}

func (f FlexTime) Time() time.Time { return time.Time(f) }

func parseExpiry(v any) (time.Time, error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, nil
	case float64:
		return fromEpoch(int64(x)), nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return fromEpoch(n), nil
		}
		t, err := cast.ToTimeE(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("expired: %w", err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("expired: unsupported type %T", v)
	}
}

// Values above 1e12 cannot be seconds before year 33658, so they are ms.
func fromEpoch(n int64) time.Time {
	if n > 1e12 {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}
