package api

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hfdstore/storefront/internal/models"
)

// Normalizers: pure transforms that extract a usable shape from the
// backend's drifting response envelopes. Unrecognized shapes normalize
// to an empty result rather than an error; callers must treat "empty"
// as "no server data yet".

// TokenFromResponse finds a bearer token in a decoded response.
// Precedence: top-level known token keys, then data.<keys>, then
// data.auth.<keys>. Returns the first non-empty trimmed match, or "".
func TokenFromResponse(res any) string {
	obj, ok := res.(map[string]any)
	if !ok {
		return ""
	}
	if t := tokenFrom(obj); t != "" {
		return t
	}
	nested, ok := obj["data"].(map[string]any)
	if !ok {
		return ""
	}
	if t := tokenFrom(nested); t != "" {
		return t
	}
	if auth, ok := nested["auth"].(map[string]any); ok {
		return tokenFrom(auth)
	}
	return ""
}

func tokenFrom(obj map[string]any) string {
	for _, k := range tokenKeys {
		if v, ok := obj[k].(string); ok {
			if t := strings.TrimSpace(v); t != "" {
				return t
			}
		}
	}
	return ""
}

// CartRows extracts normalized cart lines from any of the cart
// response shapes: a bare array, {items}, {data}, {cart:[...]},
// {cart:{items}}, {cart:{lines}}, or a numeric-keyed object. Rows
// without a product id are dropped; a completely unknown shape yields
// an empty slice.
func CartRows(res any) []models.CartRow {
	arr := cartArray(res)
	if arr == nil {
		return []models.CartRow{}
	}
	out := make([]models.CartRow, 0, len(arr))
	for _, r := range arr {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		productID := stringField(row, "productId", "product_id")
		if productID == "" {
			continue
		}
		out = append(out, models.CartRow{
			ProductID: productID,
			Quantity:  int(numberField(row, "quantity")),
			ItemID:    stringField(row, "itemId", "item_id", "id"),
		})
	}
	return out
}

func cartArray(res any) []any {
	if res == nil {
		return nil
	}
	if arr, ok := res.([]any); ok {
		return arr
	}
	obj, ok := res.(map[string]any)
	if !ok {
		return nil
	}
	if cart, ok := obj["cart"]; ok && cart != nil {
		if arr, ok := cart.([]any); ok {
			return arr
		}
		if cartObj, ok := cart.(map[string]any); ok {
			if arr, ok := cartObj["items"].([]any); ok {
				return arr
			}
			if arr, ok := cartObj["lines"].([]any); ok {
				return arr
			}
		}
	}
	if arr, ok := obj["items"].([]any); ok {
		return arr
	}
	if arr, ok := obj["data"].([]any); ok {
		return arr
	}
	// Index-addressed map: {"0": {...}, "1": {...}}.
	if len(obj) > 0 {
		type entry struct {
			idx int
			val any
		}
		entries := make([]entry, 0, len(obj))
		for k, v := range obj {
			i, err := strconv.Atoi(k)
			if err != nil || i < 0 {
				return nil
			}
			entries = append(entries, entry{idx: i, val: v})
		}
		sort.Slice(entries, func(a, b int) bool { return entries[a].idx < entries[b].idx })
		indexed := make([]any, 0, len(entries))
		for _, e := range entries {
			indexed = append(indexed, e.val)
		}
		return indexed
	}
	return nil
}

// ProductsFromResponse extracts catalog records from {products},
// {items}, {data}, or a bare array, normalizing ids, prices and image
// fields per record. Unknown shapes yield an empty slice.
func ProductsFromResponse(res any) []models.Product {
	var arr []any
	switch v := res.(type) {
	case []any:
		arr = v
	case map[string]any:
		for _, key := range []string{"products", "items", "data"} {
			if a, ok := v[key].([]any); ok {
				arr = a
				break
			}
		}
	}
	if arr == nil {
		return []models.Product{}
	}
	out := make([]models.Product, 0, len(arr))
	for _, r := range arr {
		raw, ok := r.(map[string]any)
		if !ok {
			continue
		}
		p := ProductFromRecord(raw)
		if p.ID == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ProductFromRecord normalizes a single raw catalog record.
func ProductFromRecord(raw map[string]any) models.Product {
	p := models.Product{
		ID:            idField(raw),
		Name:          stringField(raw, "name"),
		Price:         numberField(raw, "price"),
		OriginalPrice: numberField(raw, "originalPrice", "original_price"),
		Image:         stringField(raw, "image", "imageUrl", "image_url"),
		Category:      stringField(raw, "category"),
		IsNew:         boolField(raw, "isNew", "is_new"),
		IsBestseller:  boolField(raw, "isBestseller", "is_bestseller"),
		Description:   stringField(raw, "description"),
		Rating:        numberField(raw, "rating"),
		Reviews:       int(numberField(raw, "reviews")),
	}
	p.Images = stringSliceField(raw, "images")
	p.Sizes = stringSliceField(raw, "sizes")
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	return p
}

// idField accepts string or numeric ids under "id" or "_id".
func idField(raw map[string]any) string {
	for _, k := range []string{"id", "_id"} {
		switch v := raw[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func stringField(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// numberField coerces a JSON number or numeric string, defaulting to 0.
func numberField(raw map[string]any, keys ...string) float64 {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case float64:
			return v
		case string:
			if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return n
			}
		}
	}
	return 0
}

func boolField(raw map[string]any, keys ...string) bool {
	for _, k := range keys {
		if v, ok := raw[k].(bool); ok {
			return v
		}
	}
	return false
}

func stringSliceField(raw map[string]any, key string) []string {
	arr, ok := raw[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
