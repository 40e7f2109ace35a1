// Package idx normalizes IDX Broker (legacy broker feed) payloads into the
// canonical property model. IDX field names vary by account configuration,
// so every field is resolved through an ordered precedence table.
package idx

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yourorg/listing-gateway/internal/canon"
	"github.com/yourorg/listing-gateway/listing"
)

type record = map[string]any

var (
	idFields     = []string{"id", "listingID", "listingNumber"}
	nameFields   = []string{"listingText", "title", "address"}
	priceFields  = []string{"listingPrice", "price"}
	bedsFields   = []string{"bedrooms", "bedsTotal", "bed"}
	bathsFields  = []string{"bathrooms", "bathsTotal", "bath"}
	sqftFields   = []string{"squareFeet", "livingArea", "sqft"}
	streetFields = []string{"address", "unparsedAddress"}
	cityFields   = []string{"cityName", "city"}
	zipFields    = []string{"zipcode", "postalCode"}

	// Photo shapes differ even more than scalar fields; each rule extracts
	// one known layout.
	imageRules = []func(record) (string, bool){
		nestedURL("image"),
		stringEntry("images"),
		nestedURL("photos"),
		objectURL("primaryPhoto"),
	}
)

// MapProperties maps an IDX payload, either a plain array or an object
// keyed by listing id, to canonical properties. Keyed objects are walked in
// sorted key order so output is deterministic.
func MapProperties(raw []byte) ([]listing.Property, error) {
	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}
	out := make([]listing.Property, 0, len(records))
	for i, rec := range records {
		out = append(out, mapRecord(rec, i))
	}
	listing.EnsureUniqueIDs(out)
	return out, nil
}

func decodeRecords(raw []byte) ([]record, error) {
	var arr []record
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr, nil
	}
	var keyed map[string]record
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]record, 0, len(keys))
	for _, k := range keys {
		rec := keyed[k]
		if rec == nil {
			continue
		}
		if _, has := rec["listingID"]; !has {
			rec["listingID"] = k
		}
		out = append(out, rec)
	}
	return out, nil
}

func mapRecord(rec record, idx int) listing.Property {
	street := firstStr(rec, streetFields)
	city := firstStr(rec, cityFields)
	state := strField(rec, "state")
	zip := firstStr(rec, zipFields)

	id := firstStr(rec, idFields)
	if id == "" {
		id = canon.Key(street, city, state, zip)
	}
	if id == "" {
		id = fmt.Sprintf("idx-%d", idx+1)
	}

	name := firstStr(rec, nameFields)
	if name == "" {
		name = listing.GenericName
	}

	return listing.Property{
		ID:      id,
		Name:    name,
		Address: listing.JoinAddress(street, city, state, zip),
		Price:   listing.FormatPrice(firstInt(rec, priceFields)),
		Beds:    firstInt(rec, bedsFields),
		Baths:   firstInt(rec, bathsFields),
		Sqft:    firstInt(rec, sqftFields),
		Image:   imageURL(rec),
		Status:  listing.StatusFrom(strField(rec, "status")),
	}
}

func imageURL(rec record) string {
	for _, rule := range imageRules {
		if u, ok := rule(rec); ok {
			return u
		}
	}
	return listing.PlaceholderImage
}

// nestedURL reads key -> [ {url: ...}, ... ].
func nestedURL(key string) func(record) (string, bool) {
	return func(rec record) (string, bool) {
		items, _ := rec[key].([]any)
		for _, raw := range items {
			if obj, ok := raw.(map[string]any); ok {
				if u := strField(obj, "url"); u != "" {
					return u, true
				}
			}
		}
		return "", false
	}
}

// stringEntry reads key -> [ "https://...", ... ].
func stringEntry(key string) func(record) (string, bool) {
	return func(rec record) (string, bool) {
		items, _ := rec[key].([]any)
		for _, raw := range items {
			if s, ok := raw.(string); ok && s != "" {
				return s, true
			}
		}
		return "", false
	}
}

// objectURL reads key -> {url: ...}.
func objectURL(key string) func(record) (string, bool) {
	return func(rec record) (string, bool) {
		obj, ok := rec[key].(map[string]any)
		if !ok {
			return "", false
		}
		if u := strField(obj, "url"); u != "" {
			return u, true
		}
		return "", false
	}
}

func firstStr(rec record, keys []string) string {
	for _, k := range keys {
		if s := strField(rec, k); s != "" {
			return s
		}
	}
	return ""
}

func firstInt(rec record, keys []string) int {
	for _, k := range keys {
		if n, ok := asInt(rec[k]); ok && n > 0 {
			return n
		}
	}
	return 0
}

func strField(rec record, key string) string {
	switch v := rec[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		var digits strings.Builder
		for _, r := range n {
			if r >= '0' && r <= '9' {
				digits.WriteRune(r)
			}
		}
		if digits.Len() == 0 {
			return 0, false
		}
		i, err := strconv.Atoi(digits.String())
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}
