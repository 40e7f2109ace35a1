package spark

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/yourorg/listing-gateway/internal/canon"
	"github.com/yourorg/listing-gateway/listing"
)

// Field precedence tables. The first present, usable value wins; Spark
// plans disagree on which of these a payload carries.
var (
	bedsFields  = []string{"BedsTotal", "BedroomsTotal"}
	bathsFields = []string{"BathsTotal", "BathroomsTotal"}
	sqftFields  = []string{"BuildingAreaTotal", "LivingArea"}
	photoFields = []string{"Uri", "UriLarge", "Uri800", "Url"}
)

// MapListings maps a Spark listings payload to canonical properties. An
// error is returned only when the envelope itself fails to decode; a
// malformed individual record still yields a best-effort property with
// documented defaults.
func MapListings(raw []byte) ([]listing.Property, error) {
	var root envelope
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	out := make([]listing.Property, 0, len(root.D.Results))
	for i, res := range root.D.Results {
		out = append(out, mapResult(res, i))
	}
	listing.EnsureUniqueIDs(out)
	return out, nil
}

func mapResult(res result, idx int) listing.Property {
	f := res.StandardFields

	street := strField(f, "UnparsedAddress")
	city := strField(f, "City")
	state := strField(f, "StateOrProvince")
	zip := strField(f, "PostalCode")

	id := firstNonEmpty(string(res.ID), string(res.ListingKey))
	if id == "" {
		// No upstream identifier: derive one from the address so repeated
		// fetches of the same payload return the same id.
		id = canon.Key(street, city, state, zip)
	}
	if id == "" {
		id = fmt.Sprintf("spark-%d", idx+1)
	}

	name := street
	if name == "" {
		name = listing.GenericName
	}

	return listing.Property{
		ID:      id,
		Name:    name,
		Address: listing.JoinAddress(street, city, state, zip),
		Price:   listing.FormatPrice(intField(f, "ListPrice")),
		Beds:    firstInt(f, bedsFields),
		Baths:   firstInt(f, bathsFields),
		Sqft:    firstInt(f, sqftFields),
		Image:   photoURL(f),
		Status:  listing.StatusFrom(strField(f, "MlsStatus")),
	}
}

func photoURL(f map[string]any) string {
	photos, _ := f["Photos"].([]any)
	for _, raw := range photos {
		photo, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range photoFields {
			if u := strField(photo, key); u != "" {
				return u
			}
		}
	}
	return listing.PlaceholderImage
}

func firstInt(f map[string]any, keys []string) int {
	for _, k := range keys {
		if n, ok := asInt(f[k]); ok && n > 0 {
			return n
		}
	}
	return 0
}

func intField(f map[string]any, key string) int {
	n, _ := asInt(f[key])
	if n < 0 {
		return 0
	}
	return n
}

func strField(f map[string]any, key string) string {
	switch v := f[key].(type) {
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

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
