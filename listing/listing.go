// Package listing defines the canonical, provider-agnostic property model
// and the client that UI pages call to fetch listings.
package listing

import (
	"fmt"
	"strconv"
	"strings"
)

type Status string

const (
	StatusForSale Status = "For Sale"
	StatusSold    Status = "Sold"
)

// PlaceholderImage is served when an upstream record carries no photo.
const PlaceholderImage = "https://images.unsplash.com/photo-1568605114967-8130f3a36994?w=800&auto=format&fit=crop&q=80"

// PlaceholderAddress is served when every address component is empty.
const PlaceholderAddress = "Address not available"

// GenericName is the display title for records with no usable title.
const GenericName = "Beautiful Property"

// Property is the normalized listing record. Every field is always
// populated; unresolvable upstream values degrade to the defaults above.
type Property struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Price   string `json:"price"` // formatted, e.g. "$1,250,000"
	Beds    int    `json:"beds"`
	Baths   int    `json:"baths"`
	Sqft    int    `json:"sqft"`
	Image   string `json:"image"`
	Status  Status `json:"status"`
}

// Filter carries optional query intent. Numeric fields are strings as they
// arrive from form inputs; Beds and Baths mean "at least".
type Filter struct {
	Location string
	MinPrice string
	MaxPrice string
	Beds     string
	Baths    string
}

// FormatPrice renders an integer amount as a dollar string with thousands
// grouping. Zero or negative amounts render as "$0".
func FormatPrice(amount int) string {
	if amount <= 0 {
		return "$0"
	}
	digits := strconv.Itoa(amount)
	var b strings.Builder
	b.WriteByte('$')
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// PriceAmount recovers the integer amount from a formatted price string.
// Anything unparseable yields 0.
func PriceAmount(formatted string) int {
	var digits strings.Builder
	for _, r := range formatted {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

// JoinAddress joins the non-empty components with ", ". If every component
// is empty it returns PlaceholderAddress.
func JoinAddress(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	if len(kept) == 0 {
		return PlaceholderAddress
	}
	return strings.Join(kept, ", ")
}

// StatusFrom maps an upstream status value. An active listing or an absent
// status field reads as for-sale; anything else is sold.
func StatusFrom(raw string) Status {
	if raw == "" || strings.EqualFold(raw, "Active") {
		return StatusForSale
	}
	return StatusSold
}

// EnsureUniqueIDs rewrites duplicate ids within one batch with a positional
// suffix so callers can key on them. Positions are stable across fetches of
// the same payload, which keeps repeated queries idempotent.
func EnsureUniqueIDs(props []Property) {
	seen := make(map[string]struct{}, len(props))
	for i := range props {
		id := props[i].ID
		if _, dup := seen[id]; dup {
			id = fmt.Sprintf("%s-%d", id, i+1)
			props[i].ID = id
		}
		seen[id] = struct{}{}
	}
}
