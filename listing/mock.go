package listing

import (
	"strconv"
	"strings"
)

// mockCatalog is the fixed fallback inventory. It backs every failure path
// so a page never renders an empty grid.
var mockCatalog = []Property{
	{
		ID:      "1",
		Name:    "Luxury Lakefront Estate",
		Address: "1234 Lakeshore Dr, Windermere, FL 34786",
		Price:   "$2,850,000",
		Beds:    6,
		Baths:   5,
		Sqft:    7200,
		Image:   "https://images.unsplash.com/photo-1613490493576-7fde63acd811?w=800&auto=format&fit=crop&q=80",
		Status:  StatusForSale,
	},
	{
		ID:      "2",
		Name:    "Modern Downtown Penthouse",
		Address: "456 City Center Ave, Orlando, FL 32801",
		Price:   "$1,250,000",
		Beds:    3,
		Baths:   3,
		Sqft:    3200,
		Image:   "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=800&auto=format&fit=crop&q=80",
		Status:  StatusForSale,
	},
	{
		ID:      "3",
		Name:    "Winter Park Charmer",
		Address: "789 Park Ave, Winter Park, FL 32789",
		Price:   "$875,000",
		Beds:    4,
		Baths:   3,
		Sqft:    2800,
		Image:   "https://images.unsplash.com/photo-1600585154340-be6161a56a0c?w=800&auto=format&fit=crop&q=80",
		Status:  StatusForSale,
	},
	{
		ID:      "4",
		Name:    "Lake Nona Smart Home",
		Address: "321 Innovation Way, Orlando, FL 32827",
		Price:   "$985,000",
		Beds:    5,
		Baths:   4,
		Sqft:    4100,
		Image:   "https://images.unsplash.com/photo-1605276374104-dee2a0ed3cd6?w=800&auto=format&fit=crop&q=80",
		Status:  StatusForSale,
	},
	{
		ID:      "5",
		Name:    "Downtown Orlando Loft",
		Address: "555 Central Blvd, Orlando, FL 32801",
		Price:   "$650,000",
		Beds:    2,
		Baths:   2,
		Sqft:    1800,
		Image:   "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800&auto=format&fit=crop&q=80",
		Status:  StatusForSale,
	},
	{
		ID:      "6",
		Name:    "Dr. Phillips Estate",
		Address: "8887 Bay Vista Blvd, Orlando, FL 32836",
		Price:   "$1,450,000",
		Beds:    5,
		Baths:   4,
		Sqft:    5200,
		Image:   "https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?w=800&auto=format&fit=crop&q=80",
		Status:  StatusForSale,
	},
}

// MockCatalog returns a fresh copy of the fallback inventory.
func MockCatalog() []Property {
	out := make([]Property, len(mockCatalog))
	copy(out, mockCatalog)
	return out
}

// FilterProperties applies a Filter locally. All supplied fields are ANDed;
// omitted fields impose no constraint. Used only against the mock catalog;
// live queries delegate filtering to the upstream provider.
func FilterProperties(props []Property, f *Filter) []Property {
	if f == nil {
		return props
	}
	out := make([]Property, 0, len(props))
	loc := strings.ToLower(strings.TrimSpace(f.Location))
	for _, p := range props {
		if loc != "" &&
			!strings.Contains(strings.ToLower(p.Address), loc) &&
			!strings.Contains(strings.ToLower(p.Name), loc) {
			continue
		}
		price := PriceAmount(p.Price)
		if min, ok := parseBound(f.MinPrice); ok && price < min {
			continue
		}
		if max, ok := parseBound(f.MaxPrice); ok && price > max {
			continue
		}
		if beds, ok := parseBound(f.Beds); ok && p.Beds < beds {
			continue
		}
		if baths, ok := parseBound(f.Baths); ok && p.Baths < baths {
			continue
		}
		out = append(out, p)
	}
	return out
}

func parseBound(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
