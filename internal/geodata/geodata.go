// Package geodata supplies per-province region sets. The quiz core only
// consumes area names; the full GeoJSON geometry is passed through untouched
// for the map frontend.
package geodata

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider fetches the ordered list of area names for a province. A fetch
// failure is retryable by the caller; providers do not retry on their own.
type Provider interface {
	AreaNames(ctx context.Context, province string) ([]string, error)
}

// featureCollection is the minimal slice of GeoJSON this service reads.
type featureCollection struct {
	Features []struct {
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"features"`
}

// areaNames extracts feature names from a GeoJSON document. Features without
// a name get the "Unknown" placeholder, matching the map frontend.
func areaNames(doc []byte) ([]string, error) {
	var fc featureCollection
	if err := json.Unmarshal(doc, &fc); err != nil {
		return nil, fmt.Errorf("parsing geojson: %w", err)
	}
	names := make([]string, len(fc.Features))
	for i, f := range fc.Features {
		if f.Properties.Name == "" {
			names[i] = "Unknown"
			continue
		}
		names[i] = f.Properties.Name
	}
	return names, nil
}

// provinces is the fixed set of provinces with playable region data.
var provinces = []string{
	"Aceh",
	"Bali",
	"Banten",
	"Bengkulu",
	"Daerah Istimewa Yogyakarta",
	"DKI Jakarta",
	"Jambi",
	"Jawa Barat",
	"Jawa Tengah",
	"Jawa Timur",
	"Kepulauan Bangka Belitung",
	"Kepulauan Riau",
	"Lampung",
	"Nusa Tenggara Barat",
	"Nusa Tenggara Timur",
	"Riau",
	"Sumatera Barat",
	"Sumatera Selatan",
	"Sumatera Utara",
}

// Provinces returns the playable province names.
func Provinces() []string {
	return append([]string(nil), provinces...)
}

// KnownProvince reports whether name is a playable province.
func KnownProvince(name string) bool {
	for _, p := range provinces {
		if p == name {
			return true
		}
	}
	return false
}
