// README: Google Maps geocoding wrapper used by the travel-method heuristic.
package geo

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"
)

// PlaceInfo is the subset of a geocoding result the planner needs.
type PlaceInfo struct {
	Name    string
	Country string
	Lat     float64
	Lng     float64
}

// Locator resolves free-text place names to coordinates and countries.
type Locator struct {
	client *maps.Client
}

// NewLocator creates a Locator with the given API Key.
func NewLocator(apiKey string) (*Locator, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Locator{client: client}, nil
}

// Locate geocodes a place name.
func (l *Locator) Locate(ctx context.Context, place string) (PlaceInfo, error) {
	results, err := l.client.Geocode(ctx, &maps.GeocodingRequest{Address: place})
	if err != nil {
		return PlaceInfo{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(results) == 0 {
		return PlaceInfo{}, errors.New("no geocoding result")
	}

	top := results[0]
	info := PlaceInfo{
		Name: place,
		Lat:  top.Geometry.Location.Lat,
		Lng:  top.Geometry.Location.Lng,
	}
	for _, comp := range top.AddressComponents {
		for _, t := range comp.Types {
			if t == "country" {
				info.Country = comp.LongName
			}
		}
	}
	return info, nil
}
