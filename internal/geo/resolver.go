package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrLookupFailed covers transport failures and non-2xx responses from
	// the geocoding service.
	ErrLookupFailed = errors.New("location lookup failed")

	// ErrNotFound means the geocoding service answered with an empty result
	// set. That is a valid response, not a transport failure.
	ErrNotFound = errors.New("location not found")
)

// Location is a successfully resolved place. Region is the administrative
// region (state, province) reported by the geocoder, empty when unknown.
type Location struct {
	Latitude  float64
	Longitude float64
	Region    string
}

// Query is a parsed free-text location input. Input of the form
// "City, Region" carries a region hint used to disambiguate between
// same-named places; bare "City" does not.
type Query struct {
	City   string
	Region string // upper-cased hint, empty when absent
}

// ParseQuery splits raw input on the first comma and trims both parts.
func ParseQuery(raw string) Query {
	city, region, found := strings.Cut(raw, ",")
	q := Query{City: strings.TrimSpace(city)}
	if found {
		q.Region = strings.ToUpper(strings.TrimSpace(region))
	}
	return q
}

// Resolver resolves free-text place descriptions to coordinates using the
// Open-Meteo geocoding API.
type Resolver struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewResolver(client *http.Client, baseURL string) *Resolver {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo-geocoding",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Resolver{
		baseURL: baseURL,
		client:  client,
		circuit: cb,
	}
}

// Resolve geocodes the query's city and picks the best match. With a region
// hint, the first candidate whose admin1 matches it (case-insensitively)
// wins; without a hint, or when nothing matches, the first candidate is a
// deliberate best-effort default.
func (r *Resolver) Resolve(ctx context.Context, q Query) (Location, error) {
	values := url.Values{}
	values.Set("name", q.City)
	values.Set("count", "10")

	u := fmt.Sprintf("%s?%s", r.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	result, err := r.circuit.Execute(func() (interface{}, error) {
		resp, execErr := r.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Admin1    string  `json:"admin1"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	if len(payload.Results) == 0 {
		return Location{}, fmt.Errorf("%w: %q", ErrNotFound, q.City)
	}

	match := payload.Results[0]
	if q.Region != "" {
		for _, candidate := range payload.Results {
			if strings.ToUpper(candidate.Admin1) == q.Region {
				match = candidate
				break
			}
		}
	}

	if match.Latitude < -90 || match.Latitude > 90 || match.Longitude < -180 || match.Longitude > 180 {
		return Location{}, fmt.Errorf("%w: coordinates out of range", ErrLookupFailed)
	}

	return Location{
		Latitude:  match.Latitude,
		Longitude: match.Longitude,
		Region:    match.Admin1,
	}, nil
}
