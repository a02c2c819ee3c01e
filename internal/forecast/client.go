package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrFetchFailed covers transport failures and non-2xx responses.
	ErrFetchFailed = errors.New("forecast fetch failed")

	// ErrMalformedResponse covers responses missing the hourly block, its
	// time column, or with misaligned value columns.
	ErrMalformedResponse = errors.New("malformed forecast response")
)

// FetchDays is the span requested from the provider regardless of the
// user-facing duration choice, so one fetch covers every time-of-day block
// for both supported durations.
const FetchDays = 3

// Client fetches hourly forecasts from the Open-Meteo forecast API.
// Units are fixed to the imperial system the formatter renders.
type Client struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewClient(client *http.Client, baseURL string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo-forecast",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL: baseURL,
		client:  client,
		circuit: cb,
	}
}

// Fetch issues one hourly-forecast request for the given coordinates and
// returns the columnar dataset. Failed calls are not retried.
func (c *Client) Fetch(ctx context.Context, latitude, longitude float64, days int) (*HourlyDataset, error) {
	if days <= 0 {
		days = FetchDays
	}

	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	values.Set("hourly", "temperature_2m,apparent_temperature,precipitation_probability,precipitation,rain,wind_speed_10m,relative_humidity_2m,dew_point_2m,wind_gusts_10m")
	values.Set("temperature_unit", "fahrenheit")
	values.Set("wind_speed_unit", "mph")
	values.Set("precipitation_unit", "inch")
	values.Set("timezone", "auto")
	values.Set("forecast_days", strconv.Itoa(days))

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
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
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	var payload struct {
		Hourly *HourlyDataset `json:"hourly"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if payload.Hourly == nil || len(payload.Hourly.Time) == 0 {
		return nil, fmt.Errorf("%w: missing hourly time series", ErrMalformedResponse)
	}
	if !payload.Hourly.Aligned() {
		return nil, fmt.Errorf("%w: hourly columns not aligned with time column", ErrMalformedResponse)
	}

	return payload.Hourly, nil
}
