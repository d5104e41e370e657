// Package nws is a minimal client for the National Weather Service API
// (api.weather.gov): a points lookup followed by the gridpoint forecast.
package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public NWS API endpoint.
const DefaultBaseURL = "https://api.weather.gov"

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nws: %s: HTTP %d: %s", e.URL, e.StatusCode, e.Body)
}

// Period is one forecast period ("Today", "Tonight", ...).
type Period struct {
	Number           int       `json:"number"`
	Name             string    `json:"name"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	IsDaytime        bool      `json:"isDaytime"`
	Temperature      int       `json:"temperature"`
	TemperatureUnit  string    `json:"temperatureUnit"`
	WindSpeed        string    `json:"windSpeed"`
	WindDirection    string    `json:"windDirection"`
	ShortForecast    string    `json:"shortForecast"`
	DetailedForecast string    `json:"detailedForecast"`

	ProbabilityOfPrecipitation struct {
		Value *int `json:"value"`
	} `json:"probabilityOfPrecipitation"`
}

// PrecipitationChance returns the chance of precipitation in percent, or -1
// if the API did not report one.
func (p Period) PrecipitationChance() int {
	if p.ProbabilityOfPrecipitation.Value == nil {
		return -1
	}
	return *p.ProbabilityOfPrecipitation.Value
}

// Forecast is the decoded gridpoint forecast.
type Forecast struct {
	Location string
	Periods  []Period
}

type pointsResponse struct {
	Properties struct {
		Forecast         string `json:"forecast"`
		RelativeLocation struct {
			Properties struct {
				City  string `json:"city"`
				State string `json:"state"`
			} `json:"properties"`
		} `json:"relativeLocation"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []Period `json:"periods"`
	} `json:"properties"`
}

// Client talks to the NWS API.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithUserAgent sets the User-Agent header; NWS rejects requests without one.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new NWS client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   DefaultBaseURL,
		userAgent: "daily-digest",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Forecast resolves the coordinates to a forecast office grid and fetches
// its forecast periods.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*Forecast, error) {
	pointsURL := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, lat, lon)

	var points pointsResponse
	if err := c.getJSON(ctx, pointsURL, &points); err != nil {
		return nil, fmt.Errorf("nws: points lookup: %w", err)
	}
	if points.Properties.Forecast == "" {
		return nil, fmt.Errorf("nws: points lookup: no forecast URL for %.4f,%.4f", lat, lon)
	}

	var forecast forecastResponse
	if err := c.getJSON(ctx, points.Properties.Forecast, &forecast); err != nil {
		return nil, fmt.Errorf("nws: forecast: %w", err)
	}
	if len(forecast.Properties.Periods) == 0 {
		return nil, fmt.Errorf("nws: forecast: no periods returned")
	}

	loc := points.Properties.RelativeLocation.Properties
	out := &Forecast{Periods: forecast.Properties.Periods}
	if loc.City != "" {
		out.Location = loc.City
		if loc.State != "" {
			out.Location += ", " + loc.State
		}
	}
	return out, nil
}

// getJSON performs a GET and decodes the JSON body into result.
func (c *Client) getJSON(ctx context.Context, url string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{URL: url, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
