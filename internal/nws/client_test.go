package nws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastJSON = `{
  "properties": {
    "periods": [
      {"number": 1, "name": "Today", "isDaytime": true, "temperature": 68, "temperatureUnit": "F",
       "windSpeed": "5 to 10 mph", "windDirection": "NW", "shortForecast": "Partly Sunny",
       "detailedForecast": "Partly sunny, with a high near 68.",
       "probabilityOfPrecipitation": {"value": 20}},
      {"number": 2, "name": "Tonight", "isDaytime": false, "temperature": 51, "temperatureUnit": "F",
       "windSpeed": "5 mph", "windDirection": "W", "shortForecast": "Mostly Cloudy",
       "detailedForecast": "Mostly cloudy, with a low around 51.",
       "probabilityOfPrecipitation": {"value": null}}
    ]
  }
}`

func newTestServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/points/47.6062,-122.3321", func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "digest-test", r.Header.Get("User-Agent"))
		fmt.Fprintf(w, `{"properties": {"forecast": "%s/gridpoints/SEW/125,68/forecast",
			"relativeLocation": {"properties": {"city": "Seattle", "state": "WA"}}}}`, srv.URL)
	})
	mux.HandleFunc("/gridpoints/SEW/125,68/forecast", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(forecastJSON))
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestClient_Forecast(t *testing.T) {
	srv, calls := newTestServer(t)
	c := NewClient(WithBaseURL(srv.URL), WithUserAgent("digest-test"))

	fc, err := c.Forecast(context.Background(), 47.6062, -122.3321)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
	assert.Equal(t, "Seattle, WA", fc.Location)
	require.Len(t, fc.Periods, 2)
	assert.Equal(t, "Today", fc.Periods[0].Name)
	assert.Equal(t, 68, fc.Periods[0].Temperature)
	assert.Equal(t, 20, fc.Periods[0].PrecipitationChance())
	assert.Equal(t, -1, fc.Periods[1].PrecipitationChance())
}

func TestClient_Forecast_PointsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Data Unavailable For Requested Point", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Forecast(context.Background(), 10, 10)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Contains(t, err.Error(), "points lookup")
}

func TestClient_Forecast_MissingForecastURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"properties": {}}`))
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).Forecast(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no forecast URL")
}

func TestClient_Forecast_NoPeriods(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/forecast" {
			w.Write([]byte(`{"properties": {"periods": []}}`))
			return
		}
		fmt.Fprintf(w, `{"properties": {"forecast": "%s/forecast"}}`, srv.URL)
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).Forecast(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no periods")
}
