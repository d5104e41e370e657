package sections

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dusk-indust/digest/internal/digest"
	"github.com/dusk-indust/digest/internal/llm"
	"github.com/dusk-indust/digest/internal/nws"
)

// Forecaster fetches a forecast for coordinates. *nws.Client satisfies it.
type Forecaster interface {
	Forecast(ctx context.Context, lat, lon float64) (*nws.Forecast, error)
}

const clothingSystemPrompt = "You give short, practical clothing advice based on a weather forecast. " +
	"Answer in one or two plain sentences without markdown."

// Weather reports today's forecast and what to wear.
type Weather struct {
	forecaster Forecaster
	advisor    llm.Completer
	lat, lon   float64
	logger     *zap.Logger
}

// WeatherConfig configures a Weather producer. Advisor may be nil, in which
// case no clothing advice is added.
type WeatherConfig struct {
	Forecaster Forecaster
	Advisor    llm.Completer
	Latitude   float64
	Longitude  float64
	Logger     *zap.Logger
}

// NewWeather creates a Weather producer.
func NewWeather(cfg WeatherConfig) *Weather {
	return &Weather{
		forecaster: cfg.Forecaster,
		advisor:    cfg.Advisor,
		lat:        cfg.Latitude,
		lon:        cfg.Longitude,
		logger:     orNop(cfg.Logger),
	}
}

// Fetch returns the forecast for the next two periods. A forecast failure is
// returned as an error; an advice failure only drops the advice line.
func (w *Weather) Fetch(ctx context.Context) (digest.SectionResult, error) {
	if w == nil || w.forecaster == nil {
		return digest.SectionResult{}, errors.New("weather: no forecaster configured")
	}

	fc, err := w.forecaster.Forecast(ctx, w.lat, w.lon)
	if err != nil {
		return digest.SectionResult{}, fmt.Errorf("weather: %w", err)
	}

	periods := fc.Periods
	if len(periods) > 2 {
		periods = periods[:2]
	}

	heading := "🌤️ Weather"
	if fc.Location != "" {
		heading += " · " + fc.Location
	}
	lines := []string{heading, ""}
	for _, p := range periods {
		lines = append(lines, formatPeriod(p))
	}

	if advice := w.advice(ctx, periods); advice != "" {
		lines = append(lines, "", "👕 "+advice)
	}

	return digest.SectionResult{
		Name:    NameWeather,
		Content: strings.Join(lines, "\n"),
		Success: true,
	}, nil
}

func (w *Weather) advice(ctx context.Context, periods []nws.Period) string {
	if w.advisor == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Here is today's forecast:\n")
	for _, p := range periods {
		fmt.Fprintf(&sb, "- %s: %s\n", p.Name, p.DetailedForecast)
	}
	sb.WriteString("What should I wear today?")

	advice, err := w.advisor.Complete(ctx, clothingSystemPrompt, sb.String())
	if err != nil {
		w.logger.Warn("clothing advice unavailable", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(advice)
}

func formatPeriod(p nws.Period) string {
	line := fmt.Sprintf("**%s**: %d°%s, %s", p.Name, p.Temperature, p.TemperatureUnit, p.ShortForecast)
	if p.WindSpeed != "" {
		wind := strings.TrimSpace(p.WindDirection + " " + p.WindSpeed)
		line += ", wind " + wind
	}
	if chance := p.PrecipitationChance(); chance > 0 {
		line += fmt.Sprintf(", %d%% chance of precipitation", chance)
	}
	return line
}
