package sections

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dusk-indust/digest/internal/digest"
)

// CommandRunner runs an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec, folding stderr into the error.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// CalendarEvent mirrors the Google Calendar event fields the CLI emits.
type CalendarEvent struct {
	Summary  string        `json:"summary"`
	Location string        `json:"location"`
	Start    eventDateTime `json:"start"`
	End      eventDateTime `json:"end"`
}

type eventDateTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
}

// AllDay reports whether the event spans whole days.
func (e CalendarEvent) AllDay() bool {
	return e.Start.DateTime == "" && e.Start.Date != ""
}

// Calendar lists today's events by shelling out to a calendar CLI.
type Calendar struct {
	command  []string
	run      CommandRunner
	location *time.Location
	logger   *zap.Logger
}

// CalendarConfig configures a Calendar producer.
type CalendarConfig struct {
	Command  []string       // argv, e.g. gog calendar events --start today --end tomorrow --json
	Runner   CommandRunner  // defaults to ExecRunner
	Location *time.Location // times are shown in this zone; defaults to time.Local
	Logger   *zap.Logger
}

// NewCalendar creates a Calendar producer.
func NewCalendar(cfg CalendarConfig) *Calendar {
	c := &Calendar{
		command:  cfg.Command,
		run:      cfg.Runner,
		location: cfg.Location,
		logger:   orNop(cfg.Logger),
	}
	if c.run == nil {
		c.run = ExecRunner
	}
	if c.location == nil {
		c.location = time.Local
	}
	return c
}

// Fetch runs the calendar command and formats its events. A command or
// decode failure is returned as an error.
func (c *Calendar) Fetch(ctx context.Context) (digest.SectionResult, error) {
	if c == nil || len(c.command) == 0 {
		return digest.SectionResult{}, errors.New("calendar: no command configured")
	}

	out, err := c.run(ctx, c.command[0], c.command[1:]...)
	if err != nil {
		return digest.SectionResult{}, fmt.Errorf("calendar: %w", err)
	}

	events, err := parseEvents(out)
	if err != nil {
		return digest.SectionResult{}, fmt.Errorf("calendar: %w", err)
	}
	c.logger.Debug("calendar events fetched", zap.Int("events", len(events)))

	return digest.SectionResult{
		Name:    NameCalendar,
		Content: formatCalendar(events, c.location),
		Success: true,
	}, nil
}

// parseEvents accepts either a bare JSON array of events or an object with
// an "events" (or "items") array.
func parseEvents(data []byte) ([]CalendarEvent, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var events []CalendarEvent
		if err := json.Unmarshal(data, &events); err != nil {
			return nil, fmt.Errorf("decode events: %w", err)
		}
		return events, nil
	}

	var wrapped struct {
		Events []CalendarEvent `json:"events"`
		Items  []CalendarEvent `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	if len(wrapped.Events) > 0 {
		return wrapped.Events, nil
	}
	return wrapped.Items, nil
}

func formatCalendar(events []CalendarEvent, loc *time.Location) string {
	if len(events) == 0 {
		return "📅 Calendar\n\nNo events today."
	}

	lines := []string{"📅 Calendar", ""}
	for _, ev := range events {
		title := strings.TrimSpace(ev.Summary)
		if title == "" {
			title = "(no title)"
		}
		line := fmt.Sprintf("• %s **%s**", eventTime(ev, loc), title)
		if where := strings.TrimSpace(ev.Location); where != "" {
			line += " @ " + where
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func eventTime(ev CalendarEvent, loc *time.Location) string {
	if ev.AllDay() {
		return "All day"
	}
	start, err := time.Parse(time.RFC3339, ev.Start.DateTime)
	if err != nil {
		return ev.Start.DateTime
	}
	span := start.In(loc).Format("15:04")
	if end, err := time.Parse(time.RFC3339, ev.End.DateTime); err == nil {
		span += "–" + end.In(loc).Format("15:04")
	}
	return span
}
