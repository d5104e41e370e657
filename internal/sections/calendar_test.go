package sections

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRunner(out string, err error) (CommandRunner, *[]string) {
	var argv []string
	return func(_ context.Context, name string, args ...string) ([]byte, error) {
		argv = append([]string{name}, args...)
		return []byte(out), err
	}, &argv
}

var gogCommand = []string{"gog", "calendar", "events", "--start", "today", "--end", "tomorrow", "--json"}

func TestCalendar_Fetch(t *testing.T) {
	out := `{"events": [
	  {"summary": "Standup", "start": {"dateTime": "2026-10-17T09:00:00Z"}, "end": {"dateTime": "2026-10-17T09:15:00Z"}},
	  {"summary": "Dentist", "location": "Main St", "start": {"dateTime": "2026-10-17T14:30:00Z"}, "end": {"dateTime": "2026-10-17T15:30:00Z"}},
	  {"summary": "Mom's birthday", "start": {"date": "2026-10-17"}, "end": {"date": "2026-10-18"}}
	]}`
	run, argv := fixedRunner(out, nil)
	cal := NewCalendar(CalendarConfig{Command: gogCommand, Runner: run, Location: time.UTC})

	res, err := cal.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, gogCommand, *argv)
	assert.True(t, res.Success)
	assert.Equal(t, NameCalendar, res.Name)
	assert.Equal(t, "📅 Calendar\n\n"+
		"• 09:00–09:15 **Standup**\n"+
		"• 14:30–15:30 **Dentist** @ Main St\n"+
		"• All day **Mom's birthday**", res.Content)
}

func TestCalendar_Fetch_BareArrayAndEmpty(t *testing.T) {
	run, _ := fixedRunner(`[]`, nil)
	res, err := NewCalendar(CalendarConfig{Command: gogCommand, Runner: run}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "📅 Calendar\n\nNo events today.", res.Content)

	run, _ = fixedRunner("", nil)
	res, err = NewCalendar(CalendarConfig{Command: gogCommand, Runner: run}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "📅 Calendar\n\nNo events today.", res.Content)
}

func TestCalendar_Fetch_CommandFails(t *testing.T) {
	run, _ := fixedRunner("", errors.New("gog: executable file not found in $PATH"))
	_, err := NewCalendar(CalendarConfig{Command: gogCommand, Runner: run}).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executable file not found")
}

func TestCalendar_Fetch_BadJSON(t *testing.T) {
	run, _ := fixedRunner("{not json", nil)
	_, err := NewCalendar(CalendarConfig{Command: gogCommand, Runner: run}).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode events")
}

func TestCalendar_Fetch_Unconfigured(t *testing.T) {
	_, err := NewCalendar(CalendarConfig{}).Fetch(context.Background())
	require.Error(t, err)

	var cal *Calendar
	_, err = cal.Fetch(context.Background())
	require.Error(t, err)
}
