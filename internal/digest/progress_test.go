package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		event ProgressEvent
		want  string
	}{
		{ProgressEvent{Section: "Weather", Status: ProgressPending}, "Weather: queued"},
		{ProgressEvent{Section: "Weather", Status: ProgressWorking}, "Weather: fetching"},
		{ProgressEvent{Section: "Weather", Status: ProgressComplete}, "Weather: ready"},
		{ProgressEvent{Section: "AI News", Status: ProgressDegraded}, "AI News: ready with fallback text"},
		{ProgressEvent{Section: "Weather", Status: ProgressFailed, Message: "timeout"}, "Weather: unavailable (timeout)"},
		{ProgressEvent{Section: "Weather", Status: "bogus"}, "Weather: bogus"},
	}

	for _, tt := range tests {
		t.Run(string(tt.event.Status), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatProgress(tt.event))
		})
	}
}

func TestOutcomeStatus(t *testing.T) {
	assert.Equal(t, ProgressComplete, Outcome{Result: SectionResult{Success: true}}.Status())
	assert.Equal(t, ProgressDegraded, Outcome{Result: SectionResult{Success: false}}.Status())
	assert.Equal(t, ProgressFailed, Outcome{Err: assert.AnError}.Status())
}
