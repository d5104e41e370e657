package digest

import "fmt"

// ProgressEvent is emitted while producers run.
type ProgressEvent struct {
	Section string
	Status  ProgressStatus
	Message string
}

// ProgressStatus is the state of a section within a run.
type ProgressStatus string

const (
	ProgressPending  ProgressStatus = "pending"
	ProgressWorking  ProgressStatus = "working"
	ProgressComplete ProgressStatus = "complete"
	ProgressDegraded ProgressStatus = "degraded"
	ProgressFailed   ProgressStatus = "failed"
)

var progressLabels = map[ProgressStatus]string{
	ProgressPending:  "queued",
	ProgressWorking:  "fetching",
	ProgressComplete: "ready",
	ProgressDegraded: "ready with fallback text",
	ProgressFailed:   "unavailable",
}

// FormatProgress renders an event as "<section>: <state>", appending the
// message when there is one.
func FormatProgress(event ProgressEvent) string {
	label, ok := progressLabels[event.Status]
	if !ok {
		label = string(event.Status)
	}
	if event.Message != "" {
		return fmt.Sprintf("%s: %s (%s)", event.Section, label, event.Message)
	}
	return event.Section + ": " + label
}

// Status reports the settled state of an outcome: failed, degraded or complete.
func (o Outcome) Status() ProgressStatus {
	switch {
	case o.Failed():
		return ProgressFailed
	case !o.Result.Success:
		return ProgressDegraded
	default:
		return ProgressComplete
	}
}
