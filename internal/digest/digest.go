// Package digest composes the daily digest: it runs every section producer
// concurrently, tolerates individual failures, renders the combined document
// into Telegram HTML and delivers it in length-bounded chunks.
package digest

import (
	"context"
	"strings"
)

// BlockSeparator joins consecutive blocks of a composed document.
const BlockSeparator = "\n\n"

// SectionResult is the outcome a producer reports when it completes normally.
type SectionResult struct {
	Name    string // display name, e.g. "Weather"
	Content string // lightweight markup (**bold**, [label](url))
	Success bool   // false when the producer substituted its own failure text
}

// Producer fetches one section of the digest. A returned error means the
// producer failed outright and produced no SectionResult.
type Producer func(ctx context.Context) (SectionResult, error)

// NamedProducer pairs a producer with the display name used for its
// placeholder when it fails outright.
type NamedProducer struct {
	Name  string
	Fetch Producer
}

// Outcome is the settled state of one producer.
type Outcome struct {
	Name   string
	Result SectionResult
	Err    error // non-nil if the producer failed outright
}

// Failed reports whether the producer failed outright.
func (o Outcome) Failed() bool { return o.Err != nil }

// Document is the composed digest: one block per producer in producer order.
type Document struct {
	Blocks   []string
	Outcomes []Outcome
}

// String joins the blocks with a blank line.
func (d Document) String() string {
	return strings.Join(d.Blocks, BlockSeparator)
}

// Placeholder returns the block substituted for a producer that failed outright.
func Placeholder(name string) string {
	return "⚠️ " + name + " unavailable today"
}

// Sink transmits one rendered chunk to the recipient.
type Sink interface {
	Send(ctx context.Context, chunk string) error
}
