// Package sections implements the digest's five section producers. Each
// producer owns its remote calls and timeouts; the digest package only sees
// the digest.Producer contract.
package sections

import (
	"time"

	"go.uber.org/zap"

	"github.com/dusk-indust/digest/internal/digest"
)

// Display names, used both as section identities and in failure placeholders.
const (
	NameCalendar      = "Calendar"
	NameWeather       = "Weather"
	NameAINews        = "AI News"
	NameTalkingPieces = "Talking Pieces"
	NameHistory       = "Today in History"
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// Set holds the five producers in their fixed digest order.
type Set struct {
	Calendar      *Calendar
	Weather       *Weather
	AINews        *Search
	TalkingPieces *Search
	History       *History
}

// Producers returns the producers in digest order: Calendar, Weather,
// AI News, Talking Pieces, Today in History.
func (s Set) Producers() []digest.NamedProducer {
	return []digest.NamedProducer{
		{Name: NameCalendar, Fetch: s.Calendar.Fetch},
		{Name: NameWeather, Fetch: s.Weather.Fetch},
		{Name: NameAINews, Fetch: s.AINews.Fetch},
		{Name: NameTalkingPieces, Fetch: s.TalkingPieces.Fetch},
		{Name: NameHistory, Fetch: s.History.Fetch},
	}
}

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// promptDate formats a date the way the prompts spell it out.
func promptDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
