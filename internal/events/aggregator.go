package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"bootkit/pkg/logging"
)

// Handler receives published events.
type Handler func(Event)

// Token identifies a subscription.
type Token uuid.UUID

type subscription struct {
	token   Token
	handler Handler
}

// Aggregator is the in-process publish/subscribe hub shared by modules and
// regions. Delivery is synchronous and in subscription order.
type Aggregator struct {
	mu        sync.RWMutex
	subs      map[EventReason][]subscription
	templates *MessageTemplateEngine
	now       func() time.Time
}

// NewAggregator creates an aggregator with the default message templates.
func NewAggregator() *Aggregator {
	return &Aggregator{
		subs:      make(map[EventReason][]subscription),
		templates: NewMessageTemplateEngine(),
		now:       time.Now,
	}
}

// Subscribe registers handler for reason and returns a token for
// Unsubscribe.
func (a *Aggregator) Subscribe(reason EventReason, handler Handler) Token {
	token := Token(uuid.New())

	a.mu.Lock()
	a.subs[reason] = append(a.subs[reason], subscription{token: token, handler: handler})
	a.mu.Unlock()

	return token
}

// Unsubscribe removes a subscription. It reports whether the token was
// known.
func (a *Aggregator) Unsubscribe(token Token) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for reason, subs := range a.subs {
		for i, s := range subs {
			if s.token == token {
				a.subs[reason] = append(subs[:i:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Publish renders the message for reason, then delivers the event to every
// subscriber of reason. It returns the delivered event.
func (a *Aggregator) Publish(reason EventReason, data EventData) Event {
	evt := Event{
		ID:        uuid.New(),
		Reason:    reason,
		Type:      getEventType(reason),
		Message:   a.templates.Render(reason, data),
		Data:      data,
		Timestamp: a.now(),
	}

	a.mu.RLock()
	subs := append([]subscription(nil), a.subs[reason]...)
	a.mu.RUnlock()

	logging.Debug("Events", "Publishing %s (%s) to %d subscriber(s): %s", reason, evt.Type, len(subs), evt.Message)

	for _, s := range subs {
		s.handler(evt)
	}
	return evt
}

// Templates returns the engine used to render event messages.
func (a *Aggregator) Templates() *MessageTemplateEngine {
	return a.templates
}
