package logging

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Category classifies a facade log message.
type Category int

const (
	CategoryDebug Category = iota
	CategoryInfo
	CategoryWarn
	CategoryException
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryDebug:
		return "Debug"
	case CategoryInfo:
		return "Info"
	case CategoryWarn:
		return "Warn"
	case CategoryException:
		return "Exception"
	default:
		return "Unknown"
	}
}

// Level maps a category onto the package log level.
func (c Category) Level() LogLevel {
	switch c {
	case CategoryInfo:
		return LevelInfo
	case CategoryWarn:
		return LevelWarn
	case CategoryException:
		return LevelError
	default:
		return LevelDebug
	}
}

// Priority is the urgency attached to a facade log message.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "None"
	}
}

// Facade is the logging contract handed to the bootstrapper and to every
// service resolved from the container.
type Facade interface {
	Log(message string, category Category, priority Priority)
}

// SlogFacade forwards facade messages to a slog.Logger. The subsystem and
// priority are attached as attributes.
type SlogFacade struct {
	logger    *slog.Logger
	subsystem string
}

// NewSlogFacade creates a facade writing to logger. A nil logger means the
// package logger.
func NewSlogFacade(logger *slog.Logger, subsystem string) *SlogFacade {
	return &SlogFacade{
		logger:    logger,
		subsystem: subsystem,
	}
}

// Log implements Facade.
func (f *SlogFacade) Log(message string, category Category, priority Priority) {
	logger := f.logger
	if logger == nil {
		logger = Logger()
	}

	level := category.Level().SlogLevel()
	if !logger.Enabled(context.Background(), level) {
		return
	}

	logger.LogAttrs(context.Background(), level, message,
		slog.String("subsystem", f.subsystem),
		slog.String("category", category.String()),
		slog.String("priority", priority.String()),
	)
}

// FacadeEntry is one message captured by a Recorder.
type FacadeEntry struct {
	Timestamp time.Time
	Message   string
	Category  Category
	Priority  Priority
}

// Recorder is an in-memory Facade. It optionally forwards to another facade
// so it can sit in front of the real sink.
type Recorder struct {
	mu      sync.Mutex
	entries []FacadeEntry
	next    Facade
}

// NewRecorder creates a recorder that forwards to next when next is not nil.
func NewRecorder(next Facade) *Recorder {
	return &Recorder{next: next}
}

// Log implements Facade.
func (r *Recorder) Log(message string, category Category, priority Priority) {
	r.mu.Lock()
	r.entries = append(r.entries, FacadeEntry{
		Timestamp: time.Now(),
		Message:   message,
		Category:  category,
		Priority:  priority,
	})
	next := r.next
	r.mu.Unlock()

	if next != nil {
		next.Log(message, category, priority)
	}
}

// Entries returns a copy of the recorded entries in arrival order.
func (r *Recorder) Entries() []FacadeEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]FacadeEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the recorded messages in arrival order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Message)
	}
	return out
}
