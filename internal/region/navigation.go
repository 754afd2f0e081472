package region

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"bootkit/internal/container"
	"bootkit/internal/events"
)

var (
	// ErrCannotGoBack is returned by GoBack with an empty back stack.
	ErrCannotGoBack = errors.New("navigation journal has no back entry")
	// ErrCannotGoForward is returned by GoForward with an empty forward stack.
	ErrCannotGoForward = errors.New("navigation journal has no forward entry")
)

// NavigationAware is implemented by views that want to know they were
// navigated to.
type NavigationAware interface {
	OnNavigatedTo(params map[string]string)
}

// JournalEntry records one navigation.
type JournalEntry struct {
	ID         uuid.UUID
	Target     string
	Parameters map[string]string
	Timestamp  time.Time
}

// JournalEntryImplementation is the default registration for
// container.KeyNavigationJournalEntry. Every resolve yields a new entry id.
var JournalEntryImplementation = container.Impl("RegionNavigationJournalEntry", func(container.Resolver) (any, error) {
	return &JournalEntry{ID: uuid.New()}, nil
})

// Journal keeps back and forward navigation stacks for one region.
type Journal struct {
	mu      sync.Mutex
	back    []*JournalEntry
	forward []*JournalEntry
	current *JournalEntry
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// JournalImplementation is the default registration for
// container.KeyNavigationJournal.
var JournalImplementation = container.Impl("RegionNavigationJournal", func(container.Resolver) (any, error) {
	return NewJournal(), nil
})

// RecordNavigation makes entry current. The previous entry moves to the back
// stack and the forward stack is cleared.
func (j *Journal) RecordNavigation(entry *JournalEntry) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.current != nil {
		j.back = append(j.back, j.current)
	}
	j.current = entry
	j.forward = nil
}

// Current returns the current entry, or nil.
func (j *Journal) Current() *JournalEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.current
}

// CanGoBack reports whether the back stack is non-empty.
func (j *Journal) CanGoBack() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.back) > 0
}

// CanGoForward reports whether the forward stack is non-empty.
func (j *Journal) CanGoForward() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.forward) > 0
}

// stepBack pops the back stack, pushing the current entry forward.
func (j *Journal) stepBack() (*JournalEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if len(j.back) == 0 {
		return nil, ErrCannotGoBack
	}
	entry := j.back[len(j.back)-1]
	j.back = j.back[:len(j.back)-1]
	if j.current != nil {
		j.forward = append(j.forward, j.current)
	}
	j.current = entry
	return entry, nil
}

func (j *Journal) stepForward() (*JournalEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if len(j.forward) == 0 {
		return nil, ErrCannotGoForward
	}
	entry := j.forward[len(j.forward)-1]
	j.forward = j.forward[:len(j.forward)-1]
	if j.current != nil {
		j.back = append(j.back, j.current)
	}
	j.current = entry
	return entry, nil
}

// Clear empties the journal.
func (j *Journal) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.back, j.forward, j.current = nil, nil, nil
}

// ContentLoader finds or builds the view a navigation request targets.
type ContentLoader struct {
	views    *ViewRegistry
	resolver container.Resolver
}

// NewContentLoader creates a loader. resolver may be nil.
func NewContentLoader(views *ViewRegistry, resolver container.Resolver) *ContentLoader {
	return &ContentLoader{views: views, resolver: resolver}
}

// ContentLoaderImplementation is the default registration for
// container.KeyNavigationContentLoader.
var ContentLoaderImplementation = container.Impl("RegionNavigationContentLoader", func(r container.Resolver) (any, error) {
	views, err := container.ResolveAs[*ViewRegistry](r, container.KeyRegionViewRegistry)
	if err != nil {
		return nil, err
	}
	c, err := container.ResolveAs[*container.Container](r, container.KeyContainer)
	if err != nil {
		return nil, err
	}
	return NewContentLoader(views, c), nil
})

// LoadContent returns the view named target. A view already in the region
// is reused; otherwise it is built from the container (when target is a
// registered key) or from the view registry.
func (l *ContentLoader) LoadContent(r *Region, target string) (any, error) {
	if view, ok := r.View(target); ok {
		return view, nil
	}

	if l.resolver != nil && l.resolver.HasRegistration(container.Key(target)) {
		return l.resolver.Resolve(container.Key(target))
	}

	if l.views != nil {
		if factory, ok := l.views.Factory(target); ok {
			return factory()
		}
	}
	return nil, fmt.Errorf("no view found for navigation target %s", target)
}

// NavigationService navigates one region between views.
type NavigationService struct {
	mu       sync.Mutex
	region   *Region
	loader   *ContentLoader
	journal  *Journal
	newEntry func() (*JournalEntry, error)
	events   *events.Aggregator
}

// NewNavigationService creates a service. agg may be nil.
func NewNavigationService(loader *ContentLoader, journal *Journal, agg *events.Aggregator) *NavigationService {
	return &NavigationService{
		loader:  loader,
		journal: journal,
		events:  agg,
		newEntry: func() (*JournalEntry, error) {
			return &JournalEntry{ID: uuid.New()}, nil
		},
	}
}

// NavigationServiceImplementation is the default registration for
// container.KeyNavigationService. Each region gets its own service and
// journal; journal entries are resolved from the container.
var NavigationServiceImplementation = container.Impl("RegionNavigationService", func(r container.Resolver) (any, error) {
	c, err := container.ResolveAs[*container.Container](r, container.KeyContainer)
	if err != nil {
		return nil, err
	}
	loader, err := container.ResolveAs[*ContentLoader](r, container.KeyNavigationContentLoader)
	if err != nil {
		return nil, err
	}
	journal, err := container.ResolveAs[*Journal](r, container.KeyNavigationJournal)
	if err != nil {
		return nil, err
	}

	var agg *events.Aggregator
	if r.HasRegistration(container.KeyEventAggregator) {
		if agg, err = container.ResolveAs[*events.Aggregator](r, container.KeyEventAggregator); err != nil {
			return nil, err
		}
	}

	nav := NewNavigationService(loader, journal, agg)
	nav.newEntry = func() (*JournalEntry, error) {
		return container.ResolveAs[*JournalEntry](c, container.KeyNavigationJournalEntry)
	}
	return nav, nil
})

func (n *NavigationService) setRegion(r *Region) {
	n.mu.Lock()
	n.region = r
	n.mu.Unlock()
}

// Region returns the region being navigated.
func (n *NavigationService) Region() *Region {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.region
}

// Journal returns the navigation journal.
func (n *NavigationService) Journal() *Journal {
	return n.journal
}

// RequestNavigate makes target the active view of the region and records
// the navigation in the journal.
func (n *NavigationService) RequestNavigate(target string, params map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.navigateLocked(target, params); err != nil {
		return err
	}

	entry, err := n.newEntry()
	if err != nil {
		return err
	}
	entry.Target = target
	entry.Parameters = params
	entry.Timestamp = time.Now()
	n.journal.RecordNavigation(entry)
	return nil
}

// GoBack navigates to the previous journal entry.
func (n *NavigationService) GoBack() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	entry, err := n.journal.stepBack()
	if err != nil {
		return err
	}
	return n.navigateLocked(entry.Target, entry.Parameters)
}

// GoForward navigates to the next journal entry.
func (n *NavigationService) GoForward() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	entry, err := n.journal.stepForward()
	if err != nil {
		return err
	}
	return n.navigateLocked(entry.Target, entry.Parameters)
}

func (n *NavigationService) navigateLocked(target string, params map[string]string) error {
	r := n.region
	if r == nil {
		return fmt.Errorf("navigation service is not attached to a region")
	}

	err := n.show(r, target, params)
	if err != nil {
		n.publish(events.TopicNavigationFailed, events.EventData{Region: r.Name(), Target: target, Error: err.Error()})
		return err
	}
	n.publish(events.TopicNavigated, events.EventData{Region: r.Name(), Target: target, Arguments: arguments(params)})
	return nil
}

func arguments(params map[string]string) map[string]interface{} {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

func (n *NavigationService) show(r *Region, target string, params map[string]string) error {
	view, err := n.loader.LoadContent(r, target)
	if err != nil {
		return err
	}
	if _, exists := r.View(target); !exists {
		if err := r.Add(target, view); err != nil {
			return err
		}
	}
	if err := r.Activate(target); err != nil {
		return err
	}
	if aware, ok := view.(NavigationAware); ok {
		aware.OnNavigatedTo(params)
	}
	return nil
}

func (n *NavigationService) publish(reason events.EventReason, data events.EventData) {
	if n.events != nil {
		n.events.Publish(reason, data)
	}
}
