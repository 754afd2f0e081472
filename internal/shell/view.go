package shell

import (
	"maps"
	"sync"
)

// View is a headless view. It records the activation and navigation
// callbacks regions deliver to it.
type View struct {
	mu     sync.RWMutex
	name   string
	title  string
	active bool
	params map[string]string
}

// NewView creates an inactive view.
func NewView(name, title string) *View {
	return &View{name: name, title: title}
}

// Name returns the view name.
func (v *View) Name() string { return v.name }

// Title returns the view title.
func (v *View) Title() string { return v.title }

// SetActive implements region.ActiveAware.
func (v *View) SetActive(active bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active = active
}

// IsActive reports the last activation state delivered to the view.
func (v *View) IsActive() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.active
}

// OnNavigatedTo implements region.NavigationAware.
func (v *View) OnNavigatedTo(params map[string]string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.params = maps.Clone(params)
}

// Parameters returns the parameters of the last navigation to the view.
func (v *View) Parameters() map[string]string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return maps.Clone(v.params)
}
