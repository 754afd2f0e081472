package region

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrViewExists is returned when a view name is added to a region twice.
	ErrViewExists = errors.New("view already exists in region")
	// ErrViewNotFound is returned for operations on a view the region does
	// not hold.
	ErrViewNotFound = errors.New("view not found in region")
	// ErrAlwaysActive is returned when deactivating a view in a region whose
	// views are always active.
	ErrAlwaysActive = errors.New("views in this region cannot be deactivated")
)

// ActivationPolicy decides how many views of a region can be active.
type ActivationPolicy int

const (
	// MultipleActive allows any number of active views.
	MultipleActive ActivationPolicy = iota
	// SingleActive keeps at most one active view.
	SingleActive
	// AllActive keeps every view active.
	AllActive
)

// String returns the policy name.
func (p ActivationPolicy) String() string {
	switch p {
	case SingleActive:
		return "SingleActive"
	case AllActive:
		return "AllActive"
	default:
		return "MultipleActive"
	}
}

// ActiveAware is implemented by views that want to know when they become
// active or inactive.
type ActiveAware interface {
	SetActive(active bool)
}

// ContextAware is implemented by views that receive the region context.
type ContextAware interface {
	SetRegionContext(ctx any)
}

// NamedView is a view together with its name inside a region.
type NamedView struct {
	Name string
	View any
}

// Region is a named extension point views are placed into.
type Region struct {
	mu       sync.RWMutex
	name     string
	policy   ActivationPolicy
	views    []NamedView
	active   map[string]bool
	context  any
	manager  *Manager
	nav      *NavigationService
	behavior *BehaviorCollection

	onViewAdded     []func(NamedView)
	onViewRemoved   []func(NamedView)
	onActiveChanged []func(view NamedView, active bool)
	onContext       []func(any)
}

// NewRegion creates an empty region.
func NewRegion(name string, policy ActivationPolicy) *Region {
	r := &Region{
		name:   name,
		policy: policy,
		active: make(map[string]bool),
	}
	r.behavior = newBehaviorCollection(r)
	return r
}

// Name returns the region name.
func (r *Region) Name() string { return r.name }

// Policy returns the activation policy.
func (r *Region) Policy() ActivationPolicy { return r.policy }

// Manager returns the manager the region is registered with, if any.
func (r *Region) Manager() *Manager {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.manager
}

func (r *Region) setManager(m *Manager) {
	r.mu.Lock()
	r.manager = m
	r.mu.Unlock()
}

// Behaviors returns the behaviors attached to the region.
func (r *Region) Behaviors() *BehaviorCollection { return r.behavior }

// Add places view in the region under name.
func (r *Region) Add(name string, view any) error {
	if name == "" || view == nil {
		return fmt.Errorf("region %s: view needs a name and a value", r.name)
	}

	r.mu.Lock()
	for _, v := range r.views {
		if v.Name == name {
			r.mu.Unlock()
			return fmt.Errorf("%w: %s/%s", ErrViewExists, r.name, name)
		}
	}
	nv := NamedView{Name: name, View: view}
	r.views = append(r.views, nv)
	listeners := append(([]func(NamedView))(nil), r.onViewAdded...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(nv)
	}

	if r.policy == AllActive {
		return r.Activate(name)
	}
	return nil
}

// Remove takes the named view out of the region.
func (r *Region) Remove(name string) error {
	r.mu.Lock()
	idx := -1
	for i, v := range r.views {
		if v.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s/%s", ErrViewNotFound, r.name, name)
	}
	nv := r.views[idx]
	wasActive := r.active[name]
	r.views = append(r.views[:idx:idx], r.views[idx+1:]...)
	delete(r.active, name)
	removed := append(([]func(NamedView))(nil), r.onViewRemoved...)
	changed := append(([]func(NamedView, bool))(nil), r.onActiveChanged...)
	r.mu.Unlock()

	if wasActive {
		for _, fn := range changed {
			fn(nv, false)
		}
	}
	for _, fn := range removed {
		fn(nv)
	}
	return nil
}

// View returns the named view.
func (r *Region) View(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.views {
		if v.Name == name {
			return v.View, true
		}
	}
	return nil, false
}

// Views returns the region's views in the order they were added.
func (r *Region) Views() []NamedView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]NamedView(nil), r.views...)
}

// ActiveViews returns the active views in the order they were added.
func (r *Region) ActiveViews() []NamedView {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []NamedView
	for _, v := range r.views {
		if r.active[v.Name] {
			out = append(out, v)
		}
	}
	return out
}

// IsActive reports whether the named view is active.
func (r *Region) IsActive(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active[name]
}

// Activate marks the named view active. In a SingleActive region the
// previously active view is deactivated first.
func (r *Region) Activate(name string) error {
	r.mu.Lock()
	target, ok := r.findLocked(name)
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s/%s", ErrViewNotFound, r.name, name)
	}
	if r.active[name] {
		r.mu.Unlock()
		return nil
	}

	var deactivated []NamedView
	if r.policy == SingleActive {
		for _, v := range r.views {
			if r.active[v.Name] {
				delete(r.active, v.Name)
				deactivated = append(deactivated, v)
			}
		}
	}
	r.active[name] = true
	listeners := append(([]func(NamedView, bool))(nil), r.onActiveChanged...)
	r.mu.Unlock()

	for _, v := range deactivated {
		for _, fn := range listeners {
			fn(v, false)
		}
	}
	for _, fn := range listeners {
		fn(target, true)
	}
	return nil
}

// Deactivate marks the named view inactive.
func (r *Region) Deactivate(name string) error {
	if r.policy == AllActive {
		return fmt.Errorf("%w: %s", ErrAlwaysActive, r.name)
	}

	r.mu.Lock()
	target, ok := r.findLocked(name)
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s/%s", ErrViewNotFound, r.name, name)
	}
	if !r.active[name] {
		r.mu.Unlock()
		return nil
	}
	delete(r.active, name)
	listeners := append(([]func(NamedView, bool))(nil), r.onActiveChanged...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(target, false)
	}
	return nil
}

// Context returns the region context.
func (r *Region) Context() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.context
}

// SetContext sets the region context shared with the region's views.
func (r *Region) SetContext(ctx any) {
	r.mu.Lock()
	r.context = ctx
	listeners := append(([]func(any))(nil), r.onContext...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx)
	}
}

// NavigationService returns the region's navigation service, if one was
// attached.
func (r *Region) NavigationService() *NavigationService {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nav
}

func (r *Region) setNavigationService(nav *NavigationService) {
	r.mu.Lock()
	r.nav = nav
	r.mu.Unlock()
}

// OnViewAdded registers fn to run after a view is added.
func (r *Region) OnViewAdded(fn func(NamedView)) {
	r.mu.Lock()
	r.onViewAdded = append(r.onViewAdded, fn)
	r.mu.Unlock()
}

// OnViewRemoved registers fn to run after a view is removed.
func (r *Region) OnViewRemoved(fn func(NamedView)) {
	r.mu.Lock()
	r.onViewRemoved = append(r.onViewRemoved, fn)
	r.mu.Unlock()
}

// OnActiveChanged registers fn to run after a view is activated or
// deactivated.
func (r *Region) OnActiveChanged(fn func(view NamedView, active bool)) {
	r.mu.Lock()
	r.onActiveChanged = append(r.onActiveChanged, fn)
	r.mu.Unlock()
}

// OnContextChanged registers fn to run after the region context changes.
func (r *Region) OnContextChanged(fn func(any)) {
	r.mu.Lock()
	r.onContext = append(r.onContext, fn)
	r.mu.Unlock()
}

func (r *Region) findLocked(name string) (NamedView, bool) {
	for _, v := range r.views {
		if v.Name == name {
			return v, true
		}
	}
	return NamedView{}, false
}
