package shell

import (
	"sync"

	"bootkit/internal/region"
)

// Window is a top-level window the host can show.
type Window interface {
	Title() string
	Show()
	IsShown() bool
}

// Host is the hosting environment: it owns the application's main window.
type Host interface {
	SetMainWindow(w Window)
	MainWindow() Window
}

// HeadlessHost is a Host without a display. It keeps the main window
// reference only.
type HeadlessHost struct {
	mu     sync.RWMutex
	window Window
}

// NewHeadlessHost creates a host with no main window.
func NewHeadlessHost() *HeadlessHost {
	return &HeadlessHost{}
}

// SetMainWindow implements Host.
func (h *HeadlessHost) SetMainWindow(w Window) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.window = w
}

// MainWindow implements Host.
func (h *HeadlessHost) MainWindow() Window {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.window
}

// MainWindow is the application shell. It declares the region targets the
// region manager fills and implements both Window and region.Host.
type MainWindow struct {
	mu      sync.RWMutex
	title   string
	targets []region.Target
	manager *region.Manager
	shown   bool
}

// NewMainWindow creates a hidden shell declaring targets.
func NewMainWindow(title string, targets ...region.Target) *MainWindow {
	return &MainWindow{
		title:   title,
		targets: append([]region.Target(nil), targets...),
	}
}

// Title implements Window.
func (w *MainWindow) Title() string { return w.title }

// Show implements Window.
func (w *MainWindow) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shown = true
}

// IsShown implements Window.
func (w *MainWindow) IsShown() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.shown
}

// RegionTargets implements region.Host.
func (w *MainWindow) RegionTargets() []region.Target {
	return append([]region.Target(nil), w.targets...)
}

// SetRegionManager implements region.Host.
func (w *MainWindow) SetRegionManager(m *region.Manager) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.manager = m
}

// RegionManager implements region.Host.
func (w *MainWindow) RegionManager() *region.Manager {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.manager
}
