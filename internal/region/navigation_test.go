package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootkit/internal/container"
	"bootkit/internal/events"
)

func TestJournal(t *testing.T) {
	j := NewJournal()
	assert.False(t, j.CanGoBack())
	assert.Nil(t, j.Current())

	a := &JournalEntry{Target: "a"}
	b := &JournalEntry{Target: "b"}
	c := &JournalEntry{Target: "c"}
	j.RecordNavigation(a)
	j.RecordNavigation(b)
	assert.Same(t, b, j.Current())
	assert.True(t, j.CanGoBack())

	back, err := j.stepBack()
	require.NoError(t, err)
	assert.Same(t, a, back)
	assert.True(t, j.CanGoForward())

	_, err = j.stepBack()
	assert.ErrorIs(t, err, ErrCannotGoBack)

	j.RecordNavigation(c)
	assert.False(t, j.CanGoForward(), "recording clears the forward stack")
	_, err = j.stepForward()
	assert.ErrorIs(t, err, ErrCannotGoForward)

	j.Clear()
	assert.Nil(t, j.Current())
	assert.False(t, j.CanGoBack())
}

func TestNavigation_RequestNavigateAndJournal(t *testing.T) {
	c, agg := newRegionContainer(t)
	m := resolveManager(t, c)

	var navigated []string
	agg.Subscribe(events.TopicNavigated, func(e events.Event) { navigated = append(navigated, e.Message) })

	orders := &view{name: "orders"}
	require.NoError(t, m.RegisterViewWithRegion("Catalog", "OrdersView", func() (any, error) { return orders, nil }))
	require.NoError(t, c.RegisterInstance("CustomersView", &view{name: "customers"}))

	require.NoError(t, SetRegionManager(&testHost{targets: []Target{{RegionName: "MainRegion", Kind: ContentControl}}}, m))
	require.NoError(t, m.RefreshAllRegions())
	main, _ := m.Region("MainRegion")

	require.NoError(t, m.RequestNavigate("MainRegion", "OrdersView", map[string]string{"id": "7"}))
	assert.Equal(t, []string{"OrdersView"}, activeNames(main))
	assert.Equal(t, map[string]string{"id": "7"}, orders.params)

	require.NoError(t, m.RequestNavigate("MainRegion", "CustomersView", nil))
	assert.Equal(t, []string{"CustomersView"}, activeNames(main))
	assert.False(t, orders.active)

	nav := main.NavigationService()
	journal := nav.Journal()
	first := journal.Current()
	require.NotNil(t, first)
	assert.Equal(t, "CustomersView", first.Target)

	require.NoError(t, nav.GoBack())
	assert.Equal(t, []string{"OrdersView"}, activeNames(main))
	assert.NotEqual(t, first.ID, journal.Current().ID)

	require.NoError(t, nav.GoForward())
	assert.Equal(t, []string{"CustomersView"}, activeNames(main))
	assert.ErrorIs(t, nav.GoForward(), ErrCannotGoForward)

	assert.Equal(t, []string{
		`Region "MainRegion" navigated to OrdersView`,
		`Region "MainRegion" navigated to CustomersView`,
		`Region "MainRegion" navigated to OrdersView`,
		`Region "MainRegion" navigated to CustomersView`,
	}, navigated)
}

func TestNavigation_Failures(t *testing.T) {
	c, agg := newRegionContainer(t)
	m := resolveManager(t, c)

	var failed []string
	agg.Subscribe(events.TopicNavigationFailed, func(e events.Event) { failed = append(failed, e.Data.Target) })

	assert.ErrorIs(t, m.RequestNavigate("Nowhere", "X", nil), ErrRegionNotFound)

	require.NoError(t, SetRegionManager(&testHost{targets: []Target{{RegionName: "MainRegion", Kind: ContentControl}}}, m))
	require.NoError(t, m.RefreshAllRegions())
	assert.Error(t, m.RequestNavigate("MainRegion", "Unknown", nil))

	main, _ := m.Region("MainRegion")
	assert.Nil(t, main.NavigationService().Journal().Current())
	assert.Equal(t, []string{"X", "Unknown"}, failed)

	plain := NewRegion("Plain", SingleActive)
	require.NoError(t, NewManager(NewViewRegistry(), NewAdapterMappings()).AddRegion(plain))
	assert.Nil(t, plain.NavigationService())
}

func TestNavigationServices_ArePerRegion(t *testing.T) {
	c, _ := newRegionContainer(t)
	m := resolveManager(t, c)
	require.NoError(t, SetRegionManager(&testHost{targets: []Target{
		{RegionName: "A", Kind: ContentControl},
		{RegionName: "B", Kind: ContentControl},
	}}, m))
	require.NoError(t, m.RefreshAllRegions())

	a, _ := m.Region("A")
	b, _ := m.Region("B")
	assert.NotSame(t, a.NavigationService(), b.NavigationService())
	assert.NotSame(t, a.NavigationService().Journal(), b.NavigationService().Journal())
	assert.Same(t, a, a.NavigationService().Region())
}

func TestContentLoader_ReusesExistingView(t *testing.T) {
	r := NewRegion("Main", SingleActive)
	existing := &view{}
	require.NoError(t, r.Add("Home", existing))

	loader := NewContentLoader(nil, container.New())
	got, err := loader.LoadContent(r, "Home")
	require.NoError(t, err)
	assert.Same(t, existing, got)

	_, err = loader.LoadContent(r, "Missing")
	assert.Error(t, err)
}
