package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type view struct {
	name   string
	active bool
	ctx    any
	params map[string]string
}

func (v *view) SetActive(active bool)                 { v.active = active }
func (v *view) SetRegionContext(ctx any)              { v.ctx = ctx }
func (v *view) OnNavigatedTo(params map[string]string) { v.params = params }

func activeNames(r *Region) []string {
	var out []string
	for _, v := range r.ActiveViews() {
		out = append(out, v.Name)
	}
	return out
}

func TestRegion_SingleActive(t *testing.T) {
	r := NewRegion("Main", SingleActive)
	require.NoError(t, r.Add("a", &view{}))
	require.NoError(t, r.Add("b", &view{}))
	assert.Empty(t, r.ActiveViews())

	require.NoError(t, r.Activate("a"))
	require.NoError(t, r.Activate("b"))
	assert.Equal(t, []string{"b"}, activeNames(r))

	require.NoError(t, r.Deactivate("b"))
	assert.Empty(t, r.ActiveViews())
}

func TestRegion_AllActive(t *testing.T) {
	r := NewRegion("Toolbar", AllActive)
	require.NoError(t, r.Add("a", &view{}))
	require.NoError(t, r.Add("b", &view{}))

	assert.Equal(t, []string{"a", "b"}, activeNames(r))
	assert.ErrorIs(t, r.Deactivate("a"), ErrAlwaysActive)
}

func TestRegion_MultipleActive(t *testing.T) {
	r := NewRegion("Tabs", MultipleActive)
	require.NoError(t, r.Add("a", &view{}))
	require.NoError(t, r.Add("b", &view{}))
	require.NoError(t, r.Activate("b"))
	require.NoError(t, r.Activate("a"))

	assert.Equal(t, []string{"a", "b"}, activeNames(r))
}

func TestRegion_AddRemoveErrors(t *testing.T) {
	r := NewRegion("Main", SingleActive)
	require.NoError(t, r.Add("a", &view{}))

	assert.ErrorIs(t, r.Add("a", &view{}), ErrViewExists)
	assert.Error(t, r.Add("", &view{}))
	assert.Error(t, r.Add("x", nil))
	assert.ErrorIs(t, r.Activate("missing"), ErrViewNotFound)
	assert.ErrorIs(t, r.Remove("missing"), ErrViewNotFound)

	var removed []string
	var deactivated []string
	r.OnViewRemoved(func(nv NamedView) { removed = append(removed, nv.Name) })
	r.OnActiveChanged(func(nv NamedView, active bool) {
		if !active {
			deactivated = append(deactivated, nv.Name)
		}
	})

	require.NoError(t, r.Activate("a"))
	require.NoError(t, r.Remove("a"))
	assert.Equal(t, []string{"a"}, removed)
	assert.Equal(t, []string{"a"}, deactivated)
	assert.Empty(t, r.Views())
}

func TestBehaviors(t *testing.T) {
	r := NewRegion("Main", SingleActive)
	v := &view{}
	require.NoError(t, r.Add("a", v))

	require.NoError(t, r.Behaviors().Add(ActiveAwareBehavior{}))
	require.NoError(t, r.Behaviors().Add(SyncRegionContextBehavior{}))
	assert.Error(t, r.Behaviors().Add(ActiveAwareBehavior{}))
	assert.Equal(t, []string{ActiveAwareBehaviorKey, SyncRegionContextBehaviorKey}, r.Behaviors().Keys())

	require.NoError(t, r.Activate("a"))
	assert.True(t, v.active)

	r.SetContext("customer-42")
	assert.Equal(t, "customer-42", v.ctx)

	late := &view{}
	require.NoError(t, r.Add("late", late))
	assert.Equal(t, "customer-42", late.ctx)

	require.NoError(t, r.Activate("late"))
	assert.False(t, v.active)
	assert.True(t, late.active)
}

func TestBehaviorFactory(t *testing.T) {
	f := NewBehaviorFactory()
	f.AddIfMissing("ActiveAware", func() (Behavior, error) { return ActiveAwareBehavior{}, nil })
	f.AddIfMissing("ActiveAware", func() (Behavior, error) { return SyncRegionContextBehavior{}, nil })

	assert.True(t, f.Contains("ActiveAware"))
	assert.Equal(t, []string{"ActiveAware"}, f.Keys())

	b, err := f.Create("ActiveAware")
	require.NoError(t, err)
	assert.Equal(t, ActiveAwareBehaviorKey, b.Key())

	_, err = f.Create("Unknown")
	assert.Error(t, err)
}

func TestViewRegistry(t *testing.T) {
	reg := NewViewRegistry()
	require.NoError(t, reg.Register("Main", "Home", func() (any, error) { return &view{name: "home"}, nil }))
	assert.Error(t, reg.Register("Main", "Home", func() (any, error) { return &view{}, nil }))
	assert.Error(t, reg.Register("", "x", nil))

	contents, err := reg.Contents("Main")
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "home", contents[0].View.(*view).name)

	var got []string
	reg.OnContentRegistered(func(regionName string, nv NamedView) { got = append(got, regionName+"/"+nv.Name) })
	require.NoError(t, reg.Register("Side", "Help", func() (any, error) { return &view{}, nil }))
	assert.Equal(t, []string{"Side/Help"}, got)

	_, ok := reg.Factory("Help")
	assert.True(t, ok)
	assert.Equal(t, []string{"Home"}, reg.ViewNames("Main"))
}
