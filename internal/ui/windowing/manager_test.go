package windowing

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	m := NewManager(WithLogger(testLogger()), WithPoolCapacity(10))
	m.RegisterKind(KindMenu, func() Window { return &stubWindow{} })
	m.RegisterKind(KindDialog, func() Window { return &stubWindow{} })
	m.RegisterKind(KindList, func() Window { return &stubWindow{} })
	m.RegisterKind(KindForm, func() Window { return &rigidWindow{} })
	return m
}

func mustCreate(t *testing.T, m *Manager, kind Kind, id string, cfg *Config) *stubWindow {
	t.Helper()
	w, err := m.Create(kind, id, cfg)
	require.NoError(t, err)
	return w.(*stubWindow)
}

func TestManager_CreateShowFocus(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "main", &Config{})

	require.NoError(t, m.Show(a, true))

	assert.Equal(t, []Window{a}, m.VisibleWindows())
	assert.Same(t, a, m.Focus().Current().(*stubWindow))
	assert.Equal(t, StateShown, a.State())
}

func TestManager_GeneratedIDs(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "", &Config{})
	b := mustCreate(t, m, KindMenu, "", &Config{})

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestManager_DuplicateIDRejected(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "main", &Config{})

	_, err := m.Create(KindMenu, "main", &Config{})

	var dup *DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "main", dup.ID)

	got, ok := m.Get("main")
	require.True(t, ok)
	assert.Same(t, a, got.(*stubWindow), "the registry must be unchanged")
}

func TestManager_CreateFailureRollsBack(t *testing.T) {
	m := newTestManager()
	failNext := true
	m.RegisterKind(KindBattle, func() Window {
		s := &stubWindow{}
		if failNext {
			s.createErr = errors.New("missing required field")
		}
		return s
	})

	_, err := m.Create(KindBattle, "battle", &Config{})
	require.Error(t, err)
	_, ok := m.Get("battle")
	assert.False(t, ok, "a failed create leaves no registry entry")

	// The same id is free for a later, valid creation.
	failNext = false
	w, err := m.Create(KindBattle, "battle", &Config{})
	require.NoError(t, err)
	assert.Equal(t, "battle", w.ID())
}

func TestManager_ModalLockRoutesExclusively(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "main", &Config{})
	a.handled = true
	require.NoError(t, m.Show(a, true))

	b := mustCreate(t, m, KindDialog, "confirm", &Config{Modal: true})
	b.handled = true
	require.NoError(t, m.Show(b, true))

	assert.True(t, m.Focus().Locked())
	assert.Same(t, b, m.Focus().Current().(*stubWindow))

	assert.True(t, m.RouteEvent(keyDown(ebiten.KeyEnter)))
	assert.Len(t, b.events, 1)
	assert.Empty(t, a.events, "a modal never leaks input to the background")
}

func TestManager_HideModalRestoresFocus(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "main", &Config{})
	require.NoError(t, m.Show(a, true))
	b := mustCreate(t, m, KindDialog, "confirm", &Config{Modal: true})
	require.NoError(t, m.Show(b, true))

	require.NoError(t, m.Hide(b, true))

	assert.False(t, m.Focus().Locked())
	assert.Same(t, a, m.Focus().Current().(*stubWindow))
	assert.Equal(t, []Window{a}, m.VisibleWindows())
}

func TestManager_GoBackTwice(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "a", &Config{})
	b := mustCreate(t, m, KindMenu, "b", &Config{})
	c := mustCreate(t, m, KindMenu, "c", &Config{})
	require.NoError(t, m.Show(a, true))
	require.NoError(t, m.Show(b, true))
	require.NoError(t, m.Show(c, true))

	assert.True(t, m.GoBack())
	assert.True(t, m.GoBack())

	assert.Equal(t, []Window{a}, m.VisibleWindows())
	assert.Same(t, a, m.Focus().Current().(*stubWindow))
	assert.Equal(t, StateDestroyed, b.State())
	assert.Equal(t, StateDestroyed, c.State())
	assert.Equal(t, 1, b.destroyN)
	assert.Equal(t, 1, c.destroyN)
}

func TestManager_GoBackOnLastWindow(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "a", &Config{})
	require.NoError(t, m.Show(a, true))

	assert.False(t, m.GoBack(), "the core never pops past the last window")
	assert.Equal(t, []Window{a}, m.VisibleWindows())
	assert.Equal(t, StateShown, a.State())
}

func TestManager_PoolRoundTrips(t *testing.T) {
	m := newTestManager()
	cfg := &Config{Poolable: true}

	// Five rounds of ten ephemeral windows; after the first round
	// every creation is served from the pool.
	for round := 0; round < 5; round++ {
		var batch []Window
		for i := 0; i < 10; i++ {
			w, err := m.Create(KindList, "", cfg)
			require.NoError(t, err)
			batch = append(batch, w)
		}
		for _, w := range batch {
			require.NoError(t, m.Destroy(w))
		}
	}

	stats := m.Stats()
	assert.Equal(t, 10, stats.PooledWindows, "the free list is full, never over cap")
	assert.Equal(t, uint64(50), stats.TotalDestroyed)
	assert.Equal(t, uint64(50), stats.TotalCreated)
	assert.Equal(t, uint64(40), stats.PoolHits)
	assert.Greater(t, stats.PoolHitRate, 0.0)
}

func TestManager_PooledReuseIsFresh(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, KindList, "inventory", &Config{Poolable: true})
	require.NoError(t, m.Destroy(w))

	reborn, err := m.Create(KindList, "inventory", &Config{Poolable: true})
	require.NoError(t, err)

	assert.Same(t, w, reborn.(*stubWindow), "the retired instance is reused")
	assert.Equal(t, StateCreated, reborn.State())
	assert.Equal(t, 1, w.resetN)
	_, ok := m.Get("inventory")
	assert.True(t, ok)
}

func TestManager_PooledResetFailureDropsInstance(t *testing.T) {
	m := newTestManager()
	w := mustCreate(t, m, KindList, "inventory", &Config{Poolable: true})
	require.NoError(t, m.Destroy(w))

	w.createErr = errors.New("bad config")
	_, err := m.Create(KindList, "inventory", &Config{Poolable: true})
	require.Error(t, err)
	_, ok := m.Get("inventory")
	assert.False(t, ok)

	// The failed instance must not be reused again.
	w.createErr = nil
	again, err := m.Create(KindList, "inventory", &Config{Poolable: true})
	require.NoError(t, err)
	assert.NotSame(t, w, again.(*stubWindow))
}

func TestManager_PoolableRequiresResettable(t *testing.T) {
	m := newTestManager()

	_, err := m.Create(KindForm, "form", &Config{Poolable: true})

	var creation *CreationError
	require.ErrorAs(t, err, &creation)
}

func TestManager_DestroyClearsFocus(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "a", &Config{})
	require.NoError(t, m.Show(a, false))
	require.True(t, m.Focus().Set(a))

	require.NoError(t, m.Destroy(a))
	assert.Nil(t, m.Focus().Current(), "no dangling focus reference")
}

func TestManager_DestroyCascadesToChildren(t *testing.T) {
	m := newTestManager()
	parent := mustCreate(t, m, KindMenu, "parent", &Config{})
	child := mustCreate(t, m, KindMenu, "child", &Config{Parent: "parent"})
	grandchild := mustCreate(t, m, KindMenu, "grandchild", &Config{Parent: "child"})

	require.NoError(t, m.Destroy(parent))

	assert.Equal(t, StateDestroyed, child.State())
	assert.Equal(t, StateDestroyed, grandchild.State())
	for _, id := range []string{"parent", "child", "grandchild"} {
		_, ok := m.Get(id)
		assert.False(t, ok, id)
	}
}

func TestManager_CreateWithUnknownParent(t *testing.T) {
	m := newTestManager()
	_, err := m.Create(KindMenu, "orphan", &Config{Parent: "missing"})

	var creation *CreationError
	require.ErrorAs(t, err, &creation)
}

func TestManager_ShowInvalidState(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "a", &Config{})
	require.NoError(t, m.Show(a, true))

	err := m.Show(a, true)
	var state *StateError
	require.ErrorAs(t, err, &state)
	assert.Equal(t, StateShown, state.State)
}

func TestManager_HideInvalidState(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "a", &Config{})

	err := m.Hide(a, true)
	var state *StateError
	require.ErrorAs(t, err, &state)
}

func TestManager_OperationsOnUnregisteredWindow(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "a", &Config{})
	require.NoError(t, m.Destroy(a))

	var notFound *NotFoundError
	require.ErrorAs(t, m.Show(a, true), &notFound)
	require.ErrorAs(t, m.Destroy(a), &notFound)
}

func TestManager_RecreateAfterDestroy(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "main", &Config{})
	require.NoError(t, m.Show(a, true))
	require.NoError(t, m.Destroy(a))

	b := mustCreate(t, m, KindMenu, "main", &Config{})
	assert.Equal(t, StateCreated, b.State())
	assert.Empty(t, b.events, "no leftover state from the prior instance")
}

func TestManager_HideFallsBackToTopmost(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "a", &Config{})
	b := mustCreate(t, m, KindMenu, "b", &Config{})
	require.NoError(t, m.Show(a, true))
	require.NoError(t, m.Show(b, true))

	require.NoError(t, m.Hide(b, true))

	assert.Same(t, a, m.Focus().Current().(*stubWindow))
	assert.Equal(t, StateHidden, b.State())

	// A hidden window can be re-shown.
	require.NoError(t, m.Show(b, true))
	assert.Equal(t, StateShown, b.State())
}

func TestManager_HideWithoutPopKeepsSlotButNotVisibility(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "a", &Config{})
	b := mustCreate(t, m, KindMenu, "b", &Config{})
	require.NoError(t, m.Show(a, true))
	require.NoError(t, m.Show(b, true))

	require.NoError(t, m.Hide(b, false))

	assert.Equal(t, 2, m.StackDepth(), "the stack slot is kept for a later re-show")
	assert.Equal(t, []Window{a}, m.VisibleWindows(), "a hidden window is never visible")
	assert.Same(t, a, m.Focus().Current().(*stubWindow), "focus falls back past the hidden slot")

	m.Broadcast("notice", nil)
	assert.Equal(t, []string{"notice"}, a.msgs)
	assert.Empty(t, b.msgs, "broadcasts skip hidden windows, stacked or not")

	// Re-showing restores the window in its original slot.
	require.NoError(t, m.Show(b, true))
	assert.Equal(t, []Window{a, b}, m.VisibleWindows())
	assert.Same(t, b, m.Focus().Current().(*stubWindow))
}

func TestManager_EscapeTwoTier(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "a", &Config{})
	b := mustCreate(t, m, KindMenu, "b", &Config{})
	require.NoError(t, m.Show(a, true))
	require.NoError(t, m.Show(b, true))

	// The focused window intercepts ESC first.
	b.escape = true
	assert.True(t, m.RouteEvent(keyDown(ebiten.KeyEscape)))
	assert.Equal(t, 2, m.StackDepth(), "no back-navigation when the window handled ESC")

	// Declined ESC falls back to go-back.
	b.escape = false
	assert.True(t, m.RouteEvent(keyDown(ebiten.KeyEscape)))
	assert.Equal(t, 1, m.StackDepth())
	assert.Equal(t, StateDestroyed, b.State())

	// On the last window ESC is reported unhandled.
	assert.False(t, m.RouteEvent(keyDown(ebiten.KeyEscape)))
	assert.Equal(t, 1, m.StackDepth())
}

func TestManager_DestroyDuringDispatchIsDeferred(t *testing.T) {
	m := newTestManager()
	bottom := mustCreate(t, m, KindMenu, "bottom", &Config{})
	bottom.handled = true
	top := mustCreate(t, m, KindMenu, "top", &Config{})
	require.NoError(t, m.Show(bottom, true))
	require.NoError(t, m.Show(top, true))

	aliveDuringDispatch := false
	top.onEvent = func(ev Event) bool {
		require.NoError(t, m.Destroy(top))
		_, aliveDuringDispatch = m.Get("top")
		return false
	}

	assert.True(t, m.RouteEvent(keyDown(ebiten.KeyEnter)))
	assert.True(t, aliveDuringDispatch, "destruction must wait for the end of dispatch")
	assert.Len(t, bottom.events, 1, "the stack is not mutated mid-iteration")

	_, ok := m.Get("top")
	assert.False(t, ok, "the deferred destroy resolved after dispatch")
	assert.Equal(t, StateDestroyed, top.State())
}

func TestManager_EmitDeliveredAfterDispatch(t *testing.T) {
	m := newTestManager()
	h := &recordingHandler{}
	a := mustCreate(t, m, KindMenu, "a", &Config{Handler: h})
	require.NoError(t, m.Show(a, true))
	a.onEvent = func(ev Event) bool {
		a.Emit("picked", map[string]any{"item": "guild"})
		return true
	}

	assert.True(t, m.RouteEvent(keyDown(ebiten.KeyEnter)))
	require.Equal(t, []string{"picked"}, h.types)
	assert.Equal(t, "guild", h.data[0]["item"])
}

func TestManager_BroadcastReachesAllShown(t *testing.T) {
	m := newTestManager()
	stacked := mustCreate(t, m, KindMenu, "stacked", &Config{})
	floating := mustCreate(t, m, KindMenu, "floating", &Config{})
	hidden := mustCreate(t, m, KindMenu, "hidden", &Config{})
	created := mustCreate(t, m, KindMenu, "created", &Config{})
	require.NoError(t, m.Show(stacked, true))
	require.NoError(t, m.Show(floating, false))
	require.NoError(t, m.Show(hidden, true))
	require.NoError(t, m.Hide(hidden, true))

	m.Broadcast("language_changed", map[string]any{"lang": "ja"})

	assert.Equal(t, []string{"language_changed"}, stacked.msgs)
	assert.Equal(t, []string{"language_changed"}, floating.msgs)
	assert.Empty(t, hidden.msgs)
	assert.Empty(t, created.msgs)
}

func TestManager_BroadcastIgnoresFocusLock(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "a", &Config{})
	require.NoError(t, m.Show(a, true))
	b := mustCreate(t, m, KindDialog, "b", &Config{Modal: true})
	require.NoError(t, m.Show(b, true))

	m.Broadcast("notice", nil)

	assert.Equal(t, []string{"notice"}, a.msgs, "broadcast delivery disregards the lock")
	assert.Equal(t, []string{"notice"}, b.msgs)
}

func TestManager_UpdateAdvancesOpenTransition(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "a", &Config{})
	require.NoError(t, m.Show(a, true))
	assert.Equal(t, float32(0), a.Progress())

	m.Update(1.0)
	assert.Equal(t, float32(1), a.Progress())
}

func TestManager_StatsCounters(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "a", &Config{})
	a.handled = true
	require.NoError(t, m.Show(a, true))
	mustCreate(t, m, KindMenu, "b", &Config{})

	m.RouteEvent(keyDown(ebiten.KeyEnter))
	m.RouteEvent(Event{Type: EventRune, Rune: 'x'})
	require.NoError(t, m.Destroy(a))

	stats := m.Stats()
	assert.Equal(t, uint64(2), stats.TotalCreated)
	assert.Equal(t, uint64(1), stats.TotalDestroyed)
	assert.Equal(t, 1, stats.WindowCount)
	assert.Equal(t, uint64(2), stats.EventsRouted)
	assert.Equal(t, uint64(2), stats.EventsHandled)
}

func TestManager_Shutdown(t *testing.T) {
	m := newTestManager()
	a := mustCreate(t, m, KindMenu, "a", &Config{})
	require.NoError(t, m.Show(a, true))
	pooled := mustCreate(t, m, KindList, "tmp", &Config{Poolable: true})
	require.NoError(t, m.Destroy(pooled))

	m.Shutdown()

	_, ok := m.Get("a")
	assert.False(t, ok)
	stats := m.Stats()
	assert.Equal(t, 0, stats.WindowCount)
	assert.Equal(t, 0, stats.PooledWindows)
	assert.Equal(t, StateDestroyed, a.State())
}
