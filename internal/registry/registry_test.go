package registry

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/platform/fake"
	"github.com/mj1618/slotjump/internal/resolver"
)

type recordingPruner struct {
	calls []map[string]struct{}
}

func (p *recordingPruner) Prune(keep map[string]struct{}) {
	p.calls = append(p.calls, keep)
}

func newTestRegistry(t *testing.T) (*Registry, *fake.Host) {
	t.Helper()
	host := fake.New()
	r := New(resolver.New(host, zerolog.Nop()), zerolog.Nop())
	r.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return r, host
}

func window(id int, app, title string) model.WindowRef {
	return model.WindowRef{StableID: model.WindowID(id), OwnerAppID: app, OwnerAppName: app, Title: title}
}

func focusNew(host *fake.Host, w model.WindowRef) {
	host.AddWindow(w)
	host.Focus(&w)
}

func TestMarkCurrent_LowestFree(t *testing.T) {
	r, host := newTestRegistry(t)
	for i := 1; i <= 3; i++ {
		focusNew(host, window(i, "app", fmt.Sprint(i)))
		s, err := r.MarkCurrent()
		require.NoError(t, err)
		assert.Equal(t, i, s.Position)
	}

	require.NoError(t, r.Remove(2))
	focusNew(host, window(4, "app", "4"))
	s, err := r.MarkCurrent()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Position)
}

func TestMarkCurrent_AllSlotsFull(t *testing.T) {
	r, host := newTestRegistry(t)
	for i := 1; i <= model.MaxPosition; i++ {
		focusNew(host, window(i, "app", fmt.Sprint(i)))
		_, err := r.MarkCurrent()
		require.NoError(t, err)
	}
	before := r.List()

	focusNew(host, window(10, "app", "ten"))
	_, err := r.MarkCurrent()
	assert.ErrorIs(t, err, ErrAllSlotsFull)
	assert.Equal(t, before, r.List())
}

func TestMarkCurrent_NotFullWithEightSlots(t *testing.T) {
	r, host := newTestRegistry(t)
	for n := 1; n <= model.MaxPosition; n++ {
		if n == 6 {
			continue
		}
		focusNew(host, window(n, "app", fmt.Sprint(n)))
		_, err := r.MarkAt(n)
		require.NoError(t, err)
	}
	focusNew(host, window(99, "app", "late"))
	s, err := r.MarkCurrent()
	require.NoError(t, err)
	assert.Equal(t, 6, s.Position)
}

func TestMarkCurrent_AlreadyPinnedTakesLowestFree(t *testing.T) {
	r, host := newTestRegistry(t)
	w := window(1, "app", "a")
	focusNew(host, w)
	_, err := r.MarkAt(5)
	require.NoError(t, err)

	s, err := r.MarkCurrent()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Position)
	assert.Len(t, r.List(), 2)
}

func TestMarkCurrent_FullEvenWhenFocusedIsPinned(t *testing.T) {
	r, host := newTestRegistry(t)
	for i := 1; i <= 9; i++ {
		focusNew(host, window(i, "app", fmt.Sprint(i)))
		_, err := r.MarkCurrent()
		require.NoError(t, err)
	}
	before := r.List()

	w := window(9, "app", "9")
	host.Focus(&w)
	_, err := r.MarkCurrent()
	assert.ErrorIs(t, err, ErrAllSlotsFull)
	assert.Equal(t, before, r.List())
}

func TestMarkCurrent_NoFocus(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, err := r.MarkCurrent()
	assert.ErrorIs(t, err, ErrNoFocusedWindow)
}

func TestMarkAt_NoFocusLeavesRegistryUnchanged(t *testing.T) {
	r, host := newTestRegistry(t)
	focusNew(host, window(1, "app", "a"))
	_, err := r.MarkAt(1)
	require.NoError(t, err)
	before := r.List()

	host.Focus(nil)
	_, err = r.MarkAt(5)
	assert.ErrorIs(t, err, ErrNoFocusedWindow)
	assert.Equal(t, before, r.List())
}

func TestMarkAt_InvalidPositionCheckedFirst(t *testing.T) {
	r, _ := newTestRegistry(t)
	for _, n := range []int{0, 10, -1} {
		_, err := r.MarkAt(n)
		assert.ErrorIs(t, err, ErrInvalidPosition, "position %d", n)
	}
}

func TestMarkAt_OverwritesWithFreshID(t *testing.T) {
	r, host := newTestRegistry(t)
	focusNew(host, window(1, "app", "a"))
	first, err := r.MarkAt(3)
	require.NoError(t, err)

	focusNew(host, window(2, "app", "b"))
	second, err := r.MarkAt(3)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	got, ok := r.Get(3)
	require.True(t, ok)
	assert.Equal(t, model.WindowID(2), got.Window.StableID)
}

func TestMarkAt_LeavesOtherSlotsAlone(t *testing.T) {
	r, host := newTestRegistry(t)
	focusNew(host, window(1, "app", "a"))
	_, err := r.MarkAt(2)
	require.NoError(t, err)
	_, err = r.MarkAt(7)
	require.NoError(t, err)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].Position)
	assert.Equal(t, 7, list[1].Position)
	assert.Equal(t, list[0].Window, list[1].Window)
}

func TestMarkAt_PositionsStayUnique(t *testing.T) {
	r, host := newTestRegistry(t)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		focusNew(host, window(rng.Intn(15)+1, "app", "w"))
		_, err := r.MarkAt(rng.Intn(9) + 1)
		require.NoError(t, err)

		seen := make(map[int]bool)
		ids := make(map[string]bool)
		for _, s := range r.List() {
			require.False(t, seen[s.Position], "duplicate position %d", s.Position)
			require.False(t, ids[s.ID], "duplicate id %s", s.ID)
			seen[s.Position] = true
			ids[s.ID] = true
		}
	}
}

func TestRemove(t *testing.T) {
	r, host := newTestRegistry(t)
	notified := 0
	r.OnChange(func([]model.PinSlot) { notified++ })

	require.NoError(t, r.Remove(4))
	assert.Zero(t, notified, "removing an empty slot must not notify")
	assert.ErrorIs(t, r.Remove(0), ErrInvalidPosition)

	focusNew(host, window(1, "app", "a"))
	_, err := r.MarkAt(4)
	require.NoError(t, err)
	require.NoError(t, r.Remove(4))
	assert.Empty(t, r.List())
	assert.Equal(t, 2, notified)
}

func TestJump_ActivatesAndStampsAccess(t *testing.T) {
	r, host := newTestRegistry(t)
	a := window(1, "com.ex.editor", "main.rs")
	focusNew(host, a)
	_, err := r.MarkAt(1)
	require.NoError(t, err)

	var last []model.PinSlot
	r.OnChange(func(s []model.PinSlot) { last = s })

	got, err := r.Jump(1)
	require.NoError(t, err)
	assert.Equal(t, a, got)
	assert.Equal(t, []model.WindowRef{a}, host.Activated())
	require.Len(t, last, 1)
	require.NotNil(t, last[0].LastAccessed)
	assert.Equal(t, r.now(), *last[0].LastAccessed)
}

func TestJump_Empty(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, err := r.Jump(2)
	assert.ErrorIs(t, err, ErrNoWindowAtPosition)
	_, err = r.Jump(11)
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestJump_ClosedWindowSelfHeals(t *testing.T) {
	r, host := newTestRegistry(t)
	a := window(1, "app", "a")
	focusNew(host, a)
	_, err := r.MarkAt(1)
	require.NoError(t, err)

	host.CloseWindow(a)
	_, err = r.Jump(1)
	assert.ErrorIs(t, err, ErrWindowNoLongerExists)
	assert.Empty(t, r.List())
	assert.Empty(t, host.Activated())
}

func TestJump_EnumerationErrorKeepsSlot(t *testing.T) {
	r, host := newTestRegistry(t)
	focusNew(host, window(1, "app", "a"))
	_, err := r.MarkAt(1)
	require.NoError(t, err)

	host.SetListError(errors.New("boom"))
	_, err = r.Jump(1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrWindowNoLongerExists)
	assert.Len(t, r.List(), 1)
}

func TestValidateAll_BatchRemoval(t *testing.T) {
	r, host := newTestRegistry(t)
	ws := []model.WindowRef{window(1, "a", "1"), window(2, "b", "2"), window(3, "c", "3")}
	for i, w := range ws {
		focusNew(host, w)
		_, err := r.MarkAt(i + 1)
		require.NoError(t, err)
	}
	notified := 0
	r.OnChange(func([]model.PinSlot) { notified++ })
	calls := host.ListCalls()

	host.CloseWindow(ws[0])
	host.CloseWindow(ws[2])
	removed, err := r.ValidateAll()
	require.NoError(t, err)

	require.Len(t, removed, 2)
	assert.Equal(t, 1, removed[0].Position)
	assert.Equal(t, 3, removed[1].Position)
	assert.Equal(t, 1, notified)
	assert.Equal(t, calls+1, host.ListCalls())
	list := r.List()
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Position)
}

func TestValidateAll_NothingStale(t *testing.T) {
	r, host := newTestRegistry(t)
	focusNew(host, window(1, "a", "1"))
	_, err := r.MarkAt(1)
	require.NoError(t, err)
	notified := 0
	r.OnChange(func([]model.PinSlot) { notified++ })

	removed, err := r.ValidateAll()
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.Zero(t, notified)
}

// An app without stable window ids: a window renamed in place is found by
// title containment, an unrelated one is not.
func TestValidateAll_FuzzyReResolve(t *testing.T) {
	tests := []struct {
		name     string
		newTitle string
		kept     bool
	}{
		{"renamed keeps slot", "main.rs — renamed", true},
		{"unrelated removes slot", "lib.rs", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, host := newTestRegistry(t)
			a := model.WindowRef{OwnerAppID: "com.ex.editor", Title: "main.rs"}
			focusNew(host, a)
			_, err := r.MarkAt(1)
			require.NoError(t, err)

			_, err = r.Jump(1)
			require.NoError(t, err)
			assert.Equal(t, []model.WindowRef{a}, host.Activated())

			host.CloseWindow(a)
			host.AddWindow(model.WindowRef{OwnerAppID: "com.ex.editor", Title: tt.newTitle})

			_, err = r.ValidateAll()
			require.NoError(t, err)
			_, ok := r.Get(1)
			assert.Equal(t, tt.kept, ok)
		})
	}
}

func TestChangesPruneToReferencedApps(t *testing.T) {
	r, host := newTestRegistry(t)
	p := &recordingPruner{}
	r.SetIconPruner(p)

	focusNew(host, window(1, "a", "1"))
	_, err := r.MarkAt(1)
	require.NoError(t, err)
	focusNew(host, window(2, "b", "2"))
	_, err = r.MarkAt(2)
	require.NoError(t, err)
	require.NoError(t, r.Remove(1))

	require.Len(t, p.calls, 3)
	assert.Equal(t, map[string]struct{}{"b": {}}, p.calls[2])
}

func TestRestore_DropsInvalidAndDuplicates(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.Restore([]model.PinSlot{
		{ID: "a", Position: 1, Window: window(1, "x", "1")},
		{ID: "b", Position: 1, Window: window(2, "x", "2")},
		{ID: "c", Position: 12, Window: window(3, "x", "3")},
		{Position: 4, Window: window(4, "x", "4")},
	})
	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, 4, list[1].Position)
	assert.NotEmpty(t, list[1].ID)
}

func TestList_ReturnsCopies(t *testing.T) {
	r, host := newTestRegistry(t)
	focusNew(host, window(1, "a", "1"))
	_, err := r.MarkAt(1)
	require.NoError(t, err)
	_, err = r.Jump(1)
	require.NoError(t, err)

	list := r.List()
	*list[0].LastAccessed = time.Time{}
	got, _ := r.Get(1)
	assert.False(t, got.LastAccessed.IsZero())
}
