package resolver

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/platform/fake"
)

const editor = "com.ex.editor"

func TestMatch_StableIDBeatsTitle(t *testing.T) {
	ws := []model.WindowRef{
		{StableID: 1, OwnerAppID: editor, Title: "main.rs"},
		{StableID: 2, OwnerAppID: editor, Title: "something else"},
	}
	ref := model.WindowRef{StableID: 2, OwnerAppID: editor, Title: "main.rs"}

	got, ok := Match(ws, ref)
	require.True(t, ok)
	assert.Equal(t, model.WindowID(2), got.StableID)
}

func TestMatch_StableIDNeverFallsBackToTitle(t *testing.T) {
	ws := []model.WindowRef{{StableID: 1, OwnerAppID: editor, Title: "main.rs"}}
	ref := model.WindowRef{StableID: 9, OwnerAppID: editor, Title: "main.rs"}

	_, ok := Match(ws, ref)
	assert.False(t, ok)
}

func TestMatch_ExactTitleBeatsEarlierFuzzy(t *testing.T) {
	ws := []model.WindowRef{
		{OwnerAppID: editor, Title: "main.rs — renamed"},
		{OwnerAppID: editor, Title: "main.rs"},
	}
	got, ok := Match(ws, model.WindowRef{OwnerAppID: editor, Title: "main.rs"})
	require.True(t, ok)
	assert.Equal(t, "main.rs", got.Title)
}

func TestMatch_FuzzyWithinSameAppOnly(t *testing.T) {
	ws := []model.WindowRef{
		{OwnerAppID: "com.other", Title: "main.rs"},
		{OwnerAppID: editor, Title: "● main.rs — project"},
	}
	got, ok := Match(ws, model.WindowRef{OwnerAppID: editor, Title: "main.rs"})
	require.True(t, ok)
	assert.Equal(t, editor, got.OwnerAppID)

	_, ok = Match(ws, model.WindowRef{OwnerAppID: editor, Title: "lib.rs"})
	assert.False(t, ok)
}

func TestResolver_ResolveQueriesEachTime(t *testing.T) {
	host := fake.New()
	r := New(host, zerolog.Nop())
	ref := model.WindowRef{OwnerAppID: editor, Title: "main.rs"}

	host.SetWindows(ref)
	_, ok, err := r.Resolve(ref)
	require.NoError(t, err)
	assert.True(t, ok)

	host.SetWindows()
	_, ok, err = r.Resolve(ref)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, host.ListCalls())
}

func TestResolver_EnumerationError(t *testing.T) {
	host := fake.New()
	host.SetListError(errors.New("no accessibility permission"))
	r := New(host, zerolog.Nop())

	_, _, err := r.Resolve(model.WindowRef{OwnerAppID: editor})
	assert.Error(t, err)
	assert.False(t, r.IsLive(model.WindowRef{OwnerAppID: editor}))
}

func TestResolver_CurrentFocused(t *testing.T) {
	host := fake.New()
	r := New(host, zerolog.Nop())

	_, ok, err := r.CurrentFocused()
	require.NoError(t, err)
	assert.False(t, ok)

	w := model.WindowRef{StableID: 5, OwnerAppID: editor, Title: "x"}
	host.Focus(&w)
	got, ok, err := r.CurrentFocused()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, w, got)
}

func TestSnapshot_SingleEnumeration(t *testing.T) {
	host := fake.New()
	a := model.WindowRef{StableID: 1, OwnerAppID: editor, Title: "a"}
	host.SetWindows(a)
	r := New(host, zerolog.Nop())

	snap, err := r.Snapshot()
	require.NoError(t, err)
	assert.True(t, snap.IsLive(a))
	assert.False(t, snap.IsLive(model.WindowRef{StableID: 2}))
	assert.Equal(t, 1, host.ListCalls())
}
