package server

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/slotjump/internal/app"
	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/output"
	"github.com/mj1618/slotjump/internal/platform/fake"
)

var (
	editor = model.WindowRef{StableID: 1, OwnerAppID: "com.ex.editor", OwnerAppName: "Editor", Title: "main.rs", PID: 10}
	term   = model.WindowRef{StableID: 2, OwnerAppID: "org.term", OwnerAppName: "Term", Title: "zsh", PID: 11}
)

func startServer(t *testing.T) (*Server, *fake.Host) {
	t.Helper()
	host := fake.New()
	host.SetWindows(editor, term)
	host.Focus(&editor)

	// Tools drive the registry directly; no key source.
	prov := host.Provider()
	prov.KeySource = nil
	a, err := app.New(app.Options{Provider: prov, Log: zerolog.Nop()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	return New(a, Options{CacheTTL: time.Minute, Log: zerolog.Nop()}), host
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text, res.IsError
}

func decode[T any](t *testing.T, text string) T {
	t.Helper()
	var v T
	require.NoError(t, yaml.Unmarshal([]byte(text), &v))
	return v
}

func TestTools_MarkListJump(t *testing.T) {
	s, host := startServer(t)

	text, isErr := call(t, s.handleMark, nil)
	require.False(t, isErr, text)
	assert.Equal(t, 1, decode[output.ActionResult](t, text).Slot.Position)

	host.Focus(&term)
	text, isErr = call(t, s.handleMark, map[string]interface{}{"position": float64(5)})
	require.False(t, isErr, text)

	text, _ = call(t, s.handleListPins, nil)
	pins := decode[output.PinsResult](t, text).Pins
	require.Len(t, pins, 2)
	assert.Equal(t, []int{1, 5}, []int{pins[0].Position, pins[1].Position})

	text, isErr = call(t, s.handleJump, map[string]interface{}{"position": float64(1)})
	require.False(t, isErr, text)
	assert.Equal(t, []model.WindowRef{editor}, host.Activated())
}

func TestTools_JumpToClosedWindowRemovesSlot(t *testing.T) {
	s, host := startServer(t)
	_, isErr := call(t, s.handleMark, nil)
	require.False(t, isErr)

	host.CloseWindow(editor)
	text, isErr := call(t, s.handleJump, map[string]interface{}{"position": float64(1)})
	assert.True(t, isErr)
	assert.Contains(t, text, "no longer exists")

	text, _ = call(t, s.handleListPins, nil)
	assert.Empty(t, decode[output.PinsResult](t, text).Pins)
}

func TestTools_RequiredPosition(t *testing.T) {
	s, _ := startServer(t)
	text, isErr := call(t, s.handleJump, nil)
	assert.True(t, isErr)
	assert.Equal(t, "position is required", text)

	text, isErr = call(t, s.handleRemove, map[string]interface{}{"position": float64(12)})
	assert.True(t, isErr)
	assert.Contains(t, text, "invalid slot position")
}

func TestTools_ValidateAndFind(t *testing.T) {
	s, host := startServer(t)
	call(t, s.handleMark, nil)
	host.Focus(&term)
	call(t, s.handleMark, nil)

	text, isErr := call(t, s.handleFindPins, map[string]interface{}{"query": "term"})
	require.False(t, isErr, text)
	found := decode[output.PinsResult](t, text).Pins
	require.Len(t, found, 1)
	assert.Equal(t, 2, found[0].Position)
	require.NotNil(t, found[0].Score)

	host.CloseWindow(term)
	text, isErr = call(t, s.handleValidate, nil)
	require.False(t, isErr, text)
	removed := decode[output.ActionResult](t, text).Removed
	require.Len(t, removed, 1)
	assert.Equal(t, 2, removed[0].Position)
}

func TestTools_ListWindowsAndKeys(t *testing.T) {
	s, _ := startServer(t)

	text, isErr := call(t, s.handleListWindows, map[string]interface{}{"app": "TERM"})
	require.False(t, isErr, text)
	res := decode[output.WindowsResult](t, text)
	assert.Equal(t, []model.WindowRef{term}, res.Windows)
	require.NotNil(t, res.Focused)
	assert.Equal(t, editor, *res.Focused)

	text, _ = call(t, s.handleShowKeys, nil)
	assert.Contains(t, text, "leaderModifier: control")
}

type countingLister struct {
	calls   int
	windows []model.WindowRef
}

func (c *countingLister) Enumerate() ([]model.WindowRef, error) {
	c.calls++
	return c.windows, nil
}

func TestWindowCache_TTL(t *testing.T) {
	src := &countingLister{windows: []model.WindowRef{editor, term}}
	c := NewWindowCache(time.Second)
	now := time.Unix(100, 0)
	c.now = func() time.Time { return now }

	ws, err := c.Windows(src, "")
	require.NoError(t, err)
	assert.Len(t, ws, 2)
	_, _ = c.Windows(src, "")
	assert.Equal(t, 1, src.calls)

	ws, _ = c.Windows(src, "editor")
	assert.Equal(t, []model.WindowRef{editor}, ws)
	assert.Equal(t, 2, src.calls)

	now = now.Add(2 * time.Second)
	_, _ = c.Windows(src, "")
	assert.Equal(t, 3, src.calls)

	c.InvalidateAll()
	_, _ = c.Windows(src, "")
	assert.Equal(t, 4, src.calls)
}

func TestWindowCache_Disabled(t *testing.T) {
	src := &countingLister{}
	c := NewWindowCache(0)
	_, _ = c.Windows(src, "")
	_, _ = c.Windows(src, "")
	assert.Equal(t, 2, src.calls)
}
