package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/slotjump/internal/output"
)

func TestPinsCommand_IsRegistered(t *testing.T) {
	for _, c := range pinsCmd.Commands() {
		if c.Name() == "find" {
			return
		}
	}
	t.Error("find not registered under pins")
}

func TestMarkJumpPins_PersistAcrossInvocations(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "mark")
	require.NoError(t, err)
	assert.Contains(t, out, "position: 1")

	out, err = env.run(t, "mark", "--position", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "position: 4")

	out, err = env.run(t, "--format", "json", "pins")
	require.NoError(t, err)
	var pins output.PinsResult
	require.NoError(t, json.Unmarshal([]byte(out), &pins))
	require.Len(t, pins.Pins, 2)
	assert.Equal(t, 1, pins.Pins[0].Position)
	assert.Equal(t, 4, pins.Pins[1].Position)
	assert.Equal(t, "Terminal", pins.Pins[1].App)

	out, err = env.run(t, "jump", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "action: jump")
	assert.Len(t, demoHost.Activated(), 1)

	out, err = env.run(t, "pins")
	require.NoError(t, err)
	assert.Contains(t, out, "lastUsed:")
}

func TestJump_EmptySlot(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "jump", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no window at position")
}

func TestRemoveAndValidate(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "mark", "--position", "2")
	require.NoError(t, err)

	_, err = env.run(t, "remove", "2")
	require.NoError(t, err)
	out, err := env.run(t, "pins")
	require.NoError(t, err)
	assert.Contains(t, out, "pins: []")

	_, err = env.run(t, "mark")
	require.NoError(t, err)
	focused, err := demoHost.FocusedWindow()
	require.NoError(t, err)
	require.NotNil(t, focused)
	demoHost.CloseWindow(*focused)

	out, err = env.run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "removed:")
	assert.Contains(t, out, "Terminal")

	out, err = env.run(t, "pins")
	require.NoError(t, err)
	assert.Contains(t, out, "pins: []")
}

func TestPinsFind(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "mark")
	require.NoError(t, err)

	out, err := env.run(t, "pins", "find", "term")
	require.NoError(t, err)
	assert.Contains(t, out, "score:")

	out, err = env.run(t, "pins", "find", "chrome")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "pins: []"), out)
}
