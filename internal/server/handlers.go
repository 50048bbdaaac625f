package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/output"
	"github.com/mj1618/slotjump/internal/registry"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_pins",
			mcp.WithDescription("List the pinned windows in slot order, with the last time each was jumped to"),
		),
		s.handleListPins,
	)

	s.mcp.AddTool(
		mcp.NewTool("find_pins",
			mcp.WithDescription("Fuzzy-search pinned windows by app name and title, best match first"),
			mcp.WithString("query", mcp.Description("Search text, e.g. 'code main'"), mcp.Required()),
		),
		s.handleFindPins,
	)

	s.mcp.AddTool(
		mcp.NewTool("mark_window",
			mcp.WithDescription("Pin the currently focused window. Without a position it takes the lowest free slot; with one it replaces that slot."),
			mcp.WithNumber("position", mcp.Description("Slot 1-9 (optional)")),
		),
		s.handleMark,
	)

	s.mcp.AddTool(
		mcp.NewTool("jump",
			mcp.WithDescription("Bring the window pinned at a slot to the front. A slot whose window has closed is removed."),
			mcp.WithNumber("position", mcp.Description("Slot 1-9"), mcp.Required()),
		),
		s.handleJump,
	)

	s.mcp.AddTool(
		mcp.NewTool("remove_pin",
			mcp.WithDescription("Clear a slot"),
			mcp.WithNumber("position", mcp.Description("Slot 1-9"), mcp.Required()),
		),
		s.handleRemove,
	)

	s.mcp.AddTool(
		mcp.NewTool("validate_pins",
			mcp.WithDescription("Remove every slot whose window no longer exists"),
		),
		s.handleValidate,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List the open windows that can be pinned"),
			mcp.WithString("app", mcp.Description("Filter by application name or id substring")),
		),
		s.handleListWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("show_keys",
			mcp.WithDescription("Show the active chord bindings"),
		),
		s.handleShowKeys,
	)
}

func (s *Server) handleListPins(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var slots []model.PinSlot
	if err := s.app.Do(ctx, func(reg *registry.Registry) error {
		slots = reg.List()
		return nil
	}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(output.NewPinsResult(slots, time.Now()))
}

func (s *Server) handleFindPins(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := stringParam(request.GetArguments(), "query", "")
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	var matches []registry.Match
	if err := s.app.Do(ctx, func(reg *registry.Registry) error {
		matches = registry.Find(reg.List(), query)
		return nil
	}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(output.NewFindResult(matches, time.Now()))
}

func (s *Server) handleMark(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	position := intParam(request.GetArguments(), "position", 0)
	var slot model.PinSlot
	err := s.app.Do(ctx, func(reg *registry.Registry) error {
		var err error
		if position == 0 {
			slot, err = reg.MarkCurrent()
		} else {
			slot, err = reg.MarkAt(position)
		}
		return err
	})
	if err != nil {
		return actionError("mark", err)
	}
	return textResult(output.ActionResult{OK: true, Action: "mark", Slot: &slot})
}

func (s *Server) handleJump(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	position, ok := requirePosition(request)
	if !ok {
		return mcp.NewToolResultError("position is required"), nil
	}
	var w model.WindowRef
	err := s.app.Do(ctx, func(reg *registry.Registry) error {
		var err error
		w, err = reg.Jump(position)
		return err
	})
	s.windows.InvalidateAll()
	if err != nil {
		return actionError("jump", err)
	}
	return textResult(output.ActionResult{OK: true, Action: "jump", Window: &w})
}

func (s *Server) handleRemove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	position, ok := requirePosition(request)
	if !ok {
		return mcp.NewToolResultError("position is required"), nil
	}
	err := s.app.Do(ctx, func(reg *registry.Registry) error {
		return reg.Remove(position)
	})
	if err != nil {
		return actionError("remove", err)
	}
	return textResult(output.ActionResult{OK: true, Action: "remove", Message: fmt.Sprintf("slot %d cleared", position)})
}

func (s *Server) handleValidate(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var removed []model.PinSlot
	err := s.app.Do(ctx, func(reg *registry.Registry) error {
		var err error
		removed, err = reg.ValidateAll()
		return err
	})
	s.windows.InvalidateAll()
	if err != nil {
		return actionError("validate", err)
	}
	return textResult(output.ActionResult{OK: true, Action: "validate", Removed: removed})
}

func (s *Server) handleListWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := stringParam(request.GetArguments(), "app", "")
	windows, err := s.windows.Windows(s.app.Resolver(), app)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	focused, ok, err := s.app.Resolver().CurrentFocused()
	res := output.WindowsResult{Windows: windows}
	if err == nil && ok {
		res.Focused = &focused
	}
	return textResult(res)
}

func (s *Server) handleShowKeys(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := s.app.Keybinds().Current()
	return textResult(output.KeysResult{Config: cfg, Bindings: cfg.Bindings()})
}

func textResult(v interface{}) (*mcp.CallToolResult, error) {
	text, err := output.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// actionError reports a registry failure as a tool error. The known
// failures carry their own message; anything else is prefixed.
func actionError(action string, err error) (*mcp.CallToolResult, error) {
	res := output.ActionResult{Action: action, Message: err.Error()}
	if !isUserError(err) {
		res.Message = fmt.Sprintf("%s failed: %v", action, err)
	}
	text, merr := output.Marshal(res)
	if merr != nil {
		text = res.Message
	}
	return mcp.NewToolResultError(text), nil
}

func isUserError(err error) bool {
	for _, target := range []error{
		registry.ErrNoFocusedWindow,
		registry.ErrAllSlotsFull,
		registry.ErrInvalidPosition,
		registry.ErrNoWindowAtPosition,
		registry.ErrWindowNoLongerExists,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func requirePosition(request mcp.CallToolRequest) (int, bool) {
	n := intParam(request.GetArguments(), "position", 0)
	return n, n != 0
}

// Parameter extraction helpers for tool arguments

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}
