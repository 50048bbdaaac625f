package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/slotjump/internal/keybind"
	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/registry"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Out is where results are written.
var Out io.Writer = os.Stdout

// PinRow is one slot as shown by `pins`.
type PinRow struct {
	Position     int             `yaml:"position"               json:"position"`
	ID           string          `yaml:"id"                     json:"id"`
	App          string          `yaml:"app"                    json:"app"`
	Title        string          `yaml:"title"                  json:"title"`
	Window       model.WindowRef `yaml:"window"                 json:"window"`
	LastAccessed *time.Time      `yaml:"lastAccessed,omitempty" json:"lastAccessed,omitempty"`
	LastUsed     string          `yaml:"lastUsed,omitempty"     json:"lastUsed,omitempty"`
	Score        *int            `yaml:"score,omitempty"        json:"score,omitempty"`
}

// PinsResult is the output of `pins` and `pins find`.
type PinsResult struct {
	Pins []PinRow `yaml:"pins" json:"pins"`
}

// NewPinRow flattens a slot for display. LastUsed is relative to now.
func NewPinRow(s model.PinSlot, now time.Time) PinRow {
	row := PinRow{
		Position:     s.Position,
		ID:           s.ID,
		App:          s.Window.AppName(),
		Title:        s.Window.Title,
		Window:       s.Window,
		LastAccessed: s.LastAccessed,
	}
	if s.LastAccessed != nil {
		row.LastUsed = humanize.RelTime(*s.LastAccessed, now, "ago", "from now")
	}
	return row
}

// NewPinsResult builds the `pins` output in position order.
func NewPinsResult(slots []model.PinSlot, now time.Time) PinsResult {
	res := PinsResult{Pins: make([]PinRow, 0, len(slots))}
	for _, s := range slots {
		res.Pins = append(res.Pins, NewPinRow(s, now))
	}
	return res
}

// WindowsResult is the output of `windows`.
type WindowsResult struct {
	Focused *model.WindowRef  `yaml:"focused,omitempty" json:"focused,omitempty"`
	Windows []model.WindowRef `yaml:"windows"           json:"windows"`
}

// KeysResult is the output of the `keys` commands.
type KeysResult struct {
	Path     string            `yaml:"path,omitempty"     json:"path,omitempty"`
	Config   keybind.Config    `yaml:"config"             json:"config"`
	Bindings []keybind.Binding `yaml:"bindings,omitempty" json:"bindings,omitempty"`
}

// ActionResult reports the outcome of a mutating command.
type ActionResult struct {
	OK      bool             `yaml:"ok"                json:"ok"`
	Action  string           `yaml:"action"            json:"action"`
	Slot    *model.PinSlot   `yaml:"slot,omitempty"    json:"slot,omitempty"`
	Window  *model.WindowRef `yaml:"window,omitempty"  json:"window,omitempty"`
	Removed []model.PinSlot  `yaml:"removed,omitempty" json:"removed,omitempty"`
	Message string           `yaml:"message,omitempty" json:"message,omitempty"`
}

// Print serializes v to Out in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return PrintPrettyJSON(v)
		}
		return PrintJSON(v)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to Out as compact single-line JSON.
func PrintJSON(v interface{}) error {
	enc := json.NewEncoder(Out)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintPrettyJSON serializes v to Out as indented JSON.
func PrintPrettyJSON(v interface{}) error {
	enc := json.NewEncoder(Out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintYAML serializes v to Out as YAML.
func PrintYAML(v interface{}) error {
	enc := yaml.NewEncoder(Out)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// Marshal renders v in the current output format, for callers that need a
// string (MCP tool results).
func Marshal(v interface{}) (string, error) {
	if OutputFormat == FormatJSON {
		data, err := json.MarshalIndent(v, "", "  ")
		return string(data), err
	}
	data, err := yaml.Marshal(v)
	return string(data), err
}

// NewFindResult builds the `pins find` output in rank order.
func NewFindResult(matches []registry.Match, now time.Time) PinsResult {
	res := PinsResult{Pins: make([]PinRow, 0, len(matches))}
	for _, m := range matches {
		row := NewPinRow(m.Slot, now)
		score := m.Distance
		row.Score = &score
		res.Pins = append(res.Pins, row)
	}
	return res
}
