package keybind

import (
	"encoding/json"
	"testing"
)

func TestModifierSet_Operations(t *testing.T) {
	a := NewModifierSet(ModControl, ModOption)
	b := NewModifierSet(ModControl)

	if !a.Has(ModOption) || a.Has(ModShift) {
		t.Errorf("membership wrong for %s", a)
	}
	if !b.IsSubsetOf(a) || a.IsSubsetOf(b) {
		t.Error("subset relation wrong")
	}
	if got := b.Union(NewModifierSet(ModOption)); !got.Equal(a) {
		t.Errorf("union = %s, want %s", got, a)
	}
	if got := a.Without(ModOption); !got.Equal(b) {
		t.Errorf("without = %s, want %s", got, b)
	}
	if a.Len() != 2 || !NewModifierSet().Empty() {
		t.Error("len/empty wrong")
	}
	if !NewModifierSet().IsSubsetOf(b) {
		t.Error("empty set is a subset of every set")
	}
}

func TestModifierSet_CanonicalOrder(t *testing.T) {
	s := NewModifierSet(ModCommand, ModShift, ModControl)
	got := s.Names()
	want := []string{"control", "shift", "command"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestModifierSet_JSON(t *testing.T) {
	data, err := json.Marshal(NewModifierSet(ModOption, ModControl))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["control","option"]` {
		t.Errorf("marshal = %s", data)
	}

	var s ModifierSet
	if err := json.Unmarshal([]byte(`["alt","cmd"]`), &s); err != nil {
		t.Fatal(err)
	}
	if !s.Equal(NewModifierSet(ModOption, ModCommand)) {
		t.Errorf("unmarshal = %s", s)
	}

	if err := json.Unmarshal([]byte(`["hyper"]`), &s); err == nil {
		t.Error("expected error for unknown modifier")
	}
}

func TestParseModifier_Aliases(t *testing.T) {
	tests := map[string]Modifier{
		"ctrl": ModControl, "Control": ModControl,
		"alt": ModOption, "opt": ModOption,
		"cmd": ModCommand, "SHIFT": ModShift,
	}
	for in, want := range tests {
		got, err := ParseModifier(in)
		if err != nil || got != want {
			t.Errorf("ParseModifier(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseModifier("fn"); err == nil {
		t.Error("ParseModifier(\"fn\") should fail")
	}
}

func TestKey_Digit(t *testing.T) {
	for n := 1; n <= 9; n++ {
		d, ok := DigitKey(n).Digit()
		if !ok || d != n {
			t.Errorf("DigitKey(%d).Digit() = %d, %v", n, d, ok)
		}
	}
	for _, k := range []Key{"0", "a", KeyEscape, "f1"} {
		if _, ok := k.Digit(); ok {
			t.Errorf("%q should not be a slot digit", k)
		}
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"H", "h"},
		{" esc ", KeyEscape},
		{"Enter", KeyReturn},
		{"F12", "f12"},
		{"7", "7"},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseKey(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"", "hyper", "ctrl+a"} {
		if _, err := ParseKey(bad); err == nil {
			t.Errorf("ParseKey(%q) should fail", bad)
		}
	}
}

func TestFormatChord(t *testing.T) {
	cfg := Default()
	if got := cfg.TogglePickerChord(); got != "⌃H" {
		t.Errorf("TogglePickerChord() = %q", got)
	}
	if got := cfg.MarkToPositionChord(3); got != "⌃⌥3" {
		t.Errorf("MarkToPositionChord(3) = %q", got)
	}
	if got := cfg.QuickJumpChord(9); got != "⌃9" {
		t.Errorf("QuickJumpChord(9) = %q", got)
	}
	if got := FormatChordText(NewModifierSet(ModShift, ModControl), KeyEscape); got != "control+shift+escape" {
		t.Errorf("FormatChordText = %q", got)
	}
	if n := len(cfg.Bindings()); n != 6 {
		t.Errorf("Bindings() has %d rows, want 6", n)
	}
}
