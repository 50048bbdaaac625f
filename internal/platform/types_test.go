package platform

import "testing"

func TestParseBackend_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "auto"},
		{"auto", "auto"},
		{"macOS", "darwin"},
		{"darwin", "darwin"},
		{"X11", "x11"},
		{"linux", "x11"},
		{" fake ", "fake"},
	}
	for _, tt := range tests {
		got, err := ParseBackend(tt.input)
		if err != nil {
			t.Errorf("ParseBackend(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseBackend(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseBackend_Invalid(t *testing.T) {
	if _, err := ParseBackend("wayland"); err == nil {
		t.Error("ParseBackend(\"wayland\") should fail")
	}
}

func TestDecisionString(t *testing.T) {
	if Suppress.String() != "suppress" || PassThrough.String() != "pass-through" {
		t.Errorf("got %q / %q", Suppress, PassThrough)
	}
}
