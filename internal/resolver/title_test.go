package resolver

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  main.rs  ", "main.rs"},
		{"● main.rs", "main.rs"},
		{"main.rs •", "main.rs"},
		{"* notes.txt", "notes.txt"},
		{"Report.docx — Edited", "report.docx"},
		{"Report.docx - Edited", "report.docx"},
		{"Report.docx (Edited)", "report.docx"},
		{"| Inbox |", "inbox"},
		{"main.rs — slotjump", "main.rs — slotjump"},
		{"•••", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitlesMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"main.rs", "main.rs — renamed", true},
		{"main.rs — renamed", "main.rs", true},
		{"● main.rs", "main.rs", true},
		{"main.rs", "lib.rs", false},
		{"", "", true},
		{"", "main.rs", false},
		{"•", "main.rs", false},
	}
	for _, tt := range tests {
		if got := TitlesMatch(tt.a, tt.b); got != tt.want {
			t.Errorf("TitlesMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
