package x11

import (
	"testing"

	"github.com/mj1618/slotjump/internal/model"
)

func TestParseWmctrl(t *testing.T) {
	out := `0x01e00003 -1 1201   xfce4-panel.Xfce4-panel  box xfce4-panel
0x03a00007  0 12345  code.Code             box main.go  -  slotjump - Visual Studio Code
0x04000001  1 2222   org.wezfurlong.wezterm.org.wezfurlong.wezterm  box
`
	got, err := parseWmctrl(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d windows, want 2: %+v", len(got), got)
	}
	want := model.WindowRef{
		StableID:     0x03a00007,
		OwnerAppID:   "code.Code",
		OwnerAppName: "Code",
		Title:        "main.go  -  slotjump - Visual Studio Code",
		PID:          12345,
	}
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
	if got[1].Title != "" || got[1].OwnerAppName != "wezterm" {
		t.Errorf("untitled window parsed as %+v", got[1])
	}
}

func TestParseWmctrl_Malformed(t *testing.T) {
	for _, out := range []string{"0x1 0", "zzz 0 1 a.b host t", "0x1 x 1 a.b host t"} {
		if _, err := parseWmctrl(out); err == nil {
			t.Errorf("parseWmctrl(%q) should fail", out)
		}
	}
}

func TestParseActiveWindow(t *testing.T) {
	id, err := parseActiveWindow("60817415\n")
	if err != nil || id != 60817415 {
		t.Errorf("got %d, %v", id, err)
	}
	if id, err := parseActiveWindow(""); err != nil || id != 0 {
		t.Errorf("empty output: got %d, %v", id, err)
	}
	if _, err := parseActiveWindow("abc"); err == nil {
		t.Error("expected error")
	}
}
