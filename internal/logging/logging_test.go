package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_InvalidLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "slotjump.log")
	logger, closer, err := New(Options{Level: "debug", Path: path})
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug().Int("position", 3).Msg("jumped")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"position":3`) || !strings.Contains(string(data), `"message":"jumped"`) {
		t.Errorf("unexpected log line: %s", data)
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.WarnLevel)
	ctx := WithContext(context.Background(), logger)
	if got := FromContext(ctx).GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("level = %s, want warn", got)
	}
	if got := FromContext(context.Background()).GetLevel(); got != zerolog.Disabled {
		t.Errorf("empty context level = %s, want disabled", got)
	}
}
