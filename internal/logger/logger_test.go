package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nzaccagnino/studydesk/internal/config"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud"}); err == nil {
		t.Error("Expected invalid level error")
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := New(config.LogConfig{Level: "info", Format: "json", File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	log.WithComponent("sync").WithError(errors.New("boom")).Warnw("save failed", "bin", "b1")
	log.Debugw("hidden")
	_ = log.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"component":"sync"`, `"error":"boom"`, `"bin":"b1"`, "save failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %s in log output: %s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Error("Expected debug entry to be filtered")
	}
}
