package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitWritesJSONToRollingFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "pong.log")
	props := "logFilename = " + logFile + "\nlevel = Warn\nconsole = false\n"
	if err := os.WriteFile(filepath.Join(dir, "logger.properties"), []byte(props), 0o644); err != nil {
		t.Fatal(err)
	}

	l := &Logger{}
	if err := l.Init(dir); err != nil {
		t.Fatal(err)
	}
	l.Info("dropped below warn")
	l.Warn("kept")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), data)
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if entry["msg"] != "kept" || entry["level"] != "warning" {
		t.Errorf("entry %v", entry)
	}
}

func TestInitWithoutPropertiesUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	l := &Logger{}
	if err := l.Init(dir); err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	if logrus.GetLevel() != logrus.InfoLevel {
		t.Errorf("level %v, want info", logrus.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"Trace": logrus.TraceLevel,
		"Info":  logrus.InfoLevel,
		"Warn":  logrus.WarnLevel,
		"Error": logrus.ErrorLevel,
		"Fatal": logrus.FatalLevel,
		"":      logrus.DebugLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
