package logger

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer
	l := NewLogger(Options{Console: &out, Level: "debug"})
	if l == nil {
		t.Fatal("Expected logger to be created, got nil")
	}

	l.Info("Test info message", "TEST")
	l.Warn("Test warning message", "TEST")
	l.Debug("Test debug message", "TEST")
	l.System("Test system message", "TEST")
	l.Success("Test success message", "TEST")
	l.Close()

	got := out.String()
	for _, want := range []string{"INFO", "WARN", "DEBUG", "SYSTEM", "SUCCESS", "[TEST]: Test info message"} {
		if !strings.Contains(got, want) {
			t.Errorf("console output missing %q:\n%s", want, got)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var out bytes.Buffer
	l := NewLogger(Options{Console: &out, Level: "info"})

	l.Debug("hidden", "TEST")
	l.Info("shown", "TEST")

	if strings.Contains(out.String(), "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out.String(), "shown") {
		t.Error("info message should be written")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"nonsense", logrus.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelCritical, "CRITICAL"},
		{LevelError, "ERROR"},
		{LevelWarn, "WARN"},
		{LevelSuccess, "SUCCESS"},
		{LevelInfo, "INFO"},
		{LevelDebug, "DEBUG"},
		{LevelSystem, "SYSTEM"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLogLevelDiscordColor(t *testing.T) {
	tests := []struct {
		level LogLevel
		color int
	}{
		{LevelCritical, 0xFF0000},
		{LevelError, 0xFF0000},
		{LevelWarn, 0xFFFF00},
		{LevelSuccess, 0x00FF00},
		{LevelInfo, 0x0000FF},
		{LevelDebug, 0x800080},
		{LevelSystem, 0x808080},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := tt.level.DiscordColor(); got != tt.color {
				t.Errorf("LogLevel.DiscordColor() = %v, want %v", got, tt.color)
			}
		})
	}
}

func TestLogFiles(t *testing.T) {
	logsDir := filepath.Join(t.TempDir(), "logs")

	l := NewLogger(Options{LogsDir: logsDir, Console: io.Discard})
	l.Info("all good", "TEST")
	l.Error("went wrong", "TEST")
	l.Close()

	combined, err := os.ReadFile(filepath.Join(logsDir, "combined.log"))
	if err != nil {
		t.Fatalf("Expected combined.log to be created: %v", err)
	}
	errorsLog, err := os.ReadFile(filepath.Join(logsDir, "error.log"))
	if err != nil {
		t.Fatalf("Expected error.log to be created: %v", err)
	}

	if !strings.Contains(string(combined), "all good") || !strings.Contains(string(combined), "went wrong") {
		t.Errorf("combined.log = %q, want both messages", combined)
	}
	if strings.Contains(string(errorsLog), "all good") {
		t.Errorf("error.log should only hold errors, got %q", errorsLog)
	}
	if strings.Contains(string(combined), "\033[") {
		t.Error("log files should not contain color codes")
	}
}

func TestWebhookForwarding(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []map[string][]webhookEmbed
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string][]webhookEmbed
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		bodies = append(bodies, body)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	l := NewLogger(Options{ErrorWebhook: server.URL, Console: io.Discard})
	l.Info("not forwarded", "TEST")
	l.Error("store offline", "Store")
	l.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(bodies) != 1 {
		t.Fatalf("webhook calls = %d, want 1", len(bodies))
	}
	embed := bodies[0]["embeds"][0]
	if embed.Title != "[ERROR] Store" {
		t.Errorf("embed title = %q, want %q", embed.Title, "[ERROR] Store")
	}
	if embed.Color != 0xFF0000 {
		t.Errorf("embed color = %v, want %v", embed.Color, 0xFF0000)
	}
}

func TestGlobalLoggerInit(t *testing.T) {
	logger = nil
	once = sync.Once{}

	l := Init(Options{Console: io.Discard})
	if l == nil {
		t.Fatal("Expected Init to return a logger")
	}

	l2 := Init(Options{Level: "debug"})
	if l != l2 {
		t.Error("Expected Init to return the same logger on subsequent calls")
	}

	if l3 := Get(); l != l3 {
		t.Error("Expected Get to return the same logger")
	}

	l.Close()
}
