package logger

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

// levelOf recovers the LogLevel attached to an entry
func levelOf(entry *logrus.Entry) LogLevel {
	if level, ok := entry.Data[fieldLevel].(LogLevel); ok {
		return level
	}
	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return LevelCritical
	case logrus.ErrorLevel:
		return LevelError
	case logrus.WarnLevel:
		return LevelWarn
	case logrus.DebugLevel, logrus.TraceLevel:
		return LevelDebug
	default:
		return LevelInfo
	}
}

func moduleOf(entry *logrus.Entry) string {
	if module, ok := entry.Data[fieldModule].(string); ok && module != "" {
		return module
	}
	return "App"
}

// lineFormatter renders "[time] [LEVEL] [module]: message"
type lineFormatter struct {
	colors bool
}

// Format implements logrus.Formatter
func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	level := levelOf(entry)
	name := level.String()
	if f.colors {
		name = level.Color() + name + colorReset
	}

	line := fmt.Sprintf("[%s] [%s] [%s]: %s\n",
		entry.Time.Format(timestampFormat),
		name,
		moduleOf(entry),
		entry.Message,
	)
	return []byte(line), nil
}

// fileHook copies every entry to combined.log and errors to error.log
type fileHook struct {
	mu        sync.Mutex
	formatter lineFormatter
	combined  *os.File
	errors    *os.File
}

// Levels implements logrus.Hook
func (h *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook
func (h *fileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.combined != nil {
		if _, err := h.combined.Write(line); err != nil {
			return err
		}
	}
	if levelOf(entry) <= LevelError && h.errors != nil {
		if _, err := h.errors.Write(line); err != nil {
			return err
		}
	}
	return nil
}

// webhookHook forwards entries to Discord webhooks: errors to one, the rest to another
type webhookHook struct {
	errorURL string
	logsURL  string
	client   *http.Client
	pending  sync.WaitGroup
}

func newWebhookHook(errorURL, logsURL string) *webhookHook {
	return &webhookHook{
		errorURL: errorURL,
		logsURL:  logsURL,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// Levels implements logrus.Hook
func (h *webhookHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook
func (h *webhookHook) Fire(entry *logrus.Entry) error {
	level := levelOf(entry)
	url := h.logsURL
	if level <= LevelError {
		url = h.errorURL
	}
	if url == "" {
		return nil
	}

	payload, err := webhookPayload(level, moduleOf(entry), entry.Message, entry.Time)
	if err != nil {
		return err
	}

	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		h.post(url, payload)
	}()
	return nil
}

func (h *webhookHook) post(url string, payload []byte) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}

func (h *webhookHook) wait() {
	h.pending.Wait()
}

type webhookEmbed struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Color       int           `json:"color"`
	Timestamp   string        `json:"timestamp"`
	Footer      webhookFooter `json:"footer"`
}

type webhookFooter struct {
	Text string `json:"text"`
}

// webhookPayload builds the Discord webhook body for one entry
func webhookPayload(level LogLevel, module, message string, at time.Time) ([]byte, error) {
	return json.Marshal(map[string][]webhookEmbed{
		"embeds": {{
			Title:       fmt.Sprintf("[%s] %s", level.String(), module),
			Description: fmt.Sprintf("```%s```", message),
			Color:       level.DiscordColor(),
			Timestamp:   at.Format(time.RFC3339),
			Footer:      webhookFooter{Text: "Railmod Go"},
		}},
	})
}
