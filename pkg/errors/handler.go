// Package errors provides error counting, panic recovery and webhook reporting
// for the bot. No error is fatal: handlers recover, count and report.
package errors

import (
	"bytes"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/PancyStudios/RailmodGo/pkg/logger"
)

// ErrorHandler manages error counting and reporting
type ErrorHandler struct {
	errorCount int64
	panicCount int64
	webhookURL string
	client     *http.Client
}

// ReportErrorOptions contains options for reporting an error
type ReportErrorOptions struct {
	Error   string
	Message string
}

var (
	handler *ErrorHandler
	once    sync.Once
)

// Init initializes the global error handler
func Init(webhookURL string) *ErrorHandler {
	once.Do(func() {
		handler = NewErrorHandler(webhookURL)
	})
	return handler
}

// Get returns the global error handler instance
func Get() *ErrorHandler {
	return handler
}

// NewErrorHandler creates a new ErrorHandler instance
func NewErrorHandler(webhookURL string) *ErrorHandler {
	return &ErrorHandler{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// IncrementError increments the error count
func (h *ErrorHandler) IncrementError() {
	count := atomic.AddInt64(&h.errorCount, 1)
	logger.Debug(fmt.Sprintf("Error count: %d", count), "AntiCrash")
}

// Errors returns how many errors have been counted since start
func (h *ErrorHandler) Errors() int64 {
	return atomic.LoadInt64(&h.errorCount)
}

// Panics returns how many panics have been recovered since start
func (h *ErrorHandler) Panics() int64 {
	return atomic.LoadInt64(&h.panicCount)
}

// HandlePanic handles a recovered panic
func (h *ErrorHandler) HandlePanic(source string, recovered interface{}) {
	atomic.AddInt64(&h.panicCount, 1)
	h.IncrementError()

	logger.Error(fmt.Sprintf("Panic in %s: %v", source, recovered), "AntiCrash")
	logger.Debug(string(debug.Stack()), "AntiCrash")

	go h.Report(ReportErrorOptions{
		Error:   fmt.Sprintf("panic in %s", source),
		Message: fmt.Sprintf("```%v```", recovered),
	})
}

// Report sends an error report to the Discord webhook
func (h *ErrorHandler) Report(data ReportErrorOptions) {
	if h.webhookURL == "" {
		return
	}

	payload := map[string]interface{}{
		"embeds": []interface{}{
			map[string]interface{}{
				"author": map[string]string{
					"name": fmt.Sprintf("Error %s", data.Error),
				},
				"description": data.Message,
				"color":       0xFF0000,
				"footer": map[string]string{
					"text": "Railmod Go",
				},
				"timestamp": time.Now().Format(time.RFC3339),
			},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to marshal error report: %v", err), "AntiCrash")
		return
	}

	req, err := http.NewRequest(http.MethodPost, h.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to create webhook request: %v", err), "AntiCrash")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send error report: %v", err), "AntiCrash")
		return
	}
	defer resp.Body.Close()

	logger.Warn(fmt.Sprintf("Sent ErrorReport to Webhook, Status: %d", resp.StatusCode), "AntiCrash")
}

// Handle routes a recovered panic to the global handler
func Handle(source string, recovered interface{}) {
	if handler != nil {
		handler.HandlePanic(source, recovered)
		return
	}
	logger.Error(fmt.Sprintf("Panic recovered in %s (no handler): %v", source, recovered), "AntiCrash")
}

// RecoverMiddleware returns a recovery function for use in deferred calls:
//
//	defer errors.RecoverMiddleware("event ready")()
func RecoverMiddleware(source string) func() {
	return func() {
		if r := recover(); r != nil {
			Handle(source, r)
		}
	}
}
