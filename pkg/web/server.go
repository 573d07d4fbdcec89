// Package web provides the bot's HTTP server: health and status endpoints,
// a read-only guild state API and the Prometheus scrape endpoint.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/PancyStudios/RailmodGo/pkg/logger"
	"github.com/PancyStudios/RailmodGo/pkg/state"
)

// BotStatus is what the server needs to know about the Discord client
type BotStatus interface {
	IsReady() bool
	GuildCount() int
	BotUser() *discordgo.User
}

// StoreStatus reports whether the key-value store answers
type StoreStatus interface {
	Status(ctx context.Context) (string, bool)
}

// Options configures a Server
type Options struct {
	// WebhookURL receives a log embed per request; empty disables it
	WebhookURL string

	// AllowedHosts is a regular expression matched against the Host header; empty allows all
	AllowedHosts string

	Engine *state.Engine
	Store  StoreStatus
	Bot    BotStatus

	RateLimit RateLimitConfig
}

// Server represents the web server
type Server struct {
	engine           *gin.Engine
	http             *http.Server
	webhookURL       string
	allowedHostRegex *regexp.Regexp

	state *state.Engine
	store StoreStatus
	bot   BotStatus
}

// NewServer creates a new web server with every route registered
func NewServer(opts Options) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:     engine,
		webhookURL: opts.WebhookURL,
		state:      opts.Engine,
		store:      opts.Store,
		bot:        opts.Bot,
	}

	if opts.AllowedHosts != "" {
		re, err := regexp.Compile(opts.AllowedHosts)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed hosts pattern: %w", err)
		}
		s.allowedHostRegex = re
	}

	limit := opts.RateLimit
	if limit.MaxRequests == 0 {
		limit = RateLimitConfig{Window: 60 * time.Second, MaxRequests: 100}
	}

	s.engine.Use(s.logsMiddleware())
	s.engine.Use(rateLimitMiddleware(newRateLimiter(limit)))

	s.setupErrorHandlers()
	s.setupRoutes()

	return s, nil
}

// Engine returns the underlying Gin engine
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// logsMiddleware logs incoming requests and rejects unknown hosts
func (s *Server) logsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Request.Host

		if s.allowedHostRegex == nil || s.allowedHostRegex.MatchString(host) {
			logger.Debug(fmt.Sprintf("Request: %s %s", c.Request.Method, c.Request.URL.Path), "WebServer")
			go s.sendLogToWebhook(c.Copy(), false)
			c.Next()
			return
		}

		logger.Warn(fmt.Sprintf("Suspicious request: %s %s | %s", c.Request.Method, c.Request.URL.Path, c.ClientIP()), "WebServer")
		go s.sendLogToWebhook(c.Copy(), true)
		c.AbortWithStatus(http.StatusForbidden)
	}
}

// sendLogToWebhook sends a log message to the Discord webhook
func (s *Server) sendLogToWebhook(c *gin.Context, suspicious bool) {
	if s.webhookURL == "" {
		return
	}

	title := fmt.Sprintf("New %s request to the web server", c.Request.Method)
	color := 0x00AE86

	if suspicious {
		title = fmt.Sprintf("Suspicious request rejected: %s %s", c.Request.Method, c.Request.URL.Path)
		color = 0xFFA500
	}

	query := c.Request.URL.RawQuery
	if query == "" {
		query = "{}"
	}

	payload := map[string]interface{}{
		"embeds": []interface{}{
			map[string]interface{}{
				"title": title,
				"description": fmt.Sprintf(
					"> **Path:** `%s`\n> **IP:** `%s`\n> **User-Agent:** `%s`\n> **Query:** ```%s```",
					c.Request.URL.Path,
					c.ClientIP(),
					c.Request.UserAgent(),
					query,
				),
				"color":     color,
				"timestamp": time.Now().Format(time.RFC3339),
			},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, s.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

type clientWindow struct {
	count   int
	resetAt time.Time
}

// rateLimiter counts requests per client IP in fixed windows. Expired windows
// are swept at most once per window, so idle clients do not pile up.
type rateLimiter struct {
	config    RateLimitConfig
	mu        sync.Mutex
	clients   map[string]*clientWindow
	nextSweep time.Time
}

func newRateLimiter(config RateLimitConfig) *rateLimiter {
	return &rateLimiter{
		config:  config,
		clients: make(map[string]*clientWindow),
	}
}

// allow records a request from ip at now and reports whether it is within the limit
func (l *rateLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.nextSweep) {
		for key, w := range l.clients {
			if now.After(w.resetAt) {
				delete(l.clients, key)
			}
		}
		l.nextSweep = now.Add(l.config.Window)
	}

	w, exists := l.clients[ip]
	if !exists || now.After(w.resetAt) {
		w = &clientWindow{resetAt: now.Add(l.config.Window)}
		l.clients[ip] = w
	}
	w.count++
	return w.count <= l.config.MaxRequests
}

// tracked returns how many clients currently hold a window
func (l *rateLimiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// rateLimitMiddleware implements a fixed-window limiter per client IP
func rateLimitMiddleware(limiter *rateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please try again later.",
			})
			return
		}

		c.Next()
	}
}

// setupErrorHandlers sets up error handling routes
func (s *Server) setupErrorHandlers() {
	s.engine.HandleMethodNotAllowed = true

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "The requested route does not exist.",
			"status":  http.StatusNotFound,
		})
	})

	s.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error":   "Method Not Allowed",
			"message": "The HTTP method is not allowed for this route.",
			"status":  http.StatusMethodNotAllowed,
		})
	})
}

// Start listens on the given port until Shutdown is called
func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info(fmt.Sprintf("Web server listening on http://localhost:%s", port), "WebServer")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync(port string) {
	go func() {
		if err := s.Start(port); err != nil {
			logger.Error(fmt.Sprintf("Error starting web server: %v", err), "WebServer")
		}
	}()
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
