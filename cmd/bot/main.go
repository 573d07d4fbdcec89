// Package main is the entry point for the Railmod bot.
// It initializes all systems and starts the Discord gateway.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PancyStudios/RailmodGo/internal/commands"
	"github.com/PancyStudios/RailmodGo/internal/events"
	"github.com/PancyStudios/RailmodGo/pkg/config"
	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/errors"
	"github.com/PancyStudios/RailmodGo/pkg/logger"
	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
	"github.com/PancyStudios/RailmodGo/pkg/state"
	"github.com/PancyStudios/RailmodGo/pkg/store"
	"github.com/PancyStudios/RailmodGo/pkg/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(logger.Options{
		LogsDir:      "logs",
		ErrorWebhook: cfg.ErrorWebhook,
		LogsWebhook:  cfg.LogsWebhook,
		Level:        cfg.LogLevel,
	})
	defer log.Close()

	logger.System(fmt.Sprintf("Starting Railmod %s (built %s)...", config.Version, config.BuildTime), "Main")
	logger.Info(fmt.Sprintf("Working directory: %s", getCurrentDir()), "Main")

	// Initialize error handler
	errors.Init(cfg.ErrorWebhook)

	// Connect to Redis. An unreachable store is not fatal: reads fall back to
	// defaults until it comes back.
	redisStore := store.NewRedisStore(store.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisStore.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisStore.Ping(pingCtx); err != nil {
		logger.Error(fmt.Sprintf("Redis is not reachable at %s: %v", cfg.RedisAddr, err), "Main")
	} else {
		logger.Success("Connected to Redis at "+cfg.RedisAddr, "Main")
	}
	cancel()

	engine := state.NewEngine(redisStore, state.Options{DefaultPrefix: cfg.DefaultPrefix})

	// Initialize MQTT
	var publisher mqtt.EventPublisher = mqtt.NopPublisher{}
	if cfg.MQTTEnabled {
		mqttClientID := "railmod"
		if !cfg.IsProd() {
			mqttClientID = "railmod_canary"
		}

		mqttClient := mqtt.NewMqttCommunicator(mqtt.Options{
			Host:     cfg.MQTTHost,
			Port:     cfg.MQTTPort,
			Username: cfg.MQTTUser,
			Password: cfg.MQTTPassword,
			ClientID: mqttClientID,
		})
		defer mqttClient.Destroy()

		mqtt.RegisterResponders(mqttClient, engine)
		publisher = mqttClient
	} else {
		logger.Info("MQTT disabled, events will not be published", "Main")
	}

	// Initialize Discord client
	discordClient, err := discord.NewClient(cfg.BotToken, engine, publisher)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	commands.RegisterAll(discordClient.CommandHandler)
	events.RegisterAll(discordClient)

	// Initialize web server
	webServer, err := web.NewServer(web.Options{
		WebhookURL:   cfg.LogsWebServerHook,
		AllowedHosts: cfg.AllowedHosts,
		Engine:       engine,
		Store:        redisStore,
		Bot:          discordClient,
	})
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating web server: %v", err), "Main")
		os.Exit(1)
	}
	webServer.StartAsync(cfg.Port)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}

	logger.Success("Railmod started!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Shutting down Railmod...", "Main")

	if err := discordClient.Stop(); err != nil {
		logger.Error(fmt.Sprintf("Error closing Discord session: %v", err), "Main")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := webServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(fmt.Sprintf("Error stopping web server: %v", err), "Main")
	}
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
