package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("botToken", "test-token")
	t.Setenv("PORT", "3001")
	t.Setenv("enviroment", "test")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("DEFAULT_PREFIX", "!")

	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.BotToken != "test-token" {
		t.Errorf("BotToken = %v, want %v", config.BotToken, "test-token")
	}

	if config.Port != "3001" {
		t.Errorf("Port = %v, want %v", config.Port, "3001")
	}

	if config.Environment != "test" {
		t.Errorf("Environment = %v, want %v", config.Environment, "test")
	}

	if config.RedisAddr != "redis:6380" {
		t.Errorf("RedisAddr = %v, want %v", config.RedisAddr, "redis:6380")
	}

	if config.RedisDB != 2 {
		t.Errorf("RedisDB = %v, want %v", config.RedisDB, 2)
	}

	if config.DefaultPrefix != "!" {
		t.Errorf("DefaultPrefix = %v, want %v", config.DefaultPrefix, "!")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "test-value")

	if got := getEnv("TEST_VAR", "default"); got != "test-value" {
		t.Errorf("getEnv() = %v, want %v", got, "test-value")
	}

	if got := getEnv("NON_EXISTENT_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %v, want %v", got, "default")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "7")
	t.Setenv("TEST_BAD_INT", "seven")

	if got := getEnvInt("TEST_INT", 0); got != 7 {
		t.Errorf("getEnvInt() = %v, want %v", got, 7)
	}

	if got := getEnvInt("TEST_BAD_INT", 3); got != 3 {
		t.Errorf("getEnvInt() = %v, want %v", got, 3)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "false")
	t.Setenv("TEST_BAD_BOOL", "maybe")

	if got := getEnvBool("TEST_BOOL", true); got {
		t.Errorf("getEnvBool() = %v, want %v", got, false)
	}

	if got := getEnvBool("TEST_BAD_BOOL", true); !got {
		t.Errorf("getEnvBool() = %v, want %v", got, true)
	}
}

func TestIsProd(t *testing.T) {
	resetForTesting()
	t.Setenv("enviroment", "prod")
	config, _ := Load()

	if !config.IsProd() {
		t.Error("IsProd() should return true when environment is 'prod'")
	}

	resetForTesting()
	t.Setenv("enviroment", "dev")
	config, _ = Load()

	if config.IsProd() {
		t.Error("IsProd() should return false when environment is not 'prod'")
	}
}

func TestGet(t *testing.T) {
	resetForTesting()

	config := Get()
	if config == nil {
		t.Fatal("Get() returned nil")
	}

	if config2 := Get(); config != config2 {
		t.Error("Get() should return the same config on subsequent calls")
	}
}

func TestDefaultValues(t *testing.T) {
	for _, key := range []string{"botToken", "REDIS_ADDR", "REDIS_DB", "DEFAULT_PREFIX", "MQTT_Host", "MQTT_Port", "MQTT_ENABLED", "PORT", "enviroment", "LOG_LEVEL"} {
		os.Unsetenv(key)
	}

	resetForTesting()
	config, _ := Load()

	if config.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr default = %v, want %v", config.RedisAddr, "localhost:6379")
	}

	if config.RedisDB != 0 {
		t.Errorf("RedisDB default = %v, want %v", config.RedisDB, 0)
	}

	if config.DefaultPrefix != "rm;" {
		t.Errorf("DefaultPrefix default = %v, want %v", config.DefaultPrefix, "rm;")
	}

	if config.MQTTHost != "localhost" {
		t.Errorf("MQTTHost default = %v, want %v", config.MQTTHost, "localhost")
	}

	if config.MQTTPort != "1883" {
		t.Errorf("MQTTPort default = %v, want %v", config.MQTTPort, "1883")
	}

	if !config.MQTTEnabled {
		t.Error("MQTTEnabled default should be true")
	}

	if config.Port != "3000" {
		t.Errorf("Port default = %v, want %v", config.Port, "3000")
	}

	if config.Environment != "dev" {
		t.Errorf("Environment default = %v, want %v", config.Environment, "dev")
	}

	if config.LogLevel != "info" {
		t.Errorf("LogLevel default = %v, want %v", config.LogLevel, "info")
	}
}
