package utils_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productforge/backend/internal/config"
	"github.com/productforge/backend/internal/utils"
)

// captureOutput captures log output for testing
func captureOutput(fn func()) string {
	original := log.Logger
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	}()

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	fn()

	return buf.String()
}

// lastEntry decodes the last JSON log line.
func lastEntry(t *testing.T, output string) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.NotEmpty(t, lines)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func createTestConfig() *config.AppConfig {
	return &config.AppConfig{
		App: config.AppSettings{
			Name:        "test-app",
			Version:     "1.0.0",
			Environment: "testing",
		},
		Logging: config.LoggingSettings{
			Level:  "debug",
			Format: "json",
		},
	}
}

func TestInitLoggerWithWriter(t *testing.T) {
	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
	}()

	var buf bytes.Buffer
	utils.InitLoggerWithWriter(createTestConfig(), &buf)

	entry := lastEntry(t, buf.String())
	assert.Equal(t, "Logger initialized", entry["message"])
	assert.Equal(t, "test-app", entry["app"])
	assert.Equal(t, "testing", entry["env"])
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestInitLoggerWithWriter_InvalidLevel(t *testing.T) {
	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
	}()

	cfg := createTestConfig()
	cfg.Logging.Level = "chatty"

	var buf bytes.Buffer
	utils.InitLoggerWithWriter(cfg, &buf)

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestRequestLogger(t *testing.T) {
	output := captureOutput(func() {
		logger := utils.RequestLogger("req-123", "user-456", "GET", "/api/export/history")
		logger.Info().Msg("Test request log")
	})

	entry := lastEntry(t, output)
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "user-456", entry["user_id"])
	assert.Equal(t, "/api/export/history", entry["path"])

	output = captureOutput(func() {
		logger := utils.RequestLogger("req-789", "", "POST", "/api/export")
		logger.Info().Msg("Test request log")
	})
	assert.NotContains(t, output, "user_id")
}

func TestLogHTTPRequest(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel string
	}{
		{"api success", "/api/export", 200, "info"},
		{"client error", "/api/export", 400, "warn"},
		{"server error", "/api/export", 500, "error"},
		{"non api", "/version", 200, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(func() {
				utils.LogHTTPRequest("req-1", "POST", tt.path, "127.0.0.1", "test-agent", tt.status, 15*time.Millisecond)
			})

			entry := lastEntry(t, output)
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, float64(tt.status), entry["status"])
		})
	}
}

func TestLogHTTPRequest_HealthSkippedAboveDebug(t *testing.T) {
	original := log.Logger
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	}()

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	utils.LogHTTPRequest("req-1", "GET", "/health", "127.0.0.1", "probe", 200, time.Millisecond)

	assert.Empty(t, buf.String())
}

func TestLogError(t *testing.T) {
	output := captureOutput(func() {
		utils.LogError(errors.New("write failed"), map[string]interface{}{
			"key":     "exportHistory",
			"attempt": 2,
			"retry":   false,
		})
	})

	entry := lastEntry(t, output)
	assert.Equal(t, "write failed", entry["error"])
	assert.Equal(t, "exportHistory", entry["key"])
	assert.Equal(t, float64(2), entry["attempt"])
}

func TestLogPanic(t *testing.T) {
	output := captureOutput(func() {
		utils.LogPanic("req-9", "POST", "/api/export", "boom", []byte("goroutine 1"))
	})

	entry := lastEntry(t, output)
	assert.Equal(t, "req-9", entry["request_id"])
	assert.Equal(t, "/api/export", entry["path"])
	assert.Equal(t, "boom", entry["panic"])
	assert.Equal(t, "goroutine 1", entry["stack"])
}

func TestLogDBQuery(t *testing.T) {
	output := captureOutput(func() {
		utils.LogDBQuery("INSERT INTO kv_store (store_key,store_value) VALUES (?,?)",
			[]interface{}{"exportHistory", []byte(`[{"projectId":"1"}]`)}, time.Millisecond, nil)
	})

	assert.Contains(t, output, "exportHistory")
	assert.Contains(t, output, "<19 bytes>")
	assert.NotContains(t, output, "projectId")
}

func TestLogExport(t *testing.T) {
	output := captureOutput(func() {
		utils.LogExport("user-1", "pdf", false, "Failed to export PDF: boom", 0)
	})

	entry := lastEntry(t, output)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "export", entry["category"])
	assert.Equal(t, "Failed to export PDF: boom", entry["message"])
}

func TestLogHumanize(t *testing.T) {
	output := captureOutput(func() {
		utils.LogHumanize("moderate", 120, 140)
	})

	entry := lastEntry(t, output)
	assert.Equal(t, "moderate", entry["profile"])
	assert.Equal(t, float64(140), entry["output_len"])
}

func TestLogAuth(t *testing.T) {
	output := captureOutput(func() {
		utils.LogAuth("token_rejected", "", false, "expired")
	})

	entry := lastEntry(t, output)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "expired", entry["reason"])
}
