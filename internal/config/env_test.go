package config

import (
	"testing"
	"time"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test-env")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_HOST", "test-db-host")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ALLOWED_ORIGINS", "https://example.com, https://app.example.com")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")
	t.Setenv("HISTORY_BACKEND", "memory")
	t.Setenv("HUMANIZE_SEED", "1234")
	t.Setenv("EXPORT_RATE_LIMIT", "0.5")
	t.Setenv("EXPORT_RATE_LIMIT_DISABLED", "true")
	t.Setenv("RATE_LIMIT_CLEANUP_INTERVAL", "90s")

	config := &AppConfig{}
	if err := LoadEnv(config); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if config.App.Environment != "test-env" {
		t.Errorf("Expected App.Environment = %s, got %s", "test-env", config.App.Environment)
	}
	if config.Server.Port != 9090 {
		t.Errorf("Expected Server.Port = %d, got %d", 9090, config.Server.Port)
	}
	if config.Database.Driver != "mysql" || config.Database.Host != "test-db-host" {
		t.Errorf("Unexpected database settings: %+v", config.Database)
	}
	if config.JWT.Secret != "s3cret" {
		t.Errorf("Expected JWT.Secret to be loaded")
	}
	if len(config.CORS.AllowedOrigins) != 2 || config.CORS.AllowedOrigins[1] != "https://app.example.com" {
		t.Errorf("Unexpected CORS.AllowedOrigins = %v", config.CORS.AllowedOrigins)
	}
	if !config.CORS.AllowCredentials {
		t.Errorf("Expected CORS.AllowCredentials = true")
	}
	if config.History.Backend != "memory" {
		t.Errorf("Expected History.Backend = memory, got %s", config.History.Backend)
	}
	if config.Humanizer.Seed != 1234 {
		t.Errorf("Expected Humanizer.Seed = 1234, got %d", config.Humanizer.Seed)
	}
	if config.RateLimit.ExportPerSec != 0.5 || !config.RateLimit.Disabled {
		t.Errorf("Unexpected rate limit settings: %+v", config.RateLimit)
	}
	if config.RateLimit.CleanupEvery != 90*time.Second {
		t.Errorf("Expected CleanupEvery = 90s, got %v", config.RateLimit.CleanupEvery)
	}
}

func TestLoadEnv_InvalidValue(t *testing.T) {
	t.Setenv("HISTORY_CAPACITY", "fifty")

	if err := LoadEnv(&AppConfig{}); err == nil {
		t.Fatal("LoadEnv() expected an error for a non-numeric capacity")
	}
}

func TestProcessStructEnv(t *testing.T) {
	type TestStruct struct {
		StringField string        `env:"TEST_STRING"`
		IntField    int           `env:"TEST_INT"`
		UintField   uint32        `env:"TEST_UINT"`
		BoolField   bool          `env:"TEST_BOOL"`
		DurField    time.Duration `env:"TEST_DURATION"`
		FloatField  float64       `env:"TEST_FLOAT"`
		StrSlice    []string      `env:"TEST_SLICE"`
		NoEnvTag    string
	}

	t.Setenv("TEST_STRING", "test-value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_UINT", "7")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DURATION", "15m")
	t.Setenv("TEST_FLOAT", "3.14")
	t.Setenv("TEST_SLICE", "item1, item2,item3")

	testStruct := &TestStruct{}
	if err := processStructEnv(testStruct); err != nil {
		t.Fatalf("processStructEnv() error = %v", err)
	}

	if testStruct.StringField != "test-value" {
		t.Errorf("Expected StringField = %s, got %s", "test-value", testStruct.StringField)
	}
	if testStruct.IntField != 42 {
		t.Errorf("Expected IntField = %d, got %d", 42, testStruct.IntField)
	}
	if testStruct.UintField != 7 {
		t.Errorf("Expected UintField = %d, got %d", 7, testStruct.UintField)
	}
	if !testStruct.BoolField {
		t.Errorf("Expected BoolField = true")
	}
	if testStruct.DurField != 15*time.Minute {
		t.Errorf("Expected DurField = %v, got %v", 15*time.Minute, testStruct.DurField)
	}
	if testStruct.FloatField != 3.14 {
		t.Errorf("Expected FloatField = %f, got %f", 3.14, testStruct.FloatField)
	}

	expectedSlice := []string{"item1", "item2", "item3"}
	if len(testStruct.StrSlice) != len(expectedSlice) {
		t.Fatalf("Expected StrSlice length = %d, got %d", len(expectedSlice), len(testStruct.StrSlice))
	}
	for i, item := range expectedSlice {
		if testStruct.StrSlice[i] != item {
			t.Errorf("Expected StrSlice[%d] = %s, got %s", i, item, testStruct.StrSlice[i])
		}
	}

	if testStruct.NoEnvTag != "" {
		t.Errorf("Expected NoEnvTag to be empty, got %s", testStruct.NoEnvTag)
	}
}

func TestProcessStructEnvErrors(t *testing.T) {
	tests := []struct {
		name     string
		envName  string
		envValue string
		target   interface{}
	}{
		{
			name:     "Invalid int",
			envName:  "TEST_INT",
			envValue: "not-an-int",
			target: &struct {
				IntField int `env:"TEST_INT"`
			}{},
		},
		{
			name:     "Invalid bool",
			envName:  "TEST_BOOL",
			envValue: "not-a-bool",
			target: &struct {
				BoolField bool `env:"TEST_BOOL"`
			}{},
		},
		{
			name:     "Invalid duration",
			envName:  "TEST_DURATION",
			envValue: "not-a-duration",
			target: &struct {
				DurField time.Duration `env:"TEST_DURATION"`
			}{},
		},
		{
			name:     "Invalid float",
			envName:  "TEST_FLOAT",
			envValue: "not-a-float",
			target: &struct {
				FloatField float64 `env:"TEST_FLOAT"`
			}{},
		},
		{
			name:     "Negative unsigned",
			envName:  "TEST_UINT",
			envValue: "-1",
			target: &struct {
				UintField uint `env:"TEST_UINT"`
			}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envName, tt.envValue)

			if err := processStructEnv(tt.target); err == nil {
				t.Errorf("processStructEnv() expected an error for %s=%s", tt.envName, tt.envValue)
			}
		})
	}
}
