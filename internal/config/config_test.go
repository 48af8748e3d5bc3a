package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dsaquiz/internal/llm"
)

// noEnvFile points Load at a file that does not exist so a developer's
// .env never leaks into tests.
func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func setRequired(t *testing.T) {
	t.Setenv("TOKEN", "123:abc")
	t.Setenv("CHAT_ID", "-100123")
	t.Setenv("GROQ_API_KEY", "gsk-test")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, "-100123", cfg.Telegram.ChatID)
	assert.True(t, cfg.Telegram.Listen)
	assert.Empty(t, cfg.Telegram.APIEndpoint)

	assert.Equal(t, llm.ProviderGroq, cfg.LLM.Provider)
	assert.Equal(t, "gsk-test", cfg.LLM.GroqAPIKey)

	assert.Equal(t, time.Hour, cfg.Quiz.Interval)
	assert.Equal(t, 10*time.Second, cfg.Quiz.FirstDelay)
	assert.Equal(t, 3, cfg.Quiz.MaxAttempts)
	assert.Equal(t, 0.8, cfg.Quiz.Temperature)
	assert.Equal(t, 250, cfg.Quiz.MaxTokens)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Telemetry.MetricsAddr)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("LLM_TIMEOUT", "20s")
	t.Setenv("QUIZ_INTERVAL", "2h")
	t.Setenv("QUIZ_FIRST_DELAY", "0s")
	t.Setenv("TELEGRAM_LISTEN", "false")
	t.Setenv("METRICS_ADDR", ":9090")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 2*time.Hour, cfg.Quiz.Interval)
	assert.Zero(t, cfg.Quiz.FirstDelay)
	assert.False(t, cfg.Telegram.Listen)
	assert.Equal(t, ":9090", cfg.Telemetry.MetricsAddr)
}

func TestLoad_MissingVariablesAreNamed(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		empty   bool
		wantMsg string
	}{
		{"token missing", "TOKEN", false, "TOKEN"},
		{"token empty", "TOKEN", true, "TOKEN"},
		{"chat id missing", "CHAT_ID", false, "CHAT_ID"},
		{"groq key missing", "GROQ_API_KEY", false, "GROQ_API_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			if tt.empty {
				t.Setenv(tt.unset, "")
			} else {
				unsetenv(t, tt.unset)
			}

			_, err := Load(noEnvFile(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_InvalidQuizSettings(t *testing.T) {
	tests := map[string]string{
		"QUIZ_INTERVAL":     "0s",
		"QUIZ_MAX_ATTEMPTS": "0",
		"QUIZ_MAX_TOKENS":   "0",
		"QUIZ_TEMPERATURE":  "3",
		"QUIZ_FIRST_DELAY":  "-1s",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, val)

			_, err := Load(noEnvFile(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_ZeroTemperatureRejected(t *testing.T) {
	setRequired(t)
	t.Setenv("QUIZ_TEMPERATURE", "0")

	_, err := Load(noEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUIZ_TEMPERATURE must be within (0,2]")
}

func TestLoad_MalformedDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("QUIZ_INTERVAL", "hourly")

	_, err := Load(noEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoad_DotenvFile(t *testing.T) {
	for _, key := range []string{"TOKEN", "CHAT_ID", "GROQ_API_KEY"} {
		unsetenv(t, key)
	}
	t.Setenv("CHAT_ID", "@from_env")

	path := filepath.Join(t.TempDir(), ".env")
	content := "TOKEN=file-token\nCHAT_ID=@from_file\nGROQ_API_KEY=gsk-file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.Telegram.Token)
	assert.Equal(t, "@from_env", cfg.Telegram.ChatID, "process environment wins over the file")
	assert.Equal(t, "gsk-file", cfg.LLM.GroqAPIKey)
}

func TestLoadGeneration_NoTelegramRequired(t *testing.T) {
	unsetenv(t, "TOKEN")
	unsetenv(t, "CHAT_ID")
	t.Setenv("LLM_PROVIDER", "mock")

	cfg, err := LoadGeneration(noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderMock, cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.Quiz.MaxAttempts)
}

// unsetenv removes key for the duration of the test, restoring any
// previous value, and also clears values a .env file sets during it.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}
