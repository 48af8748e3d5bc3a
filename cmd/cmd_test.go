package cmd

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dsaquiz/internal/quizgen"
	"github.com/abhisek/dsaquiz/internal/telegram/telegramtest"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

// executeWithInput is execute with stdin set to stdin.
func executeWithInput(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	missing := filepath.Join(t.TempDir(), "missing.env")
	rootCmd.SetArgs(append(args, "--env-file", missing))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func mockGeneration(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "mock")
	t.Setenv("QUIZ_MAX_ATTEMPTS", "1")
	t.Setenv("LOG_LEVEL", "error")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dsaquiz (devel)\n", out)
}

func TestPreview_JSONFallsBackWithMockProvider(t *testing.T) {
	mockGeneration(t)

	out, err := execute(t, "preview", "--count", "2", "--json", "--interactive=false")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	var rec struct {
		Question        string   `json:"question"`
		Options         []string `json:"options"`
		CorrectOptionID int      `json:"correct_option_id"`
		Source          string   `json:"source"`
		Attempts        int      `json:"attempts"`
		Error           string   `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, quizgen.Fallback().Question, rec.Question)
	assert.Len(t, rec.Options, 4)
	assert.Equal(t, "fallback", rec.Source)
	assert.Equal(t, 1, rec.Attempts)
	assert.NotEmpty(t, rec.Error)
}

func TestPreview_RejectsBadCount(t *testing.T) {
	mockGeneration(t)
	_, err := execute(t, "preview", "--count", "0", "--json=false", "--interactive=false")
	assert.Error(t, err)
}

func TestPreview_TextOutput(t *testing.T) {
	mockGeneration(t)

	out, err := execute(t, "preview", "--count", "1", "--json=false", "--interactive=false")
	require.NoError(t, err)
	assert.Contains(t, out, "1) Binary Heap")
	assert.Contains(t, out, "Answer: 1) Binary Heap")
	assert.Contains(t, out, "Explanation: Binary Heaps")
}

func TestPreview_InteractiveSummaryCountsAnsweredQuizzes(t *testing.T) {
	mockGeneration(t)

	out, err := executeWithInput(t, "1\n", "preview", "--count", "3", "--json=false", "--interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Correct!")
	assert.Contains(t, out, "(input closed)")
	assert.Contains(t, out, "Summary: 1/1 correct")
}

func TestSend_PostsPoll(t *testing.T) {
	mockGeneration(t)
	srv := telegramtest.NewServer(t)
	t.Setenv("TOKEN", "123:abc")
	t.Setenv("CHAT_ID", "@dsa_daily")
	t.Setenv("TELEGRAM_API_ENDPOINT", srv.Endpoint())

	out, err := execute(t, "send")
	require.NoError(t, err)
	assert.Contains(t, out, "posted message")

	polls := srv.Polls()
	require.Len(t, polls, 1)
	assert.Equal(t, "@dsa_daily", polls[0].Get("chat_id"))
	assert.Equal(t, "0", polls[0].Get("correct_option_id"))
	assert.Equal(t, "quiz", polls[0].Get("type"))
}

func TestSend_MissingTokenFails(t *testing.T) {
	mockGeneration(t)
	t.Setenv("TOKEN", "")
	t.Setenv("CHAT_ID", "42")

	_, err := execute(t, "send")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN")
}

func TestCheckAnswer(t *testing.T) {
	q := quizgen.Fallback()
	assert.True(t, checkAnswer(" 1 ", q))
	assert.False(t, checkAnswer("2", q))
	assert.False(t, checkAnswer("heap", q))
}
