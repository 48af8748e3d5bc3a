// Package telegramtest provides an in-process fake of the Telegram Bot
// API for tests.
package telegramtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

// BotUsername is the username getMe reports.
const BotUsername = "dsa_quiz_bot"

// Server records sendPoll and sendMessage calls and serves queued
// updates to getUpdates.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	polls     []url.Values
	messages  []url.Values
	updates   []map[string]any
	nextID    int
	failCode  int
	failDesc  string
	failAuth  bool
	pollCalls int
}

// NewServer starts a fake closed with t.Cleanup.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{nextID: 100}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Endpoint returns the API endpoint format to pass to the bot client.
func (s *Server) Endpoint() string {
	return s.URL + "/bot%s/%s"
}

// FailPolls makes every following sendPoll fail with the given code.
// A zero code restores success.
func (s *Server) FailPolls(code int, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCode, s.failDesc = code, description
}

// RejectToken makes getMe answer 401.
func (s *Server) RejectToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAuth = true
}

// PushCommand queues a message with a leading bot command.
func (s *Server) PushCommand(chatID int64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cmdLen := len(text)
	if i := strings.IndexByte(text, ' '); i >= 0 {
		cmdLen = i
	}
	s.nextID++
	s.updates = append(s.updates, map[string]any{
		"update_id": s.nextID,
		"message": map[string]any{
			"message_id": s.nextID,
			"date":       time.Now().Unix(),
			"chat":       map[string]any{"id": chatID, "type": "private"},
			"text":       text,
			"entities": []map[string]any{
				{"type": "bot_command", "offset": 0, "length": cmdLen},
			},
		},
	})
}

// Polls returns the form values of every successful sendPoll call.
func (s *Server) Polls() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.polls...)
}

// PollCalls counts sendPoll calls, failed ones included.
func (s *Server) PollCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pollCalls
}

// Messages returns the form values of every sendMessage call.
func (s *Server) Messages() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.messages...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	method := r.URL.Path[strings.LastIndexByte(r.URL.Path, '/')+1:]

	s.mu.Lock()
	defer s.mu.Unlock()

	switch method {
	case "getMe":
		if s.failAuth {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		writeResult(w, map[string]any{
			"id":         1,
			"is_bot":     true,
			"first_name": "DSA Quiz",
			"username":   BotUsername,
		})
	case "sendPoll":
		s.pollCalls++
		if s.failCode != 0 {
			writeError(w, s.failCode, s.failDesc)
			return
		}
		s.polls = append(s.polls, r.PostForm)
		writeResult(w, s.message(r.PostForm.Get("chat_id")))
	case "sendMessage":
		s.messages = append(s.messages, r.PostForm)
		writeResult(w, s.message(r.PostForm.Get("chat_id")))
	case "getUpdates":
		pending := s.updates
		s.updates = nil
		if len(pending) == 0 {
			// Stand in for long polling without holding the lock.
			s.mu.Unlock()
			select {
			case <-r.Context().Done():
			case <-time.After(20 * time.Millisecond):
			}
			s.mu.Lock()
			pending = []map[string]any{}
		}
		writeResult(w, pending)
	default:
		writeError(w, http.StatusNotFound, "Not Found: method "+method)
	}
}

func (s *Server) message(chat string) map[string]any {
	s.nextID++
	return map[string]any{
		"message_id": s.nextID,
		"date":       time.Now().Unix(),
		"chat":       map[string]any{"id": 0, "type": "group", "username": chat},
	}
}

func writeResult(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
}

func writeError(w http.ResponseWriter, code int, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	body := map[string]any{"ok": false, "error_code": code, "description": description}
	if code == http.StatusTooManyRequests {
		body["parameters"] = map[string]any{"retry_after": 5}
	}
	_ = json.NewEncoder(w).Encode(body)
}
