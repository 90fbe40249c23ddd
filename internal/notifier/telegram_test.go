package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func newTestNotifier(url string) *TelegramNotifier {
	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.BaseURL = url
	tn.Limiter = rate.NewLimiter(rate.Inf, 1)
	return tn
}

func TestTelegramNotifier_Send(t *testing.T) {
	var got map[string]string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := newTestNotifier(srv.URL)
	if err := tn.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if path != "/botTOKEN/sendMessage" {
		t.Errorf("path: expected %q, got %q", "/botTOKEN/sendMessage", path)
	}
	if got["chat_id"] != "42" || got["text"] != "hello" || got["parse_mode"] != "HTML" {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestTelegramNotifier_SendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	if err := newTestNotifier(srv.URL).Send(context.Background(), "x"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

type flakySender struct {
	mu       sync.Mutex
	failures int
	calls    int
	texts    []string
}

func (f *flakySender) Send(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return errors.New("boom")
	}
	f.texts = append(f.texts, text)
	return nil
}

func TestSendWithRetry(t *testing.T) {
	s := &flakySender{failures: 2}
	if err := SendWithRetry(context.Background(), s, "x", 3, time.Millisecond); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if s.calls != 3 {
		t.Errorf("calls: expected 3, got %d", s.calls)
	}

	s = &flakySender{failures: 10}
	if err := SendWithRetry(context.Background(), s, "x", 2, time.Millisecond); err == nil {
		t.Fatal("expected error when retries are exhausted")
	}
	if s.calls != 3 {
		t.Errorf("calls: expected 3, got %d", s.calls)
	}
}

func TestSendWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &flakySender{failures: 10}
	if err := SendWithRetry(ctx, s, "x", 5, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestStartPolling_DispatchesCommands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var replies []string
	polls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			mu.Lock()
			polls++
			first := polls == 1
			mu.Unlock()
			if first {
				w.Write([]byte(`{"ok":true,"result":[
					{"update_id":7,"message":{"text":"/score","chat":{"id":42}}},
					{"update_id":8,"message":{"text":"/score","chat":{"id":99}}}]}`))
				return
			}
			cancel()
			w.Write([]byte(`{"ok":true,"result":[]}`))
		case "/botTOKEN/sendMessage":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			mu.Lock()
			replies = append(replies, body["text"])
			mu.Unlock()
			w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	var commands []string
	newTestNotifier(srv.URL).StartPolling(ctx, func(cmd string) string {
		commands = append(commands, cmd)
		return "reply:" + cmd
	})

	if len(commands) != 1 || commands[0] != "/score" {
		t.Errorf("expected only the configured chat's command, got %v", commands)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(replies) != 1 || replies[0] != "reply:/score" {
		t.Errorf("unexpected replies: %v", replies)
	}
}
