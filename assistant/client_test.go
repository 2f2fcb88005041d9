package assistant

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tidwall/gjson"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api/")
}

func TestHealthReady(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/health" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"status":"online","chatbot_ready":true,"message":"API is running"}`)
	})

	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if !h.Ready || h.Status != "online" {
		t.Fatalf("Health() = %+v, want ready and online", h)
	}
}

func TestHealthNotReady(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"online","chatbot_ready":false}`)
	})
	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if h.Ready {
		t.Fatalf("Health().Ready = true, want false")
	}
}

func TestChatSuccess(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if got := gjson.GetBytes(body, "message").String(); got != `hello "world"` {
			t.Errorf("message = %q", got)
		}
		io.WriteString(w, `{"success":true,"response":"**Hi** there","timestamp":1}`)
	})

	got, err := c.Chat(context.Background(), `hello "world"`)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "**Hi** there" {
		t.Fatalf("Chat() = %q", got)
	}
}

func TestChatServiceError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"success":false,"error":"not ready yet"}`)
	})

	_, err := c.Chat(context.Background(), "hi")
	var serr *ServiceError
	if !errors.As(err, &serr) {
		t.Fatalf("Chat() error = %v, want *ServiceError", err)
	}
	if serr.Status != http.StatusServiceUnavailable || serr.Message != "not ready yet" {
		t.Fatalf("ServiceError = %+v", serr)
	}
}

func TestChatInvalidBodyIsTransportError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>bad gateway</html>")
	})

	_, err := c.Chat(context.Background(), "hi")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("Chat() error = %v, want *TransportError", err)
	}
}

func TestChatUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Chat(context.Background(), "hi")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("Chat() error = %v, want *TransportError", err)
	}
	if terr.Op != "chat" {
		t.Fatalf("TransportError.Op = %q", terr.Op)
	}
}

func TestResetStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"ok", http.StatusOK, false},
		{"not ready", http.StatusServiceUnavailable, true},
		{"server error", http.StatusInternalServerError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/reset" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(tt.status)
				io.WriteString(w, `{"success":false,"error":"nope"}`)
			})
			err := c.Reset(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Reset() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVideos(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"videos":[
			{"title":"Login","description":"Sign in","link":"https://www.youtube.com/watch?v=Mu54mQnBbnY"},
			{"title":"Create exercise","description":"Add a problem","link":"https://www.youtube.com/watch?v=abcdefghijk"}
		]}`)
	})

	videos, err := c.Videos(context.Background())
	if err != nil {
		t.Fatalf("Videos() error = %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("len(Videos()) = %d, want 2", len(videos))
	}
	if videos[1].Title != "Create exercise" || videos[1].Link != "https://www.youtube.com/watch?v=abcdefghijk" {
		t.Fatalf("videos[1] = %+v", videos[1])
	}
}

func TestNewTrimsBaseURL(t *testing.T) {
	if got := New(" http://host/api/ ").BaseURL(); got != "http://host/api" {
		t.Fatalf("BaseURL() = %q", got)
	}
	if got := New("").BaseURL(); got != DefaultBaseURL {
		t.Fatalf("BaseURL() = %q, want default", got)
	}
}
