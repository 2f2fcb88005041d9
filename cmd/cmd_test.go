package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	formatHTML, formatVideos, formatWidth = false, false, 80
	askHTML, askJSON, askWidth = false, false, 80
	healthFormat, healthWait = "yaml", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config-dir", t.TempDir()}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFormatHTML(t *testing.T) {
	out, err := execute(t, "format", "--html", "**Step 1:** open <Settings>")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	want := "<strong>Step 1:</strong> open &lt;Settings&gt;\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestFormatVideos(t *testing.T) {
	out, err := execute(t, "format", "--videos", "see 🔗 https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.HasPrefix(out, "simple\tdQw4w9WgXcQ\thttps://www.youtube.com/watch?v=dQw4w9WgXcQ") {
		t.Fatalf("output = %q", out)
	}
}

func newAssistantServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"response":"Watch this 🔗 https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`))
	})
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","chatbot_ready":true}`))
	})
	mux.HandleFunc("/api/videos", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"videos":[{"title":"Intro","description":"Start here","link":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Setenv("HELPDOCK_SERVICE_BASE_URL", srv.URL+"/api")
	return srv
}

func TestAskJSON(t *testing.T) {
	newAssistantServer(t)
	out, err := execute(t, "ask", "--json", "how", "do", "I", "start?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got := gjson.Get(out, "question").String(); got != "how do I start?" {
		t.Fatalf("question = %q", got)
	}
	if got := gjson.Get(out, "videos.0.videoId").String(); got != "dQw4w9WgXcQ" {
		t.Fatalf("videos = %s", gjson.Get(out, "videos").Raw)
	}
	if got := gjson.Get(out, "videos.0.variant").String(); got != "simple" {
		t.Fatalf("variant = %q", got)
	}
}

func TestAskFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "service error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"success":false,"error":"model offline"}`))
			},
			want: "model offline",
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>bad gateway</html>"))
			},
			want: "Cannot reach the server",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			t.Cleanup(srv.Close)
			t.Setenv("HELPDOCK_SERVICE_BASE_URL", srv.URL+"/api")

			out, err := execute(t, "ask", "--json", "hello")
			if err == nil {
				t.Fatalf("ask succeeded, output %q", out)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tt.want)
			}
			if !gjson.Get(out, "failed").Bool() {
				t.Fatalf("failed flag missing in %q", out)
			}
		})
	}
}

func TestHealthJSON(t *testing.T) {
	newAssistantServer(t)
	out, err := execute(t, "health", "--format", "json")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if got := gjson.Get(out, "status").String(); got != "healthy" {
		t.Fatalf("status = %q in %s", got, out)
	}
}

func TestVideos(t *testing.T) {
	newAssistantServer(t)
	out, err := execute(t, "videos")
	if err != nil {
		t.Fatalf("videos: %v", err)
	}
	if !strings.Contains(out, "Intro") || !strings.Contains(out, "Start here") {
		t.Fatalf("output = %q", out)
	}
}

func TestValidateBaseURL(t *testing.T) {
	for _, ok := range []string{"http://localhost:5000/api", "https://assist.example.com"} {
		if err := validateBaseURL(ok); err != nil {
			t.Errorf("validateBaseURL(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "localhost:5000", "ftp://x", "http://"} {
		if err := validateBaseURL(bad); err == nil {
			t.Errorf("validateBaseURL(%q) accepted", bad)
		}
	}
}
