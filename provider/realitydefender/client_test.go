package realitydefender

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.wav")
	if err := os.WriteFile(path, []byte("RIFF\x24\x00\x00\x00WAVEfmt "), 0o600); err != nil {
		t.Fatalf("write temp audio: %v", err)
	}
	return path
}

func newFakeAPI(t *testing.T, analyzingPolls int32, summary string) (*httptest.Server, *int32) {
	t.Helper()
	var polls int32
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/api/files/aws-presigned", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["fileName"] != "sample.wav" {
			t.Errorf("fileName = %q; want sample.wav", body["fileName"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response":  map[string]string{"signedUrl": srv.URL + "/upload"},
			"requestId": "rd-42",
			"mediaId":   "m-1",
		})
	})
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("upload method = %s; want PUT", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "audio/") {
			t.Errorf("upload content type = %q; want audio/*", ct)
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/media/users/rd-42", func(w http.ResponseWriter, r *http.Request) {
		status := summary
		if atomic.AddInt32(&polls, 1) <= analyzingPolls {
			status = "ANALYZING"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"requestId": "rd-42",
			"resultsSummary": map[string]any{
				"status":   status,
				"metadata": map[string]any{"finalScore": 87.5},
			},
			"models": []map[string]any{
				{"name": "rd-voice-a", "status": "MANIPULATED", "finalScore": 91.0},
				{"name": "rd-voice-b", "status": "NOT_APPLICABLE"},
				{"name": "rd-voice-c", "status": "AUTHENTIC", "predictionNumber": 0.2},
			},
		})
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &polls
}

func TestDetectFile(t *testing.T) {
	srv, polls := newFakeAPI(t, 2, "MANIPULATED")
	c, err := New(Config{APIKey: "test-key", BaseURL: srv.URL, PollInterval: time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	raw, err := c.DetectFile(context.Background(), writeTempAudio(t))
	if err != nil {
		t.Fatalf("DetectFile: %v", err)
	}
	if *polls != 3 {
		t.Fatalf("polls = %d; want 3", *polls)
	}

	res := raw.(map[string]any)
	if res["status"] != "MANIPULATED" {
		t.Fatalf("status = %v", res["status"])
	}
	if res["request_id"] != "rd-42" {
		t.Fatalf("request_id = %v", res["request_id"])
	}
	if score, _ := res["score"].(float64); score != 0.875 {
		t.Fatalf("score = %v; want 0.875", res["score"])
	}
	models := res["models"].([]any)
	if len(models) != 2 {
		t.Fatalf("models = %v; want NOT_APPLICABLE filtered out", models)
	}
	first := models[0].(map[string]any)
	if first["name"] != "rd-voice-a" || first["score"] != 0.91 {
		t.Fatalf("first model = %v", first)
	}
	if second := models[1].(map[string]any); second["score"] != 0.2 {
		t.Fatalf("second model = %v", second)
	}
}

func TestDetectFileMapsFake(t *testing.T) {
	srv, _ := newFakeAPI(t, 0, "FAKE")
	c, _ := New(Config{APIKey: "test-key", BaseURL: srv.URL, PollInterval: time.Millisecond})

	raw, err := c.DetectFile(context.Background(), writeTempAudio(t))
	if err != nil {
		t.Fatalf("DetectFile: %v", err)
	}
	if got := raw.(map[string]any)["status"]; got != "MANIPULATED" {
		t.Fatalf("status = %v; want MANIPULATED", got)
	}
}

func TestDetectFileUnauthorized(t *testing.T) {
	srv, _ := newFakeAPI(t, 0, "AUTHENTIC")
	c, _ := New(Config{APIKey: "wrong", BaseURL: srv.URL, PollInterval: time.Millisecond})

	_, err := c.DetectFile(context.Background(), writeTempAudio(t))
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("error = %v; want API 401 error", err)
	}
}

func TestDetectFileContextCancelledWhilePolling(t *testing.T) {
	srv, _ := newFakeAPI(t, 1<<30, "AUTHENTIC")
	c, _ := New(Config{APIKey: "test-key", BaseURL: srv.URL, PollInterval: 5 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := c.DetectFile(ctx, writeTempAudio(t))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v; want deadline exceeded", err)
	}
}

func TestDetectFileMissingFile(t *testing.T) {
	c, _ := New(Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
	if _, err := c.DetectFile(context.Background(), filepath.Join(t.TempDir(), "nope.mp3")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Config{APIKey: "  "}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("error = %v; want ErrMissingAPIKey", err)
	}
}

func TestFormatResultScoreScale(t *testing.T) {
	cases := []struct {
		name string
		body string
		want any
	}{
		{"percentage", `{"resultsSummary":{"status":"FAKE","metadata":{"finalScore":87}}}`, 0.87},
		{"unit interval", `{"resultsSummary":{"status":"FAKE","metadata":{"finalScore":0.87}}}`, 0.87},
		{"missing", `{"resultsSummary":{"status":"AUTHENTIC","metadata":{}}}`, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var res mediaResult
			if err := json.Unmarshal([]byte(c.body), &res); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got := formatResult("rd-1", &res)["score"]
			if got != c.want {
				t.Fatalf("score = %v; want %v", got, c.want)
			}
		})
	}
}
