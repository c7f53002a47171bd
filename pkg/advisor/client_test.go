package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientChatCompletion(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s, want /v1/chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("Authorization = %q, want %q", auth, "Bearer sk-test")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"issues\":[]}"}}]}`))
	}))
	defer srv.Close()

	c := NewClient("sk-test", srv.URL+"/v1/")
	content, err := c.ChatCompletion(context.Background(), ChatRequest{
		Model:          "gpt-4o-mini",
		Messages:       []Message{{Role: "user", Content: "hi"}},
		Temperature:    0.7,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		t.Fatalf("ChatCompletion() error = %v", err)
	}
	if content != `{"issues":[]}` {
		t.Errorf("ChatCompletion() = %q, want %q", content, `{"issues":[]}`)
	}
	if got.Model != "gpt-4o-mini" || got.ResponseFormat == nil || got.ResponseFormat.Type != "json_object" {
		t.Errorf("request = %+v", got)
	}
}

func TestClientChatCompletionErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`,
			wantErr: ErrAuthentication,
			wantMsg: "Incorrect API key provided",
		},
		{
			name:    "forbidden",
			status:  http.StatusForbidden,
			body:    `{}`,
			wantErr: ErrAuthentication,
		},
		{
			name:    "rate limited",
			status:  http.StatusTooManyRequests,
			body:    `{"error":{"message":"Rate limit reached"}}`,
			wantErr: ErrRateLimited,
			wantMsg: "Rate limit reached",
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `upstream exploded`,
			wantErr: ErrUpstream,
			wantMsg: "upstream exploded",
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			wantErr: ErrUpstream,
		},
		{
			name:    "invalid body",
			status:  http.StatusOK,
			body:    `not json`,
			wantErr: ErrUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient("sk-test", srv.URL).ChatCompletion(context.Background(), ChatRequest{Model: "m"})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ChatCompletion() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("ChatCompletion() error = %q, want it to contain %q", err, tt.wantMsg)
			}
			if calls != 1 {
				t.Errorf("server calls = %d, want 1", calls)
			}
		})
	}
}

func TestClientChatCompletionCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient("sk-test", srv.URL).ChatCompletion(ctx, ChatRequest{Model: "m"})
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("ChatCompletion() error = %v, want %v", err, ErrUpstream)
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"abcdef", 3, "abc..."},
		{"ααααα", 2, "αα..."},
	}

	for _, tt := range tests {
		if got := excerpt(tt.in, tt.n); got != tt.want {
			t.Errorf("excerpt(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
