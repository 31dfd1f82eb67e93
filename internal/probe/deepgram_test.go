package probe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/probekit/speechprobe/internal/provider"
)

func newDeepgramTestProber(baseURL string) *DeepgramProber {
	endpoint := &provider.EndpointConfig{BaseURL: baseURL, Path: "/v1/listen"}
	return NewDeepgramProber(endpoint, Config{
		APIKey:    "test-key",
		Model:     "nova-3",
		Language:  "en-US",
		SampleURL: "https://example.com/sample.flac",
		Timeout:   5 * time.Second,
	})
}

func TestDeepgramProber_ImplementsProber(t *testing.T) {
	var _ Prober = (*DeepgramProber)(nil)
}

func TestDeepgramProber_BuildURL(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		language string
		wantURL  []string
	}{
		{
			name:     "english",
			model:    "nova-3",
			language: "en-US",
			wantURL:  []string{"model=nova-3", "language=en-US", "smart_format=true"},
		},
		{
			name:     "no language",
			model:    "nova-2",
			language: "",
			wantURL:  []string{"model=nova-2", "smart_format=true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint := &provider.EndpointConfig{BaseURL: "https://api.deepgram.com", Path: "/v1/listen"}
			p := NewDeepgramProber(endpoint, Config{APIKey: "k", Model: tt.model, Language: tt.language})

			url, err := p.buildURL()
			if err != nil {
				t.Fatalf("buildURL() error = %v", err)
			}
			for _, want := range tt.wantURL {
				if !strings.Contains(url, want) {
					t.Errorf("buildURL() = %q, want to contain %q", url, want)
				}
			}
			if tt.language == "" && strings.Contains(url, "language=") {
				t.Errorf("buildURL() = %q, should not set language", url)
			}
		})
	}
}

func TestDeepgramProber_Confirmed(t *testing.T) {
	var gotAuth, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		gotBody = payload["url"]

		json.NewEncoder(w).Encode(deepgramResponse{
			Results: &deepgramResults{
				Channels: []deepgramChannel{{
					Alternatives: []deepgramAlternative{{Transcript: "how old is the brooklyn bridge", Confidence: 0.98}},
				}},
			},
		})
	}))
	defer server.Close()

	out := newDeepgramTestProber(server.URL).Probe(context.Background())

	if out.Status != Confirmed {
		t.Fatalf("status = %d, want Confirmed (err: %v)", out.Status, out.Err)
	}
	if out.Transcript != "how old is the brooklyn bridge" {
		t.Errorf("transcript = %q", out.Transcript)
	}
	if gotAuth != "Token test-key" {
		t.Errorf("Authorization = %q, want Token test-key", gotAuth)
	}
	if gotBody != "https://example.com/sample.flac" {
		t.Errorf("request url = %q", gotBody)
	}
}

func TestDeepgramProber_NoSpeech(t *testing.T) {
	tests := []struct {
		name string
		resp deepgramResponse
	}{
		{"no results", deepgramResponse{}},
		{"no channels", deepgramResponse{Results: &deepgramResults{}}},
		{"no alternatives", deepgramResponse{Results: &deepgramResults{Channels: []deepgramChannel{{}}}}},
		{"empty transcript", deepgramResponse{Results: &deepgramResults{Channels: []deepgramChannel{{
			Alternatives: []deepgramAlternative{{Transcript: ""}},
		}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tt.resp)
			}))
			defer server.Close()

			out := newDeepgramTestProber(server.URL).Probe(context.Background())
			if out.Status != NoSpeech {
				t.Errorf("status = %d, want NoSpeech (err: %v)", out.Status, out.Err)
			}
		})
	}
}

func TestDeepgramProber_Denied(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErrSub string
	}{
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"err_code":"INVALID_AUTH","err_msg":"invalid credentials"}`, http.StatusUnauthorized)
			},
			wantErrSub: "status 401",
		},
		{
			name: "garbage response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
			wantErrSub: "parse response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			out := newDeepgramTestProber(server.URL).Probe(context.Background())
			if out.Status != Denied {
				t.Fatalf("status = %d, want Denied", out.Status)
			}
			if !IsDenialError(out.Err) {
				t.Errorf("error %v should be a DenialError", out.Err)
			}
			if !strings.Contains(out.Err.Error(), tt.wantErrSub) {
				t.Errorf("error %q should contain %q", out.Err.Error(), tt.wantErrSub)
			}
		})
	}
}

func TestDeepgramProber_NetworkFailure(t *testing.T) {
	// a server that is already closed
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	out := newDeepgramTestProber(server.URL).Probe(context.Background())
	if out.Status != Denied {
		t.Fatalf("status = %d, want Denied", out.Status)
	}
	if !strings.Contains(out.Err.Error(), "http request") {
		t.Errorf("error %q should mention the http request", out.Err.Error())
	}
}
