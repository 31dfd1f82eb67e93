package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/probekit/speechprobe/internal/audio"
	"github.com/probekit/speechprobe/internal/provider"
)

// DeepgramLiveProber verifies access to Deepgram's realtime API: one
// websocket handshake, one silent chunk, then CloseStream. A completed
// exchange proves the key is good for streaming; no transcript is expected
// from silence.
type DeepgramLiveProber struct {
	endpoint *provider.EndpointConfig
	apiKey   string
	model    string
	language string
}

// deepgramLiveMessage covers the response types the probe cares about
type deepgramLiveMessage struct {
	Type    string           `json:"type"`
	Channel *deepgramChannel `json:"channel,omitempty"`
	Error   *deepgramError   `json:"error,omitempty"`
}

type deepgramCloseStream struct {
	Type string `json:"type"`
}

func NewDeepgramLiveProber(endpoint *provider.EndpointConfig, cfg Config) *DeepgramLiveProber {
	return &DeepgramLiveProber{
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		language: cfg.Language,
	}
}

func (p *DeepgramLiveProber) Name() string {
	return provider.ProviderDeepgram
}

func (p *DeepgramLiveProber) Probe(ctx context.Context) Outcome {
	wsURL, err := p.buildURL()
	if err != nil {
		return denied(fmt.Errorf("build websocket url: %w", err))
	}

	headers := http.Header{}
	headers.Set("Authorization", "Token "+p.apiKey)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			return denied(fmt.Errorf("websocket handshake rejected (status %d): %w", resp.StatusCode, err))
		}
		return denied(fmt.Errorf("websocket dial: %w", err))
	}
	defer conn.Close()
	log.Printf("deepgram-live-probe: connected, model=%s", p.model)

	// one silent chunk then end-of-audio
	if err := conn.WriteMessage(websocket.BinaryMessage, audio.Silence(250*time.Millisecond)); err != nil {
		return denied(fmt.Errorf("send audio chunk: %w", err))
	}
	closeMsg, _ := json.Marshal(deepgramCloseStream{Type: "CloseStream"})
	if err := conn.WriteMessage(websocket.TextMessage, closeMsg); err != nil {
		return denied(fmt.Errorf("send close stream: %w", err))
	}

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}

	// read until the server acknowledges the stream or hangs up
	transcript := ""
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return confirmed(transcript)
			}
			return denied(fmt.Errorf("websocket read: %w", err))
		}

		var msg deepgramLiveMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue // non-JSON frames are ignored
		}

		switch msg.Type {
		case "Results":
			if msg.Channel != nil && len(msg.Channel.Alternatives) > 0 {
				if t := msg.Channel.Alternatives[0].Transcript; t != "" {
					transcript = t
				}
			}
		case "Metadata":
			// final metadata arrives after CloseStream, the exchange is done
			return confirmed(transcript)
		case "Error":
			if msg.Error != nil {
				return denied(fmt.Errorf("deepgram error: %s", msg.Error.Message))
			}
			return denied(fmt.Errorf("deepgram error: %s", string(data)))
		}
	}
}

// buildURL constructs the websocket URL with query parameters
func (p *DeepgramLiveProber) buildURL() (string, error) {
	u, err := url.Parse(p.endpoint.BaseURL + p.endpoint.Path)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	q := u.Query()
	q.Set("model", p.model)
	q.Set("encoding", "linear16")
	q.Set("sample_rate", fmt.Sprintf("%d", audio.SampleRate))
	if p.language != "" {
		q.Set("language", p.language)
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}
