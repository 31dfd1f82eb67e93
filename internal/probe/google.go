package probe

import (
	"context"
	"fmt"
	"log"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/probekit/speechprobe/internal/credential"
	"github.com/probekit/speechprobe/internal/provider"
)

// GoogleProber verifies access to Google Cloud Speech-to-Text: one
// service-account authenticated Recognize call against the fixed public
// sample, FLAC at 16 kHz.
type GoogleProber struct {
	keyFile   string
	sampleURI string
	language  string
	model     string
}

func NewGoogleProber(cfg Config) *GoogleProber {
	return &GoogleProber{
		keyFile:   credential.ResolvePath(cfg.KeyFile),
		sampleURI: cfg.SampleURI,
		language:  cfg.Language,
		model:     cfg.Model,
	}
}

func (p *GoogleProber) Name() string {
	return provider.ProviderGoogle
}

func (p *GoogleProber) Probe(ctx context.Context) Outcome {
	// validate the key file before handing it to the client library so a
	// missing or malformed file produces a readable denial
	sa, err := credential.Load(p.keyFile)
	if err != nil {
		return denied(err)
	}
	log.Printf("google-probe: using service account %s (project %s)", sa.ClientEmail, sa.ProjectID)

	client, err := speech.NewClient(ctx,
		option.WithCredentialsFile(p.keyFile),
		option.WithScopes(credential.Scope),
	)
	if err != nil {
		return denied(fmt.Errorf("create speech client: %w", err))
	}
	defer client.Close()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_FLAC,
			SampleRateHertz: 16000,
			LanguageCode:    p.language,
			Model:           p.model,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: p.sampleURI},
		},
	}

	start := time.Now()
	resp, err := client.Recognize(ctx, req)
	if err != nil {
		log.Printf("google-probe: recognize failed after %v: %v", time.Since(start), err)
		return denied(describeRPCError(err))
	}
	log.Printf("google-probe: recognize completed in %v, %d results", time.Since(start), len(resp.Results))

	if len(resp.Results) == 0 || len(resp.Results[0].Alternatives) == 0 {
		return Outcome{Status: NoSpeech}
	}
	return confirmed(resp.Results[0].Alternatives[0].Transcript)
}

// describeRPCError prefixes well-known gRPC status codes with a human-readable
// cause. The raw status text is always kept.
func describeRPCError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.PermissionDenied:
		return fmt.Errorf("permission denied for the speech API: %w", err)
	case codes.Unauthenticated:
		return fmt.Errorf("authentication rejected: %w", err)
	case codes.ResourceExhausted:
		return fmt.Errorf("quota exhausted: %w", err)
	case codes.DeadlineExceeded:
		return fmt.Errorf("call timed out: %w", err)
	default:
		return err
	}
}
