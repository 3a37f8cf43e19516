// Package groqstt adapts Groq's OpenAI-compatible whisper transcription API.
package groqstt

import (
	"bytes"
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/ports"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "whisper-large-v3"

	// Segment confidence thresholds: whisper reports an average log
	// probability per segment plus the probability that the segment is not
	// speech at all. Segments outside these bounds are hallucination-prone
	// and dropped.
	minAvgLogprob   = -0.5
	maxNoSpeechProb = 0.15
)

type Client struct {
	api        *openai.Client
	model      string
	configured bool
}

func New(apiKey string) *Client { return NewWithBaseURL(apiKey, defaultBaseURL) }

func NewWithBaseURL(apiKey, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	return &Client{
		api:        openai.NewClientWithConfig(cfg),
		model:      defaultModel,
		configured: apiKey != "",
	}
}

func (c *Client) Transcribe(ctx context.Context, req ports.TranscribeRequest) (*domain.Transcript, error) {
	if !c.configured {
		return nil, &domain.ConfigurationError{Message: "Groq API key not configured"}
	}
	model := req.Model
	if model == "" {
		model = c.model
	}
	filename := req.Filename
	if filename == "" {
		filename = "audio.wav"
	}
	areq := openai.AudioRequest{
		Model:    model,
		FilePath: filename,
		Reader:   bytes.NewReader(req.Audio),
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if req.Language != "" && req.Language != "auto" {
		areq.Language = req.Language
	}
	resp, err := c.api.CreateTranscription(ctx, areq)
	if err != nil {
		return nil, providerError(err)
	}

	segs := make([]segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segs = append(segs, segment{Text: s.Text, AvgLogprob: s.AvgLogprob, NoSpeechProb: s.NoSpeechProb})
	}
	return &domain.Transcript{Text: joinSegments(segs), Engine: domain.EngineGroq}, nil
}

type segment struct {
	Text         string
	AvgLogprob   float64
	NoSpeechProb float64
}

func keep(s segment) bool {
	return s.AvgLogprob > minAvgLogprob && s.NoSpeechProb <= maxNoSpeechProb
}

// joinSegments concatenates the texts of retained segments in order, trimmed
// and space-joined. An empty result means no reliable speech was found.
func joinSegments(segs []segment) string {
	var parts []string
	for _, s := range segs {
		if !keep(s) {
			continue
		}
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func providerError(err error) *domain.ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &domain.ProviderError{Provider: domain.EngineGroq, Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	return &domain.ProviderError{Provider: domain.EngineGroq, Message: err.Error()}
}
