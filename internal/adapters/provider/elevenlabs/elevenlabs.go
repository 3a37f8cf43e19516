// Package elevenlabs adapts the ElevenLabs text-to-speech API.
package elevenlabs

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/ports"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	DefaultVoiceID = "JBFqnCBsd6RMkjVDRZzb" // George
	DefaultModel   = "eleven_v3"
	DefaultFormat  = "mp3_44100_128"
)

var defaultVoiceSettings = json.RawMessage(`{"stability":0.5,"similarity_boost":0.8,"style":0.0,"use_speaker_boost":true}`)

// Models that reject the optimize_streaming_latency query parameter.
var noLatencyParamModels = map[string]bool{
	"eleven_v3":         true,
	"eleven_turbo_v2_5": true,
}

type Client struct {
	apiKey  string
	voiceID string
	baseURL string
	http    *resty.Client
}

func New(apiKey, voiceID string) *Client { return NewWithBaseURL(apiKey, voiceID, defaultBaseURL) }

func NewWithBaseURL(apiKey, voiceID, baseURL string) *Client {
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}
	return &Client{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    resty.New().SetTimeout(30 * time.Second),
	}
}

func (c *Client) Synthesize(ctx context.Context, req ports.SynthesizeRequest) (*domain.Speech, error) {
	if c.apiKey == "" {
		return nil, &domain.ConfigurationError{Message: "ElevenLabs API key not configured"}
	}
	voice := req.VoiceID
	if voice == "" {
		voice = c.voiceID
	}
	model := req.ModelName
	if model == "" {
		model = DefaultModel
	}
	settings := json.RawMessage(req.VoiceSettings)
	if len(settings) == 0 {
		settings = defaultVoiceSettings
	}
	format := req.OutputFormat
	if format == "" {
		format = DefaultFormat
	}

	body := map[string]any{
		"text":           req.Text,
		"model_id":       model,
		"voice_settings": settings,
	}
	if req.LanguageCode != "" {
		body["language_code"] = req.LanguageCode
	}

	r := c.http.R().SetContext(ctx).
		SetHeader("Accept", "audio/mpeg").
		SetHeader("Content-Type", "application/json").
		SetHeader("xi-api-key", c.apiKey).
		SetQueryParam("output_format", format).
		SetBody(body)
	if IncludeLatencyParam(model) {
		r.SetQueryParam("optimize_streaming_latency", "0")
	}
	rr, err := r.Post(c.baseURL + "/v1/text-to-speech/" + voice)
	if err != nil {
		return nil, &domain.ProviderError{Provider: domain.EngineElevenLabs, Message: err.Error()}
	}
	if rr.IsError() {
		return nil, &domain.ProviderError{Provider: domain.EngineElevenLabs, Status: rr.StatusCode(), Message: rr.String()}
	}
	return &domain.Speech{
		Audio:       rr.Body(),
		ContentType: ContentTypeForFormat(format),
		Engine:      domain.EngineElevenLabs,
	}, nil
}

// IncludeLatencyParam reports whether the model accepts the
// optimize_streaming_latency parameter; newer models reject it.
func IncludeLatencyParam(model string) bool {
	return !noLatencyParamModels[model]
}

// ContentTypeForFormat maps an output format string to the content type of
// the returned audio. Unknown prefixes default to mpeg.
func ContentTypeForFormat(format string) string {
	switch {
	case strings.HasPrefix(format, "mp3_"):
		return "audio/mpeg"
	case strings.HasPrefix(format, "pcm_"):
		return "audio/wav"
	case strings.HasPrefix(format, "opus_"):
		return "audio/opus"
	default:
		return "audio/mpeg"
	}
}

// SupportedVoices lists the commonly used stock voices.
func SupportedVoices() map[string]map[string]string {
	return map[string]map[string]string{
		"JBFqnCBsd6RMkjVDRZzb": {"name": "George", "gender": "male", "language": "en"},
		"21m00Tcm4TlvDq8ikWAM": {"name": "Rachel", "gender": "female", "language": "en"},
		"AZnzlk1XvdvUeBnXmlld": {"name": "Domi", "gender": "female", "language": "en"},
		"EXAVITQu4vr4xnSDxMaL": {"name": "Bella", "gender": "female", "language": "en"},
		"ErXwobaYiN019PkySvjV": {"name": "Antoni", "gender": "male", "language": "en"},
		"MF3mGyEYCl7XYWbV9V6O": {"name": "Elli", "gender": "female", "language": "en"},
		"TxGEqnHWrfWFTfGW9XjX": {"name": "Josh", "gender": "male", "language": "en"},
		"VR6AewLTigWG4xSOukaG": {"name": "Arnold", "gender": "male", "language": "en"},
		"pNInz6obpgDQGcFmaJgB": {"name": "Adam", "gender": "male", "language": "en"},
		"yoZ06aMxZJJ28mfd3POQ": {"name": "Sam", "gender": "male", "language": "en"},
	}
}

// SupportedFormats lists accepted output_format values.
func SupportedFormats() []string {
	return []string{
		"mp3_22050_32", "mp3_24000_48", "mp3_44100_32", "mp3_44100_64",
		"mp3_44100_96", "mp3_44100_128", "mp3_44100_192",
		"pcm_8000", "pcm_16000", "pcm_22050", "pcm_24000", "pcm_32000",
		"pcm_44100", "pcm_48000",
		"ulaw_8000", "alaw_8000",
	}
}

// SupportedModels lists selectable synthesis models.
func SupportedModels() []string {
	return []string{"eleven_v3", "eleven_turbo_v2_5", "eleven_multilingual_v2", "eleven_monolingual_v1"}
}
