package custom

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/ports"
)

// Synthesizer posts text to a user-configured TTS endpoint. The response may
// be raw audio, a JSON envelope with an audio URL, or base64 audio data.
type Synthesizer struct {
	ep   *domain.CustomEndpoint
	http *resty.Client
}

func NewSynthesizer(ep *domain.CustomEndpoint) *Synthesizer {
	return &Synthesizer{ep: ep, http: newClient(textTimeout)}
}

func (s *Synthesizer) Synthesize(ctx context.Context, req ports.SynthesizeRequest) (*domain.Speech, error) {
	body := map[string]any{
		"text": req.Text,
	}
	if req.ModelName != "" {
		body["model"] = req.ModelName
	}
	if req.LanguageCode != "" {
		body["language"] = req.LanguageCode
	}
	body = mergeBody(body, s.ep)

	r := s.http.R().SetContext(ctx).SetHeader("Content-Type", "application/json").SetBody(body)
	applyAuth(r, s.ep)
	rr, err := r.Post(s.ep.URL)
	if err != nil {
		return nil, callError(s.ep, 0, err.Error())
	}
	if rr.IsError() {
		return nil, callError(s.ep, rr.StatusCode(), rr.String())
	}

	contentType := rr.Header().Get("Content-Type")
	if strings.Contains(contentType, "audio") || strings.Contains(contentType, "octet-stream") {
		return &domain.Speech{Audio: rr.Body(), ContentType: contentType, Engine: s.ep.Engine()}, nil
	}

	var obj map[string]any
	if err := json.Unmarshal(rr.Body(), &obj); err != nil {
		return nil, callError(s.ep, 0, "response is neither audio nor JSON")
	}
	if url, ok := firstString(obj, "audio_url", "url"); ok {
		return s.download(ctx, url)
	}
	if data, ok := firstString(obj, "audio_data", "audio_base64"); ok {
		audio, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, callError(s.ep, 0, "invalid base64 audio data")
		}
		return &domain.Speech{Audio: audio, ContentType: "audio/mpeg", Engine: s.ep.Engine()}, nil
	}
	return nil, callError(s.ep, 0, "response contains no audio data or URL")
}

func (s *Synthesizer) download(ctx context.Context, url string) (*domain.Speech, error) {
	rr, err := s.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, callError(s.ep, 0, err.Error())
	}
	if rr.IsError() {
		return nil, callError(s.ep, rr.StatusCode(), "failed to download audio from URL")
	}
	contentType := rr.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return &domain.Speech{Audio: rr.Body(), ContentType: contentType, Engine: s.ep.Engine()}, nil
}
