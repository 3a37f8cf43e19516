package custom

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/go-resty/resty/v2"

	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/ports"
)

// Transcriber posts base64 audio to a user-configured endpoint.
type Transcriber struct {
	ep   *domain.CustomEndpoint
	http *resty.Client
}

func NewTranscriber(ep *domain.CustomEndpoint) *Transcriber {
	return &Transcriber{ep: ep, http: newClient(audioTimeout)}
}

func (t *Transcriber) Transcribe(ctx context.Context, req ports.TranscribeRequest) (*domain.Transcript, error) {
	body := map[string]any{
		"audio_data": base64.StdEncoding.EncodeToString(req.Audio),
		"filename":   req.Filename,
	}
	if req.Language != "" && req.Language != "auto" {
		body["language"] = req.Language
	}
	body = mergeBody(body, t.ep)

	r := t.http.R().SetContext(ctx).SetHeader("Content-Type", "application/json").SetBody(body)
	applyAuth(r, t.ep)
	rr, err := r.Post(t.ep.URL)
	if err != nil {
		return nil, callError(t.ep, 0, err.Error())
	}
	if rr.IsError() {
		return nil, callError(t.ep, rr.StatusCode(), rr.String())
	}

	var obj map[string]any
	if err := json.Unmarshal(rr.Body(), &obj); err != nil {
		return nil, callError(t.ep, 0, "non-JSON response")
	}
	text, ok := firstString(obj, "text", "transcript", "transcription", "result")
	if !ok {
		return nil, callError(t.ep, 0, "response contains no transcript field")
	}
	return &domain.Transcript{Text: text, Engine: t.ep.Engine()}, nil
}
