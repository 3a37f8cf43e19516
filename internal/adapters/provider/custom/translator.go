package custom

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

// Translator posts translation requests to a user-configured endpoint.
type Translator struct {
	ep   *domain.CustomEndpoint
	http *resty.Client
}

func NewTranslator(ep *domain.CustomEndpoint) *Translator {
	return &Translator{ep: ep, http: newClient(textTimeout)}
}

func (t *Translator) Translate(ctx context.Context, text, sourceLang, targetLang string) (*domain.TranslationResult, error) {
	body := mergeBody(map[string]any{
		"text":            text,
		"source_language": sourceLang,
		"target_language": targetLang,
	}, t.ep)

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
	translated, ok := firstString(obj, "translated_text", "translation", "text", "result")
	if !ok {
		return nil, callError(t.ep, 0, "response contains no translation field")
	}
	src := sourceLang
	if detected, ok := firstString(obj, "source_language", "detected_language"); ok {
		src = detected
	}
	return &domain.TranslationResult{
		SourceText:     text,
		TranslatedText: translated,
		SourceLanguage: src,
		TargetLanguage: targetLang,
		Engine:         t.ep.Engine(),
	}, nil
}
