// Package googletrans adapts the free Google Translate web API.
package googletrans

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

const defaultBaseURL = "https://translate.googleapis.com"

type Client struct {
	baseURL string
	http    *resty.Client
}

func New() *Client { return NewWithBaseURL(defaultBaseURL) }

func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    resty.New().SetTimeout(20 * time.Second),
	}
}

// Translate calls the gtx endpoint. sourceLang "auto" (or empty) lets the
// provider detect; the detected code is reported back in the result.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (*domain.TranslationResult, error) {
	sl := sourceLang
	if sl == "" {
		sl = "auto"
	}
	r, err := c.http.R().SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     sl,
			"tl":     targetLang,
			"dt":     "t",
			"q":      text,
		}).
		Get(c.baseURL + "/translate_a/single")
	if err != nil {
		return nil, &domain.ProviderError{Provider: domain.EngineGoogle, Message: err.Error()}
	}
	if r.IsError() {
		return nil, &domain.ProviderError{Provider: domain.EngineGoogle, Status: r.StatusCode(), Message: r.String()}
	}

	translated, detected, err := parseResponse(r.Body())
	if err != nil {
		return nil, &domain.ProviderError{Provider: domain.EngineGoogle, Message: err.Error()}
	}
	src := detected
	if src == "" {
		src = sourceLang
	}
	return &domain.TranslationResult{
		SourceText:     text,
		TranslatedText: translated,
		SourceLanguage: src,
		TargetLanguage: targetLang,
		Engine:         domain.EngineGoogle,
		Confidence:     0.9, // the provider does not report confidence
	}, nil
}

// parseResponse decodes the gtx array payload: element 0 holds sentence
// fragments, element 2 the detected source language.
func parseResponse(body []byte) (translated, detected string, err error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", "", err
	}
	if len(payload) < 1 {
		return "", "", errMalformed
	}
	var sentences [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &sentences); err != nil {
		return "", "", err
	}
	var sb strings.Builder
	for _, s := range sentences {
		if len(s) == 0 {
			continue
		}
		var fragment string
		if err := json.Unmarshal(s[0], &fragment); err == nil {
			sb.WriteString(fragment)
		}
	}
	if len(payload) > 2 {
		_ = json.Unmarshal(payload[2], &detected)
	}
	return sb.String(), detected, nil
}

var errMalformed = errors.New("malformed translate response")
