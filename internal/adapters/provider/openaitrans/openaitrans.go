// Package openaitrans adapts OpenAI chat completions for translation.
package openaitrans

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

const defaultModel = openai.GPT3Dot5Turbo

var languageNames = map[string]string{
	"vi": "Vietnamese",
	"en": "English",
	"fr": "French",
	"de": "German",
	"es": "Spanish",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
}

type Client struct {
	api   *openai.Client
	model string
	// kept to distinguish "not configured" from upstream auth failures
	configured bool
}

func New(apiKey string) *Client { return NewWithBaseURL(apiKey, "") }

func NewWithBaseURL(apiKey, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:        openai.NewClientWithConfig(cfg),
		model:      defaultModel,
		configured: apiKey != "",
	}
}

func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (*domain.TranslationResult, error) {
	if !c.configured {
		return nil, &domain.ConfigurationError{Message: "OpenAI API key not configured"}
	}
	prompt := fmt.Sprintf(
		"Translate the following %s text to %s. Only return the translation, no explanations:\n\n%s",
		languageName(sourceLang), languageName(targetLang), text,
	)
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
		MaxTokens:   1000,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, providerError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &domain.ProviderError{Provider: domain.EngineOpenAI, Message: "no choices returned"}
	}
	return &domain.TranslationResult{
		SourceText:     text,
		TranslatedText: strings.TrimSpace(resp.Choices[0].Message.Content),
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		Engine:         domain.EngineOpenAI,
		Confidence:     0.95,
	}, nil
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

func providerError(err error) *domain.ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &domain.ProviderError{Provider: domain.EngineOpenAI, Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	return &domain.ProviderError{Provider: domain.EngineOpenAI, Message: err.Error()}
}
