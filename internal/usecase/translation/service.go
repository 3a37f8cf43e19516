// Package translation implements text translation and language detection with
// response caching, per-user engine routing and history persistence.
package translation

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/longduongbao29/Translator-app/internal/adapters/provider/registry"
	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/ports"
	"github.com/longduongbao29/Translator-app/internal/usecase/routing"
)

const (
	maxTextLen = 5000
	// Text shorter than this is not worth running through the statistical
	// detector; the result would be noise.
	minDetectLen = 5

	defaultLanguage = "en"

	translationTTL = time.Hour
	detectionTTL   = 24 * time.Hour

	webhookTimeout = 10 * time.Second
)

type Deps struct {
	Engines          *registry.Registry
	Detector         ports.Detector
	Cache            ports.KV
	Resolver         ports.EndpointResolver
	History          ports.TranslationRepository
	Webhooks         ports.WebhookRepository
	Sender           ports.WebhookSender
	CustomTranslator func(*domain.CustomEndpoint) ports.Translator
	Log              *log.Logger
}

type Service struct {
	d Deps
}

func New(d Deps) *Service {
	return &Service{d: d}
}

type TranslateArgs struct {
	Text       string
	SourceLang string
	TargetLang string
	Engine     string
	UserID     *int64
}

// Translate routes the request to the caller's active custom endpoint when one
// exists, otherwise to the built-in engine named by Engine. For authenticated
// callers the result is appended to history; anonymous results are returned
// without being persisted.
func (s *Service) Translate(ctx context.Context, a TranslateArgs) (*domain.TranslationResult, error) {
	if strings.TrimSpace(a.Text) == "" {
		return nil, &domain.ValidationError{Field: "text", Message: "text is required"}
	}
	if utf8.RuneCountInString(a.Text) > maxTextLen {
		return nil, &domain.ValidationError{Field: "text", Message: "text exceeds maximum length of 5000 characters"}
	}
	if a.SourceLang == "" {
		a.SourceLang = "auto"
	}
	if a.TargetLang == "" {
		return nil, &domain.ValidationError{Field: "target_language", Message: "target_language is required"}
	}

	res, err := routing.Route(ctx, s.d.Resolver, s.d.Log, a.UserID, domain.CapabilityTranslation,
		func(ctx context.Context, ep *domain.CustomEndpoint) (*domain.TranslationResult, error) {
			return s.d.CustomTranslator(ep).Translate(ctx, a.Text, a.SourceLang, a.TargetLang)
		},
		func(ctx context.Context) (*domain.TranslationResult, error) {
			return s.builtinTranslate(ctx, a)
		})
	if err != nil {
		return nil, err
	}

	if a.UserID != nil {
		s.persist(ctx, *a.UserID, a, res)
	}
	s.notify(a.UserID, a, res)
	return res, nil
}

func (s *Service) builtinTranslate(ctx context.Context, a TranslateArgs) (*domain.TranslationResult, error) {
	engine := a.Engine
	tr, ok := s.d.Engines.Get(engine)
	if !ok {
		engine = domain.EngineGoogle
		if tr, ok = s.d.Engines.Get(engine); !ok {
			return nil, &domain.ConfigurationError{Message: "no translation engine available"}
		}
	}

	key := CacheKey(a.Text, a.SourceLang, a.TargetLang, engine)
	if cached := s.cacheGet(ctx, key); cached != nil {
		var res domain.TranslationResult
		if err := json.Unmarshal(cached, &res); err == nil {
			s.d.Log.Debug("translation cache hit", "engine", engine)
			return &res, nil
		}
	}

	res, err := tr.Translate(ctx, a.Text, a.SourceLang, a.TargetLang)
	if err != nil {
		return nil, err
	}
	s.cachePut(ctx, key, res, translationTTL)
	return res, nil
}

// Detect reports the language of text. Short input gets the default language
// at medium confidence without touching the detector, and a detector failure
// degrades to the default at low confidence instead of surfacing an error.
func (s *Service) Detect(ctx context.Context, text string) (*domain.Detection, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &domain.ValidationError{Field: "text", Message: "text is required"}
	}
	if utf8.RuneCountInString(trimmed) < minDetectLen {
		return &domain.Detection{DetectedLanguage: defaultLanguage, Confidence: 0.5}, nil
	}

	key := DetectionKey(trimmed)
	if cached := s.cacheGet(ctx, key); cached != nil {
		var d domain.Detection
		if err := json.Unmarshal(cached, &d); err == nil {
			return &d, nil
		}
	}

	d, err := s.d.Detector.Detect(ctx, trimmed)
	if err != nil {
		s.d.Log.Warn("language detection failed, using default", "err", err)
		return &domain.Detection{DetectedLanguage: defaultLanguage, Confidence: 0.3}, nil
	}
	s.cachePut(ctx, key, d, detectionTTL)
	return d, nil
}

// History returns the caller's saved translations, newest first.
func (s *Service) History(ctx context.Context, userID int64, offset, limit int) ([]*domain.Translation, error) {
	return s.d.History.List(ctx, userID, offset, limit)
}

// SetFavorite toggles the favorite flag on one of the caller's translations.
func (s *Service) SetFavorite(ctx context.Context, userID, translationID int64, favorite bool) error {
	return s.d.History.SetFavorite(ctx, translationID, userID, favorite)
}

// Languages returns the languages the built-in engines accept.
func (s *Service) Languages() []domain.Language {
	return supportedLanguages
}

// Engines returns the registered built-in engine names.
func (s *Service) Engines() []string {
	return s.d.Engines.Names()
}

func (s *Service) persist(ctx context.Context, userID int64, a TranslateArgs, res *domain.TranslationResult) {
	t := &domain.Translation{
		UserID:         userID,
		SourceText:     a.Text,
		TranslatedText: res.TranslatedText,
		SourceLanguage: res.SourceLanguage,
		TargetLanguage: res.TargetLanguage,
		Engine:         res.Engine,
	}
	if err := s.d.History.Create(ctx, t); err != nil {
		s.d.Log.Warn("failed to persist translation", "user_id", userID, "err", err)
		return
	}
	res.ID = &t.ID
	res.CreatedAt = &t.CreatedAt
	res.IsFavorite = t.IsFavorite
}

// notify fans the completed translation out to the caller's subscribed
// webhooks. Delivery is best effort and never blocks the response.
func (s *Service) notify(userID *int64, a TranslateArgs, res *domain.TranslationResult) {
	if userID == nil || s.d.Webhooks == nil || s.d.Sender == nil {
		return
	}
	uid := *userID
	payload := map[string]any{
		"source_text":     a.Text,
		"translated_text": res.TranslatedText,
		"source_language": res.SourceLanguage,
		"target_language": res.TargetLanguage,
		"engine":          res.Engine,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), webhookTimeout)
		defer cancel()
		hooks, err := s.d.Webhooks.ListActive(ctx, uid)
		if err != nil {
			s.d.Log.Warn("failed to list webhooks", "user_id", uid, "err", err)
			return
		}
		for _, h := range hooks {
			if !h.Subscribed(domain.EventTranslationCompleted) {
				continue
			}
			if err := s.d.Sender.Send(ctx, h, domain.EventTranslationCompleted, payload); err != nil {
				s.d.Log.Warn("webhook delivery failed", "webhook_id", h.ID, "err", err)
			}
		}
	}()
}

// cacheGet treats every cache failure as a miss.
func (s *Service) cacheGet(ctx context.Context, key string) []byte {
	if s.d.Cache == nil {
		return nil
	}
	b, err := s.d.Cache.Get(ctx, key)
	if err != nil {
		s.d.Log.Warn("cache read failed", "err", err)
		return nil
	}
	return b
}

// cachePut is fire and forget; a failed write only costs a future recompute.
func (s *Service) cachePut(ctx context.Context, key string, v any, ttl time.Duration) {
	if s.d.Cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.d.Cache.Put(ctx, key, b, ttl); err != nil {
		s.d.Log.Warn("cache write failed", "err", err)
	}
}

// CacheKey derives the cache key for a translation request. Identical
// requests against the same engine share an entry.
func CacheKey(text, sourceLang, targetLang, engine string) string {
	sum := md5.Sum([]byte(text + ":" + sourceLang + ":" + targetLang + ":" + engine))
	return "translation:" + hex.EncodeToString(sum[:])
}

// DetectionKey derives the cache key for a detection request.
func DetectionKey(text string) string {
	sum := md5.Sum([]byte(text))
	return "detection:" + hex.EncodeToString(sum[:])
}
