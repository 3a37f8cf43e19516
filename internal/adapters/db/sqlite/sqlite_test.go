package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

func testDB(t *testing.T) *UserRepo {
	t.Helper()
	db, err := Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepo(db)
}

func seedUser(t *testing.T, users *UserRepo, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:          username + "@example.com",
		Username:       username,
		HashedPassword: "hash",
		IsActive:       true,
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestUserRepoRoundTrip(t *testing.T) {
	users := testDB(t)
	ctx := context.Background()

	u := seedUser(t, users, "alice")
	if u.ID == 0 {
		t.Fatal("id not assigned")
	}

	byName, err := users.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if byName.Email != "alice@example.com" || !byName.IsActive {
		t.Fatalf("unexpected user %+v", byName)
	}

	byEmail, err := users.GetByEmail(ctx, "alice@example.com")
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("get by email: %v / %+v", err, byEmail)
	}

	if _, err := users.GetByUsername(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	byName.FullName = "Alice A."
	if err := users.Update(ctx, byName); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := users.GetByID(ctx, u.ID)
	if err != nil || got.FullName != "Alice A." {
		t.Fatalf("update not persisted: %v / %+v", err, got)
	}
}

func TestEndpointActivationInvariant(t *testing.T) {
	users := testDB(t)
	ctx := context.Background()
	u := seedUser(t, users, "alice")

	repo := NewEndpointRepo(users.DB)
	var ids []int64
	for _, name := range []string{"first", "second", "third"} {
		e := &domain.CustomEndpoint{
			UserID:     u.ID,
			Name:       name,
			Capability: domain.CapabilityTranslation,
			URL:        "https://example.com/" + name,
		}
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, e.ID)
	}

	for _, id := range ids {
		if err := repo.Activate(ctx, u.ID, id, domain.CapabilityTranslation); err != nil {
			t.Fatalf("activate %d: %v", id, err)
		}
		all, err := repo.ListByUser(ctx, u.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		active := 0
		for _, e := range all {
			if e.IsActive {
				active++
				if e.ID != id {
					t.Fatalf("wrong endpoint active: %d, want %d", e.ID, id)
				}
			}
		}
		if active != 1 {
			t.Fatalf("expected exactly 1 active endpoint, got %d", active)
		}
	}
}

func TestEndpointActivateMissingKeepsState(t *testing.T) {
	users := testDB(t)
	ctx := context.Background()
	u := seedUser(t, users, "alice")

	repo := NewEndpointRepo(users.DB)
	e := &domain.CustomEndpoint{
		UserID:     u.ID,
		Name:       "only",
		Capability: domain.CapabilityTranslation,
		URL:        "https://example.com/only",
	}
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Activate(ctx, u.ID, e.ID, domain.CapabilityTranslation); err != nil {
		t.Fatalf("activate: %v", err)
	}

	// Activating a nonexistent target must roll back, leaving the previous
	// endpoint active.
	err := repo.Activate(ctx, u.ID, 9999, domain.CapabilityTranslation)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, err := repo.GetActive(ctx, u.ID, domain.CapabilityTranslation)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if got == nil || got.ID != e.ID {
		t.Fatalf("previous activation lost: %+v", got)
	}
}

func TestEndpointCapabilitiesIndependent(t *testing.T) {
	users := testDB(t)
	ctx := context.Background()
	u := seedUser(t, users, "alice")

	repo := NewEndpointRepo(users.DB)
	tr := &domain.CustomEndpoint{UserID: u.ID, Name: "tr", Capability: domain.CapabilityTranslation, URL: "https://example.com/tr"}
	stt := &domain.CustomEndpoint{UserID: u.ID, Name: "stt", Capability: domain.CapabilitySpeechToText, URL: "https://example.com/stt"}
	for _, e := range []*domain.CustomEndpoint{tr, stt} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := repo.Activate(ctx, u.ID, e.ID, e.Capability); err != nil {
			t.Fatalf("activate: %v", err)
		}
	}
	if err := repo.DeactivateAll(ctx, u.ID, domain.CapabilityTranslation); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if got, _ := repo.GetActive(ctx, u.ID, domain.CapabilityTranslation); got != nil {
		t.Fatalf("translation endpoint still active: %+v", got)
	}
	got, err := repo.GetActive(ctx, u.ID, domain.CapabilitySpeechToText)
	if err != nil || got == nil || got.ID != stt.ID {
		t.Fatalf("speech endpoint lost: %v / %+v", err, got)
	}
}

func TestEndpointUserScoping(t *testing.T) {
	users := testDB(t)
	ctx := context.Background()
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	repo := NewEndpointRepo(users.DB)
	e := &domain.CustomEndpoint{UserID: alice.ID, Name: "private", Capability: domain.CapabilityTranslation, URL: "https://example.com"}
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.Get(ctx, e.ID, bob.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-user get: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, e.ID, bob.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-user delete: expected ErrNotFound, got %v", err)
	}
	if err := repo.Activate(ctx, bob.ID, e.ID, domain.CapabilityTranslation); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-user activate: expected ErrNotFound, got %v", err)
	}
}

func TestEndpointMetadataRoundTrip(t *testing.T) {
	users := testDB(t)
	ctx := context.Background()
	u := seedUser(t, users, "alice")

	repo := NewEndpointRepo(users.DB)
	e := &domain.CustomEndpoint{
		UserID:     u.ID,
		Name:       "with metadata",
		Capability: domain.CapabilityTextToSpeech,
		URL:        "https://example.com/tts",
		APIKey:     "sk-1",
		Metadata: domain.EndpointMetadata{
			Headers:      map[string]string{"X-Region": "eu"},
			APIKeyHeader: "X-Api-Key",
			BodyParams:   map[string]any{"voice": "nova"},
		},
	}
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Get(ctx, e.ID, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Metadata.Headers["X-Region"] != "eu" || got.Metadata.APIKeyHeader != "X-Api-Key" {
		t.Fatalf("metadata lost: %+v", got.Metadata)
	}
	if got.Metadata.BodyParams["voice"] != "nova" {
		t.Fatalf("body params lost: %+v", got.Metadata.BodyParams)
	}
}

func TestTranslationHistory(t *testing.T) {
	users := testDB(t)
	ctx := context.Background()
	u := seedUser(t, users, "alice")

	repo := NewTranslationRepo(users.DB)
	for i := 0; i < 3; i++ {
		tr := &domain.Translation{
			UserID:         u.ID,
			SourceText:     "hello",
			TranslatedText: "xin chào",
			SourceLanguage: "en",
			TargetLanguage: "vi",
			Engine:         domain.EngineGoogle,
		}
		if err := repo.Create(ctx, tr); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	items, err := repo.List(ctx, u.ID, 0, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(items))
	}

	if err := repo.SetFavorite(ctx, items[0].ID, u.ID, true); err != nil {
		t.Fatalf("set favorite: %v", err)
	}
	refreshed, err := repo.List(ctx, u.ID, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, it := range refreshed {
		if it.ID == items[0].ID {
			found = it.IsFavorite
		}
	}
	if !found {
		t.Fatalf("favorite flag not persisted")
	}

	if err := repo.SetFavorite(ctx, items[0].ID, u.ID+1, true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-user favorite: expected ErrNotFound, got %v", err)
	}
}

func TestSettingsUpsert(t *testing.T) {
	users := testDB(t)
	ctx := context.Background()
	u := seedUser(t, users, "alice")

	repo := NewSettingsRepo(users.DB)
	if _, err := repo.Get(ctx, u.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before upsert, got %v", err)
	}

	st := domain.DefaultUserSettings(u.ID)
	if err := repo.Upsert(ctx, st); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	st.TranslateAPI = "custom_3"
	if err := repo.Upsert(ctx, st); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TranslateAPI != "custom_3" || got.SttAPI != domain.EngineGroq {
		t.Fatalf("unexpected settings %+v", got)
	}
}
