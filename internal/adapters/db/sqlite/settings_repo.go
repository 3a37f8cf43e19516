package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

type SettingsRepo struct{ *Repo }

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{NewRepo(db)} }

func (r *SettingsRepo) Get(ctx context.Context, userID int64) (*domain.UserSettings, error) {
	q := r.SQ.Select("id", "user_id", "src_lang", "trg_lang", "translate_api", "stt_api", "tts_api", "created_at", "updated_at").
		From("user_settings").Where(sq.Eq{"user_id": userID}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var s domain.UserSettings
	var created, updated string
	if err := row.Scan(&s.ID, &s.UserID, &s.SrcLang, &s.TrgLang, &s.TranslateAPI, &s.SttAPI, &s.TtsAPI, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339, created)
	s.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &s, nil
}

func (r *SettingsRepo) Upsert(ctx context.Context, s *domain.UserSettings) error {
	now := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Insert("user_settings").
		Columns("user_id", "src_lang", "trg_lang", "translate_api", "stt_api", "tts_api", "created_at", "updated_at").
		Values(s.UserID, s.SrcLang, s.TrgLang, s.TranslateAPI, s.SttAPI, s.TtsAPI, now, now).
		Suffix(`ON CONFLICT(user_id) DO UPDATE SET
            src_lang=excluded.src_lang,
            trg_lang=excluded.trg_lang,
            translate_api=excluded.translate_api,
            stt_api=excluded.stt_api,
            tts_api=excluded.tts_api,
            updated_at=excluded.updated_at`)
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}
