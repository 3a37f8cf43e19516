package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

type ElevenLabsRepo struct{ *Repo }

func NewElevenLabsRepo(db *sql.DB) *ElevenLabsRepo { return &ElevenLabsRepo{NewRepo(db)} }

func (r *ElevenLabsRepo) Get(ctx context.Context, userID int64) (*domain.ElevenLabsSettings, error) {
	q := r.SQ.Select("id", "user_id", "voice_id", "model_id", "voice_settings", "updated_at").
		From("elevenlabs_settings").Where(sq.Eq{"user_id": userID}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var s domain.ElevenLabsSettings
	var voiceSettings, updated string
	if err := row.Scan(&s.ID, &s.UserID, &s.VoiceID, &s.ModelID, &voiceSettings, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	s.VoiceSettings = json.RawMessage(voiceSettings)
	s.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &s, nil
}

func (r *ElevenLabsRepo) Upsert(ctx context.Context, s *domain.ElevenLabsSettings) error {
	now := time.Now().UTC().Format(time.RFC3339)
	vs := s.VoiceSettings
	if len(vs) == 0 {
		vs = json.RawMessage("{}")
	}
	q := r.SQ.Insert("elevenlabs_settings").
		Columns("user_id", "voice_id", "model_id", "voice_settings", "updated_at").
		Values(s.UserID, s.VoiceID, s.ModelID, string(vs), now).
		Suffix(`ON CONFLICT(user_id) DO UPDATE SET
            voice_id=excluded.voice_id,
            model_id=excluded.model_id,
            voice_settings=excluded.voice_settings,
            updated_at=excluded.updated_at`)
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}
