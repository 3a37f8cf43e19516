package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

type TranslationRepo struct{ *Repo }

func NewTranslationRepo(db *sql.DB) *TranslationRepo { return &TranslationRepo{NewRepo(db)} }

func (r *TranslationRepo) Create(ctx context.Context, t *domain.Translation) error {
	now := time.Now().UTC()
	q := r.SQ.Insert("translations").
		Columns("user_id", "source_text", "translated_text", "source_language", "target_language", "translation_engine", "is_favorite", "created_at").
		Values(t.UserID, t.SourceText, t.TranslatedText, t.SourceLanguage, t.TargetLanguage, t.Engine, t.IsFavorite, now.Format(time.RFC3339))
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	t.ID = id
	t.CreatedAt = now
	return nil
}

func (r *TranslationRepo) List(ctx context.Context, userID int64, offset, limit int) ([]*domain.Translation, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	q := r.SQ.Select("id", "user_id", "source_text", "translated_text", "source_language", "target_language", "translation_engine", "is_favorite", "created_at").
		From("translations").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Offset(uint64(offset)).Limit(uint64(limit))
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Translation
	for rows.Next() {
		var t domain.Translation
		var created string
		if err := rows.Scan(&t.ID, &t.UserID, &t.SourceText, &t.TranslatedText, &t.SourceLanguage, &t.TargetLanguage, &t.Engine, &t.IsFavorite, &created); err != nil {
			return nil, err
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *TranslationRepo) SetFavorite(ctx context.Context, id, userID int64, favorite bool) error {
	q := r.SQ.Update("translations").
		Set("is_favorite", favorite).
		Where(sq.Eq{"id": id, "user_id": userID})
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
