package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

type WebhookRepo struct{ *Repo }

func NewWebhookRepo(db *sql.DB) *WebhookRepo { return &WebhookRepo{NewRepo(db)} }

var webhookCols = []string{"id", "user_id", "name", "platform", "webhook_url", "secret_key", "event_types", "config", "is_active", "created_at", "updated_at"}

func (r *WebhookRepo) Create(ctx context.Context, w *domain.WebhookIntegration) error {
	now := time.Now().UTC().Format(time.RFC3339)
	events, err := json.Marshal(w.EventTypes)
	if err != nil {
		return err
	}
	cfg := w.Config
	if len(cfg) == 0 {
		cfg = json.RawMessage("{}")
	}
	q := r.SQ.Insert("webhook_integrations").
		Columns("user_id", "name", "platform", "webhook_url", "secret_key", "event_types", "config", "is_active", "created_at", "updated_at").
		Values(w.UserID, w.Name, w.Platform, w.WebhookURL, w.SecretKey, string(events), string(cfg), w.IsActive, now, now)
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	w.ID = id
	return nil
}

func (r *WebhookRepo) Get(ctx context.Context, id, userID int64) (*domain.WebhookIntegration, error) {
	q := r.SQ.Select(webhookCols...).From("webhook_integrations").Where(sq.Eq{"id": id, "user_id": userID}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	return scanWebhook(r.DB.QueryRowContext(ctx, sqlStr, args...))
}

func (r *WebhookRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.WebhookIntegration, error) {
	return r.list(ctx, sq.Eq{"user_id": userID})
}

func (r *WebhookRepo) ListActive(ctx context.Context, userID int64) ([]*domain.WebhookIntegration, error) {
	return r.list(ctx, sq.Eq{"user_id": userID, "is_active": true})
}

func (r *WebhookRepo) list(ctx context.Context, pred sq.Eq) ([]*domain.WebhookIntegration, error) {
	q := r.SQ.Select(webhookCols...).From("webhook_integrations").Where(pred).OrderBy("id")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.WebhookIntegration
	for rows.Next() {
		w, err := scanWebhook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WebhookRepo) Update(ctx context.Context, w *domain.WebhookIntegration) error {
	now := time.Now().UTC().Format(time.RFC3339)
	events, err := json.Marshal(w.EventTypes)
	if err != nil {
		return err
	}
	cfg := w.Config
	if len(cfg) == 0 {
		cfg = json.RawMessage("{}")
	}
	q := r.SQ.Update("webhook_integrations").
		Set("name", w.Name).
		Set("platform", w.Platform).
		Set("webhook_url", w.WebhookURL).
		Set("secret_key", w.SecretKey).
		Set("event_types", string(events)).
		Set("config", string(cfg)).
		Set("is_active", w.IsActive).
		Set("updated_at", now).
		Where(sq.Eq{"id": w.ID, "user_id": w.UserID})
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

func (r *WebhookRepo) Delete(ctx context.Context, id, userID int64) error {
	q := r.SQ.Delete("webhook_integrations").Where(sq.Eq{"id": id, "user_id": userID})
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

func scanWebhook(row rowScanner) (*domain.WebhookIntegration, error) {
	var w domain.WebhookIntegration
	var events, cfg, created, updated string
	if err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Platform, &w.WebhookURL, &w.SecretKey, &events, &cfg, &w.IsActive, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	_ = json.Unmarshal([]byte(events), &w.EventTypes)
	w.Config = json.RawMessage(cfg)
	w.CreatedAt, _ = time.Parse(time.RFC3339, created)
	w.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &w, nil
}
