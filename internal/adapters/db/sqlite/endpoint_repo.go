package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

type EndpointRepo struct{ *Repo }

func NewEndpointRepo(db *sql.DB) *EndpointRepo { return &EndpointRepo{NewRepo(db)} }

var endpointCols = []string{"id", "user_id", "name", "endpoint_type", "endpoint_url", "api_key", "metadata", "is_active", "created_at", "updated_at"}

func (r *EndpointRepo) Create(ctx context.Context, e *domain.CustomEndpoint) error {
	now := time.Now().UTC().Format(time.RFC3339)
	meta, err := json.Marshal(e.Metadata)
	if err != nil {
		return err
	}
	q := r.SQ.Insert("custom_endpoints").
		Columns("user_id", "name", "endpoint_type", "endpoint_url", "api_key", "metadata", "is_active", "created_at", "updated_at").
		Values(e.UserID, e.Name, string(e.Capability), e.URL, e.APIKey, string(meta), e.IsActive, now, now)
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	e.ID = id
	return nil
}

func (r *EndpointRepo) Get(ctx context.Context, id, userID int64) (*domain.CustomEndpoint, error) {
	return r.getBy(ctx, sq.Eq{"id": id, "user_id": userID})
}

// GetActive returns the single active endpoint for the pair, or nil when the
// user has none.
func (r *EndpointRepo) GetActive(ctx context.Context, userID int64, c domain.Capability) (*domain.CustomEndpoint, error) {
	e, err := r.getBy(ctx, sq.Eq{"user_id": userID, "endpoint_type": string(c), "is_active": true})
	if err == domain.ErrNotFound {
		return nil, nil
	}
	return e, err
}

func (r *EndpointRepo) getBy(ctx context.Context, pred sq.Eq) (*domain.CustomEndpoint, error) {
	q := r.SQ.Select(endpointCols...).From("custom_endpoints").Where(pred).Limit(1)
	sqlStr, args, _ := q.ToSql()
	return scanEndpoint(r.DB.QueryRowContext(ctx, sqlStr, args...))
}

func (r *EndpointRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.CustomEndpoint, error) {
	q := r.SQ.Select(endpointCols...).From("custom_endpoints").Where(sq.Eq{"user_id": userID}).OrderBy("id")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.CustomEndpoint
	for rows.Next() {
		e, err := scanEndpoint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EndpointRepo) Update(ctx context.Context, e *domain.CustomEndpoint) error {
	now := time.Now().UTC().Format(time.RFC3339)
	meta, err := json.Marshal(e.Metadata)
	if err != nil {
		return err
	}
	q := r.SQ.Update("custom_endpoints").
		Set("name", e.Name).
		Set("endpoint_url", e.URL).
		Set("api_key", e.APIKey).
		Set("metadata", string(meta)).
		Set("updated_at", now).
		Where(sq.Eq{"id": e.ID, "user_id": e.UserID})
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

func (r *EndpointRepo) Delete(ctx context.Context, id, userID int64) error {
	q := r.SQ.Delete("custom_endpoints").Where(sq.Eq{"id": id, "user_id": userID})
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

// Activate deactivates every endpoint of the (user, capability) pair and
// activates the target inside one transaction, so a failure can never leave
// two endpoints active and a rollback restores the previous state.
func (r *EndpointRepo) Activate(ctx context.Context, userID, endpointID int64, c domain.Capability) error {
	return WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		now := time.Now().UTC().Format(time.RFC3339)
		off := r.SQ.Update("custom_endpoints").
			Set("is_active", false).
			Set("updated_at", now).
			Where(sq.Eq{"user_id": userID, "endpoint_type": string(c)})
		sqlStr, args, _ := off.ToSql()
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
		on := r.SQ.Update("custom_endpoints").
			Set("is_active", true).
			Set("updated_at", now).
			Where(sq.Eq{"id": endpointID, "user_id": userID, "endpoint_type": string(c)})
		sqlStr, args, _ = on.ToSql()
		res, err := tx.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *EndpointRepo) DeactivateAll(ctx context.Context, userID int64, c domain.Capability) error {
	now := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Update("custom_endpoints").
		Set("is_active", false).
		Set("updated_at", now).
		Where(sq.Eq{"user_id": userID, "endpoint_type": string(c)})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

type rowScanner interface{ Scan(dest ...any) error }

func scanEndpoint(row rowScanner) (*domain.CustomEndpoint, error) {
	var e domain.CustomEndpoint
	var capability, meta, created, updated string
	if err := row.Scan(&e.ID, &e.UserID, &e.Name, &capability, &e.URL, &e.APIKey, &meta, &e.IsActive, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.Capability = domain.Capability(capability)
	_ = json.Unmarshal([]byte(meta), &e.Metadata)
	e.CreatedAt, _ = time.Parse(time.RFC3339, created)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &e, nil
}
