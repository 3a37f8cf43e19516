package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

type UserRepo struct{ *Repo }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{NewRepo(db)} }

var userCols = []string{"id", "email", "username", "hashed_password", "full_name", "avatar", "is_active", "created_at", "updated_at"}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	now := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Insert("users").
		Columns("email", "username", "hashed_password", "full_name", "avatar", "is_active", "created_at", "updated_at").
		Values(u.Email, u.Username, u.HashedPassword, u.FullName, u.Avatar, true, now, now)
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	u.ID = id
	u.IsActive = true
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getBy(ctx, sq.Eq{"id": id})
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, sq.Eq{"username": username})
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, sq.Eq{"email": email})
}

func (r *UserRepo) getBy(ctx context.Context, pred sq.Eq) (*domain.User, error) {
	q := r.SQ.Select(userCols...).From("users").Where(pred).Limit(1)
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var u domain.User
	var created, updated string
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.HashedPassword, &u.FullName, &u.Avatar, &u.IsActive, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	u.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	now := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Update("users").
		Set("email", u.Email).
		Set("full_name", u.FullName).
		Set("avatar", u.Avatar).
		Set("is_active", u.IsActive).
		Set("updated_at", now).
		Where(sq.Eq{"id": u.ID})
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
