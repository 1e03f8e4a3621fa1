package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"devcatalyst/internal/domain"

	"github.com/lib/pq"
)

type AdminSessionRepository struct {
	DB *sql.DB
}

func NewAdminSessionRepository(db *sql.DB) domain.AdminSessionRepository {
	return &AdminSessionRepository{
		DB: db,
	}
}

const adminSessionColumns = `id, user_id, username, email, first_name, last_name, is_staff,
	sealed_token, refresh_token_hash, created_at, refreshed_at, expires_at, revoked_at`

func (r *AdminSessionRepository) Create(ctx context.Context, s *domain.AdminSession) error {
	query := `
		INSERT INTO admin_sessions (` + adminSessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.DB.ExecContext(ctx, query,
		s.ID, s.User.ID, s.User.Username, s.User.Email, s.User.FirstName, s.User.LastName, s.User.IsStaff,
		s.SealedToken, s.RefreshTokenHash, s.CreatedAt, s.RefreshedAt, s.ExpiresAt, s.RevokedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrSessionConflict
		}
		return err
	}
	return nil
}

func (r *AdminSessionRepository) GetByID(ctx context.Context, id string) (*domain.AdminSession, error) {
	query := `SELECT ` + adminSessionColumns + ` FROM admin_sessions WHERE id = $1`
	return scanAdminSession(r.DB.QueryRowContext(ctx, query, id))
}

func (r *AdminSessionRepository) GetByRefreshHash(ctx context.Context, hash string) (*domain.AdminSession, error) {
	query := `SELECT ` + adminSessionColumns + ` FROM admin_sessions WHERE refresh_token_hash = $1`
	return scanAdminSession(r.DB.QueryRowContext(ctx, query, hash))
}

func (r *AdminSessionRepository) Rotate(ctx context.Context, id, oldHash, newHash string, refreshedAt, expiresAt time.Time) error {
	query := `
		UPDATE admin_sessions
		SET refresh_token_hash = $3, refreshed_at = $4, expires_at = $5
		WHERE id = $1 AND refresh_token_hash = $2 AND revoked_at IS NULL
	`
	res, err := r.DB.ExecContext(ctx, query, id, oldHash, newHash, refreshedAt, expiresAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Revoke is idempotent; revoking an already revoked session keeps the first timestamp.
func (r *AdminSessionRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE admin_sessions SET revoked_at = $2 WHERE id = $1 AND revoked_at IS NULL`
	_, err := r.DB.ExecContext(ctx, query, id, at)
	return err
}

func (r *AdminSessionRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM admin_sessions WHERE expires_at < $1 OR revoked_at < $1`
	res, err := r.DB.ExecContext(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanAdminSession(row *sql.Row) (*domain.AdminSession, error) {
	s := &domain.AdminSession{}
	var revokedAt sql.NullTime
	err := row.Scan(
		&s.ID, &s.User.ID, &s.User.Username, &s.User.Email, &s.User.FirstName, &s.User.LastName, &s.User.IsStaff,
		&s.SealedToken, &s.RefreshTokenHash, &s.CreatedAt, &s.RefreshedAt, &s.ExpiresAt, &revokedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	if revokedAt.Valid {
		t := revokedAt.Time
		s.RevokedAt = &t
	}
	return s, nil
}
