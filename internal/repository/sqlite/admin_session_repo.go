package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"devcatalyst/internal/domain"
)

// AdminSessionRepository keeps admin sessions in SQLite. Timestamps are unix milliseconds.
type AdminSessionRepository struct {
	DB *sql.DB
}

func NewAdminSessionRepository(db *sql.DB) domain.AdminSessionRepository {
	return &AdminSessionRepository{DB: db}
}

const adminSessionColumns = `id, user_id, username, email, first_name, last_name, is_staff,
	sealed_token, refresh_token_hash, created_at, refreshed_at, expires_at, revoked_at`

func (r *AdminSessionRepository) Create(ctx context.Context, s *domain.AdminSession) error {
	var revokedAt sql.NullInt64
	if s.RevokedAt != nil {
		revokedAt = sql.NullInt64{Int64: toMillis(*s.RevokedAt), Valid: true}
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO admin_sessions (`+adminSessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.User.ID, s.User.Username, s.User.Email, s.User.FirstName, s.User.LastName, s.User.IsStaff,
		s.SealedToken, s.RefreshTokenHash,
		toMillis(s.CreatedAt), toMillis(s.RefreshedAt), toMillis(s.ExpiresAt), revokedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrSessionConflict
	}
	return err
}

func (r *AdminSessionRepository) GetByID(ctx context.Context, id string) (*domain.AdminSession, error) {
	return scanAdminSession(r.DB.QueryRowContext(ctx,
		`SELECT `+adminSessionColumns+` FROM admin_sessions WHERE id = ?`, id))
}

func (r *AdminSessionRepository) GetByRefreshHash(ctx context.Context, hash string) (*domain.AdminSession, error) {
	return scanAdminSession(r.DB.QueryRowContext(ctx,
		`SELECT `+adminSessionColumns+` FROM admin_sessions WHERE refresh_token_hash = ?`, hash))
}

func (r *AdminSessionRepository) Rotate(ctx context.Context, id, oldHash, newHash string, refreshedAt, expiresAt time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE admin_sessions
		 SET refresh_token_hash = ?, refreshed_at = ?, expires_at = ?
		 WHERE id = ? AND refresh_token_hash = ? AND revoked_at IS NULL`,
		newHash, toMillis(refreshedAt), toMillis(expiresAt), id, oldHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSessionConflict
		}
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

func (r *AdminSessionRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE admin_sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`,
		toMillis(at), id,
	)
	return err
}

func (r *AdminSessionRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	cutoff := toMillis(before)
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM admin_sessions WHERE expires_at < ? OR revoked_at < ?`, cutoff, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanAdminSession(row *sql.Row) (*domain.AdminSession, error) {
	s := &domain.AdminSession{}
	var createdAt, refreshedAt, expiresAt int64
	var revokedAt sql.NullInt64
	err := row.Scan(
		&s.ID, &s.User.ID, &s.User.Username, &s.User.Email, &s.User.FirstName, &s.User.LastName, &s.User.IsStaff,
		&s.SealedToken, &s.RefreshTokenHash, &createdAt, &refreshedAt, &expiresAt, &revokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	s.CreatedAt = fromMillis(createdAt)
	s.RefreshedAt = fromMillis(refreshedAt)
	s.ExpiresAt = fromMillis(expiresAt)
	if revokedAt.Valid {
		t := fromMillis(revokedAt.Int64)
		s.RevokedAt = &t
	}
	return s, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
