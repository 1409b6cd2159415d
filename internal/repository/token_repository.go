package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InvalidTokenRepository persists the denylist of revoked bearer tokens.
// Entries are matched by exact token string and are never deleted; tokens
// carry their own expiry, so the table growth is bounded by issuance rate.
type InvalidTokenRepository interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
	// Revoke inserts the token into the denylist. Returns false when the
	// token was already present (insert is a no-op in that case).
	Revoke(ctx context.Context, token string) (bool, error)
}

type invalidTokenRepository struct {
	pool *pgxpool.Pool
}

// NewInvalidTokenRepository returns a Postgres-backed implementation.
func NewInvalidTokenRepository(pool *pgxpool.Pool) InvalidTokenRepository {
	return &invalidTokenRepository{pool: pool}
}

func (r *invalidTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	var revoked bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM invalid_tokens WHERE token=$1)`, token,
	).Scan(&revoked); err != nil {
		return false, err
	}
	return revoked, nil
}

func (r *invalidTokenRepository) Revoke(ctx context.Context, token string) (bool, error) {
	// The unique index on token makes a concurrent duplicate insert invisible
	// to the caller: exactly one of two racing revocations reports success.
	cmd, err := r.pool.Exec(ctx,
		`INSERT INTO invalid_tokens (token) VALUES ($1) ON CONFLICT (token) DO NOTHING`, token)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
