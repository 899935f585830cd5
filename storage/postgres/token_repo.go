package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

type tokenRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewTokenRepo(db *pgxpool.Pool, log logger.ILogger) storage.ITokenStorage {
	return &tokenRepo{db: db, log: log}
}

func (r *tokenRepo) Create(ctx context.Context, token *models.Token) (*models.Token, error) {
	query := `
		INSERT INTO tokens (user_id, hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, token.UserID, token.Hash, token.ExpiresAt).Scan(&token.ID, &token.CreatedAt, &token.UpdatedAt)
	if err != nil {
		r.log.Error("failed to create token", logger.Int64("user_id", token.UserID), logger.Error(err))
		return nil, mapError(err)
	}
	return token, nil
}

func (r *tokenRepo) Replace(ctx context.Context, id int64, hash string, expiresAt time.Time) error {
	res, err := r.db.Exec(ctx, `UPDATE tokens SET hash = $1, expires_at = $2, updated_at = NOW() WHERE id = $3`, hash, expiresAt, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetByUser returns the user's sessions oldest first.
func (r *tokenRepo) GetByUser(ctx context.Context, userID int64) ([]*models.Token, error) {
	query := `SELECT id, user_id, hash, expires_at, created_at, updated_at FROM tokens WHERE user_id = $1 ORDER BY updated_at ASC, id ASC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []*models.Token
	for rows.Next() {
		var t models.Token
		if err := rows.Scan(&t.ID, &t.UserID, &t.Hash, &t.ExpiresAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tokens = append(tokens, &t)
	}
	return tokens, rows.Err()
}

func (r *tokenRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM tokens WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *tokenRepo) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tokens WHERE user_id = $1`, userID)
	return err
}
