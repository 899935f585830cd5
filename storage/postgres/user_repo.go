package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

type userRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewUserRepo(db *pgxpool.Pool, log logger.ILogger) storage.IUserStorage {
	return &userRepo{db: db, log: log}
}

const userColumns = `id, username, full_name, role, avatar_file_id, password_hash, created_at, updated_at`

var userSortable = map[string]string{
	"id":         "id",
	"username":   "username",
	"full_name":  "full_name",
	"created_at": "created_at",
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.Role, &u.AvatarFileID, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, full_name, role, avatar_file_id, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns
	created, err := scanUser(r.db.QueryRow(ctx, query, user.Username, user.FullName, user.Role, user.AvatarFileID, user.PasswordHash))
	if err != nil {
		r.log.Error("failed to create user", logger.String("username", user.Username), logger.Error(err))
		return nil, mapError(err)
	}
	return created, nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		UPDATE users
		SET username = $1, full_name = $2, role = $3, avatar_file_id = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + userColumns
	updated, err := scanUser(r.db.QueryRow(ctx, query, user.Username, user.FullName, user.Role, user.AvatarFileID, user.ID))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := r.db.Exec(ctx, "UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2", hash, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

func (r *userRepo) List(ctx context.Context, q models.ListQuery) ([]*models.User, int, error) {
	var w whereBuilder
	w.search(q.Search, "username", "full_name")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(q)
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users`+w.String()+orderClause(q, userSortable)+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
