package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

type extraOptionRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewExtraOptionRepo(db *pgxpool.Pool, log logger.ILogger) storage.IExtraOptionStorage {
	return &extraOptionRepo{db: db, log: log}
}

const extraOptionColumns = `id, name, description, created_at, updated_at`

var extraOptionSortable = map[string]string{
	"id":         "id",
	"name":       "name",
	"created_at": "created_at",
}

func scanExtraOption(row pgx.Row) (*models.ExtraOption, error) {
	var o models.ExtraOption
	if err := row.Scan(&o.ID, &o.Name, &o.Description, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *extraOptionRepo) Create(ctx context.Context, option *models.ExtraOption) (*models.ExtraOption, error) {
	query := `INSERT INTO extra_options (name, description) VALUES ($1, $2) RETURNING ` + extraOptionColumns
	created, err := scanExtraOption(r.db.QueryRow(ctx, query, option.Name, option.Description))
	if err != nil {
		r.log.Error("failed to create extra option", logger.String("name", option.Name), logger.Error(err))
		return nil, mapError(err)
	}
	return created, nil
}

func (r *extraOptionRepo) Update(ctx context.Context, option *models.ExtraOption) (*models.ExtraOption, error) {
	query := `
		UPDATE extra_options
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + extraOptionColumns
	updated, err := scanExtraOption(r.db.QueryRow(ctx, query, option.Name, option.Description, option.ID))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *extraOptionRepo) GetByID(ctx context.Context, id int64) (*models.ExtraOption, error) {
	option, err := scanExtraOption(r.db.QueryRow(ctx, `SELECT `+extraOptionColumns+` FROM extra_options WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return option, nil
}

func (r *extraOptionRepo) GetByIDs(ctx context.Context, ids []int64) ([]*models.ExtraOption, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+extraOptionColumns+` FROM extra_options WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []*models.ExtraOption
	for rows.Next() {
		o, err := scanExtraOption(rows)
		if err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (r *extraOptionRepo) List(ctx context.Context, q models.ListQuery) ([]*models.ExtraOption, int, error) {
	var w whereBuilder
	w.search(q.Search, "name")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM extra_options`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(q)
	rows, err := r.db.Query(ctx, `SELECT `+extraOptionColumns+` FROM extra_options`+w.String()+orderClause(q, extraOptionSortable)+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var options []*models.ExtraOption
	for rows.Next() {
		o, err := scanExtraOption(rows)
		if err != nil {
			return nil, 0, err
		}
		options = append(options, o)
	}
	return options, total, rows.Err()
}

func (r *extraOptionRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM extra_options WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
