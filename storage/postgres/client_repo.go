package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

type clientRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewClientRepo(db *pgxpool.Pool, log logger.ILogger) storage.IClientStorage {
	return &clientRepo{db: db, log: log}
}

const clientColumns = `id, first_name, last_name, phone, email, comment, created_at, updated_at`

var clientSortable = map[string]string{
	"id":         "id",
	"first_name": "first_name",
	"last_name":  "last_name",
	"phone":      "phone",
	"created_at": "created_at",
}

func scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.Comment, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	query := `
		INSERT INTO clients (first_name, last_name, phone, email, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + clientColumns
	created, err := scanClient(r.db.QueryRow(ctx, query, client.FirstName, client.LastName, client.Phone, client.Email, client.Comment))
	if err != nil {
		r.log.Error("failed to create client", logger.Error(err))
		return nil, mapError(err)
	}
	return created, nil
}

func (r *clientRepo) Update(ctx context.Context, client *models.Client) (*models.Client, error) {
	query := `
		UPDATE clients
		SET first_name = $1, last_name = $2, phone = $3, email = $4, comment = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + clientColumns
	updated, err := scanClient(r.db.QueryRow(ctx, query, client.FirstName, client.LastName, client.Phone, client.Email, client.Comment, client.ID))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *clientRepo) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	client, err := scanClient(r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return client, nil
}

func (r *clientRepo) List(ctx context.Context, q models.ListQuery) ([]*models.Client, int, error) {
	var w whereBuilder
	w.search(q.Search, "first_name", "last_name", "phone")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM clients`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(q)
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients`+w.String()+orderClause(q, clientSortable)+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}
	return clients, total, rows.Err()
}

func (r *clientRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
