package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

type rideClassRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewRideClassRepo(db *pgxpool.Pool, log logger.ILogger) storage.IRideClassStorage {
	return &rideClassRepo{db: db, log: log}
}

const rideClassColumns = `id, name, coefficient, description, created_at, updated_at`

var rideClassSortable = map[string]string{
	"id":          "id",
	"name":        "name",
	"coefficient": "coefficient",
	"created_at":  "created_at",
}

func scanRideClass(row pgx.Row) (*models.RideClass, error) {
	var c models.RideClass
	if err := row.Scan(&c.ID, &c.Name, &c.Coefficient, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *rideClassRepo) Create(ctx context.Context, class *models.RideClass) (*models.RideClass, error) {
	query := `INSERT INTO ride_classes (name, coefficient, description) VALUES ($1, $2, $3) RETURNING ` + rideClassColumns
	created, err := scanRideClass(r.db.QueryRow(ctx, query, class.Name, class.Coefficient, class.Description))
	if err != nil {
		r.log.Error("failed to create ride class", logger.String("name", class.Name), logger.Error(err))
		return nil, mapError(err)
	}
	return created, nil
}

func (r *rideClassRepo) Update(ctx context.Context, class *models.RideClass) (*models.RideClass, error) {
	query := `
		UPDATE ride_classes
		SET name = $1, coefficient = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + rideClassColumns
	updated, err := scanRideClass(r.db.QueryRow(ctx, query, class.Name, class.Coefficient, class.Description, class.ID))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *rideClassRepo) GetByID(ctx context.Context, id int64) (*models.RideClass, error) {
	class, err := scanRideClass(r.db.QueryRow(ctx, `SELECT `+rideClassColumns+` FROM ride_classes WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return class, nil
}

func (r *rideClassRepo) List(ctx context.Context, q models.ListQuery) ([]*models.RideClass, int, error) {
	var w whereBuilder
	w.search(q.Search, "name")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM ride_classes`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(q)
	rows, err := r.db.Query(ctx, `SELECT `+rideClassColumns+` FROM ride_classes`+w.String()+orderClause(q, rideClassSortable)+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var classes []*models.RideClass
	for rows.Next() {
		c, err := scanRideClass(rows)
		if err != nil {
			return nil, 0, err
		}
		classes = append(classes, c)
	}
	return classes, total, rows.Err()
}

func (r *rideClassRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM ride_classes WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
