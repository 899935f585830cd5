package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

const driverColumns = `id, first_name, last_name, phone, car_model, car_color, license_plate, telegram_id, photo_file_id, is_active, created_at, updated_at`

var driverSortable = map[string]string{
	"id":            "id",
	"first_name":    "first_name",
	"last_name":     "last_name",
	"license_plate": "license_plate",
	"created_at":    "created_at",
}

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(
		&d.ID, &d.FirstName, &d.LastName, &d.Phone, &d.CarModel, &d.CarColor, &d.LicensePlate,
		&d.TelegramID, &d.PhotoFileID, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepo) Create(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	query := `
		INSERT INTO drivers (first_name, last_name, phone, car_model, car_color, license_plate, telegram_id, photo_file_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + driverColumns
	created, err := scanDriver(r.db.QueryRow(ctx, query,
		driver.FirstName,
		driver.LastName,
		driver.Phone,
		driver.CarModel,
		driver.CarColor,
		driver.LicensePlate,
		driver.TelegramID,
		driver.PhotoFileID,
		driver.IsActive,
	))
	if err != nil {
		r.log.Error("failed to create driver", logger.Error(err))
		return nil, mapError(err)
	}
	return created, nil
}

func (r *driverRepo) Update(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	query := `
		UPDATE drivers
		SET first_name = $1, last_name = $2, phone = $3, car_model = $4, car_color = $5,
		    license_plate = $6, telegram_id = $7, photo_file_id = $8, is_active = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING ` + driverColumns
	updated, err := scanDriver(r.db.QueryRow(ctx, query,
		driver.FirstName,
		driver.LastName,
		driver.Phone,
		driver.CarModel,
		driver.CarColor,
		driver.LicensePlate,
		driver.TelegramID,
		driver.PhotoFileID,
		driver.IsActive,
		driver.ID,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *driverRepo) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	driver, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return driver, nil
}

func (r *driverRepo) List(ctx context.Context, q models.ListQuery, active *bool) ([]*models.Driver, int, error) {
	var w whereBuilder
	w.search(q.Search, "first_name", "last_name", "phone", "license_plate")
	if active != nil {
		w.add("is_active = ?", *active)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM drivers`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(q)
	rows, err := r.db.Query(ctx, `SELECT `+driverColumns+` FROM drivers`+w.String()+orderClause(q, driverSortable)+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var drivers []*models.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, 0, err
		}
		drivers = append(drivers, d)
	}
	return drivers, total, rows.Err()
}

func (r *driverRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
