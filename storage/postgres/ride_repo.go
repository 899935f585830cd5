package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

type rideRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewRideRepo(db *pgxpool.Pool, log logger.ILogger) storage.IRideStorage {
	return &rideRepo{db: db, log: log}
}

const rideColumns = `id, client_id, driver_id, operator_id, ride_class_id, status, price, distance_meters, scheduled_at, comment, created_at, updated_at`

var rideSortable = map[string]string{
	"id":           "id",
	"created_at":   "created_at",
	"price":        "price",
	"scheduled_at": "scheduled_at",
	"status":       "status",
}

func scanRide(row pgx.Row) (*models.Ride, error) {
	var r models.Ride
	err := row.Scan(
		&r.ID, &r.ClientID, &r.DriverID, &r.OperatorID, &r.RideClassID, &r.Status,
		&r.Price, &r.DistanceMeters, &r.ScheduledAt, &r.Comment, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *rideRepo) Create(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	var id int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO rides (client_id, driver_id, operator_id, ride_class_id, status, price, distance_meters, scheduled_at, comment)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`
		err := tx.QueryRow(ctx, query,
			ride.ClientID,
			ride.DriverID,
			ride.OperatorID,
			ride.RideClassID,
			ride.Status,
			ride.Price,
			ride.DistanceMeters,
			ride.ScheduledAt,
			ride.Comment,
		).Scan(&id)
		if err != nil {
			return err
		}
		return writeRideChildren(ctx, tx, id, ride)
	})
	if err != nil {
		r.log.Error("failed to create ride", logger.Int64("client_id", ride.ClientID), logger.Error(err))
		return nil, mapError(err)
	}
	return r.GetByID(ctx, id)
}

func (r *rideRepo) Update(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE rides
			SET client_id = $1, driver_id = $2, ride_class_id = $3, status = $4, price = $5,
			    distance_meters = $6, scheduled_at = $7, comment = $8, updated_at = NOW()
			WHERE id = $9
		`
		res, err := tx.Exec(ctx, query,
			ride.ClientID,
			ride.DriverID,
			ride.RideClassID,
			ride.Status,
			ride.Price,
			ride.DistanceMeters,
			ride.ScheduledAt,
			ride.Comment,
			ride.ID,
		)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return storage.ErrNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM locations WHERE ride_id = $1`, ride.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM ride_extra_options WHERE ride_id = $1`, ride.ID); err != nil {
			return err
		}
		return writeRideChildren(ctx, tx, ride.ID, ride)
	})
	if err != nil {
		r.log.Error("failed to update ride", logger.Int64("id", ride.ID), logger.Error(err))
		return nil, mapError(err)
	}
	return r.GetByID(ctx, ride.ID)
}

func writeRideChildren(ctx context.Context, tx pgx.Tx, rideID int64, ride *models.Ride) error {
	batch := &pgx.Batch{}
	for i, wp := range ride.Waypoints {
		batch.Queue(
			`INSERT INTO locations (ride_id, position, address, lat, lng) VALUES ($1, $2, $3, $4, $5)`,
			rideID, i, wp.Address, wp.Lat, wp.Lng,
		)
	}
	for _, opt := range ride.ExtraOptions {
		batch.Queue(`INSERT INTO ride_extra_options (ride_id, extra_option_id) VALUES ($1, $2)`, rideID, opt.ID)
	}
	if batch.Len() == 0 {
		return nil
	}
	return tx.SendBatch(ctx, batch).Close()
}

func (r *rideRepo) GetByID(ctx context.Context, id int64) (*models.Ride, error) {
	ride, err := scanRide(r.db.QueryRow(ctx, `SELECT `+rideColumns+` FROM rides WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	if err := r.attachChildren(ctx, []*models.Ride{ride}); err != nil {
		return nil, err
	}
	return ride, nil
}

func (r *rideRepo) List(ctx context.Context, q models.ListQuery, f models.RideFilter) ([]*models.Ride, int, error) {
	var w whereBuilder
	w.search(q.Search, "comment")
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.ClientID != nil {
		w.add("client_id = ?", *f.ClientID)
	}
	if f.DriverID != nil {
		w.add("driver_id = ?", *f.DriverID)
	}
	if f.RideClassID != nil {
		w.add("ride_class_id = ?", *f.RideClassID)
	}
	if f.From != nil {
		w.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("created_at < ?", *f.To)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM rides`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(q)
	rows, err := r.db.Query(ctx, `SELECT `+rideColumns+` FROM rides`+w.String()+orderClause(q, rideSortable)+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rides []*models.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, 0, err
		}
		rides = append(rides, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachChildren(ctx, rides); err != nil {
		return nil, 0, err
	}
	return rides, total, nil
}

// attachChildren loads waypoints and extra options for a set of rides in two queries.
func (r *rideRepo) attachChildren(ctx context.Context, rides []*models.Ride) error {
	if len(rides) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(rides))
	byID := make(map[int64]*models.Ride, len(rides))
	for _, ride := range rides {
		ride.Waypoints = []models.Location{}
		ride.ExtraOptions = []models.ExtraOption{}
		ids = append(ids, ride.ID)
		byID[ride.ID] = ride
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, ride_id, position, address, lat, lng
		FROM locations
		WHERE ride_id = ANY($1)
		ORDER BY ride_id, position
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.RideID, &l.Position, &l.Address, &l.Lat, &l.Lng); err != nil {
			rows.Close()
			return err
		}
		byID[l.RideID].Waypoints = append(byID[l.RideID].Waypoints, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT reo.ride_id, o.id, o.name, o.description, o.created_at, o.updated_at
		FROM ride_extra_options reo
		JOIN extra_options o ON o.id = reo.extra_option_id
		WHERE reo.ride_id = ANY($1)
		ORDER BY reo.ride_id, o.id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rideID int64
		var o models.ExtraOption
		if err := rows.Scan(&rideID, &o.ID, &o.Name, &o.Description, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return err
		}
		byID[rideID].ExtraOptions = append(byID[rideID].ExtraOptions, o)
	}
	return rows.Err()
}

func (r *rideRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM rides WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
