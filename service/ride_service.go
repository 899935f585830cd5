package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/maps"
	"ridedispatch/pkg/models"
	"ridedispatch/pkg/notifier"
	"ridedispatch/storage"
)

const notifyTimeout = 5 * time.Second

var rideStatuses = map[string]bool{
	models.RideStatusPending:    true,
	models.RideStatusAssigned:   true,
	models.RideStatusInProgress: true,
	models.RideStatusCompleted:  true,
	models.RideStatusCancelled:  true,
}

type RideService interface {
	Create(ctx context.Context, ride *models.Ride, operatorID int64) (*models.Ride, error)
	Update(ctx context.Context, ride *models.Ride) (*models.Ride, error)
	Get(ctx context.Context, id int64) (*models.Ride, error)
	List(ctx context.Context, q models.ListQuery, f models.RideFilter) (models.Page[*models.Ride], error)
	Delete(ctx context.Context, id int64) error
	Quote(ctx context.Context, rideClassID int64, points []models.LatLng) (*models.Quote, error)
}

type rideService struct {
	rides    storage.IRideStorage
	clients  storage.IClientStorage
	drivers  storage.IDriverStorage
	classes  storage.IRideClassStorage
	options  storage.IExtraOptionStorage
	router   maps.Router
	cache    storage.IRouteCache
	notifier notifier.Notifier
	log      logger.ILogger
}

// NewRideService wires the ride workflow. router and cache may be nil: quotes are then
// unavailable or uncached respectively.
func NewRideService(stg storage.IStorage, router maps.Router, cache storage.IRouteCache, n notifier.Notifier, log logger.ILogger) RideService {
	if n == nil {
		n = notifier.Nop{}
	}
	return &rideService{
		rides:    stg.Ride(),
		clients:  stg.Client(),
		drivers:  stg.Driver(),
		classes:  stg.RideClass(),
		options:  stg.ExtraOption(),
		router:   router,
		cache:    cache,
		notifier: n,
		log:      log,
	}
}

// resolve checks every reference of the ride and replaces its extra options with the
// stored ones. It returns the assigned driver, if any.
func (s *rideService) resolve(ctx context.Context, ride *models.Ride) (*models.Driver, error) {
	if len(ride.Waypoints) < 2 {
		return nil, newError(ErrBadRequest, "a ride needs at least two waypoints")
	}
	if ride.Status != "" && !rideStatuses[ride.Status] {
		return nil, newError(ErrBadRequest, "unknown ride status %q", ride.Status)
	}
	if ride.Price.IsNegative() {
		return nil, newError(ErrBadRequest, "price must not be negative")
	}

	if _, err := s.clients.GetByID(ctx, ride.ClientID); err != nil {
		return nil, fromStorage(err, "client")
	}
	if _, err := s.classes.GetByID(ctx, ride.RideClassID); err != nil {
		return nil, fromStorage(err, "ride class")
	}

	var driver *models.Driver
	if ride.DriverID != nil {
		d, err := s.drivers.GetByID(ctx, *ride.DriverID)
		if err != nil {
			return nil, fromStorage(err, "driver")
		}
		driver = d
	}

	ids := uniqueIDs(ride.ExtraOptionIDs())
	if len(ids) > 0 {
		found, err := s.options.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		if len(found) != len(ids) {
			return nil, newError(ErrNotFound, "extra option not found")
		}
		ride.ExtraOptions = make([]models.ExtraOption, 0, len(found))
		for _, o := range found {
			ride.ExtraOptions = append(ride.ExtraOptions, *o)
		}
	} else {
		ride.ExtraOptions = nil
	}

	for i := range ride.Waypoints {
		ride.Waypoints[i].Position = i
	}
	return driver, nil
}

func (s *rideService) Create(ctx context.Context, ride *models.Ride, operatorID int64) (*models.Ride, error) {
	driver, err := s.resolve(ctx, ride)
	if err != nil {
		return nil, err
	}
	if operatorID != 0 {
		ride.OperatorID = &operatorID
	}
	if ride.Status == "" {
		ride.Status = models.RideStatusPending
		if ride.DriverID != nil {
			ride.Status = models.RideStatusAssigned
		}
	}

	created, err := s.rides.Create(ctx, ride)
	if err != nil {
		return nil, fromStorage(err, "ride")
	}
	ridesCreated.Inc()
	s.log.Info("ride created", logger.Int64("id", created.ID), logger.Int64("client_id", created.ClientID))

	if driver != nil {
		s.notify(ctx, driver, created)
	}
	return created, nil
}

func (s *rideService) Update(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	existing, err := s.rides.GetByID(ctx, ride.ID)
	if err != nil {
		return nil, fromStorage(err, "ride")
	}
	driver, err := s.resolve(ctx, ride)
	if err != nil {
		return nil, err
	}
	if ride.Status == "" {
		ride.Status = existing.Status
	}
	ride.OperatorID = existing.OperatorID

	updated, err := s.rides.Update(ctx, ride)
	if err != nil {
		return nil, fromStorage(err, "ride")
	}

	if driver != nil && !sameID(existing.DriverID, updated.DriverID) {
		s.notify(ctx, driver, updated)
	}
	return updated, nil
}

// notify is best effort: a failed send never fails the ride operation.
func (s *rideService) notify(ctx context.Context, driver *models.Driver, ride *models.Ride) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	log := s.log.With(logger.Int64("ride_id", ride.ID), logger.Int64("driver_id", driver.ID))
	if err := s.notifier.RideAssigned(ctx, driver, ride); err != nil {
		log.Warning("driver notification failed", logger.Duration("timeout", notifyTimeout), logger.Error(err))
	}
}

func (s *rideService) Get(ctx context.Context, id int64) (*models.Ride, error) {
	ride, err := s.rides.GetByID(ctx, id)
	if err != nil {
		return nil, fromStorage(err, "ride")
	}
	return ride, nil
}

func (s *rideService) List(ctx context.Context, q models.ListQuery, f models.RideFilter) (models.Page[*models.Ride], error) {
	if f.Status != "" && !rideStatuses[f.Status] {
		return models.Page[*models.Ride]{}, newError(ErrBadRequest, "unknown ride status %q", f.Status)
	}
	q = q.Normalize()
	rides, total, err := s.rides.List(ctx, q, f)
	if err != nil {
		return models.Page[*models.Ride]{}, err
	}
	return models.NewPage(rides, total, q), nil
}

func (s *rideService) Delete(ctx context.Context, id int64) error {
	if err := s.rides.Delete(ctx, id); err != nil {
		return fromStorage(err, "ride")
	}
	s.log.Info("ride deleted", logger.Int64("id", id))
	return nil
}

// Quote prices a route: the summed leg distance in kilometres times the class coefficient.
func (s *rideService) Quote(ctx context.Context, rideClassID int64, points []models.LatLng) (*models.Quote, error) {
	if len(points) < 2 {
		return nil, newError(ErrBadRequest, "a quote needs at least two waypoints")
	}
	class, err := s.classes.GetByID(ctx, rideClassID)
	if err != nil {
		return nil, fromStorage(err, "ride class")
	}

	meters, err := s.distance(ctx, points)
	if err != nil {
		return nil, err
	}

	return &models.Quote{
		RideClassID:    class.ID,
		DistanceMeters: meters,
		Coefficient:    class.Coefficient,
		Price:          Price(meters, class.Coefficient),
	}, nil
}

func (s *rideService) distance(ctx context.Context, points []models.LatLng) (int, error) {
	key := routeKey(points)
	if s.cache != nil {
		meters, ok, err := s.cache.GetDistance(ctx, key)
		switch {
		case err != nil:
			quoteCache.WithLabelValues("error").Inc()
			s.log.Warning("route cache read failed", logger.Error(err))
		case ok:
			quoteCache.WithLabelValues("hit").Inc()
			return meters, nil
		default:
			quoteCache.WithLabelValues("miss").Inc()
		}
	}

	if s.router == nil {
		return 0, newError(ErrUnavailable, "route pricing is not configured")
	}
	meters, err := s.router.Distance(ctx, points)
	if err != nil {
		if errors.Is(err, maps.ErrNoRoute) {
			return 0, newError(ErrBadRequest, "no route between the given waypoints")
		}
		s.log.Error("directions request failed", logger.Error(err))
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetDistance(ctx, key, meters); err != nil {
			s.log.Warning("route cache write failed", logger.Error(err))
		}
	}
	return meters, nil
}

// Price converts metres to kilometres, applies the coefficient and rounds to cents.
func Price(meters int, coefficient decimal.Decimal) decimal.Decimal {
	km := decimal.NewFromInt(int64(meters)).Div(decimal.NewFromInt(1000))
	return km.Mul(coefficient).Round(2)
}

func routeKey(points []models.LatLng) string {
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts, maps.FormatPoint(p))
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
