package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"ridedispatch/pkg/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrConflict  = errors.New("record already exists")
	ErrReference = errors.New("record is referenced or references a missing record")
)

type IStorage interface {
	User() IUserStorage
	Client() IClientStorage
	Driver() IDriverStorage
	RideClass() IRideClassStorage
	ExtraOption() IExtraOptionStorage
	Ride() IRideStorage
	Token() ITokenStorage
	File() IFileStorage
	Ping(ctx context.Context) error
	Close()
}

type IUserStorage interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, q models.ListQuery) ([]*models.User, int, error)
	Delete(ctx context.Context, id int64) error
}

type IClientStorage interface {
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) (*models.Client, error)
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	List(ctx context.Context, q models.ListQuery) ([]*models.Client, int, error)
	Delete(ctx context.Context, id int64) error
}

type IDriverStorage interface {
	Create(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	Update(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
	List(ctx context.Context, q models.ListQuery, active *bool) ([]*models.Driver, int, error)
	Delete(ctx context.Context, id int64) error
}

type IRideClassStorage interface {
	Create(ctx context.Context, class *models.RideClass) (*models.RideClass, error)
	Update(ctx context.Context, class *models.RideClass) (*models.RideClass, error)
	GetByID(ctx context.Context, id int64) (*models.RideClass, error)
	List(ctx context.Context, q models.ListQuery) ([]*models.RideClass, int, error)
	Delete(ctx context.Context, id int64) error
}

type IExtraOptionStorage interface {
	Create(ctx context.Context, option *models.ExtraOption) (*models.ExtraOption, error)
	Update(ctx context.Context, option *models.ExtraOption) (*models.ExtraOption, error)
	GetByID(ctx context.Context, id int64) (*models.ExtraOption, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.ExtraOption, error)
	List(ctx context.Context, q models.ListQuery) ([]*models.ExtraOption, int, error)
	Delete(ctx context.Context, id int64) error
}

// IRideStorage writes a ride together with its waypoints and extra-option links
// in a single transaction.
type IRideStorage interface {
	Create(ctx context.Context, ride *models.Ride) (*models.Ride, error)
	Update(ctx context.Context, ride *models.Ride) (*models.Ride, error)
	GetByID(ctx context.Context, id int64) (*models.Ride, error)
	List(ctx context.Context, q models.ListQuery, f models.RideFilter) ([]*models.Ride, int, error)
	Delete(ctx context.Context, id int64) error
}

type ITokenStorage interface {
	Create(ctx context.Context, token *models.Token) (*models.Token, error)
	// Replace overwrites the hash and expiry of an existing row, bumping updated_at.
	Replace(ctx context.Context, id int64, hash string, expiresAt time.Time) error
	GetByUser(ctx context.Context, userID int64) ([]*models.Token, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}

type IFileStorage interface {
	Create(ctx context.Context, file *models.FileMetadata) (*models.FileMetadata, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.FileMetadata, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// IObjectStorage is the bucket holding uploaded file contents.
type IObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// IRouteCache keeps computed route distances keyed by waypoint set.
type IRouteCache interface {
	GetDistance(ctx context.Context, key string) (int, bool, error)
	SetDistance(ctx context.Context, key string, meters int) error
}
