package postgres

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridedispatch/config"
	"ridedispatch/pkg/logger"
	"ridedispatch/storage"
)

type Store struct {
	pool *pgxpool.Pool
	log  logger.ILogger
}

func New(ctx context.Context, cfg config.Config, log logger.ILogger) (*Store, error) {
	url := cfg.PostgresURL()

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Error("error while parsing Postgres config", logger.Error(err))
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("failed to connect Postgres", logger.Error(err))
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error("failed to ping Postgres", logger.Error(err))
		return nil, err
	}

	if err := runMigrations(cfg.MigrationsPath, url, log); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("Postgres connected")

	return &Store{
		pool: pool,
		log:  log,
	}, nil
}

func runMigrations(dir, url string, log logger.ILogger) error {
	mPath := dir
	if !filepath.IsAbs(mPath) {
		cwd, _ := os.Getwd()
		mPath = filepath.Join(cwd, dir)
	}

	if _, err := os.Stat(mPath); err != nil {
		log.Warning("migrations directory not found, skipping", logger.String("path", mPath))
		return nil
	}

	m, err := migrate.New("file://"+mPath, url)
	if err != nil {
		log.Error("migration init error", logger.Error(err))
		return err
	}
	defer m.Close()

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return nil
		}
		log.Error("migration up error", logger.Error(err))
		return err
	}
	log.Info("migrations applied")
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) GetPool() *pgxpool.Pool {
	return s.pool
}

func (s *Store) User() storage.IUserStorage               { return NewUserRepo(s.pool, s.log) }
func (s *Store) Client() storage.IClientStorage           { return NewClientRepo(s.pool, s.log) }
func (s *Store) Driver() storage.IDriverStorage           { return NewDriverRepo(s.pool, s.log) }
func (s *Store) RideClass() storage.IRideClassStorage     { return NewRideClassRepo(s.pool, s.log) }
func (s *Store) ExtraOption() storage.IExtraOptionStorage { return NewExtraOptionRepo(s.pool, s.log) }
func (s *Store) Ride() storage.IRideStorage               { return NewRideRepo(s.pool, s.log) }
func (s *Store) Token() storage.ITokenStorage             { return NewTokenRepo(s.pool, s.log) }
func (s *Store) File() storage.IFileStorage               { return NewFileRepo(s.pool, s.log) }
