package postgres

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/DRSN-tech/credit-simulator/internal/cfg"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/DRSN-tech/credit-simulator/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const applicationName = "credit-simulator"

// PgDatabase - пул соединений с каталогом продуктов и outbox плюс DSN для отдельного LISTEN-соединения воркера.
type PgDatabase struct {
	Pool *pgxpool.Pool
	Dsn  string
	cfg  *cfg.PGDBCfg
}

// DSN собирает URL подключения. Логин и пароль экранируются, поэтому допускают любые символы.
func DSN(cfg *cfg.PGDBCfg) string {
	query := url.Values{}
	query.Set("sslmode", cfg.SSLMode)
	query.Set("application_name", applicationName)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.DBName,
		RawQuery: query.Encode(),
	}

	return u.String()
}

// Connect открывает пул и проверяет его пингом в пределах ctx.
func Connect(ctx context.Context, cfg *cfg.PGDBCfg) (*PgDatabase, error) {
	const op = "PgDatabase.Connect"
	dsn := DSN(cfg)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, e.Wrap(op, err)
	}

	return &PgDatabase{Pool: pool, Dsn: dsn, cfg: cfg}, nil
}

// Close закрывает пул. Сигнатура совместима с closer.Func.
func (db *PgDatabase) Close(context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	return nil
}

// RunMigrations применяет миграции из cfg.MigrationsPath через соединения того же пула.
func (db *PgDatabase) RunMigrations(logger logger.Logger) (err error) {
	const op = "PgDatabase.RunMigrations"

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return e.Wrap(op, err)
	}

	m, err := migrate.NewWithDatabaseInstance(MigrationsURL(db.cfg.MigrationsPath), "postgres", driver)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if srcErr, _ := m.Close(); srcErr != nil && err == nil {
			err = e.Wrap(op, srcErr)
		}
	}()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return e.Wrap(op, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return e.Wrap(op, err)
	}
	if dirty {
		return e.Wrap(op, e.ErrDirtyMigration)
	}

	logger.Infof("migrations: schema at version %d", version)
	return nil
}

// MigrationsURL принимает путь к каталогу или готовый URL источника.
func MigrationsURL(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	return "file://" + path
}
