package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/EnriqueRS/travelmap/internal/config"
)

type DB struct {
	*sqlx.DB
	logger *zap.Logger

	// postgis records whether the connected database has the PostGIS
	// extension installed. Detected once at startup; repositories are
	// selected from it and never re-check.
	postgis bool
}

func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	postgis, err := detectPostGIS(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to detect postgis: %w", err)
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
		zap.Bool("postgis", postgis),
	)

	return &DB{DB: db, logger: logger, postgis: postgis}, nil
}

func detectPostGIS(ctx context.Context, db *sqlx.DB) (bool, error) {
	var installed bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'postgis')`,
	).Scan(&installed)
	if err != nil {
		return false, err
	}
	return installed, nil
}

// HasPostGIS reports whether native spatial SQL is available.
func (db *DB) HasPostGIS() bool {
	return db.postgis
}

func (db *DB) Close() error {
	db.logger.Info("Closing PostgreSQL connection")
	return db.DB.Close()
}

func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// NewDBForTest creates a DB instance for testing with provided database and logger
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger, postgis bool) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:      sqlxDB,
		logger:  logger,
		postgis: postgis,
	}
}
