package database

import (
	"fmt"
	"time"

	"turf-booking/internal/config"
	"turf-booking/internal/infrastructure/database/models"
	"turf-booking/internal/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
}

// NewDB connects to the configured PostgreSQL or MySQL server.
func NewDB(cfg *config.Config) (*DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN())
	default:
		d, err := postgresDialector(cfg)
		if err != nil {
			return nil, err
		}
		dialector = d
	}

	db, err := Open(dialector, cfg.Server.Environment)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
		zap.Int("max_open_connections", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_connections", cfg.Database.MaxIdleConns),
	)

	return db, nil
}

// postgresDialector opens the pool through pgx so every session reports
// the service name as application_name.
func postgresDialector(cfg *config.Config) (gorm.Dialector, error) {
	pgCfg, err := pgx.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if cfg.App.Name != "" {
		pgCfg.RuntimeParams["application_name"] = cfg.App.Name
	}
	return postgres.New(postgres.Config{Conn: stdlib.OpenDB(*pgCfg)}), nil
}

// Open wraps any gorm dialector with the shared settings.
func Open(dialector gorm.Dialector, environment string) (*DB, error) {
	gormLogLevel := gormLogger.Info
	switch environment {
	case "production":
		gormLogLevel = gormLogger.Warn
	case "test":
		gormLogLevel = gormLogger.Silent
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		// References between records are weak: deleting a user or turf
		// leaves bookings, comments and favorites in place.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	return &DB{DB: db}, nil
}

func (d *DB) Migrate() error {
	if err := d.DB.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *DB) Health() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
