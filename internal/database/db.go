package database

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Open connects to the store, retrying a bounded number of times so the
// server can start alongside a database container that is still booting.
func Open(driver, dsn string, debug bool, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	logMode := logger.Default.LogMode(logger.Silent)
	if debug {
		logMode = logger.Default.LogMode(logger.Info)
	}

	var db *gorm.DB
	for i := 1; i <= maxAttempts; i++ {
		log.Info("connecting to database", zap.String("driver", driver), zap.Int("attempt", i), zap.Int("max_attempts", maxAttempts))

		db, err = gorm.Open(dialector, &gorm.Config{Logger: logMode})
		if err == nil {
			log.Info("connected to database")
			return db, nil
		}

		log.Warn("failed to connect to database", zap.Error(err))
		if driver == DriverSQLite {
			break
		}
		time.Sleep(retryBackoff)
	}

	return nil, fmt.Errorf("connect to %s after %d attempts: %w", driver, maxAttempts, err)
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Dialector{DriverName: "sqlite", DSN: SQLiteDSN(dsn)}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// SQLiteDSN turns on foreign key enforcement, which SQLite leaves off per
// connection unless asked.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
