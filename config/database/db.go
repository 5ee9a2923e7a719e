package database

import (
	"database/sql"
	"fmt"
	"time"

	"creatorvault/config"
	"creatorvault/pkg/logger"

	_ "github.com/lib/pq"
)

// Connect opens the postgres pool and verifies the connection is alive.
// Ping is retried a few times in case of temporary DNS/network blips.
func Connect(cfg *config.Settings) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			logger.Sugar.Info("Successfully connected to the database")
			return db, nil
		}
		logger.Sugar.Infof("Database connection failed, retrying in 2s... (%v)", err)
		time.Sleep(2 * time.Second)
	}
	db.Close()
	return nil, fmt.Errorf("could not connect to database after retries: %w", err)
}
