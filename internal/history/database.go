// Package history records completed searches in MySQL.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/dbsmedya/gocipher/internal/config"
)

const (
	connectRetries = 3
	connectBackoff = time.Second
)

// BuildDSN constructs a MySQL DSN from configuration.
func BuildDSN(cfg *config.HistoryConfig) string {
	dsn := mysql.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dsn.DBName = cfg.Database
	dsn.ParseTime = true

	switch cfg.TLS {
	case "disable":
		dsn.TLSConfig = "false"
	case "required":
		dsn.TLSConfig = "true"
	case "preferred", "":
		dsn.TLSConfig = "preferred"
	}

	return dsn.FormatDSN()
}

// Open connects to the history database and returns a Store for the
// configured table. The schema is not created; call EnsureSchema.
func Open(ctx context.Context, cfg *config.HistoryConfig) (*Store, error) {
	db, err := connectWithRetry(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	store, err := NewStore(db, cfg.Table)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// connectWithRetry attempts to connect with exponential backoff.
func connectWithRetry(ctx context.Context, cfg *config.HistoryConfig) (*sql.DB, error) {
	var err error
	backoff := connectBackoff

	for i := 0; i < connectRetries; i++ {
		var db *sql.DB
		db, err = sql.Open("mysql", BuildDSN(cfg))
		if err == nil {
			db.SetMaxOpenConns(2)
			db.SetConnMaxLifetime(10 * time.Minute)

			pingErr := db.PingContext(ctx)
			if pingErr == nil {
				return db, nil
			}
			db.Close()
			err = pingErr
		}

		if i < connectRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", connectRetries, err)
}
