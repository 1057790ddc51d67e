// Package database opens the ClickHouse connection backing the analytics
// sink.
package database

import (
	"context"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	"facultyjobs/internal/apperr"
)

type ClickHouseOptions struct {
	DSN      string
	Database string
	Username string
	Password string
}

// OpenClickHouse connects and pings. Callers own closing the connection.
func OpenClickHouse(ctx context.Context, opts ClickHouseOptions, logger *zap.Logger) (clickhouse.Conn, error) {
	host := strings.Split(opts.DSN, "?")[0]

	conn, err := clickhouse.Open(&clickhouse.Options{
		Protocol: clickhouse.Native,
		Addr:     []string{host},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		DialTimeout: time.Second * 30,
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})
	if err != nil {
		return nil, apperr.Unavailable("opening clickhouse connection", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, apperr.Unavailable("pinging clickhouse", err)
	}

	logger.Info("clickhouse connected", zap.String("database", opts.Database))
	return conn, nil
}
