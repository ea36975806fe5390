package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/policywise/policywise/internal/retry"
)

const (
	// ConnectAttempts and ConnectDelay bound the startup connection
	// retry loop. The process must not serve until the database is
	// reachable; exhausting the attempts is fatal.
	ConnectAttempts = 5
	ConnectDelay    = 5 * time.Second
)

// Connect creates a pgx pool for the given DSN, retrying with a fixed
// delay until the database answers a ping or the attempts run out.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	var pool *pgxpool.Pool
	policy := retry.Policy{MaxAttempts: ConnectAttempts, Delay: ConnectDelay}

	err = policy.Do(ctx, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", ConnectAttempts, err)
	}

	return pool, nil
}
