package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("Starting database migrations")

	for _, m := range Migrations() {
		if _, err := pool.Exec(ctx, m.Query); err != nil {
			logger.Error("Migration failed", zap.String("name", m.Name), zap.Error(err))
			return err
		}
		logger.Info("Migration completed", zap.String("name", m.Name))
	}

	logger.Info("All migrations completed successfully")
	return nil
}

// Migration is one idempotent DDL statement.
type Migration struct {
	Name  string
	Query string
}

// Migrations lists the statements in the order they run.
func Migrations() []Migration {
	return []Migration{
		{
			Name: "create_resume_storage",
			Query: `
				CREATE TABLE IF NOT EXISTS resume_storage (
					scope      TEXT NOT NULL,
					key        TEXT NOT NULL,
					value      TEXT NOT NULL,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					PRIMARY KEY (scope, key)
				);
			`,
		},
		{
			Name: "index_resume_storage_updated_at",
			Query: `
				CREATE INDEX IF NOT EXISTS resume_storage_updated_at_idx
				ON resume_storage (updated_at);
			`,
		},
	}
}
