package mysql

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the tables if they do not exist yet. Idempotent;
// called once at process start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
