package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrSchemaNotInitialized signals that the database is reachable but the
// tables from db/schema.sql have not been created yet.
var ErrSchemaNotInitialized = errors.New("database schema not initialized")

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// mapSchemaError converts "relation does not exist" failures into
// ErrSchemaNotInitialized so the UI can show actionable guidance instead of a
// generic failure.
func mapSchemaError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42P01" { // undefined_table
		return fmt.Errorf("%w: %v", ErrSchemaNotInitialized, err)
	}
	return err
}
