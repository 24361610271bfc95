// Package repository implements the catalog store over MySQL. Each entity
// gets an interface plus a mysql-backed implementation; read-heavy aggregate
// queries degrade to empty results with a logged error instead of failing,
// while mutations always surface their errors.
package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"tunevault/model"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers that map onto the catalog error taxonomy.
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrNoReferencedRow = 1452
)

// translateError folds driver-level failures into the shared taxonomy while
// keeping the underlying cause in the chain for logging.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDuplicateEntry:
			return fmt.Errorf("%s: duplicate entry: %w: %w", op, model.ErrPersistence, err)
		case mysqlErrNoReferencedRow:
			return fmt.Errorf("%s: missing referenced row: %w: %w", op, model.ErrPersistence, err)
		}
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return fmt.Errorf("%s: %w: %w", op, model.ErrConnection, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
