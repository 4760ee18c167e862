package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	domainRepo "clinic-stats/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

// classifyError marks connection-level failures with ErrStoreUnavailable
// and returns query failures unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %w", domainRepo.ErrStoreUnavailable, err)
	}
	return err
}

func isConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone)
}
