package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	domainRepo "clinic-stats/internal/domain/repository"

	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	testCases := []struct {
		name          string
		err           error
		wantTransport bool
	}{
		{name: "nil", err: nil},
		{name: "bad connection", err: driver.ErrBadConn, wantTransport: true},
		{name: "wrapped bad connection", err: fmt.Errorf("query: %w", driver.ErrBadConn), wantTransport: true},
		{name: "dial failure", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, wantTransport: true},
		{name: "query cancelled", err: context.Canceled},
		{name: "syntax error", err: errors.New("syntax error at or near")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyError(tc.err)
			if tc.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.err)
			assert.Equal(t, tc.wantTransport, errors.Is(got, domainRepo.ErrStoreUnavailable))
		})
	}
}
