package database

import (
	"context"
	"errors"
	"sync"

	"github.com/jmoiron/sqlx"
)

// ErrConnReleased is returned when a unit of work tries to use its
// connection after the request has ended.
var ErrConnReleased = errors.New("database: request connection already released")

type ctxKey int

const requestConnKey ctxKey = 0

// RequestConn holds at most one connection for a single unit of work.
// The first Acquire checks a connection out of the pool; every later
// Acquire within the same request returns the identical connection.
type RequestConn struct {
	db *sqlx.DB

	mu       sync.Mutex
	conn     *sqlx.Conn
	released bool
}

// NewRequestContext installs a fresh RequestConn into ctx. The caller owns
// the returned RequestConn and must call Release when the request ends.
func (db *DB) NewRequestContext(ctx context.Context) (context.Context, *RequestConn) {
	rc := &RequestConn{db: db.DB}
	return context.WithValue(ctx, requestConnKey, rc), rc
}

func requestConnFrom(ctx context.Context) *RequestConn {
	rc, _ := ctx.Value(requestConnKey).(*RequestConn)
	return rc
}

// RequestConnFrom exposes the request's connection holder, if any.
func RequestConnFrom(ctx context.Context) *RequestConn {
	return requestConnFrom(ctx)
}

func (rc *RequestConn) Acquire(ctx context.Context) (*sqlx.Conn, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.released {
		return nil, ErrConnReleased
	}

	if rc.conn != nil {
		return rc.conn, nil
	}

	conn, err := rc.db.Connx(ctx)
	if err != nil {
		return nil, err
	}

	rc.conn = conn
	return rc.conn, nil
}

// Release returns the connection to the pool if one was acquired.
// It is a no-op otherwise and safe to call more than once.
func (rc *RequestConn) Release() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.released {
		return
	}
	rc.released = true

	if rc.conn != nil {
		rc.conn.Close()
		rc.conn = nil
	}
}
