package repositories

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"vidtube/internal/config"
	"vidtube/internal/database"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// The stub driver records every statement the repositories execute,
// tagged with the transaction it ran in, so tests can pin statement
// ordering and transaction boundaries without a live database.

type recordedStmt struct {
	query string
	tx    int // 0 when executed outside a transaction
}

type sqlRecorder struct {
	mu        sync.Mutex
	stmts     []recordedStmt
	txSeq     int
	commits   int
	rollbacks int
}

// txOf returns the transaction tag of the first recorded statement
// containing substr, or -1 when no statement matches.
func (r *sqlRecorder) txOf(substr string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stmts {
		if strings.Contains(s.query, substr) {
			return s.tx
		}
	}
	return -1
}

// indexOf returns the position of the first recorded statement
// containing substr, or -1.
func (r *sqlRecorder) indexOf(substr string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.stmts {
		if strings.Contains(s.query, substr) {
			return i
		}
	}
	return -1
}

type stubDriver struct{ rec *sqlRecorder }

func (d *stubDriver) Open(string) (driver.Conn, error) {
	return &stubConn{rec: d.rec}, nil
}

type stubConn struct {
	rec *sqlRecorder
	tx  int
}

func (c *stubConn) Prepare(query string) (driver.Stmt, error) {
	return &stubStmt{conn: c, query: query}, nil
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	c.rec.mu.Lock()
	c.rec.txSeq++
	c.tx = c.rec.txSeq
	c.rec.mu.Unlock()
	return &stubTx{conn: c}, nil
}

func (c *stubConn) record(query string) {
	c.rec.mu.Lock()
	c.rec.stmts = append(c.rec.stmts, recordedStmt{query: query, tx: c.tx})
	c.rec.mu.Unlock()
}

type stubTx struct{ conn *stubConn }

func (t *stubTx) Commit() error {
	t.conn.rec.mu.Lock()
	t.conn.rec.commits++
	t.conn.rec.mu.Unlock()
	t.conn.tx = 0
	return nil
}

func (t *stubTx) Rollback() error {
	t.conn.rec.mu.Lock()
	t.conn.rec.rollbacks++
	t.conn.rec.mu.Unlock()
	t.conn.tx = 0
	return nil
}

type stubStmt struct {
	conn  *stubConn
	query string
}

func (s *stubStmt) Close() error  { return nil }
func (s *stubStmt) NumInput() int { return -1 }

func (s *stubStmt) Exec(args []driver.Value) (driver.Result, error) {
	s.conn.record(s.query)
	return driver.RowsAffected(1), nil
}

func (s *stubStmt) Query(args []driver.Value) (driver.Rows, error) {
	s.conn.record(s.query)
	return &stubRows{}, nil
}

type stubRows struct{}

func (r *stubRows) Columns() []string              { return nil }
func (r *stubRows) Close() error                   { return nil }
func (r *stubRows) Next(dest []driver.Value) error { return io.EOF }

var stubDriverSeq atomic.Int64

// newRecordedManager opens a database.Manager over a fresh stub driver.
func newRecordedManager(t *testing.T) (*database.Manager, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	name := fmt.Sprintf("vidtube-stub-%d", stubDriverSeq.Add(1))
	sql.Register(name, &stubDriver{rec: rec})

	db, err := sql.Open(name, "stub")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.DatabaseConfig{SlowQueryWarn: time.Minute}
	return database.NewManagerWithDB(db, cfg, zap.NewNop()), rec
}
