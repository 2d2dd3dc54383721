// Package tracing records the maintenance activity of a simulated platform
// into an SQLite database.
package tracing

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cmu/hooking"
	"github.com/sarchlab/cmu/platform/sim"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS maintenance (
	id      TEXT PRIMARY KEY,
	seq     INTEGER NOT NULL,
	pos     TEXT NOT NULL,
	op      TEXT NOT NULL,
	address INTEGER NOT NULL,
	lines   INTEGER NOT NULL
);`

const insertSQL = `INSERT INTO maintenance VALUES (?, ?, ?, ?, ?, ?)`

// Entry is one row of the maintenance table.
type Entry struct {
	ID      string
	Seq     uint64
	Pos     string
	Op      string
	Address uint64
	Lines   int
}

// A Recorder is a hook that writes every event of a simulated platform to the
// maintenance table. Entries are buffered and written in batches.
type Recorder struct {
	lock sync.Mutex

	db        *sql.DB
	dbName    string
	batchSize int
	seq       uint64
	pending   []Entry
	closed    bool
}

// NewRecorder creates a database file named path with the .sqlite3 suffix.
// An empty path picks a unique name. The file must not exist yet.
func NewRecorder(path string) (*Recorder, error) {
	if path == "" {
		path = "cmu_trace_" + xid.New().String()
	}

	filename := path + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		return nil, fmt.Errorf("file %s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, err
	}

	r, err := NewRecorderWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	r.dbName = filename
	log.WithField("file", filename).Info("Database created for recording")

	return r, nil
}

// NewRecorderWithDB creates a recorder that writes to an open database. The
// recorder takes over the database and closes it in Close.
func NewRecorderWithDB(db *sql.DB) (*Recorder, error) {
	if _, err := db.Exec(createTableSQL); err != nil {
		return nil, fmt.Errorf("create maintenance table: %w", err)
	}

	r := &Recorder{
		db:        db,
		batchSize: 10000,
	}

	atexit.Register(func() {
		if err := r.Flush(); err != nil {
			log.WithError(err).Error("Failed to flush maintenance trace")
		}
	})

	return r, nil
}

// WithBatchSize sets how many entries are buffered before they are written.
func (r *Recorder) WithBatchSize(n int) *Recorder {
	if n < 1 {
		n = 1
	}

	r.batchSize = n

	return r
}

// DB returns the database the recorder writes to.
func (r *Recorder) DB() *sql.DB {
	return r.db
}

// Func records the event of ctx. Items that are not events of the simulated
// platform are recorded with their position only.
func (r *Recorder) Func(ctx hooking.HookCtx) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.closed {
		return
	}

	r.seq++
	e := Entry{
		ID:  xid.New().String(),
		Seq: r.seq,
		Pos: ctx.Pos.Name,
	}

	switch item := ctx.Item.(type) {
	case sim.MaintenanceEvent:
		e.Op = item.Op.String()
		e.Address = item.Addr
		e.Lines = item.Lines
	case sim.BarrierEvent:
		e.Lines = item.Drained
	case sim.WriteBackEvent:
		e.Op = item.Cause.String()
		e.Address = item.Addr
		e.Lines = 1
	}

	r.pending = append(r.pending, e)

	if len(r.pending) >= r.batchSize {
		if err := r.flush(); err != nil {
			log.WithError(err).Error("Failed to write maintenance trace")
		}
	}
}

// Flush writes all the buffered entries.
func (r *Recorder) Flush() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.closed {
		return nil
	}

	return r.flush()
}

func (r *Recorder) flush() error {
	if len(r.pending) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range r.pending {
		_, err := stmt.Exec(e.ID, e.Seq, e.Pos, e.Op, e.Address, e.Lines)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert entry %d: %w", e.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.WithField("entries", len(r.pending)).Debug("Maintenance trace flushed")
	r.pending = nil

	return nil
}

// Close flushes the buffered entries and closes the database.
func (r *Recorder) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.closed {
		return nil
	}

	err := r.flush()
	r.closed = true

	if closeErr := r.db.Close(); err == nil {
		err = closeErr
	}

	return err
}

// Entries reads the recorded entries back in the order they were recorded.
// Buffered entries are written first.
func (r *Recorder) Entries() ([]Entry, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.flush(); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		`SELECT id, seq, pos, op, address, lines FROM maintenance ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry

	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.Seq, &e.Pos, &e.Op, &e.Address, &e.Lines,
		); err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
