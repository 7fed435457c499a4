// internal/writers/sqlite.go
package writers

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBFile is the sqlite artifact name under base_dir.
const DBFile = "fragnet.db"

func init() {
	Register("sqlite", func(o Options) (Sink, error) { return NewSQLiteSink(o.BaseDir, o.RunID) })
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	started_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS nodes (
	run_id       TEXT NOT NULL,
	smiles       TEXT NOT NULL,
	hac          INTEGER NOT NULL,
	rac          INTEGER NOT NULL,
	num_children INTEGER NOT NULL,
	num_edges    INTEGER NOT NULL,
	time_ms      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS edges (
	run_id        TEXT NOT NULL,
	parent_smiles TEXT NOT NULL,
	child_smiles  TEXT NOT NULL,
	label         TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS rejects (
	run_id TEXT NOT NULL,
	smiles TEXT NOT NULL,
	reason TEXT NOT NULL
);
`

// SQLiteSink lands the three streams in one database file, for
// loaders that prefer querying over concatenating CSV shards. Writes
// ride a single transaction committed on Flush, which keeps insert
// cost sane without losing the periodic-durability contract.
type SQLiteSink struct {
	db    *sql.DB
	tx    *sql.Tx
	runID string
}

func NewSQLiteSink(baseDir, runID string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", filepath.Join(baseDir, DBFile))
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	if _, err := db.Exec(`INSERT INTO runs(id, started_at) VALUES(?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339)); err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &SQLiteSink{db: db, runID: runID}
	if err := s.begin(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSink) begin() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	s.tx = tx
	return nil
}

func (s *SQLiteSink) WriteNode(n NodeRow) error {
	_, err := s.tx.Exec(
		`INSERT INTO nodes(run_id, smiles, hac, rac, num_children, num_edges, time_ms) VALUES(?,?,?,?,?,?,?)`,
		s.runID, n.SMILES, n.HAC, n.RAC, n.NumChildren, n.NumEdges, n.TimeMS)
	return err
}

func (s *SQLiteSink) WriteEdge(e EdgeRow) error {
	_, err := s.tx.Exec(
		`INSERT INTO edges(run_id, parent_smiles, child_smiles, label) VALUES(?,?,?,?)`,
		s.runID, e.Parent, e.Child, e.Label)
	return err
}

func (s *SQLiteSink) WriteReject(r RejectRow) error {
	_, err := s.tx.Exec(
		`INSERT INTO rejects(run_id, smiles, reason) VALUES(?,?,?)`,
		s.runID, r.SMILES, r.Reason)
	return err
}

func (s *SQLiteSink) Flush() error {
	if err := s.tx.Commit(); err != nil {
		return err
	}
	return s.begin()
}

func (s *SQLiteSink) Close() error {
	err := s.tx.Commit()
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}
