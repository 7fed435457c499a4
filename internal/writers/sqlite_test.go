package writers

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLiteSink_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := Open("sqlite", Options{BaseDir: dir, RunID: "run-1"})
	require.NoError(t, err)

	require.NoError(t, s.WriteNode(NodeRow{SMILES: "CCO", HAC: 3, NumChildren: 2, NumEdges: 2, TimeMS: 5}))
	require.NoError(t, s.WriteEdge(EdgeRow{Parent: "CCO", Child: "CO", Label: "C|C"}))
	require.NoError(t, s.WriteReject(RejectRow{SMILES: "bad", Reason: "parse: no atoms"}))
	require.NoError(t, s.Flush()) // commit mid-run, then keep writing
	require.NoError(t, s.WriteEdge(EdgeRow{Parent: "CCO", Child: "CC", Label: "C|O"}))
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", filepath.Join(dir, DBFile))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM runs WHERE id = 'run-1'`).Scan(&n))
	require.Equal(t, 1, n)

	var hac, edges int
	require.NoError(t, db.QueryRow(`SELECT hac, num_edges FROM nodes WHERE smiles = 'CCO'`).Scan(&hac, &edges))
	require.Equal(t, 3, hac)
	require.Equal(t, 2, edges)

	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM edges WHERE run_id = 'run-1'`).Scan(&n))
	require.Equal(t, 2, n)

	var reason string
	require.NoError(t, db.QueryRow(`SELECT reason FROM rejects WHERE smiles = 'bad'`).Scan(&reason))
	require.Contains(t, reason, "parse")
}
