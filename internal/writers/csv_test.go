package writers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSVSink_Rows(t *testing.T) {
	dir := t.TempDir()
	s, err := NewCSVSink(dir)
	require.NoError(t, err)

	require.NoError(t, s.WriteNode(NodeRow{SMILES: "CCO", HAC: 3, RAC: 0, NumChildren: 2, NumEdges: 2, TimeMS: 7}))
	require.NoError(t, s.WriteEdge(EdgeRow{Parent: "CCO", Child: "CC", Label: "C|O"}))
	require.NoError(t, s.WriteReject(RejectRow{SMILES: "not_a_molecule", Reason: "parse"}))
	require.NoError(t, s.Close())

	nodes, err := os.ReadFile(filepath.Join(dir, NodesFile))
	require.NoError(t, err)
	require.Equal(t, "CCO,3,0,2,2,7\n", string(nodes))

	edges, err := os.ReadFile(filepath.Join(dir, EdgesFile))
	require.NoError(t, err)
	require.Equal(t, "CCO,CC,C|O\n", string(edges))

	rej, err := os.ReadFile(filepath.Join(dir, RejectsFile))
	require.NoError(t, err)
	require.Equal(t, "not_a_molecule\n", string(rej), "rejects.smi carries ids only")
}

func TestCSVSink_EmptyRunLeavesEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewCSVSink(dir)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	for _, fn := range []string{NodesFile, EdgesFile, RejectsFile} {
		st, err := os.Stat(filepath.Join(dir, fn))
		require.NoError(t, err, fn)
		require.Zero(t, st.Size(), "%s must be header-less and empty", fn)
	}
}

func TestOpen_UnknownFormat(t *testing.T) {
	_, err := Open("parquet", Options{BaseDir: t.TempDir()})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown output format")
}

func TestFormatsRegistered(t *testing.T) {
	require.Equal(t, []string{"csv", "sqlite"}, Formats())
}
