// internal/writers/csv.go
package writers

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// Header-less by contract: the downstream graph loaders supply their
// own column mappings and concatenate shards from many runs.
const (
	NodesFile   = "nodes.csv"
	EdgesFile   = "edges.csv"
	RejectsFile = "rejects.smi"
)

func init() {
	Register("csv", func(o Options) (Sink, error) { return NewCSVSink(o.BaseDir) })
}

// CSVSink writes the classic three-file layout under baseDir.
type CSVSink struct {
	nodesF, edgesF, rejF *os.File
	nodes, edges, rej    *bufio.Writer
}

func NewCSVSink(baseDir string) (*CSVSink, error) {
	s := &CSVSink{}
	for _, f := range []struct {
		name string
		file **os.File
		buf  **bufio.Writer
	}{
		{NodesFile, &s.nodesF, &s.nodes},
		{EdgesFile, &s.edgesF, &s.edges},
		{RejectsFile, &s.rejF, &s.rej},
	} {
		fh, err := os.Create(filepath.Join(baseDir, f.name))
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		*f.file = fh
		*f.buf = bufio.NewWriterSize(fh, 1<<16)
	}
	return s, nil
}

func (s *CSVSink) WriteNode(n NodeRow) error {
	_, err := fmt.Fprintf(s.nodes, "%s,%d,%d,%d,%d,%d\n",
		n.SMILES, n.HAC, n.RAC, n.NumChildren, n.NumEdges, n.TimeMS)
	return err
}

func (s *CSVSink) WriteEdge(e EdgeRow) error {
	_, err := fmt.Fprintf(s.edges, "%s,%s,%s\n", e.Parent, e.Child, e.Label)
	return err
}

func (s *CSVSink) WriteReject(r RejectRow) error {
	_, err := fmt.Fprintln(s.rej, r.SMILES)
	return err
}

func (s *CSVSink) Flush() error {
	for _, b := range []*bufio.Writer{s.nodes, s.edges, s.rej} {
		if b == nil {
			continue
		}
		if err := b.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (s *CSVSink) Close() error {
	err := s.Flush()
	for _, f := range []*os.File{s.nodesF, s.edgesF, s.rejF} {
		if f == nil {
			continue
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
