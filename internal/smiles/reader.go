// internal/smiles/reader.go
// Package smiles streams molecule records from an Informatics Matters
// "standard" file: one molecule per line, first whitespace-separated
// field is the (non-isomeric) SMILES string.
package smiles

import (
	"bufio"
	"compress/gzip"
	"context"
	"io"
	"os"
	"strings"
)

// Record is one molecule pulled from the input stream. Line is the
// 1-based position in the file, kept for provenance in diagnostics.
type Record struct {
	SMILES string
	Line   int
}

// headerFields are first-column names seen in standard-file headers.
var headerFields = map[string]bool{
	"osmiles": true,
	"smiles":  true,
	"canonical_smiles": true,
}

// StreamRecords scans r line by line and calls emit for each molecule
// record after applying skip/limit. skip drops the first S records;
// limit caps the records emitted after skipping (0 = unbounded).
// Blank lines, '#' comments and a leading header row are not records
// and count toward neither skip nor limit. Returns the first emit
// error, or ctx.Err() if cancelled mid-stream.
func StreamRecords(ctx context.Context, r io.Reader, skip, limit int, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	seen := 0    // records encountered (post header/comment filtering)
	emitted := 0 // records handed to emit
	lineNo := 0

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if lineNo == 1 && headerFields[strings.ToLower(fields[0])] {
			continue
		}
		seen++
		if seen <= skip {
			continue
		}
		if limit > 0 && emitted >= limit {
			return nil
		}
		if err := emit(Record{SMILES: fields[0], Line: lineNo}); err != nil {
			return err
		}
		emitted++
	}
	return sc.Err()
}

// Open opens path for streaming, transparently decompressing .gz.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &gzipFile{zr: zr, f: f}, nil
}

type gzipFile struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipFile) Close() error {
	zerr := g.zr.Close()
	ferr := g.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}
