// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"fragnet/internal/app"
)

func write(t *testing.T, fn, data string) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func sortedLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	sort.Strings(lines)
	return lines
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := write(t, filepath.Join(dir, "itest.smi"), "CCO\nCCN\nCCCO\n")
	base := filepath.Join(dir, "out")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--input", in,
		"--base_dir", base,
	}, &out, &errBuf)

	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "Processed 3 molecules") {
		t.Fatalf("summary missing: %s", out.String())
	}
	if len(sortedLines(t, filepath.Join(base, "nodes.csv"))) == 0 {
		t.Fatal("expected node rows")
	}
}

// Line order across worker counts is unspecified; the sets must match.
func TestParallelMatchesSerialSets(t *testing.T) {
	dir := t.TempDir()
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("CC(C)Cc1ccccc1\nCCOC(=O)C\nCCN\n")
	}
	in := write(t, filepath.Join(dir, "par.smi"), sb.String())

	run := func(procs int) (nodes, edges []string) {
		base := filepath.Join(dir, fmt.Sprintf("out-p%d", procs))
		var out, errB bytes.Buffer
		code := app.Run([]string{
			"--input", in,
			"--base_dir", base,
			"-p", fmt.Sprint(procs),
			"-c", "5",
		}, &out, &errB)
		if code != 0 {
			t.Fatalf("exit %d err %s", code, errB.String())
		}
		nodes = sortedLines(t, filepath.Join(base, "nodes.csv"))
		for i, ln := range nodes {
			// TIME_MS varies run to run; compare the stable columns
			nodes[i] = ln[:strings.LastIndex(ln, ",")]
		}
		sort.Strings(nodes)
		return nodes, sortedLines(t, filepath.Join(base, "edges.csv"))
	}

	n1, e1 := run(1)
	n4, e4 := run(4)

	if strings.Join(n1, "\n") != strings.Join(n4, "\n") {
		t.Fatalf("node sets differ between serial and parallel runs\nserial: %v\nparallel: %v", n1, n4)
	}
	if strings.Join(e1, "\n") != strings.Join(e4, "\n") {
		t.Fatalf("edge sets differ between serial and parallel runs")
	}
}
