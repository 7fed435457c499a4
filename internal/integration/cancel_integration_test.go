package integration

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fragnet/internal/app"
)

func TestCtrlC_MidRun_Exit130(t *testing.T) {
	// Big enough input that fragmentation is still underway when the
	// cancel lands.
	dir := t.TempDir()
	fn := filepath.Join(dir, "big.smi")
	var sb strings.Builder
	for i := 0; i < 200_000; i++ {
		sb.WriteString("CC(C)Cc1ccccc1OCCNC(C)C\n")
	}
	if err := os.WriteFile(fn, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	argv := []string{
		"--input", fn,
		"--base_dir", filepath.Join(dir, "out"),
		"-p", "2",
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	code := app.RunContext(ctx, argv, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
