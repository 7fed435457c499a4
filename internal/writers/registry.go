// internal/writers/registry.go
package writers

import (
	"fmt"
	"sort"
)

// Sink receives the three output streams. Calls arrive from the
// result controller's single loop, so implementations need no
// locking; they must surface I/O errors rather than swallow them.
type Sink interface {
	WriteNode(NodeRow) error
	WriteEdge(EdgeRow) error
	WriteReject(RejectRow) error
	// Flush pushes buffered records to stable storage; called at
	// report intervals to bound loss on abnormal termination.
	Flush() error
	Close() error
}

// Options carries everything a sink factory may need.
type Options struct {
	BaseDir string
	RunID   string
}

// Sink registry (format → factory). Register from init() blocks in
// the per-format files.
var sinkFactories = map[string]func(Options) (Sink, error){}

func Register(format string, fn func(Options) (Sink, error)) { sinkFactories[format] = fn }

// Open builds the sink for format, or an error naming the formats
// that exist.
func Open(format string, opts Options) (Sink, error) {
	fn, ok := sinkFactories[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (have %v)", format, Formats())
	}
	return fn(opts)
}

// Formats lists registered sink formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(sinkFactories))
	for k := range sinkFactories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
