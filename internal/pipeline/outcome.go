// internal/pipeline/outcome.go
package pipeline

import "fragnet/internal/writers"

// Outcome is the tagged per-molecule result crossing the results
// channel. Exactly one of the two shapes is populated: Reject, or
// Node (+Children/+Edges). The controller dispatches on the tag, not
// on payload shape.
type Outcome struct {
	Node     writers.NodeRow
	Children []writers.NodeRow
	Edges    []writers.EdgeRow
	Reject   *writers.RejectRow
}

// Stats are the controller-owned run counters. Only the controller
// goroutine writes them; callers read the copy Run returns.
type Stats struct {
	Molecules  int64 // records that produced an outcome
	Nodes      int64 // distinct node rows written
	Duplicates int64 // node rows skipped by the dedup cache
	Edges      int64
	Rejects    int64
}
