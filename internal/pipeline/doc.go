// Package pipeline runs the parallel fragmentation core: a chunker
// feeding a bounded work channel, P fragmentation workers, and one
// result controller that owns the dedup cache, the counters, and the
// output sink.
//
// All shared mutation is confined to the controller goroutine; the
// absence of locks is the design, not an oversight. Workers see only
// the chem.Fragmenter interface, so the chemistry stays swappable and
// the whole pipeline testable with fakes.
package pipeline
