// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fragnet/internal/chem"
	"fragnet/internal/dedup"
	"fragnet/internal/smiles"
	"fragnet/internal/writers"
)

// Config controls the fragmentation pipeline.
type Config struct {
	Workers     int           // fragmentation workers (>=1)
	ChunkSize   int           // records per work-queue item (>=1)
	MaxFrag     int           // reject molecules with more initial fragments; 0 = unbounded
	MolTimeout  time.Duration // per-molecule watchdog; 0 disables
	ReportEvery int           // invoke Progress every N molecules; 0 disables
	Progress    func(Stats)   // called from the controller goroutine

	// OnReject observes every reject as the controller records it;
	// used for verbose per-reject reporting.
	OnReject func(writers.RejectRow)
}

// StreamFunc feeds input records to the chunker. It returns after the
// stream is exhausted or emit reports an error.
type StreamFunc func(emit func(smiles.Record) error) error

// Run drives the whole pipeline: chunk the stream, fragment on
// Workers goroutines, and drain every outcome through the single
// controller into cache and sink. Termination is channel close plus
// wait groups rather than counted sentinels, so a miscount cannot
// hang the run. Returns the final counters and the first error
// (stream, sink, cache, or context cancellation).
func Run(ctx context.Context, cfg Config, stream StreamFunc, frag chem.Fragmenter, cache dedup.Cache, sink writers.Sink) (Stats, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = 1
	}

	// Bounded on both sides: a slow controller throttles workers, slow
	// workers throttle the chunker.
	jobs := make(chan []smiles.Record, cfg.Workers*2)
	results := make(chan Outcome, cfg.Workers*2)

	var wg sync.WaitGroup
	wg.Add(cfg.Workers)
	for w := 0; w < cfg.Workers; w++ {
		go func() {
			defer wg.Done()
			worker(ctx, cfg, jobs, results, frag)
		}()
	}

	// Result controller: the only goroutine touching cache, sink and
	// stats.
	var (
		stats Stats
		cerr  error
		cwg   sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for out := range results {
			if cerr != nil {
				continue // keep draining so workers can finish
			}
			if out.Reject != nil && cfg.OnReject != nil {
				cfg.OnReject(*out.Reject)
			}
			if err := apply(&stats, out, cache, sink); err != nil {
				cerr = err
				continue
			}
			if cfg.ReportEvery > 0 && stats.Molecules%int64(cfg.ReportEvery) == 0 {
				if cfg.Progress != nil {
					cfg.Progress(stats)
				}
				if err := sink.Flush(); err != nil {
					cerr = err
				}
			}
		}
	}()

	// Chunker: group records in input order, hand off chunks.
	var buf []smiles.Record
	send := func() error {
		if len(buf) == 0 {
			return nil
		}
		chunk := buf
		buf = make([]smiles.Record, 0, cfg.ChunkSize)
		select {
		case jobs <- chunk:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	ferr := stream(func(rec smiles.Record) error {
		buf = append(buf, rec)
		if len(buf) >= cfg.ChunkSize {
			return send()
		}
		return nil
	})
	if ferr == nil {
		ferr = send()
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return stats, ctx.Err()
	}
	if ferr != nil {
		return stats, ferr
	}
	return stats, cerr
}

// worker drains chunks and emits exactly one Outcome per record.
func worker(ctx context.Context, cfg Config, jobs <-chan []smiles.Record, results chan<- Outcome, frag chem.Fragmenter) {
	for {
		select {
		case <-ctx.Done():
			return
		case chunk, ok := <-jobs:
			if !ok {
				return
			}
			for _, rec := range chunk {
				out := fragmentOne(cfg, rec, frag)
				select {
				case results <- out:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// fragmentOne wraps the opaque fragmentation call: timing, panic
// downgrade, and the optional stuck-molecule watchdog. Failures
// become rejects, never worker crashes: a dead worker would stall
// the whole run.
func fragmentOne(cfg Config, rec smiles.Record, frag chem.Fragmenter) Outcome {
	start := time.Now()
	res := callFragment(cfg, rec, frag)
	elapsed := time.Since(start).Milliseconds()

	if res.Rejected {
		return Outcome{Reject: &writers.RejectRow{SMILES: rec.SMILES, Reason: res.Reason}}
	}

	distinct := map[string]bool{}
	out := Outcome{
		Node: writers.NodeRow{
			SMILES: res.Mol.SMILES,
			HAC:    res.Mol.HAC,
			RAC:    res.Mol.RAC,
			TimeMS: elapsed,
		},
	}
	for _, c := range res.Children {
		if !distinct[c.SMILES] {
			distinct[c.SMILES] = true
			out.Children = append(out.Children, writers.NodeRow{
				SMILES: c.SMILES, HAC: c.HAC, RAC: c.RAC,
			})
		}
		out.Edges = append(out.Edges, writers.EdgeRow{
			Parent: res.Mol.SMILES, Child: c.SMILES, Label: c.Label,
		})
	}
	out.Node.NumChildren = len(distinct)
	out.Node.NumEdges = len(out.Edges)
	return out
}

func callFragment(cfg Config, rec smiles.Record, frag chem.Fragmenter) (res chem.Result) {
	run := func() (r chem.Result) {
		defer func() {
			if p := recover(); p != nil {
				r = chem.Reject(rec.SMILES, fmt.Sprintf("error: %v", p))
			}
		}()
		return frag.Fragment(rec.SMILES, cfg.MaxFrag)
	}

	if cfg.MolTimeout <= 0 {
		return run()
	}

	done := make(chan chem.Result, 1)
	go func() { done <- run() }()
	select {
	case res = <-done:
		return res
	case <-time.After(cfg.MolTimeout):
		// The stuck goroutine is abandoned; its eventual result lands
		// in the buffered channel and is collected by the GC.
		return chem.Reject(rec.SMILES, fmt.Sprintf("timeout after %s (line %d)", cfg.MolTimeout, rec.Line))
	}
}

// apply folds one outcome into the run state. Nodes pass through the
// dedup cache (check-then-insert is atomic here because apply only
// ever runs on the controller goroutine); edges are written
// unconditionally; rejects go to the reject sink.
func apply(stats *Stats, out Outcome, cache dedup.Cache, sink writers.Sink) error {
	stats.Molecules++

	if out.Reject != nil {
		stats.Rejects++
		return sink.WriteReject(*out.Reject)
	}

	writeNode := func(n writers.NodeRow) error {
		seen, err := cache.Seen(n.SMILES)
		if err != nil {
			return err
		}
		if seen {
			stats.Duplicates++
			return nil
		}
		stats.Nodes++
		return sink.WriteNode(n)
	}

	if err := writeNode(out.Node); err != nil {
		return err
	}
	for _, c := range out.Children {
		if err := writeNode(c); err != nil {
			return err
		}
	}
	for _, e := range out.Edges {
		stats.Edges++
		if err := sink.WriteEdge(e); err != nil {
			return err
		}
	}
	return nil
}
