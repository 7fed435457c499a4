// internal/writers/rows.go
package writers

// NodeRow is one nodes.csv record: a distinct fragment with its
// atom counts and the cost of the fragmentation that produced it.
// Child fragments carry zero NumChildren/NumEdges/TimeMS; only the
// molecule actually fragmented in this run reports those.
type NodeRow struct {
	SMILES      string
	HAC         int
	RAC         int
	NumChildren int
	NumEdges    int
	TimeMS      int64
}

// EdgeRow is one edges.csv record: a single decomposition step.
type EdgeRow struct {
	Parent string
	Child  string
	Label  string
}

// RejectRow is one rejects.smi record.
type RejectRow struct {
	SMILES string
	Reason string
}
