// internal/chem/types.go
package chem

// Node describes one molecule or fragment as it appears in the network.
type Node struct {
	SMILES string
	HAC    int // heavy atom count
	RAC    int // ring atom count
}

// Child is a fragment produced by one decomposition step, with the
// transformation label for the parent→child edge.
type Child struct {
	Node
	Label string
}

// Result is the outcome of fragmenting a single molecule: either the
// parent node plus zero or more children, or a rejection with a reason.
// Never both.
type Result struct {
	Mol      Node
	Children []Child
	Rejected bool
	Reason   string
}

// Fragmenter decomposes one molecule into child fragments. maxFrag > 0
// rejects molecules whose initial decomposition yields more than
// maxFrag children. Implementations must be safe for concurrent use;
// the pipeline calls Fragment from multiple workers.
type Fragmenter interface {
	Fragment(smiles string, maxFrag int) Result
}

// Func adapts a plain function to the Fragmenter interface.
type Func func(smiles string, maxFrag int) Result

func (f Func) Fragment(smiles string, maxFrag int) Result { return f(smiles, maxFrag) }

// Reject builds a rejection Result for id with the given reason.
func Reject(id, reason string) Result {
	return Result{Mol: Node{SMILES: id}, Rejected: true, Reason: reason}
}
