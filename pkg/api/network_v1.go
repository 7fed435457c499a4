// pkg/api/network_v1.go
// Package api pins the public record shapes of the fragment-network
// outputs. Downstream graph loaders parse the CSV artifacts against
// these definitions; changing field order is a breaking change and
// gets a new version suffix.
package api

import (
	"fmt"
	"strconv"
	"strings"
)

// Column order of nodes.csv and edges.csv, V1. The files carry no
// header row.
var (
	NodeColumnsV1 = []string{"SMILES", "HAC", "RAC", "NUM_CHILDREN", "NUM_EDGES", "TIME_MS"}
	EdgeColumnsV1 = []string{"PARENT_SMILES", "CHILD_SMILES", "LABEL"}
)

type NodeV1 struct {
	SMILES      string `json:"smiles"`
	HAC         int    `json:"hac"`
	RAC         int    `json:"rac"`
	NumChildren int    `json:"num_children"`
	NumEdges    int    `json:"num_edges"`
	TimeMS      int64  `json:"time_ms"`
}

type EdgeV1 struct {
	ParentSMILES string `json:"parent_smiles"`
	ChildSMILES  string `json:"child_smiles"`
	Label        string `json:"label"`
}

// ParseNodeV1 parses one nodes.csv line.
func ParseNodeV1(line string) (NodeV1, error) {
	f := strings.Split(line, ",")
	if len(f) != len(NodeColumnsV1) {
		return NodeV1{}, fmt.Errorf("node row: %d fields, want %d", len(f), len(NodeColumnsV1))
	}
	var n NodeV1
	var err error
	n.SMILES = f[0]
	if n.HAC, err = strconv.Atoi(f[1]); err != nil {
		return n, fmt.Errorf("node row HAC: %w", err)
	}
	if n.RAC, err = strconv.Atoi(f[2]); err != nil {
		return n, fmt.Errorf("node row RAC: %w", err)
	}
	if n.NumChildren, err = strconv.Atoi(f[3]); err != nil {
		return n, fmt.Errorf("node row NUM_CHILDREN: %w", err)
	}
	if n.NumEdges, err = strconv.Atoi(f[4]); err != nil {
		return n, fmt.Errorf("node row NUM_EDGES: %w", err)
	}
	if n.TimeMS, err = strconv.ParseInt(f[5], 10, 64); err != nil {
		return n, fmt.Errorf("node row TIME_MS: %w", err)
	}
	return n, nil
}

// ParseEdgeV1 parses one edges.csv line.
func ParseEdgeV1(line string) (EdgeV1, error) {
	f := strings.Split(line, ",")
	if len(f) != len(EdgeColumnsV1) {
		return EdgeV1{}, fmt.Errorf("edge row: %d fields, want %d", len(f), len(EdgeColumnsV1))
	}
	return EdgeV1{ParentSMILES: f[0], ChildSMILES: f[1], Label: f[2]}, nil
}
