// internal/chem/fragment.go
package chem

import "fmt"

// BondCutter is the built-in Fragmenter. One decomposition step cuts
// each acyclic single bond between heavy atoms in turn; the two
// resulting pieces become child fragments, each linked to the parent
// by an edge labelled with the severed bond's atom environments
// ("kept|lost", e.g. cutting the C-O of CCO yields child CC with
// label "C|O").
//
// It is a structural stand-in for a real chemistry toolkit: good
// enough to build and exercise networks, with no claim of synthetic
// sense. The pipeline only ever sees the Fragmenter interface, so a
// toolkit-backed implementation drops in without touching it.
type BondCutter struct{}

func NewBondCutter() *BondCutter { return &BondCutter{} }

func (bc *BondCutter) Fragment(s string, maxFrag int) Result {
	m, err := parseSMILES(s)
	if err != nil {
		return Reject(s, fmt.Sprintf("parse: %v", err))
	}

	node := Node{SMILES: s, HAC: m.heavyAtomCount(), RAC: m.ringAtomCount()}

	var children []Child
	seen := map[string]bool{} // child SMILES + label, once per molecule
	for bi, b := range m.bonds {
		if b.ring || b.order != '-' {
			continue
		}
		if m.atoms[b.a].hydrogen || m.atoms[b.b].hydrogen {
			continue
		}
		skip := map[int]bool{bi: true}
		for _, side := range [2][2]int{{b.a, b.b}, {b.b, b.a}} {
			kept, lost := side[0], side[1]
			frag := m.fragmentNode(kept, skip)
			if frag.HAC < 2 {
				// single-atom fragments carry no network value
				continue
			}
			label := bareSymbol(m.atoms[kept]) + "|" + bareSymbol(m.atoms[lost])
			key := frag.SMILES + "\x00" + label
			if seen[key] {
				continue
			}
			seen[key] = true
			children = append(children, Child{Node: frag, Label: label})
		}
	}

	if maxFrag > 0 && len(children) > maxFrag {
		return Reject(s, fmt.Sprintf("%d initial fragments exceeds limit %d", len(children), maxFrag))
	}
	return Result{Mol: node, Children: children}
}

// fragmentNode builds the Node for the component containing start once
// the skipped bonds are severed.
func (m *molecule) fragmentNode(start int, skip map[int]bool) Node {
	comp := m.component(start, skip)
	n := Node{SMILES: m.writeSMILES(start, skip)}
	for at := range comp {
		if !m.atoms[at].hydrogen {
			n.HAC++
		}
		if m.atoms[at].inRing {
			n.RAC++
		}
	}
	return n
}

// bareSymbol strips bracket decoration down to the element for labels.
func bareSymbol(a atom) string {
	s := a.symbol
	if len(s) > 0 && s[0] == '[' {
		s = s[1 : len(s)-1]
		for len(s) > 0 && isDigit(s[0]) {
			s = s[1:]
		}
		// element letters only
		end := 0
		for end < len(s) && ((s[end] >= 'A' && s[end] <= 'Z' && end == 0) || (s[end] >= 'a' && s[end] <= 'z')) {
			end++
		}
		if end > 0 {
			s = s[:end]
		}
	}
	return s
}
