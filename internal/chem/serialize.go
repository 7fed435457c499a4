// internal/chem/serialize.go
package chem

import (
	"fmt"
	"strings"
)

// writeSMILES renders the connected component of m containing start,
// excluding any bond in skip. The output is deterministic (DFS from
// the lowest atom index, neighbors in input order) but not canonical;
// equality of regenerated strings is what the dedup layer relies on,
// and determinism is enough for that within a run.
func (m *molecule) writeSMILES(start int, skip map[int]bool) string {
	// Restrict to the component and pick the lowest-index entry point.
	comp := m.component(start, skip)
	first := start
	for at := range comp {
		if at < first {
			first = at
		}
	}

	// Tree edges vs ring closures: walk once to classify.
	visited := make(map[int]bool, len(comp))
	closure := map[int]int{} // bond index → closure number
	nextClosure := 1
	var classify func(at, parentBond int)
	classify = func(at, parentBond int) {
		visited[at] = true
		for _, bi := range m.adj[at] {
			if skip[bi] || bi == parentBond {
				continue
			}
			if _, isClosure := closure[bi]; isClosure {
				continue
			}
			to := m.other(bi, at)
			if visited[to] {
				closure[bi] = nextClosure
				nextClosure++
				continue
			}
			classify(to, bi)
		}
	}
	classify(first, -1)

	var sb strings.Builder
	emitted := make(map[int]bool, len(comp))
	var emit func(at, parentBond int)
	emit = func(at, parentBond int) {
		emitted[at] = true
		sb.WriteString(m.atoms[at].symbol)
		// ring closure digits attach to the first and second visit of the bond
		for _, bi := range m.adj[at] {
			if num, ok := closure[bi]; ok && !skip[bi] {
				writeBondToken(&sb, m.bonds[bi].order, m.atoms[m.bonds[bi].a], m.atoms[m.bonds[bi].b])
				writeClosureNum(&sb, num)
				// second visit consumes the closure
				if emitted[m.other(bi, at)] {
					delete(closure, bi)
				}
			}
		}
		// collect unvisited tree children
		var kids []int
		for _, bi := range m.adj[at] {
			if skip[bi] || bi == parentBond {
				continue
			}
			if _, isClosure := closure[bi]; isClosure {
				continue
			}
			if to := m.other(bi, at); !emitted[to] {
				kids = append(kids, bi)
			}
		}
		for i, bi := range kids {
			to := m.other(bi, at)
			if emitted[to] {
				continue
			}
			last := i == len(kids)-1
			if !last {
				sb.WriteByte('(')
			}
			writeBondToken(&sb, m.bonds[bi].order, m.atoms[at], m.atoms[to])
			emit(to, bi)
			if !last {
				sb.WriteByte(')')
			}
		}
	}
	emit(first, -1)
	return sb.String()
}

// component returns the atom set reachable from start without
// crossing skipped bonds.
func (m *molecule) component(start int, skip map[int]bool) map[int]bool {
	comp := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		at := queue[0]
		queue = queue[1:]
		for _, bi := range m.adj[at] {
			if skip[bi] {
				continue
			}
			if to := m.other(bi, at); !comp[to] {
				comp[to] = true
				queue = append(queue, to)
			}
		}
	}
	return comp
}

func writeBondToken(sb *strings.Builder, order byte, a, b atom) {
	switch order {
	case '=', '#':
		sb.WriteByte(order)
	case ':':
		// aromatic bonds between aromatic atoms are implicit
		if !a.aromatic || !b.aromatic {
			sb.WriteByte(':')
		}
	}
}

func writeClosureNum(sb *strings.Builder, num int) {
	if num < 10 {
		fmt.Fprintf(sb, "%d", num)
		return
	}
	fmt.Fprintf(sb, "%%%02d", num)
}
