// internal/chem/parse.go
package chem

import (
	"fmt"
	"strings"
)

// atom is one heavy (or explicit-H) atom in the parsed molecule.
type atom struct {
	symbol   string // as written: "C", "Cl", "n", "[N+]", ...
	aromatic bool
	inRing   bool
	hydrogen bool // explicit [H]/[2H]/[3H]
}

// bond joins atoms a and b. order is the SMILES bond token with '-'
// for implicit/single; ring is set for bonds on a cycle.
type bond struct {
	a, b  int
	order byte
	ring  bool
}

type molecule struct {
	atoms []atom
	bonds []bond
	adj   [][]int // atom index → incident bond indices
}

// twoLetter lists organic-subset symbols that span two characters.
var twoLetter = map[string]bool{"Cl": true, "Br": true}

var organic = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
	"b": true, "c": true, "n": true, "o": true, "p": true, "s": true,
}

// parseSMILES builds a molecular graph from a SMILES string. It
// understands the organic subset, bracket atoms, branches, ring
// closures (including %nn), and bond orders. Stereo bond marks are
// read as single bonds. Multi-component strings (".") are refused:
// standard-file inputs are single molecules.
func parseSMILES(s string) (*molecule, error) {
	if s == "" {
		return nil, fmt.Errorf("empty SMILES")
	}
	m := &molecule{}
	var (
		prev      = -1         // atom awaiting a bond to the next atom
		pending   = byte('-')  // bond token for the next attachment
		stack     []int        // open branch anchors
		rings     = map[int]ringOpen{} // closure digit → first endpoint
	)

	addAtom := func(sym string, arom, hyd bool) {
		m.atoms = append(m.atoms, atom{symbol: sym, aromatic: arom, hydrogen: hyd})
		m.adj = append(m.adj, nil)
		cur := len(m.atoms) - 1
		if prev >= 0 {
			m.addBond(prev, cur, pending)
		}
		prev = cur
		pending = '-'
	}

	closeRing := func(num int) error {
		if open, ok := rings[num]; ok {
			delete(rings, num)
			if open.atom == prev {
				return fmt.Errorf("ring closure %d bonds an atom to itself", num)
			}
			order := pending
			if order == '-' && open.order != '-' {
				order = open.order
			}
			bi := m.addBond(open.atom, prev, order)
			m.bonds[bi].ring = true
			pending = '-'
			return nil
		}
		if prev < 0 {
			return fmt.Errorf("ring closure %d before any atom", num)
		}
		rings[num] = ringOpen{atom: prev, order: pending}
		pending = '-'
		return nil
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '(':
			if prev < 0 {
				return nil, fmt.Errorf("branch open at position %d before any atom", i)
			}
			stack = append(stack, prev)
			i++
		case c == ')':
			if len(stack) == 0 {
				return nil, fmt.Errorf("unbalanced branch close at position %d", i)
			}
			prev = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			i++
		case c == '-' || c == '=' || c == '#' || c == ':':
			pending = c
			i++
		case c == '/' || c == '\\':
			// stereo marks carry no weight here
			pending = '-'
			i++
		case c == '.':
			return nil, fmt.Errorf("multi-component SMILES not supported")
		case c >= '0' && c <= '9':
			if err := closeRing(int(c - '0')); err != nil {
				return nil, err
			}
			i++
		case c == '%':
			if i+2 >= len(s) || !isDigit(s[i+1]) || !isDigit(s[i+2]) {
				return nil, fmt.Errorf("bad %%nn ring closure at position %d", i)
			}
			if err := closeRing(int(s[i+1]-'0')*10 + int(s[i+2]-'0')); err != nil {
				return nil, err
			}
			i += 3
		case c == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated bracket atom at position %d", i)
			}
			body := s[i+1 : i+end]
			if body == "" {
				return nil, fmt.Errorf("empty bracket atom at position %d", i)
			}
			addAtom(s[i:i+end+1], isAromaticBracket(body), isExplicitH(body))
			i += end + 1
		default:
			sym := string(c)
			if i+1 < len(s) && twoLetter[s[i:i+2]] {
				sym = s[i : i+2]
			}
			if !organic[sym] {
				return nil, fmt.Errorf("unrecognized atom %q at position %d", sym, i)
			}
			addAtom(sym, sym[0] >= 'a', false)
			i += len(sym)
		}
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("unclosed branch")
	}
	if len(rings) != 0 {
		return nil, fmt.Errorf("unclosed ring bond")
	}
	if len(m.atoms) == 0 {
		return nil, fmt.Errorf("no atoms")
	}
	m.markRings()
	return m, nil
}

type ringOpen struct {
	atom  int
	order byte
}

func (m *molecule) addBond(a, b int, order byte) int {
	m.bonds = append(m.bonds, bond{a: a, b: b, order: order})
	bi := len(m.bonds) - 1
	m.adj[a] = append(m.adj[a], bi)
	m.adj[b] = append(m.adj[b], bi)
	return bi
}

func (m *molecule) other(bi, from int) int {
	if m.bonds[bi].a == from {
		return m.bonds[bi].b
	}
	return m.bonds[bi].a
}

// markRings finds all bonds on cycles (non-bridges) with one DFS and
// flags their endpoints as ring atoms. Ring-closure bonds are already
// flagged at parse time; this catches the rest of each cycle.
func (m *molecule) markRings() {
	n := len(m.atoms)
	disc := make([]int, n)
	low := make([]int, n)
	for i := range disc {
		disc[i] = -1
	}
	timer := 0

	var dfs func(at, parentBond int)
	dfs = func(at, parentBond int) {
		disc[at] = timer
		low[at] = timer
		timer++
		for _, bi := range m.adj[at] {
			if bi == parentBond {
				continue
			}
			to := m.other(bi, at)
			if disc[to] == -1 {
				dfs(to, bi)
				if low[to] < low[at] {
					low[at] = low[to]
				}
				if low[to] <= disc[at] {
					m.bonds[bi].ring = true
				}
			} else {
				if disc[to] < low[at] {
					low[at] = disc[to]
				}
				if disc[to] < disc[at] {
					m.bonds[bi].ring = true
				}
			}
		}
	}
	for i := 0; i < n; i++ {
		if disc[i] == -1 {
			dfs(i, -1)
		}
	}
	for _, b := range m.bonds {
		if b.ring {
			m.atoms[b.a].inRing = true
			m.atoms[b.b].inRing = true
		}
	}
}

// heavyAtomCount ignores explicit hydrogens.
func (m *molecule) heavyAtomCount() int {
	n := 0
	for _, a := range m.atoms {
		if !a.hydrogen {
			n++
		}
	}
	return n
}

func (m *molecule) ringAtomCount() int {
	n := 0
	for _, a := range m.atoms {
		if a.inRing {
			n++
		}
	}
	return n
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isExplicitH(body string) bool {
	b := strings.TrimLeft(body, "0123456789")
	return b == "H" || b == "H+" || b == "H-"
}

func isAromaticBracket(body string) bool {
	b := strings.TrimLeft(body, "0123456789")
	return len(b) > 0 && b[0] >= 'a' && b[0] <= 'z'
}
