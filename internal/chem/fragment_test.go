package chem

import (
	"strings"
	"testing"
)

func childSet(r Result) map[string]string {
	m := map[string]string{}
	for _, c := range r.Children {
		m[c.SMILES] = c.Label
	}
	return m
}

func TestBondCutter_Ethanol(t *testing.T) {
	r := NewBondCutter().Fragment("CCO", 0)
	if r.Rejected {
		t.Fatalf("unexpected reject: %s", r.Reason)
	}
	if r.Mol.HAC != 3 || r.Mol.RAC != 0 {
		t.Fatalf("parent counts: %+v", r.Mol)
	}
	kids := childSet(r)
	if kids["CO"] != "C|C" || kids["CC"] != "C|O" {
		t.Fatalf("children: %v", kids)
	}
	if len(r.Children) != 2 {
		t.Fatalf("want 2 children, got %d", len(r.Children))
	}
}

func TestBondCutter_RingBondsNotCut(t *testing.T) {
	r := NewBondCutter().Fragment("c1ccccc1", 0)
	if r.Rejected || len(r.Children) != 0 {
		t.Fatalf("benzene should not decompose: %+v", r)
	}

	r = NewBondCutter().Fragment("CCc1ccccc1", 0)
	if r.Rejected {
		t.Fatalf("reject: %s", r.Reason)
	}
	kids := childSet(r)
	if _, ok := kids["c1ccccc1"]; !ok {
		t.Fatalf("ring should survive as a fragment: %v", kids)
	}
	for k := range kids {
		if strings.Contains(k, ".") {
			t.Fatalf("fragment %q crosses components", k)
		}
	}
}

func TestBondCutter_ChildRingCounts(t *testing.T) {
	r := NewBondCutter().Fragment("Cc1ccccc1", 0)
	if r.Rejected {
		t.Fatalf("reject: %s", r.Reason)
	}
	for _, c := range r.Children {
		if c.SMILES == "c1ccccc1" && (c.HAC != 6 || c.RAC != 6) {
			t.Fatalf("benzene child counts: %+v", c)
		}
	}
}

func TestBondCutter_DoubleBondsNotCut(t *testing.T) {
	r := NewBondCutter().Fragment("CC=C", 0)
	if r.Rejected {
		t.Fatalf("reject: %s", r.Reason)
	}
	kids := childSet(r)
	if _, ok := kids["C=C"]; !ok {
		t.Fatalf("want C=C child from single-bond cut: %v", kids)
	}
	if len(kids) != 1 {
		t.Fatalf("double bond must not be cut: %v", kids)
	}
}

func TestBondCutter_MaxFrag(t *testing.T) {
	r := NewBondCutter().Fragment("CCCCCCCC", 1)
	if !r.Rejected {
		t.Fatal("want reject for fragment count over limit")
	}
	if !strings.Contains(r.Reason, "exceeds limit") {
		t.Fatalf("reason: %s", r.Reason)
	}
	if len(r.Children) != 0 {
		t.Fatal("rejected molecules must carry no children")
	}
}

func TestBondCutter_UnparseableRejects(t *testing.T) {
	r := NewBondCutter().Fragment("not_a_molecule", 0)
	if !r.Rejected || !strings.HasPrefix(r.Reason, "parse:") {
		t.Fatalf("want parse reject, got %+v", r)
	}
	if r.Mol.SMILES != "not_a_molecule" {
		t.Fatalf("reject keeps the input id: %+v", r.Mol)
	}
}

func TestBondCutter_Deterministic(t *testing.T) {
	a := NewBondCutter().Fragment("CC(C)Cc1ccccc1O", 0)
	b := NewBondCutter().Fragment("CC(C)Cc1ccccc1O", 0)
	if len(a.Children) != len(b.Children) {
		t.Fatalf("runs differ: %d vs %d", len(a.Children), len(b.Children))
	}
	for i := range a.Children {
		if a.Children[i] != b.Children[i] {
			t.Fatalf("child %d differs: %+v vs %+v", i, a.Children[i], b.Children[i])
		}
	}
}
