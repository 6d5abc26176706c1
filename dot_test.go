// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

import (
	"strings"
	"testing"
)

func TestToDotBinaryUsesArcStyles(t *testing.T) {
	m := New([]int{2, 2})
	r := m.Apply(OPand, m.Variable(0), m.Variable(1))
	var sb strings.Builder
	if err := m.ToDot(&sb, r, nil); err != nil {
		t.Fatalf("ToDot: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "node [shape = square]") {
		t.Errorf("missing terminal shape declaration:\n%s", out)
	}
	if !strings.Contains(out, "node [shape = circle];") {
		t.Errorf("missing internal shape declaration:\n%s", out)
	}
	if !strings.Contains(out, "style = dashed") || !strings.Contains(out, "style = solid") {
		t.Errorf("expected dashed/solid arc styles for a P=2 manager:\n%s", out)
	}
	if strings.Contains(out, "label = <") {
		t.Errorf("P=2 output must not use numeric edge labels:\n%s", out)
	}
	if !strings.Contains(out, `label = "x0"`) {
		t.Errorf("expected internal node labelled x0:\n%s", out)
	}
	if !strings.Contains(out, "rank = same") {
		t.Errorf("missing rank grouping:\n%s", out)
	}
}

func TestToDotNonBinaryUsesNumericLabels(t *testing.T) {
	m := New([]int{3, 3})
	r := m.Apply(OPmax, m.Variable(0), m.Variable(1))
	var sb strings.Builder
	if err := m.ToDot(&sb, r, nil); err != nil {
		t.Fatalf("ToDot: %v", err)
	}
	out := sb.String()
	if strings.Contains(out, "style = dashed") || strings.Contains(out, "style = solid") {
		t.Errorf("P>2 output must not use dashed/solid arc styles:\n%s", out)
	}
	if !strings.Contains(out, "[label = 0];") && !strings.Contains(out, "[label = 1];") {
		t.Errorf("expected numeric edge labels for a P=3 manager:\n%s", out)
	}
}

func TestToDotRespectsVariableLabels(t *testing.T) {
	m := New([]int{2, 2})
	r := m.Variable(0)
	var sb strings.Builder
	if err := m.ToDot(&sb, r, VariableLabels{"alpha", "beta"}); err != nil {
		t.Fatalf("ToDot: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, `label = "alpha"`) {
		t.Errorf("expected custom label alpha to be used:\n%s", out)
	}
}
