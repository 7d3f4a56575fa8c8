package main

import (
	"strings"
	"testing"
)

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"processing", "Processing"},
		{"completed", "Completed"},
		{"  failed  ", "Failed"},
		{"", "-"},
	}
	for _, tc := range cases {
		if got := statusLabel(tc.in); got != tc.want {
			t.Errorf("statusLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderTableIncludesHeadersAndRows(t *testing.T) {
	out := renderTable(
		[]string{"ID", "Name"},
		[][]string{{"1", "CET-4"}, {"2", "CET-6"}},
		[]columnAlignment{alignRight, alignLeft},
	)
	// go-pretty upcases header cells.
	for _, want := range []string{"ID", "NAME", "CET-4", "CET-6"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"A", "B", "C"},
		[][]string{{"only"}},
		nil,
	)
	if !strings.Contains(out, "only") {
		t.Fatalf("table output missing row value:\n%s", out)
	}
}
