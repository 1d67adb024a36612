package ui

import (
	"strings"
	"testing"
)

func TestTableRendersRows(t *testing.T) {
	table := NewTable("Things", "ID", "Name")
	table.AddRow("p1", "First")
	table.AddRow("p2", "Second thing")

	var buf strings.Builder
	table.Render(&buf)
	out := buf.String()

	for _, want := range []string{"Things", "ID", "Name", "p1", "First", "p2", "Second thing"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTablePadsMissingCells(t *testing.T) {
	table := NewTable("", "A", "B", "C")
	table.AddRow("only-one")

	var buf strings.Builder
	table.Render(&buf)

	if !strings.Contains(buf.String(), "only-one") {
		t.Errorf("row not rendered:\n%s", buf.String())
	}
}

func TestTruncateLongCells(t *testing.T) {
	long := strings.Repeat("x", 200)
	table := NewTable("", "Col")
	table.AddRow(long)

	var buf strings.Builder
	table.Render(&buf)

	if strings.Contains(buf.String(), long) {
		t.Error("long cell was not truncated")
	}
	if !strings.Contains(buf.String(), "…") {
		t.Error("truncated cell missing ellipsis")
	}
}
