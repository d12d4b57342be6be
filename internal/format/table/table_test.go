package table

import (
	"bytes"
	"testing"
)

func TestFormatPadsColumns(t *testing.T) {
	got := Format([][]string{
		{"state", "focused"},
		{"terminals", "7, 9"},
	}, nil)
	want := []string{
		"state      focused",
		"terminals  7, 9",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatRightAlignment(t *testing.T) {
	got := Format([][]string{{"a", "1"}, {"b", "100"}}, []Alignment{AlignLeft, AlignRight})
	if got[0] != "a    1" || got[1] != "b  100" {
		t.Fatalf("unexpected alignment %q", got)
	}
}

func TestFormatRaggedRowsAndWideRunes(t *testing.T) {
	got := Format([][]string{{"名前", "x"}, {"ab"}}, nil)
	if got[0] != "名前  x" || got[1] != "ab" {
		t.Fatalf("unexpected layout %q", got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil, got %q", got)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, [][]string{{"k", "v"}}, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "k  v\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
