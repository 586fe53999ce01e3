package diag

import (
	"testing"

	"reform/internal/source"
)

func TestBagLimitAndDedup(t *testing.T) {
	bag := NewBag(3)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	for range 5 {
		ReportWarning(r, LexUnknownChar, sp, "unknown character").Emit()
	}
	if bag.Len() != 1 {
		t.Fatalf("dedup reporter let %d duplicates through", bag.Len())
	}
	for i := range uint32(5) {
		bag.Add(New(SevInfo, LexInfo, source.Span{Start: i}, "x"))
	}
	if bag.Len() != 3 {
		t.Fatalf("bag limit ignored: len=%d", bag.Len())
	}
	if !bag.HasWarnings() || bag.HasErrors() {
		t.Fatalf("severity queries wrong")
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	sp := source.Span{Start: 4, End: 6}
	bag.Add(New(SevWarning, LexUnknownChar, sp, "unknown character"))
	bag.Add(New(SevWarning, LexUnknownChar, sp, "unknown character again"))
	bag.Add(New(SevWarning, LexUnknownChar, source.Span{Start: 7, End: 8}, "unknown character"))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("len after dedup = %d, want 2", bag.Len())
	}
	if bag.Items()[0].Message != "unknown character" {
		t.Fatalf("dedup kept %q instead of the first entry", bag.Items()[0].Message)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnterminatedString: "LEX1002",
		StrUnmatchedClose:     "STR2001",
		IOLoadFileError:       "IO4001",
		CfgUnknownOption:      "CFG5001",
		UnknownCode:           "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", code, got, want)
		}
	}
}
