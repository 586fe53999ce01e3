package token

import (
	"testing"

	"reform/internal/dialect"
)

func TestLookupKeywordRespectsLanguage(t *testing.T) {
	tests := []struct {
		word string
		lang dialect.Lang
		want Kind
		ok   bool
	}{
		{"if", dialect.C, If, true},
		{"class", dialect.C, Invalid, false},
		{"class", dialect.CPP, Class, true},
		{"interface", dialect.Java, Class, true},
		{"namespace", dialect.CS, Namespace, true},
		{"unsigned", dialect.Java, Invalid, false},
		{"synchronized", dialect.D, Lock, true},
		{"synchronized", dialect.Java, Qualifier, true},
		{"string", dialect.CS, Type, true},
		{"string", dialect.CPP, Invalid, false},
		{"If", dialect.C, Invalid, false},
	}
	for _, tt := range tests {
		got, ok := LookupKeyword(tt.word, tt.lang)
		if got != tt.want || ok != tt.ok {
			t.Errorf("LookupKeyword(%q, %v) = %v,%v want %v,%v", tt.word, tt.lang, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindNamesAreComplete(t *testing.T) {
	seen := make(map[string]Kind)
	for k := Invalid; k < kindCount; k++ {
		name := k.String()
		if name == "" {
			t.Fatalf("kind %d has no name", k)
		}
		if prev, dup := seen[name]; dup {
			t.Fatalf("kinds %d and %d share name %q", prev, k, name)
		}
		seen[name] = k
		if back, ok := KindByName(name); !ok || back != k {
			t.Fatalf("KindByName(%q) = %v", name, back)
		}
	}
}

func TestFlags(t *testing.T) {
	var f Flags
	f = f.Set(FlagVarDef | FlagStmtStart)
	if !f.Has(FlagVarDef) || f.Has(FlagVarDef|FlagVarType) || !f.Any(FlagVarDef|FlagVarType) {
		t.Fatalf("flag queries wrong for %s", f)
	}
	if got := f.String(); got != "VAR_DEF|STMT_START" {
		t.Fatalf("String() = %q", got)
	}
	if f.Clear(FlagVarDef).Has(FlagVarDef) {
		t.Fatalf("Clear did not remove flag")
	}
}

func TestPredicates(t *testing.T) {
	if !SParenOpen.IsParenOpen() || !VBraceClose.IsBraceClose() || !VBraceOpen.IsVirtual() {
		t.Fatal("bracket predicates")
	}
	if !CommentCpp.IsComment() || Word.IsComment() {
		t.Fatal("comment predicate")
	}
	if !Return.IsWordLike() || Semicolon.IsWordLike() {
		t.Fatal("word-like predicate")
	}
	if !PpEndif.IsPreproc() || Preproc.IsPreproc() {
		t.Fatal("preproc predicate")
	}
}
