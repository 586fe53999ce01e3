package lexer_test

import (
	"strings"
	"testing"

	"reform/internal/diag"
	"reform/internal/dialect"
	"reform/internal/lexer"
	"reform/internal/source"
	"reform/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func lex(t *testing.T, lang dialect.Lang, input string, types ...string) ([]token.Token, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.src", []byte(input)))
	rep := &testReporter{}
	toks := lexer.All(file, lexer.Options{Lang: lang, Types: types, Reporter: rep})

	// каждый байт входа должен оказаться в Leading или Text
	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(tok.Leading)
		sb.WriteString(tok.Text)
	}
	if sb.String() != string(file.Content) {
		t.Fatalf("coverage broken:\n got %q\nwant %q", sb.String(), file.Content)
	}
	return toks, rep
}

// significant drops newline tokens.
func significant(toks []token.Token) []token.Token {
	out := toks[:0:0]
	for _, tok := range toks {
		if tok.Kind != token.Newline {
			out = append(out, tok)
		}
	}
	return out
}

func kindsOf(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func expectKinds(t *testing.T, toks []token.Token, want ...token.Kind) {
	t.Helper()
	got := kindsOf(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d (%q): got %s, want %s", i, toks[i].Text, got[i], want[i])
		}
	}
}

func TestSimpleStatement(t *testing.T) {
	toks, rep := lex(t, dialect.C, "a=b+c;")
	expectKinds(t, toks, token.Word, token.Assign, token.Word, token.Plus, token.Word, token.Semicolon)
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.codes())
	}
}

func TestLeadingAndNewlineRuns(t *testing.T) {
	toks, _ := lex(t, dialect.C, "int  x;\n\n  \n\tfoo ( ) ;  ")
	if toks[1].Leading != "  " {
		t.Fatalf("leading of x = %q", toks[1].Leading)
	}
	nl := toks[3]
	if nl.Kind != token.Newline || nl.NlCount != 3 {
		t.Fatalf("newline run = %s/%d %q", nl.Kind, nl.NlCount, nl.Text)
	}
	if toks[4].Leading != "\t" {
		t.Fatalf("leading of foo = %q", toks[4].Leading)
	}
	last := toks[len(toks)-1]
	if last.Kind != token.Newline || last.NlCount != 0 || last.Leading != "  " {
		t.Fatalf("trailing blanks token = %+v", last)
	}
}

func TestKeywordsPerLanguage(t *testing.T) {
	toks, _ := lex(t, dialect.C, "class x")
	expectKinds(t, toks, token.Word, token.Word)

	toks, _ = lex(t, dialect.CPP, "class x")
	expectKinds(t, toks, token.Class, token.Word)

	toks, _ = lex(t, dialect.D, "synchronized foreach")
	expectKinds(t, toks, token.Lock, token.For)

	toks, _ = lex(t, dialect.Java, "synchronized")
	expectKinds(t, toks, token.Qualifier)
}

func TestUserTypes(t *testing.T) {
	toks, _ := lex(t, dialect.C, "u8 v; u9 w;", "u8")
	if toks[0].Kind != token.Type || toks[3].Kind != token.Word {
		t.Fatalf("kinds = %v", kindsOf(toks))
	}
}

func TestPunctuatorsLongestMatch(t *testing.T) {
	toks, _ := lex(t, dialect.CPP, "a<<=b>>c->d::e...f[]g[1]")
	expectKinds(t, toks,
		token.Word, token.Assign, token.Word, token.Arith, token.Word, token.Member,
		token.Word, token.DCMember, token.Word, token.Ellipsis, token.Word, token.TSquare,
		token.Word, token.SquareOpen, token.Number, token.SquareClose)

	toks, _ = lex(t, dialect.Java, "x>>>=1; f(a -> a)")
	if toks[1].Text != ">>>=" || toks[1].Kind != token.Assign {
		t.Fatalf("got %q %s", toks[1].Text, toks[1].Kind)
	}
	if toks[7].Kind != token.Lambda {
		t.Fatalf("java arrow = %s", toks[7].Kind)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		lang  dialect.Lang
		input string
	}{
		{dialect.C, "0x1Fu"},
		{dialect.C, "1.5e-3f"},
		{dialect.C, "10UL"},
		{dialect.C, ".5"},
		{dialect.C, "0x1.8p3"},
		{dialect.CPP, "1'000'000"},
		{dialect.CPP, "0b1010"},
		{dialect.Java, "1_000L"},
		{dialect.C, "1."},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, rep := lex(t, tt.lang, tt.input)
			if len(toks) != 1 || toks[0].Kind != token.Number || toks[0].Text != tt.input {
				t.Fatalf("got %v %q", kindsOf(toks), toks[0].Text)
			}
			if len(rep.diagnostics) != 0 {
				t.Fatalf("unexpected diagnostics %v", rep.codes())
			}
		})
	}

	// в D ".." после числа - оператор диапазона
	toks, _ := lex(t, dialect.D, "0..10")
	expectKinds(t, toks, token.Number, token.Ellipsis, token.Number)
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name  string
		lang  dialect.Lang
		input string
	}{
		{"escaped quote", dialect.C, `"a\"b"`},
		{"wide", dialect.C, `L"wide"`},
		{"utf8", dialect.CPP, `u8"x"`},
		{"raw", dialect.CPP, `R"xy(a "quoted" )" string)xy"`},
		{"raw multi-line", dialect.CPP, "R\"(line1\nline2)\""},
		{"verbatim", dialect.CS, `@"c:\dir\""file"`},
		{"interpolated", dialect.CS, `$"{a}"`},
		{"wysiwyg", dialect.D, `r"c:\dir\"`},
		{"backquote", dialect.D, "`a\nb`"},
		{"text block", dialect.Java, "\"\"\"\n  hi \"x\"\n\"\"\""},
		{"char", dialect.C, `'\''`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, rep := lex(t, tt.lang, tt.input)
			if len(toks) != 1 || toks[0].Kind != token.String {
				t.Fatalf("got %v", kindsOf(toks))
			}
			if len(rep.diagnostics) != 0 {
				t.Fatalf("unexpected diagnostics %v", rep.codes())
			}
		})
	}
}

func TestUnterminatedStringClosesAtLineEnd(t *testing.T) {
	toks, rep := lex(t, dialect.C, "char *s = \"abc\nint x;")
	toks = significant(toks)
	if toks[4].Kind != token.String || toks[4].Text != `"abc` {
		t.Fatalf("string token = %s %q", toks[4].Kind, toks[4].Text)
	}
	if toks[5].Text != "int" {
		t.Fatalf("lexing did not resume on the next line: %q", toks[5].Text)
	}
	if got := rep.codes(); len(got) != 1 || got[0] != diag.LexUnterminatedString {
		t.Fatalf("codes = %v", got)
	}

	_, rep = lex(t, dialect.C, `char *s = "abc`)
	if len(rep.diagnostics) != 1 {
		t.Fatalf("codes = %v", rep.codes())
	}
}

func TestComments(t *testing.T) {
	toks, rep := lex(t, dialect.C, "a; // tail  \n/* one */ /* two\nlines */ b")
	expectKinds(t, toks,
		token.Word, token.Semicolon, token.CommentCpp, token.Newline,
		token.Comment, token.CommentMulti, token.Word)
	if toks[2].Text != "// tail" {
		t.Fatalf("line comment = %q", toks[2].Text)
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("codes = %v", rep.codes())
	}

	toks, _ = lex(t, dialect.C, "// one \\\n two\nx")
	if toks[0].Kind != token.CommentCpp || !strings.Contains(toks[0].Text, "two") {
		t.Fatalf("continued line comment = %q", toks[0].Text)
	}

	toks, rep = lex(t, dialect.C, "x /* open")
	if toks[1].Kind != token.Comment || rep.codes()[0] != diag.LexUnterminatedBlockComment {
		t.Fatalf("unterminated comment: %v %v", kindsOf(toks), rep.codes())
	}

	// переводы строк в конце файла не входят в открытый комментарий
	toks, _ = lex(t, dialect.C, "x /* open \n\n")
	if toks[1].Text != "/* open" || toks[len(toks)-1].Kind != token.Newline {
		t.Fatalf("open comment at EOF: %v %q", kindsOf(toks), toks[1].Text)
	}

	toks, _ = lex(t, dialect.D, "/+ a /+ b +/ c +/x")
	expectKinds(t, toks, token.Comment, token.Word)
}

func TestPreprocessor(t *testing.T) {
	src := "#include <sys/types.h>\n" +
		"#  define SQR(x) ((x)*(x))\n" +
		"#define ONE (1)\n" +
		"#define CAT(a, b) a ## b #a\n" +
		"#error don't do this\n" +
		"int y;\n"
	toks, rep := lex(t, dialect.C, src)
	if len(rep.diagnostics) != 0 {
		t.Fatalf("codes = %v", rep.codes())
	}

	var lines [][]token.Token
	var cur []token.Token
	for _, tok := range toks {
		if tok.Kind == token.Newline {
			lines = append(lines, cur)
			cur = nil
			if tok.Flags.Has(token.FlagInPreproc) {
				t.Fatal("newline ending a directive must not be in the directive")
			}
			continue
		}
		cur = append(cur, tok)
	}

	expectKinds(t, lines[0], token.Preproc, token.PpInclude, token.String)
	if lines[0][2].Text != "<sys/types.h>" {
		t.Fatalf("header = %q", lines[0][2].Text)
	}
	if lines[1][1].Leading != "  " || lines[1][2].Kind != token.MacroFunc {
		t.Fatalf("define line = %v", kindsOf(lines[1]))
	}
	if lines[2][2].Kind != token.Macro {
		t.Fatalf("object-like macro = %s", lines[2][2].Kind)
	}
	pounds := 0
	for _, tok := range lines[3] {
		if tok.Kind == token.Pound {
			pounds++
		}
	}
	if pounds != 2 {
		t.Fatalf("pounds = %d in %v", pounds, kindsOf(lines[3]))
	}
	expectKinds(t, lines[4], token.Preproc, token.PpOther, token.String)
	for _, line := range lines[:5] {
		for _, tok := range line {
			if !tok.Flags.Has(token.FlagInPreproc) {
				t.Fatalf("%q not flagged as preprocessor", tok.Text)
			}
		}
	}
	for _, tok := range lines[5] {
		if tok.Flags.Has(token.FlagInPreproc) {
			t.Fatalf("%q leaked preprocessor flag", tok.Text)
		}
	}
}

func TestContinuedDirective(t *testing.T) {
	toks, _ := lex(t, dialect.C, "#define X \\\n    1\nint")
	expectKinds(t, toks,
		token.Preproc, token.PpDefine, token.Macro, token.NlCont, token.Newline,
		token.Number, token.Newline, token.Type)
	for _, tok := range toks[:6] {
		if !tok.Flags.Has(token.FlagInPreproc) {
			t.Fatalf("%s %q not in directive", tok.Kind, tok.Text)
		}
	}
	if toks[7].Flags.Has(token.FlagInPreproc) {
		t.Fatal("int must not be in the directive")
	}
}

func TestNoPreprocessorInJava(t *testing.T) {
	_, rep := lex(t, dialect.Java, "#x")
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnknownChar {
		t.Fatalf("codes = %v", rep.codes())
	}
}

func TestAnnotations(t *testing.T) {
	toks, _ := lex(t, dialect.Java, "@Override public @interface A")
	expectKinds(t, toks, token.Annotation, token.Access, token.Annotation, token.Word)
	if toks[2].Text != "@interface" {
		t.Fatalf("text = %q", toks[2].Text)
	}

	toks, _ = lex(t, dialect.CS, "@class")
	expectKinds(t, toks, token.Word)
}

func TestUnknownByteKeepsUTF8Rune(t *testing.T) {
	toks, rep := lex(t, dialect.C, "a § b")
	if toks[1].Kind != token.Unknown || toks[1].Text != "§" {
		t.Fatalf("unknown = %s %q", toks[1].Kind, toks[1].Text)
	}
	if len(rep.diagnostics) != 1 {
		t.Fatalf("codes = %v", rep.codes())
	}
}
