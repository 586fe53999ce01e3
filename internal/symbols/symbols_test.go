package symbols_test

import (
	"testing"

	"reform/internal/braces"
	"reform/internal/chunk"
	"reform/internal/cleanup"
	"reform/internal/dialect"
	"reform/internal/lexer"
	"reform/internal/options"
	"reform/internal/source"
	"reform/internal/state"
	"reform/internal/symbols"
	"reform/internal/token"
)

func classify(t *testing.T, lang dialect.Lang, src string) *state.Ctx {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.src", []byte(src)))
	ctx := state.New(file, nil, options.Defaults(), lang)
	lexer.Tokenize(ctx)
	cleanup.Tokens(ctx)
	braces.Resolve(ctx)
	symbols.Classify(ctx)
	return ctx
}

func nth(t *testing.T, ctx *state.Ctx, text string, n int) *chunk.Chunk {
	t.Helper()
	for c := range ctx.List.All() {
		if c.Text == text {
			if n == 0 {
				return c
			}
			n--
		}
	}
	t.Fatalf("no chunk %q", text)
	return nil
}

func TestFunctionDefinitionAndCall(t *testing.T) {
	ctx := classify(t, dialect.C, "int main(void) { return foo(1); }")

	if c := nth(t, ctx, "main", 0); c.Parent != token.FuncDef {
		t.Errorf("main parent = %s", c.Parent)
	}
	open := nth(t, ctx, "(", 0)
	if open.Kind != token.FParenOpen || open.Parent != token.FuncDef {
		t.Errorf("def paren = %s/%s", open.Kind, open.Parent)
	}
	if !open.Flags.Has(token.FlagParamList) {
		t.Error("def paren is not a parameter list")
	}
	if c := nth(t, ctx, "{", 0); c.Parent != token.FuncDef {
		t.Errorf("body brace parent = %s", c.Parent)
	}
	if c := nth(t, ctx, "foo", 0); c.Parent != token.FuncCall {
		t.Errorf("foo parent = %s", c.Parent)
	}
	call := nth(t, ctx, "(", 1)
	if call.Kind != token.FParenOpen || call.Parent != token.FuncCall {
		t.Errorf("call paren = %s/%s", call.Kind, call.Parent)
	}
	if c := nth(t, ctx, "1", 0); !c.Flags.Has(token.FlagInFcnCall) {
		t.Error("call argument lacks IN_FCN_CALL")
	}
	if c := nth(t, ctx, "return", 0); !c.Flags.Has(token.FlagStmtStart) {
		t.Error("return is not a statement start")
	}
}

func TestPrototypeAndParams(t *testing.T) {
	ctx := classify(t, dialect.C, "int add(int a, int b);")

	if c := nth(t, ctx, "add", 0); c.Parent != token.FuncProto {
		t.Errorf("add parent = %s", c.Parent)
	}
	for _, name := range []string{"a", "b"} {
		if c := nth(t, ctx, name, 0); !c.Flags.Has(token.FlagVarDef) {
			t.Errorf("param %s lacks VAR_DEF", name)
		}
	}
}

func TestVariableDeclarations(t *testing.T) {
	ctx := classify(t, dialect.C, "int a, *b = 0;\nunsigned long c[4];\n")

	a, b := nth(t, ctx, "a", 0), nth(t, ctx, "b", 0)
	if !a.Flags.Has(token.FlagVarDef | token.FlagVarFirst) {
		t.Errorf("a flags = %s", a.Flags)
	}
	if !b.Flags.Has(token.FlagVarDef) || b.Flags.Has(token.FlagVarFirst) {
		t.Errorf("b flags = %s", b.Flags)
	}
	if c := nth(t, ctx, "*", 0); c.Kind != token.PtrType {
		t.Errorf("* kind = %s", c.Kind)
	}
	if c := nth(t, ctx, "c", 0); !c.Flags.Has(token.FlagVarDef) {
		t.Errorf("c flags = %s", c.Flags)
	}
	for _, ty := range []string{"unsigned", "long"} {
		if c := nth(t, ctx, ty, 0); !c.Flags.Has(token.FlagVarType) {
			t.Errorf("%s lacks VAR_TYPE", ty)
		}
	}
}

func TestOperators(t *testing.T) {
	ctx := classify(t, dialect.C, "void f() { x = a * b; y = *p; z = -a; i++; ++j; q = &r; }")

	tests := []struct {
		text string
		n    int
		want token.Kind
	}{
		{"*", 0, token.Arith},
		{"*", 1, token.Deref},
		{"-", 0, token.Neg},
		{"++", 0, token.IncdecAfter},
		{"++", 1, token.IncdecBefore},
		{"&", 0, token.AddrOf},
	}
	for _, tt := range tests {
		if c := nth(t, ctx, tt.text, tt.n); c.Kind != tt.want {
			t.Errorf("%s #%d = %s, want %s", tt.text, tt.n, c.Kind, tt.want)
		}
	}
}

func TestCasts(t *testing.T) {
	ctx := classify(t, dialect.C, "void f() { y = (int)x; z = (a) - b; n = sizeof(int) * 2; }")

	if c := nth(t, ctx, "(", 1); c.Parent != token.Cast {
		t.Errorf("(int) parent = %s", c.Parent)
	}
	if c := nth(t, ctx, "(", 2); c.Parent == token.Cast {
		t.Error("(a) - b taken as a cast")
	}
	if c := nth(t, ctx, "-", 0); c.Kind != token.Arith {
		t.Errorf("- after (a) = %s", c.Kind)
	}
	if c := nth(t, ctx, "(", 3); c.Parent != token.Sizeof {
		t.Errorf("sizeof paren parent = %s", c.Parent)
	}
	if c := nth(t, ctx, "*", 0); c.Kind != token.Arith {
		t.Errorf("* after sizeof = %s", c.Kind)
	}
}

func TestTypedefTeachesType(t *testing.T) {
	ctx := classify(t, dialect.C, "typedef unsigned int uint32;\nuint32 v;\n")

	def, use := nth(t, ctx, "uint32", 0), nth(t, ctx, "uint32", 1)
	if def.Kind != token.Type || def.Parent != token.Typedef {
		t.Errorf("typedef name = %s/%s", def.Kind, def.Parent)
	}
	if use.Kind != token.Type {
		t.Errorf("use kind = %s", use.Kind)
	}
	if c := nth(t, ctx, "typedef", 0); !c.Flags.Has(token.FlagInTypedef) {
		t.Error("typedef statement lacks IN_TYPEDEF")
	}
	if c := nth(t, ctx, "v", 0); !c.Flags.Has(token.FlagVarDef) {
		t.Error("v lacks VAR_DEF")
	}
}

func TestStructBody(t *testing.T) {
	ctx := classify(t, dialect.C, "struct point { int x; int y; } origin;")

	if c := nth(t, ctx, "point", 0); c.Kind != token.Type {
		t.Errorf("point kind = %s", c.Kind)
	}
	if c := nth(t, ctx, "{", 0); c.Parent != token.Struct {
		t.Errorf("{ parent = %s", c.Parent)
	}
	if c := nth(t, ctx, "}", 0); c.Parent != token.Struct {
		t.Errorf("} parent = %s", c.Parent)
	}
	if c := nth(t, ctx, "x", 0); !c.Flags.Has(token.FlagInStruct | token.FlagVarDef) {
		t.Errorf("x flags = %s", c.Flags)
	}
	if c := nth(t, ctx, "origin", 0); !c.Flags.Has(token.FlagVarDef) {
		t.Errorf("origin flags = %s", c.Flags)
	}
}

func TestEnumAndInitializerBodies(t *testing.T) {
	ctx := classify(t, dialect.C, "enum color { RED, GREEN };\nint a[] = {1, 2};\n")

	if c := nth(t, ctx, "{", 0); c.Parent != token.Enum {
		t.Errorf("enum brace parent = %s", c.Parent)
	}
	if c := nth(t, ctx, "RED", 0); !c.Flags.Has(token.FlagInEnum) {
		t.Error("RED lacks IN_ENUM")
	}
	if c := nth(t, ctx, "{", 1); c.Parent != token.Assign {
		t.Errorf("initializer brace parent = %s", c.Parent)
	}
	if c := nth(t, ctx, "1", 0); !c.Flags.Has(token.FlagInArrayInit) {
		t.Error("1 lacks IN_ARRAY_INIT")
	}
}

func TestExternC(t *testing.T) {
	ctx := classify(t, dialect.CPP, "extern \"C\" { int x; }")
	if c := nth(t, ctx, "{", 0); c.Parent != token.Extern {
		t.Errorf("extern brace parent = %s", c.Parent)
	}
}

func TestConstructorsAndDestructors(t *testing.T) {
	ctx := classify(t, dialect.CPP, "class A { public: A(int v) : v_(v) {} ~A(); int v_; };")

	if c := nth(t, ctx, "{", 0); c.Parent != token.Class {
		t.Errorf("class brace parent = %s", c.Parent)
	}
	if c := nth(t, ctx, "A", 1); c.Parent != token.FuncClass {
		t.Errorf("ctor name parent = %s", c.Parent)
	}
	if c := nth(t, ctx, "(", 0); c.Kind != token.FParenOpen || c.Parent != token.FuncDef {
		t.Errorf("ctor paren = %s/%s", c.Kind, c.Parent)
	}
	if c := nth(t, ctx, "v_", 0); c.Parent != token.FuncCall {
		t.Errorf("initializer v_ parent = %s", c.Parent)
	}
	if c := nth(t, ctx, "{", 1); c.Parent != token.FuncDef {
		t.Errorf("ctor body parent = %s", c.Parent)
	}
	if c := nth(t, ctx, "A", 2); c.Parent != token.FuncClass {
		t.Errorf("dtor name parent = %s", c.Parent)
	}
	if c := nth(t, ctx, "v_", 1); !c.Flags.Has(token.FlagVarDef | token.FlagInClass) {
		t.Errorf("member v_ flags = %s", c.Flags)
	}
}

func TestTemplateAngles(t *testing.T) {
	ctx := classify(t, dialect.CPP, "std::vector<int> v;\nvoid f() { if (a < b) {} }\n")

	open := nth(t, ctx, "<", 0)
	if open.Kind != token.AngleOpen {
		t.Fatalf("< kind = %s", open.Kind)
	}
	if closing := nth(t, ctx, ">", 0); closing.Kind != token.AngleClose || open.Match != closing.ID {
		t.Errorf("> = %s, linked %v", closing.Kind, open.Match == closing.ID)
	}
	if c := nth(t, ctx, "<", 1); c.Kind != token.Compare {
		t.Errorf("comparison < = %s", c.Kind)
	}
	if c := nth(t, ctx, "v", 0); !c.Flags.Has(token.FlagVarDef) {
		t.Error("v lacks VAR_DEF")
	}
	if c := nth(t, ctx, "std", 0); !c.Flags.Has(token.FlagQualified) {
		t.Error("std lacks QUALIFIED")
	}
}

func TestShiftClosesTwoAngles(t *testing.T) {
	ctx := classify(t, dialect.CPP, "std::map<int, std::vector<int>> m;")

	shift := nth(t, ctx, ">>", 0)
	if shift.Kind != token.AngleClose {
		t.Fatalf(">> kind = %s", shift.Kind)
	}
	for n := range 2 {
		if c := nth(t, ctx, "<", n); c.Kind != token.AngleOpen || c.Match != shift.ID {
			t.Errorf("< #%d = %s, match %d", n, c.Kind, c.Match)
		}
	}
}

func TestFunctionPointer(t *testing.T) {
	ctx := classify(t, dialect.C, "void (*handler)(int);")

	if c := nth(t, ctx, "handler", 0); !c.Flags.Has(token.FlagVarDef) {
		t.Error("handler lacks VAR_DEF")
	}
	if c := nth(t, ctx, "*", 0); c.Kind != token.PtrType {
		t.Errorf("* kind = %s", c.Kind)
	}
	if c := nth(t, ctx, "(", 0); c.Parent != token.FuncType {
		t.Errorf("first paren parent = %s", c.Parent)
	}
	if c := nth(t, ctx, "(", 1); c.Kind != token.FParenOpen || c.Parent != token.FuncType {
		t.Errorf("param paren = %s/%s", c.Kind, c.Parent)
	}
}

func TestConstructorStyleVariable(t *testing.T) {
	ctx := classify(t, dialect.CPP, "void f() { Foo bar(1); baz(2); }")

	bar := nth(t, ctx, "bar", 0)
	if !bar.Flags.Has(token.FlagVarDef | token.FlagVarFirst) {
		t.Errorf("bar flags = %s", bar.Flags)
	}
	if c := nth(t, ctx, "Foo", 0); !c.Flags.Has(token.FlagVarType) {
		t.Error("Foo lacks VAR_TYPE")
	}
	if c := nth(t, ctx, "baz", 0); c.Parent != token.FuncCall {
		t.Errorf("baz parent = %s", c.Parent)
	}
}

func TestJavaMethodParams(t *testing.T) {
	ctx := classify(t, dialect.Java, "class App { public static void main(String[] args) { } }")

	if c := nth(t, ctx, "main", 0); c.Parent != token.FuncDef {
		t.Errorf("main parent = %s", c.Parent)
	}
	if c := nth(t, ctx, "args", 0); !c.Flags.Has(token.FlagVarDef) {
		t.Error("args lacks VAR_DEF")
	}
}

func TestStatementStarts(t *testing.T) {
	ctx := classify(t, dialect.C, "void f() { if (x) y(); else z(); }")

	for _, text := range []string{"if", "y", "else", "z"} {
		if c := nth(t, ctx, text, 0); !c.Flags.Has(token.FlagStmtStart) {
			t.Errorf("%s is not a statement start", text)
		}
	}
	if c := nth(t, ctx, "x", 0); c.Flags.Has(token.FlagStmtStart) || !c.Flags.Has(token.FlagInSParen) {
		t.Errorf("x flags = %s", c.Flags)
	}
}
