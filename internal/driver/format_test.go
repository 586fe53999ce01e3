package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reform/internal/diag"
	"reform/internal/dialect"
	"reform/internal/observ"
	"reform/internal/options"
	"reform/internal/source"
	"reform/internal/testkit"
)

func formatString(t *testing.T, name, src string, tweak func(*options.Config)) FormatResult {
	t.Helper()
	cfg := options.Defaults()
	if tweak != nil {
		tweak(cfg)
	}
	res, err := FormatBytes(context.Background(), name, []byte(src), &FormatOptions{Config: cfg})
	require.NoError(t, err)
	return res
}

func TestSpacingDeterminism(t *testing.T) {
	res := formatString(t, "a.c", "a=b+c;", nil)
	assert.Equal(t, "a = b + c;\n", string(res.Formatted))
	assert.True(t, res.Changed)
}

func TestIndentFromNesting(t *testing.T) {
	res := formatString(t, "a.c", "if(x){foo();}", nil)
	assert.Equal(t, "if (x) {\n    foo();\n}\n", string(res.Formatted))
}

func TestAlignmentRun(t *testing.T) {
	res := formatString(t, "a.c", "int a;\nfloat bb;\ndouble ccc;\n", func(c *options.Config) {
		c.AlignVarDefSpan = 1
	})
	assert.Equal(t, "int    a;\nfloat  bb;\ndouble ccc;\n", string(res.Formatted))
	assert.Equal(t, 1, res.Stats.AlignedGroups)
}

func TestMalformedInputIsTolerated(t *testing.T) {
	res := formatString(t, "a.c", `char *s = "abc`, nil)
	assert.Contains(t, string(res.Formatted), `"abc`)

	var codes []diag.Code
	for _, d := range res.Bag.Items() {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, diag.LexUnterminatedString)
}

var samples = []struct {
	name string
	src  string
}{
	{"func.c", "int main(int argc,char**argv){\nif(argc>1){return 1;}\nelse return 0;\n}\n"},
	{"loops.c", "void f(void){for(i=0;i<n;i++){a[i]=i;}\nwhile(x)x--;\ndo{y++;}while(y<3);}\n"},
	{"switch.c", "void f(int x){switch(x){case 1:a();break;default:b();}}\n"},
	{"pp.c", "#ifdef A\nint a;\n#else\nint b;\n#endif\n#define M(x) \\\n  ((x)+1)\n"},
	{"struct.c", "struct point{int x;int y;};\nenum color{RED=1,GREEN=2};\ntypedef int myint;\n"},
	{"comments.c", "/* header\n * box\n */\nint a; // trailing\nint bb; /* c */\n"},
	{"class.cpp", "namespace n{\nclass A:public B{\npublic:\nA();\nvirtual ~A();\nprivate:\nint x_;\n};\n}\n"},
	{"templ.cpp", "std::vector<std::pair<int,int>> v;\ntemplate<typename T>T max(T a,T b){return a>b?a:b;}\n"},
	{"lambda.java", "class A{void f(){list.forEach(x->System.out.println(x));}}\n"},
	{"props.cs", "class A{public int X{get;set;}\nvoid F(){if(a)b();}}\n"},
	{"broken.c", "}}{{)(\n#else\n#endif\nint x = \"oops\n"},
	{"ppbody.c", "void f(void){\nif(a)\n#ifdef X\nfoo();\n#else\nbar();\n#endif\nbaz();\n}\n"},
	{"opencomment.c", "int a; /* x */\n/* unterminated"},
}

func TestIdempotence(t *testing.T) {
	configs := map[string]func(*options.Config){
		"defaults": nil,
		"aligned": func(c *options.Config) {
			c.AlignVarDefSpan = 2
			c.AlignAssignSpan = 2
			c.AlignRightCmtSpan = 3
			c.AlignNlCont = true
			c.AlignPPDefineSpan = 2
		},
		"allman": func(c *options.Config) {
			c.NlIfBrace = options.Add
			c.NlFdefBrace = options.Add
			c.NlElseBrace = options.Add
			c.NlBraceElse = options.Add
			c.PPIndent = options.Add
		},
		"tabs": func(c *options.Config) {
			c.IndentWithTabs = 1
			c.IndentColumns = 8
		},
	}
	for cname, tweak := range configs {
		for _, s := range samples {
			t.Run(cname+"/"+s.name, func(t *testing.T) {
				first := formatString(t, s.name, s.src, tweak)
				second := formatString(t, s.name, string(first.Formatted), tweak)
				assert.Equal(t, string(first.Formatted), string(second.Formatted))
				assert.False(t, second.Changed)
				assert.NoError(t, CheckTokens([]byte(s.src), first.Formatted, first.Lang, false))
			})
		}
	}
}

func TestStreamInvariants(t *testing.T) {
	for _, s := range samples {
		t.Run(s.name, func(t *testing.T) {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual(s.name, []byte(s.src)))
			lang := dialect.FromFilename(s.name)
			_, sc, err := FormatSource(context.Background(), file, lang, options.Defaults(), diag.NewBag(64), nil)
			require.NoError(t, err)
			assert.NoError(t, testkit.CheckSpans(sc.List, file))
			if s.name != "broken.c" {
				assert.NoError(t, testkit.CheckLevels(sc.List))
			}
		})
	}
}

func TestPreprocessorDoesNotShiftCode(t *testing.T) {
	plain := formatString(t, "a.c", "void f(void){\nif(x){\ny();\n}\n}\n", nil)
	withPP := formatString(t, "a.c", "void f(void){\n#ifdef A\nif(x){\n#else\nif(z){\n#endif\ny();\n}\n}\n", nil)
	assert.Contains(t, string(plain.Formatted), "        y();\n")
	assert.Contains(t, string(withPP.Formatted), "        y();\n")
	assert.Contains(t, string(withPP.Formatted), "\n    if (z) {\n")
}

func TestBraceModification(t *testing.T) {
	res := formatString(t, "a.c", "void f(void){\nif(x)\ny();\n}\n", func(c *options.Config) {
		c.ModFullBraceIf = options.Add
	})
	assert.Equal(t, "void f(void) {\n    if (x) {\n        y();\n    }\n}\n", string(res.Formatted))
	assert.NoError(t, CheckTokens([]byte("void f(void){\nif(x)\ny();\n}\n"), res.Formatted, dialect.C, true))
}

func TestBracelessBodyAcrossConditional(t *testing.T) {
	src := "void f(void) {\n    if (a)\n#ifdef X\n        foo();\n#else\n        bar();\n#endif\n    baz();\n}\n"
	for name, tweak := range map[string]func(*options.Config){
		"virtual": nil,
		"add":     func(c *options.Config) { c.ModFullBraceIf = options.Add },
	} {
		t.Run(name, func(t *testing.T) {
			first := formatString(t, "a.c", src, tweak)
			assert.Equal(t, src, string(first.Formatted))
			assert.Equal(t, bytes.Count(first.Formatted, []byte("{")), bytes.Count(first.Formatted, []byte("}")))

			second := formatString(t, "a.c", string(first.Formatted), tweak)
			assert.Equal(t, string(first.Formatted), string(second.Formatted))
		})
	}
}

func TestLanguageResolution(t *testing.T) {
	assert.Equal(t, dialect.CPP, ResolveLang("a.hpp", nil, dialect.None, false))
	assert.Equal(t, dialect.Java, ResolveLang("a.c", nil, dialect.Java, false))
	hdr := []byte("namespace a {\nclass B {\npublic:\n};\n}\n")
	assert.Equal(t, dialect.C, ResolveLang("a.h", hdr, dialect.None, false))
	assert.Equal(t, dialect.CPP, ResolveLang("a.h", hdr, dialect.None, true))
}

func TestCRLFRoundTrip(t *testing.T) {
	res := formatString(t, "a.c", "int a;\r\nint b;\r\n", nil)
	assert.Equal(t, "int a;\r\nint b;\r\n", string(res.Formatted))
	assert.False(t, res.Changed)
}

func TestParsedDump(t *testing.T) {
	var dump bytes.Buffer
	_, err := FormatBytes(context.Background(), "a.c", []byte("int a;\n"), &FormatOptions{Parsed: &dump})
	require.NoError(t, err)
	assert.Contains(t, dump.String(), "lang=C")
	assert.Contains(t, dump.String(), `"int"`)
}

func TestTimerCoversStages(t *testing.T) {
	timer := observ.NewTimer()
	_, err := FormatBytes(context.Background(), "a.c", []byte("int a;\n"), &FormatOptions{Timer: timer})
	require.NoError(t, err)
	names := map[string]bool{}
	for _, s := range timer.Report().Stages {
		names[s.Name] = true
	}
	for _, want := range []string{"tokenize", "braces", "newlines", "space", "indent", "reindent", "render"} {
		assert.True(t, names[want], "stage %s not timed", want)
	}
	assert.False(t, names["squeeze-ifdef"], "disabled stage timed")
}

func TestFormatPaths(t *testing.T) {
	dir := t.TempDir()
	messy := filepath.Join(dir, "messy.c")
	clean := filepath.Join(dir, "sub", "clean.cpp")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(clean), 0o755))
	require.NoError(t, os.WriteFile(messy, []byte("a=b+c;\n"), 0o644))
	require.NoError(t, os.WriteFile(clean, []byte("int a = 1;\n"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("a=b\n"), 0o644))

	ctx := context.Background()

	files, err := CollectSourceFiles(ctx, []string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{messy, clean}, files)

	results, err := FormatPaths(ctx, []string{dir}, FormatOptions{Check: true})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Changed)
	assert.False(t, results[1].Changed)
	data, _ := os.ReadFile(messy)
	assert.Equal(t, "a=b+c;\n", string(data), "check mode wrote the file")

	events := make(chan Event, 64)
	results, err = FormatPaths(ctx, []string{dir}, FormatOptions{Progress: ChannelSink{Ch: events}})
	require.NoError(t, err)
	close(events)
	assert.True(t, results[0].Changed)
	data, _ = os.ReadFile(messy)
	assert.Equal(t, "a = b + c;\n", string(data))

	var done int
	for ev := range events {
		if ev.Status == StatusDone {
			done++
		}
	}
	assert.Equal(t, 2, done)
}

func TestFormatPathsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FormatPaths(ctx, []string{t.TempDir()}, FormatOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiskCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)
	opts := &FormatOptions{Cache: cache}
	ctx := context.Background()

	first, err := FormatBytes(ctx, "a.c", []byte("int a = 1;\n"), opts)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.False(t, first.Changed)

	second, err := FormatBytes(ctx, "a.c", []byte("int a = 1;\n"), opts)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, "int a = 1;\n", string(second.Formatted))

	// другой конфиг - другой ключ
	other, err := FormatBytes(ctx, "a.c", []byte("int a = 1;\n"), &FormatOptions{Cache: cache, Config: func() *options.Config {
		c := options.Defaults()
		c.SpAssign = options.Remove
		return c
	}()})
	require.NoError(t, err)
	assert.False(t, other.Cached)
	assert.Equal(t, "int a=1;\n", string(other.Formatted))

	require.NoError(t, cache.DropAll())
	third, err := FormatBytes(ctx, "a.c", []byte("int a = 1;\n"), opts)
	require.NoError(t, err)
	assert.False(t, third.Cached)
}

func TestVerify(t *testing.T) {
	for _, s := range samples {
		ok, msg := Verify(context.Background(), s.name, []byte(s.src), &FormatOptions{})
		assert.True(t, ok, "%s: %s", s.name, msg)
	}
}

func TestCheckTokensSpotsChanges(t *testing.T) {
	assert.NoError(t, CheckTokens([]byte("a=b;"), []byte("a = b;\n"), dialect.C, false))
	assert.Error(t, CheckTokens([]byte("a=b;"), []byte("a = c;\n"), dialect.C, false))
	assert.Error(t, CheckTokens([]byte("a=b;"), []byte("a = b;;\n"), dialect.C, false))
	assert.Error(t, CheckTokens([]byte("if (x) y;"), []byte("if (x) { y; }"), dialect.C, false))
	assert.NoError(t, CheckTokens([]byte("if (x) y;"), []byte("if (x) { y; }"), dialect.C, true))
}
