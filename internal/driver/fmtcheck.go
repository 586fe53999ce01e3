package driver

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"reform/internal/dialect"
	"reform/internal/lexer"
	"reform/internal/options"
	"reform/internal/source"
	"reform/internal/token"
)

// Verify formats raw, formats the result again and checks the round trip:
// the second pass must not change anything and no token may be lost,
// added or altered. It returns (ok, report).
func Verify(ctx context.Context, name string, raw []byte, opts *FormatOptions) (success bool, msg string) {
	first, err := FormatBytes(ctx, name, raw, opts)
	if err != nil {
		return false, "verify: " + err.Error()
	}
	second, err := FormatBytes(ctx, name, first.Formatted, opts)
	if err != nil {
		return false, "verify: reformat: " + err.Error()
	}
	if !bytes.Equal(first.Formatted, second.Formatted) {
		return false, fmt.Sprintf("verify: not idempotent at line %d", firstDiffLine(first.Formatted, second.Formatted))
	}
	if err := CheckTokens(raw, first.Formatted, first.Lang, bracesMayChange(opts.config())); err != nil {
		return false, "verify: " + err.Error()
	}
	return true, "verify: OK"
}

func bracesMayChange(cfg *options.Config) bool {
	return cfg.ModFullBraceIf != options.Ignore || cfg.ModFullBraceFor != options.Ignore ||
		cfg.ModFullBraceWhile != options.Ignore || cfg.ModFullBraceDo != options.Ignore
}

// CheckTokens lexes before and after and reports the first place where
// the two token sequences differ. Whitespace is ignored, and so is the
// inside spacing of comments. With braces set, '{' and '}' are left out
// of the comparison so brace insertion and removal pass.
func CheckTokens(before, after []byte, lang dialect.Lang, braces bool) error {
	a := significant(before, lang, braces)
	b := significant(after, lang, braces)
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return fmt.Errorf("token %d: %q became %q", i, a[i], b[i])
		}
	}
	if len(a) != len(b) {
		return fmt.Errorf("token count %d became %d", len(a), len(b))
	}
	return nil
}

func significant(src []byte, lang dialect.Lang, braces bool) []string {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("check", src))
	var out []string
	for _, tok := range lexer.All(file, lexer.Options{Lang: lang}) {
		switch {
		case tok.Kind == token.Newline || tok.Kind == token.NlCont:
			continue
		case braces && (tok.Kind == token.BraceOpen || tok.Kind == token.BraceClose):
			continue
		case tok.Kind.IsComment():
			out = append(out, strings.Join(strings.Fields(tok.Text), " "))
		default:
			out = append(out, tok.Text)
		}
	}
	return out
}

func firstDiffLine(a, b []byte) int {
	line := 1
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return line
		}
		if a[i] == '\n' {
			line++
		}
	}
	return line
}
