package space

import (
	"reform/internal/chunk"
	"reform/internal/options"
	"reform/internal/token"
)

// rule matches a pair of chunks on one line. The first rule that matches
// decides the gap between them.
type rule struct {
	name  string
	match func(l, r *chunk.Chunk) bool
	opt   func(o *options.Config) options.IARF
}

func fixed(v options.IARF) func(*options.Config) options.IARF {
	return func(*options.Config) options.IARF { return v }
}

func left(kinds ...token.Kind) func(l, r *chunk.Chunk) bool {
	return func(l, _ *chunk.Chunk) bool { return l.Is(kinds...) }
}

func right(kinds ...token.Kind) func(l, r *chunk.Chunk) bool {
	return func(_, r *chunk.Chunk) bool { return r.Is(kinds...) }
}

func either(kinds ...token.Kind) func(l, r *chunk.Chunk) bool {
	return func(l, r *chunk.Chunk) bool { return l.Is(kinds...) || r.Is(kinds...) }
}

func pair(lk, rk token.Kind) func(l, r *chunk.Chunk) bool {
	return func(l, r *chunk.Chunk) bool { return l.Kind == lk && r.Kind == rk }
}

func fparen(parents ...token.Kind) func(l, r *chunk.Chunk) bool {
	return func(_, r *chunk.Chunk) bool {
		if r.Kind != token.FParenOpen {
			return false
		}
		for _, p := range parents {
			if r.Parent == p {
				return true
			}
		}
		return false
	}
}

// rules is ordered: specific shapes come before the operator families they
// overlap with.
var rules = []rule{
	{"trailing-comment", func(l, r *chunk.Chunk) bool { return r.Kind.IsComment() },
		func(o *options.Config) options.IARF { return o.SpBeforeTrCmt }},
	{"before-nl-cont", right(token.NlCont), func(o *options.Config) options.IARF { return o.SpBeforeNlCont }},
	{"after-comment", func(l, _ *chunk.Chunk) bool { return l.Kind.IsComment() }, fixed(options.Add)},
	{"directive-name", left(token.Preproc), fixed(options.Remove)},
	{"macro-params", func(l, r *chunk.Chunk) bool { return l.Kind == token.MacroFunc && r.Kind.IsParenOpen() }, fixed(options.Remove)},
	{"macro-body", left(token.Macro, token.MacroFunc), fixed(options.Add)},
	{"macro-params-body", func(l, r *chunk.Chunk) bool {
		return l.Kind.IsParenClose() && l.Parent == token.MacroFunc && l.InPreproc()
	}, fixed(options.Add)},
	{"operator-val", pair(token.Operator, token.OperatorVal), fixed(options.Remove)},
	{"operator-val-paren", left(token.OperatorVal), fixed(options.Remove)},

	{"empty-for-clause", func(l, r *chunk.Chunk) bool {
		return l.Kind == token.Semicolon && r.Is(token.Semicolon, token.SParenClose) && l.Flags.Has(token.FlagInSParen)
	}, fixed(options.Remove)},
	{"for-open-semicolon", pair(token.SParenOpen, token.Semicolon), fixed(options.Remove)},
	{"before-semi", right(token.Semicolon), func(o *options.Config) options.IARF { return o.SpBeforeSemi }},
	{"after-semi-for", func(l, _ *chunk.Chunk) bool {
		return l.Kind == token.Semicolon && l.Flags.Has(token.FlagInSParen)
	}, func(o *options.Config) options.IARF { return o.SpAfterSemiFor }},
	{"before-comma", right(token.Comma), func(o *options.Config) options.IARF { return o.SpBeforeComma }},
	{"after-comma", left(token.Comma), func(o *options.Config) options.IARF { return o.SpAfterComma }},

	{"case-label", right(token.CaseColon), func(o *options.Config) options.IARF { return o.SpCaseLabel }},
	{"after-case-label", left(token.CaseColon), fixed(options.Add)},
	{"cond-colon", either(token.CondColon), func(o *options.Config) options.IARF { return o.SpCondColon }},
	{"cond-question", either(token.Question), func(o *options.Config) options.IARF { return o.SpCondQuestion }},
	{"label-colon", right(token.LabelColon, token.PrivateColon), fixed(options.Remove)},
	{"class-colon", either(token.ClassColon, token.BitColon), fixed(options.Add)},
	{"after-label", left(token.LabelColon, token.PrivateColon), fixed(options.Add)},

	// "::x" after a keyword or an operator is a global qualifier, not a member access
	{"global-scope", func(l, r *chunk.Chunk) bool {
		return r.Kind == token.DCMember && !l.Is(token.Word, token.Type, token.AngleClose, token.Macro, token.This)
	}, fixed(options.Ignore)},
	{"member", either(token.Member, token.DCMember), func(o *options.Config) options.IARF { return o.SpMember }},

	{"template-angle", pair(token.Template, token.AngleOpen), fixed(options.Add)},
	{"before-angle", right(token.AngleOpen), func(o *options.Config) options.IARF { return o.SpBeforeAngle }},
	{"inside-angle", func(l, r *chunk.Chunk) bool { return l.Kind == token.AngleOpen || r.Kind == token.AngleClose },
		func(o *options.Config) options.IARF { return o.SpInsideAngle }},
	{"angle-word", func(l, r *chunk.Chunk) bool {
		return l.Kind == token.AngleClose && r.Is(token.Word, token.Type, token.Qualifier)
	}, func(o *options.Config) options.IARF { return o.SpAfterAngle }},
	{"angle-paren", func(l, r *chunk.Chunk) bool { return l.Kind == token.AngleClose && r.Kind.IsParenOpen() },
		fixed(options.Remove)},

	{"empty-square", pair(token.SquareOpen, token.SquareClose), fixed(options.Remove)},
	{"before-square", right(token.SquareOpen, token.TSquare), func(o *options.Config) options.IARF { return o.SpBeforeSquare }},
	{"inside-square", func(l, r *chunk.Chunk) bool { return l.Kind == token.SquareOpen || r.Kind == token.SquareClose },
		func(o *options.Config) options.IARF { return o.SpInsideSquare }},

	{"func-call-paren", fparen(token.FuncCall), func(o *options.Config) options.IARF { return o.SpFuncCallParen }},
	{"func-def-paren", fparen(token.FuncDef, token.FuncClass), func(o *options.Config) options.IARF { return o.SpFuncDefParen }},
	{"func-proto-paren", fparen(token.FuncProto), func(o *options.Config) options.IARF { return o.SpFuncProtoParen }},
	{"func-type-params", fparen(token.FuncType), fixed(options.Remove)},
	{"before-sparen", right(token.SParenOpen), func(o *options.Config) options.IARF { return o.SpBeforeSparen }},
	{"sizeof-paren", func(l, r *chunk.Chunk) bool { return l.Kind == token.Sizeof && r.Kind.IsParenOpen() },
		func(o *options.Config) options.IARF { return o.SpSizeofParen }},
	{"return-paren", func(l, r *chunk.Chunk) bool { return l.Kind == token.Return && r.Kind == token.ParenOpen },
		func(o *options.Config) options.IARF { return o.SpReturnParen }},
	{"annotation-paren", func(l, r *chunk.Chunk) bool { return l.Kind == token.Annotation && r.Kind.IsParenOpen() },
		fixed(options.Remove)},
	{"word-paren", func(l, r *chunk.Chunk) bool { return l.Kind == token.Word && r.Kind == token.ParenOpen },
		func(o *options.Config) options.IARF { return o.SpFuncCallParen }},

	{"empty-parens", func(l, r *chunk.Chunk) bool {
		return l.Kind.IsParenOpen() && r.Kind.IsParenClose() && l.Match == r.ID
	}, fixed(options.Remove)},
	{"inside-fparen", func(l, r *chunk.Chunk) bool { return l.Kind == token.FParenOpen || r.Kind == token.FParenClose },
		func(o *options.Config) options.IARF { return o.SpInsideFparen }},
	{"inside-sparen", func(l, r *chunk.Chunk) bool { return l.Kind == token.SParenOpen || r.Kind == token.SParenClose },
		func(o *options.Config) options.IARF { return o.SpInsideSparen }},
	{"inside-paren", func(l, r *chunk.Chunk) bool { return l.Kind == token.ParenOpen || r.Kind == token.ParenClose },
		func(o *options.Config) options.IARF { return o.SpInsideParen }},
	{"after-cast", func(l, _ *chunk.Chunk) bool { return l.Kind == token.ParenClose && l.Parent == token.Cast },
		func(o *options.Config) options.IARF { return o.SpAfterCast }},
	{"sparen-brace", pair(token.SParenClose, token.BraceOpen), func(o *options.Config) options.IARF { return o.SpSparenBrace }},
	{"after-sparen", left(token.SParenClose), func(o *options.Config) options.IARF { return o.SpAfterSparen }},
	{"paren-brace", func(l, r *chunk.Chunk) bool { return l.Kind.IsParenClose() && r.Kind == token.BraceOpen },
		func(o *options.Config) options.IARF { return o.SpParenBrace }},

	{"inside-braces-empty", pair(token.BraceOpen, token.BraceClose), func(o *options.Config) options.IARF { return o.SpInsideBracesEmpty }},
	{"inside-braces", func(l, r *chunk.Chunk) bool { return l.Kind == token.BraceOpen || r.Kind == token.BraceClose },
		func(o *options.Config) options.IARF { return o.SpInsideBraces }},
	{"brace-else", pair(token.BraceClose, token.Else), func(o *options.Config) options.IARF { return o.SpBraceElse }},
	{"brace-while", pair(token.BraceClose, token.WhileOfDo), func(o *options.Config) options.IARF { return o.SpBraceElse }},
	{"else-brace", pair(token.Else, token.BraceOpen), func(o *options.Config) options.IARF { return o.SpElseBrace }},
	{"before-brace", right(token.BraceOpen), fixed(options.Add)},
	{"brace-name", func(l, r *chunk.Chunk) bool { return l.Kind == token.BraceClose && r.Is(token.Word, token.Type) },
		fixed(options.Add)},

	{"assign", either(token.Assign), func(o *options.Config) options.IARF { return o.SpAssign }},
	{"lambda", either(token.Lambda), fixed(options.Add)},
	{"arith", either(token.Arith), func(o *options.Config) options.IARF { return o.SpArith }},
	{"compare", either(token.Compare), func(o *options.Config) options.IARF { return o.SpCompare }},
	{"bool", either(token.Bool), func(o *options.Config) options.IARF { return o.SpBool }},

	{"ptr-ptr", pair(token.PtrType, token.PtrType), fixed(options.Remove)},
	{"ptr-close", func(l, r *chunk.Chunk) bool { return l.Is(token.PtrType, token.ByRef) && r.Kind.IsParenClose() },
		fixed(options.Remove)},
	{"before-ptr-star", right(token.PtrType), func(o *options.Config) options.IARF { return o.SpBeforePtrStar }},
	{"after-ptr-star", left(token.PtrType), func(o *options.Config) options.IARF { return o.SpAfterPtrStar }},
	{"before-byref", right(token.ByRef), func(o *options.Config) options.IARF { return o.SpBeforeByref }},
	{"after-byref", left(token.ByRef), func(o *options.Config) options.IARF { return o.SpAfterByref }},

	{"deref", left(token.Deref), func(o *options.Config) options.IARF { return o.SpDeref }},
	{"addr", left(token.AddrOf), func(o *options.Config) options.IARF { return o.SpAddr }},
	{"not", left(token.Not), func(o *options.Config) options.IARF { return o.SpNot }},
	{"inv", left(token.Inv), func(o *options.Config) options.IARF { return o.SpInv }},
	{"sign", left(token.Neg, token.Pos), func(o *options.Config) options.IARF { return o.SpSign }},
	{"incdec-before", left(token.IncdecBefore), func(o *options.Config) options.IARF { return o.SpIncdec }},
	{"incdec-after", right(token.IncdecAfter), func(o *options.Config) options.IARF { return o.SpIncdec }},

	{"after-keyword", func(l, _ *chunk.Chunk) bool { return l.Kind.IsKeyword() }, fixed(options.Add)},
	{"after-annotation", left(token.Annotation), fixed(options.Add)},
	{"close-word", func(l, r *chunk.Chunk) bool {
		return l.Is(token.ParenClose, token.FParenClose, token.SquareClose, token.TSquare) && r.Is(token.Word, token.Type, token.Qualifier)
	}, fixed(options.Add)},
}
