package token

// Kind represents the category of a chunk.
type Kind uint8

const (
	// Invalid is the zero kind; also used as "no parent".
	Invalid Kind = iota
	// Unknown is a byte the lexer could not classify.
	Unknown

	// Newline is a run of line breaks.
	Newline
	// NlCont is a backslash-newline continuation marker ("\").
	NlCont
	// Comment is a /* */ comment on one line.
	Comment
	// CommentMulti is a /* */ comment spanning lines.
	CommentMulti
	// CommentCpp is a // comment.
	CommentCpp

	Word
	Type
	Number
	String
	// Annotation is a Java/D "@Name" or "@interface".
	Annotation

	// operators and punctuation
	Semicolon
	Comma
	Question
	Colon
	CaseColon
	LabelColon
	BitColon
	CondColon
	ClassColon
	PrivateColon
	Label
	Assign
	Arith
	Star
	Amp
	Minus
	Plus
	Caret
	Deref
	PtrType
	AddrOf
	ByRef
	Neg
	Pos
	Compare
	Bool
	Not
	Inv
	Incdec
	IncdecBefore
	IncdecAfter
	Member
	DCMember
	Ellipsis
	Lambda
	// Pound is '#' or '##' inside a macro body.
	Pound

	// brackets
	ParenOpen
	ParenClose
	SParenOpen
	SParenClose
	FParenOpen
	FParenClose
	SquareOpen
	SquareClose
	TSquare
	AngleOpen
	AngleClose
	BraceOpen
	BraceClose
	VBraceOpen
	VBraceClose

	// keywords
	If
	Else
	For
	While
	WhileOfDo
	Do
	Switch
	Case
	Default
	Break
	Continue
	Goto
	Return
	Sizeof
	Typedef
	Struct
	Union
	Enum
	Class
	Namespace
	Extern
	Qualifier
	Access
	Using
	Import
	Template
	Operator
	OperatorVal
	Try
	Catch
	Finally
	Throw
	New
	Delete
	Lock
	This

	// preprocessor
	Preproc
	PpDefine
	PpInclude
	PpIf
	PpElse
	PpEndif
	PpPragma
	PpRegion
	PpEndregion
	PpOther
	Macro
	MacroFunc

	// parent-only kinds set by the classifier
	FuncDef
	FuncProto
	FuncCall
	FuncType
	FuncClass
	Cast
	CommentEnd
	CommentWhole

	kindCount
)

var kindNames = [...]string{
	Invalid:      "NONE",
	Unknown:      "UNKNOWN",
	Newline:      "NEWLINE",
	NlCont:       "NL_CONT",
	Comment:      "COMMENT",
	CommentMulti: "COMMENT_MULTI",
	CommentCpp:   "COMMENT_CPP",
	Word:         "WORD",
	Type:         "TYPE",
	Number:       "NUMBER",
	String:       "STRING",
	Annotation:   "ANNOTATION",
	Semicolon:    "SEMICOLON",
	Comma:        "COMMA",
	Question:     "QUESTION",
	Colon:        "COLON",
	CaseColon:    "CASE_COLON",
	LabelColon:   "LABEL_COLON",
	BitColon:     "BIT_COLON",
	CondColon:    "COND_COLON",
	ClassColon:   "CLASS_COLON",
	PrivateColon: "PRIVATE_COLON",
	Label:        "LABEL",
	Assign:       "ASSIGN",
	Arith:        "ARITH",
	Star:         "STAR",
	Amp:          "AMP",
	Minus:        "MINUS",
	Plus:         "PLUS",
	Caret:        "CARET",
	Deref:        "DEREF",
	PtrType:      "PTR_TYPE",
	AddrOf:       "ADDR",
	ByRef:        "BYREF",
	Neg:          "NEG",
	Pos:          "POS",
	Compare:      "COMPARE",
	Bool:         "BOOL",
	Not:          "NOT",
	Inv:          "INV",
	Incdec:       "INCDEC",
	IncdecBefore: "INCDEC_BEFORE",
	IncdecAfter:  "INCDEC_AFTER",
	Member:       "MEMBER",
	DCMember:     "DC_MEMBER",
	Ellipsis:     "ELLIPSIS",
	Lambda:       "LAMBDA",
	Pound:        "POUND",
	ParenOpen:    "PAREN_OPEN",
	ParenClose:   "PAREN_CLOSE",
	SParenOpen:   "SPAREN_OPEN",
	SParenClose:  "SPAREN_CLOSE",
	FParenOpen:   "FPAREN_OPEN",
	FParenClose:  "FPAREN_CLOSE",
	SquareOpen:   "SQUARE_OPEN",
	SquareClose:  "SQUARE_CLOSE",
	TSquare:      "TSQUARE",
	AngleOpen:    "ANGLE_OPEN",
	AngleClose:   "ANGLE_CLOSE",
	BraceOpen:    "BRACE_OPEN",
	BraceClose:   "BRACE_CLOSE",
	VBraceOpen:   "VBRACE_OPEN",
	VBraceClose:  "VBRACE_CLOSE",
	If:           "IF",
	Else:         "ELSE",
	For:          "FOR",
	While:        "WHILE",
	WhileOfDo:    "WHILE_OF_DO",
	Do:           "DO",
	Switch:       "SWITCH",
	Case:         "CASE",
	Default:      "DEFAULT",
	Break:        "BREAK",
	Continue:     "CONTINUE",
	Goto:         "GOTO",
	Return:       "RETURN",
	Sizeof:       "SIZEOF",
	Typedef:      "TYPEDEF",
	Struct:       "STRUCT",
	Union:        "UNION",
	Enum:         "ENUM",
	Class:        "CLASS",
	Namespace:    "NAMESPACE",
	Extern:       "EXTERN",
	Qualifier:    "QUALIFIER",
	Access:       "ACCESS",
	Using:        "USING",
	Import:       "IMPORT",
	Template:     "TEMPLATE",
	Operator:     "OPERATOR",
	OperatorVal:  "OPERATOR_VAL",
	Try:          "TRY",
	Catch:        "CATCH",
	Finally:      "FINALLY",
	Throw:        "THROW",
	New:          "NEW",
	Delete:       "DELETE",
	Lock:         "LOCK",
	This:         "THIS",
	Preproc:      "PREPROC",
	PpDefine:     "PP_DEFINE",
	PpInclude:    "PP_INCLUDE",
	PpIf:         "PP_IF",
	PpElse:       "PP_ELSE",
	PpEndif:      "PP_ENDIF",
	PpPragma:     "PP_PRAGMA",
	PpRegion:     "PP_REGION",
	PpEndregion:  "PP_ENDREGION",
	PpOther:      "PP_OTHER",
	Macro:        "MACRO",
	MacroFunc:    "MACRO_FUNC",
	FuncDef:      "FUNC_DEF",
	FuncProto:    "FUNC_PROTO",
	FuncCall:     "FUNC_CALL",
	FuncType:     "FUNC_TYPE",
	FuncClass:    "FUNC_CLASS",
	Cast:         "CAST",
	CommentEnd:   "COMMENT_END",
	CommentWhole: "COMMENT_WHOLE",
}

// String returns the dump name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "???"
}

// KindByName is the inverse of String, used by tests and the JSON dump reader.
func KindByName(name string) (Kind, bool) {
	for k := Invalid; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return Invalid, false
}

// IsComment reports whether k is any comment kind.
func (k Kind) IsComment() bool {
	return k == Comment || k == CommentMulti || k == CommentCpp
}

// IsNewline reports whether k is a line break or continuation.
func (k Kind) IsNewline() bool {
	return k == Newline
}

// IsParenOpen reports whether k opens any parenthesis variant.
func (k Kind) IsParenOpen() bool {
	return k == ParenOpen || k == SParenOpen || k == FParenOpen
}

// IsParenClose reports whether k closes any parenthesis variant.
func (k Kind) IsParenClose() bool {
	return k == ParenClose || k == SParenClose || k == FParenClose
}

// IsBraceOpen includes virtual braces.
func (k Kind) IsBraceOpen() bool {
	return k == BraceOpen || k == VBraceOpen
}

// IsBraceClose includes virtual braces.
func (k Kind) IsBraceClose() bool {
	return k == BraceClose || k == VBraceClose
}

// IsVirtual reports whether k is a virtual brace.
func (k Kind) IsVirtual() bool {
	return k == VBraceOpen || k == VBraceClose
}

// IsOpen reports whether k opens any bracket pair.
func (k Kind) IsOpen() bool {
	return k.IsParenOpen() || k.IsBraceOpen() || k == SquareOpen || k == AngleOpen
}

// IsClose reports whether k closes any bracket pair.
func (k Kind) IsClose() bool {
	return k.IsParenClose() || k.IsBraceClose() || k == SquareClose || k == AngleClose
}

// IsPreproc reports whether k is a directive keyword.
func (k Kind) IsPreproc() bool {
	return k >= PpDefine && k <= PpOther
}

// IsWordLike reports whether two adjacent kinds would fuse without a space.
func (k Kind) IsWordLike() bool {
	switch k {
	case Word, Type, Number, Annotation, Label, Macro, MacroFunc, Qualifier, Access, This,
		If, Else, For, While, WhileOfDo, Do, Switch, Case, Default, Break, Continue,
		Goto, Return, Sizeof, Typedef, Struct, Union, Enum, Class, Namespace, Extern,
		Using, Import, Template, Operator, Try, Catch, Finally, Throw, New, Delete, Lock:
		return true
	}
	return false
}

// IsKeyword reports whether k is a language keyword kind.
func (k Kind) IsKeyword() bool {
	return k >= If && k <= This && k != OperatorVal
}

// IsStatementKeyword reports whether k opens a braced statement.
func (k Kind) IsStatementKeyword() bool {
	switch k {
	case If, Else, For, While, Do, Switch, Try, Catch, Finally, Lock:
		return true
	}
	return false
}
