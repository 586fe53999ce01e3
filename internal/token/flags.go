package token

import "strings"

// Flags is the set of boolean annotations stages accumulate on a chunk.
type Flags uint64

const (
	FlagInPreproc Flags = 1 << iota
	FlagInStruct
	FlagInEnum
	FlagInClass
	FlagInFcnCall
	FlagInSParen
	FlagInTypedef
	FlagInArrayInit
	FlagVarType
	FlagVarDef
	FlagVarFirst
	FlagStmtStart
	FlagExprStart
	FlagRightComment
	FlagBoxComment
	FlagQualified
	FlagSynthetic
	FlagNlRequired
	FlagNlForbidden
	FlagElseIf
	FlagTypeRun
	FlagDontIndent
	FlagWasAligned
	FlagPunctGuard
	FlagParamList
	FlagOneLiner

	flagCount = iota
)

var flagNames = [flagCount]string{
	"IN_PREPROC", "IN_STRUCT", "IN_ENUM", "IN_CLASS", "IN_FCN_CALL", "IN_SPAREN",
	"IN_TYPEDEF", "IN_ARRAY_INIT", "VAR_TYPE", "VAR_DEF", "VAR_1ST", "STMT_START",
	"EXPR_START", "RIGHT_COMMENT", "BOX_COMMENT", "QUALIFIED", "SYNTHETIC",
	"NL_REQUIRED", "NL_FORBIDDEN", "ELSE_IF", "TYPE_RUN", "DONT_INDENT",
	"WAS_ALIGNED", "PUNCT_GUARD", "PARAM_LIST", "ONE_LINER",
}

// Has reports whether every flag in mask is set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// Any reports whether at least one flag in mask is set.
func (f Flags) Any(mask Flags) bool {
	return f&mask != 0
}

// Set returns f with mask added.
func (f Flags) Set(mask Flags) Flags {
	return f | mask
}

// Clear returns f with mask removed.
func (f Flags) Clear(mask Flags) Flags {
	return f &^ mask
}

// String lists the set flags joined by '|'.
func (f Flags) String() string {
	if f == 0 {
		return ""
	}
	parts := make([]string, 0, 4)
	for i := range flagCount {
		if f&(1<<i) != 0 {
			parts = append(parts, flagNames[i])
		}
	}
	return strings.Join(parts, "|")
}

// InheritMask is the set of context flags a chunk copies from its enclosing
// construct when the classifier propagates body context.
const InheritMask = FlagInPreproc | FlagInStruct | FlagInEnum | FlagInClass |
	FlagInFcnCall | FlagInSParen | FlagInTypedef | FlagInArrayInit
