package options

// Config is the full option set of one run.
type Config struct {
	// general
	InputTabSize  int        `opt:"input_tab_size" default:"8" help:"Width of a tab in the input, used for original columns"`
	OutputTabSize int        `opt:"output_tab_size" default:"8" help:"Width of a tab in the output"`
	Newlines      LineEnding `opt:"newlines" default:"auto" help:"Line ending of the output: auto keeps the input's"`

	// indentation
	IndentColumns     int  `opt:"indent_columns" default:"4" help:"Columns per indentation level"`
	IndentWithTabs    int  `opt:"indent_with_tabs" default:"0" help:"0: spaces only, 1: leading indent with tabs"`
	IndentBrace       int  `opt:"indent_brace" default:"0" help:"Extra columns before a brace on its own line"`
	IndentSwitchCase  int  `opt:"indent_switch_case" default:"0" help:"Columns 'case' is indented past its switch"`
	IndentCaseBrace   int  `opt:"indent_case_brace" default:"0" help:"Extra columns for a brace that follows a case label"`
	IndentNamespace   bool `opt:"indent_namespace" default:"false" help:"Indent the body of a namespace"`
	IndentExtern      bool `opt:"indent_extern" default:"false" help:"Indent the body of extern \"C\" blocks"`
	IndentClass       bool `opt:"indent_class" default:"true" help:"Indent the body of a class or struct"`
	IndentAccessSpec  int  `opt:"indent_access_spec" default:"1" help:"Column of access specifiers: >0 absolute, <=0 relative to the body"`
	IndentLabel       int  `opt:"indent_label" default:"1" help:"Column of goto labels: >0 absolute, <=0 relative to the body"`
	IndentContinue    int  `opt:"indent_continue" default:"0" help:"Extra indent of continuation lines, 0 means indent_columns"`
	IndentParenClose  int  `opt:"indent_paren_close" default:"0" help:"0: a leading ')' lines up with its line's indent, 1: with the '('"`
	IndentCol1Comment bool `opt:"indent_col1_comment" default:"false" help:"Leave comments that start in column 1 alone"`
	PPIndent          IARF `opt:"pp_indent" default:"ignore" help:"Indent directives by #if depth (add), move them to column 1 (remove) or keep them"`
	PPIndentCount     int  `opt:"pp_indent_count" default:"1" help:"Columns per #if level when pp_indent adds"`

	// newlines
	NlIfBrace          IARF `opt:"nl_if_brace" default:"ignore" help:"Newline between 'if (...)' and '{'"`
	NlForBrace         IARF `opt:"nl_for_brace" default:"ignore" help:"Newline between 'for (...)' and '{'"`
	NlWhileBrace       IARF `opt:"nl_while_brace" default:"ignore" help:"Newline between 'while (...)' and '{'"`
	NlSwitchBrace      IARF `opt:"nl_switch_brace" default:"ignore" help:"Newline between 'switch (...)' and '{'"`
	NlDoBrace          IARF `opt:"nl_do_brace" default:"ignore" help:"Newline between 'do' and '{'"`
	NlElseBrace        IARF `opt:"nl_else_brace" default:"ignore" help:"Newline between 'else' and '{'"`
	NlFdefBrace        IARF `opt:"nl_fdef_brace" default:"ignore" help:"Newline between a function signature and '{'"`
	NlStructBrace      IARF `opt:"nl_struct_brace" default:"ignore" help:"Newline between 'struct name' and '{'"`
	NlEnumBrace        IARF `opt:"nl_enum_brace" default:"ignore" help:"Newline between 'enum name' and '{'"`
	NlClassBrace       IARF `opt:"nl_class_brace" default:"ignore" help:"Newline between 'class name' and '{'"`
	NlNamespaceBrace   IARF `opt:"nl_namespace_brace" default:"ignore" help:"Newline between 'namespace name' and '{'"`
	NlTryBrace         IARF `opt:"nl_try_brace" default:"ignore" help:"Newline between 'try' and '{'"`
	NlCatchBrace       IARF `opt:"nl_catch_brace" default:"ignore" help:"Newline between 'catch (...)' and '{'"`
	NlFinallyBrace     IARF `opt:"nl_finally_brace" default:"ignore" help:"Newline between 'finally' and '{'"`
	NlBraceElse        IARF `opt:"nl_brace_else" default:"ignore" help:"Newline between '}' and 'else'"`
	NlBraceWhile       IARF `opt:"nl_brace_while" default:"ignore" help:"Newline between '}' and the 'while' of do-while"`
	NlBraceCatch       IARF `opt:"nl_brace_catch" default:"ignore" help:"Newline between '}' and 'catch'"`
	NlBraceFinally     IARF `opt:"nl_brace_finally" default:"ignore" help:"Newline between '}' and 'finally'"`
	NlAfterBraceOpen   bool `opt:"nl_after_brace_open" default:"true" help:"Break after '{' of a code block"`
	NlBeforeBraceClose bool `opt:"nl_before_brace_close" default:"true" help:"Break before '}' of a code block"`
	NlAfterBraceClose  bool `opt:"nl_after_brace_close" default:"true" help:"Break after '}' unless ';', ',', ')' or a name follows"`
	NlAfterSemicolon   bool `opt:"nl_after_semicolon" default:"true" help:"Break after a statement's ';'"`
	NlAfterVBraceOpen  bool `opt:"nl_after_vbrace_open" default:"false" help:"Put a braceless body on its own line"`
	NlAfterCase        bool `opt:"nl_after_case" default:"false" help:"Break after a case label's ':'"`
	NlCollapseEmpty    bool `opt:"nl_collapse_empty_body" default:"false" help:"Join '{' and '}' of an empty body"`
	NlSqueezeIfdef     bool `opt:"nl_squeeze_ifdef" default:"false" help:"Remove blank lines after #if/#else and before #else/#endif"`
	NlMax              int  `opt:"nl_max" default:"0" help:"Maximum consecutive newlines, 0 for no limit"`
	NlEndOfFile        IARF `opt:"nl_end_of_file" default:"force" help:"Newlines at the end of the file"`
	NlEndOfFileMin     int  `opt:"nl_end_of_file_min" default:"1" help:"Newline count used when nl_end_of_file adds or forces"`

	// spacing
	SpArith             IARF `opt:"sp_arith" default:"add" help:"Space around arithmetic operators"`
	SpAssign            IARF `opt:"sp_assign" default:"add" help:"Space around assignment operators"`
	SpBool              IARF `opt:"sp_bool" default:"add" help:"Space around && and ||"`
	SpCompare           IARF `opt:"sp_compare" default:"add" help:"Space around comparison operators"`
	SpInsideParen       IARF `opt:"sp_inside_paren" default:"remove" help:"Space inside '(' and ')'"`
	SpInsideFparen      IARF `opt:"sp_inside_fparen" default:"remove" help:"Space inside function parentheses"`
	SpInsideSparen      IARF `opt:"sp_inside_sparen" default:"remove" help:"Space inside if/for/while parentheses"`
	SpBeforeSparen      IARF `opt:"sp_before_sparen" default:"add" help:"Space between if/for/while and '('"`
	SpAfterSparen       IARF `opt:"sp_after_sparen" default:"add" help:"Space after ')' of if/for/while"`
	SpSparenBrace       IARF `opt:"sp_sparen_brace" default:"add" help:"Space between ')' of if/for/while and '{'"`
	SpParenBrace        IARF `opt:"sp_paren_brace" default:"add" help:"Space between ')' and '{'"`
	SpFuncCallParen     IARF `opt:"sp_func_call_paren" default:"remove" help:"Space between a called function and '('"`
	SpFuncDefParen      IARF `opt:"sp_func_def_paren" default:"remove" help:"Space between a defined function and '('"`
	SpFuncProtoParen    IARF `opt:"sp_func_proto_paren" default:"remove" help:"Space between a prototype's name and '('"`
	SpSizeofParen       IARF `opt:"sp_sizeof_paren" default:"remove" help:"Space between sizeof and '('"`
	SpReturnParen       IARF `opt:"sp_return_paren" default:"ignore" help:"Space between return and '('"`
	SpBeforeSemi        IARF `opt:"sp_before_semi" default:"remove" help:"Space before ';'"`
	SpAfterSemiFor      IARF `opt:"sp_after_semi_for" default:"add" help:"Space after ';' inside for parentheses"`
	SpBeforeComma       IARF `opt:"sp_before_comma" default:"remove" help:"Space before ','"`
	SpAfterComma        IARF `opt:"sp_after_comma" default:"add" help:"Space after ','"`
	SpAfterCast         IARF `opt:"sp_after_cast" default:"remove" help:"Space after a cast's ')'"`
	SpBeforePtrStar     IARF `opt:"sp_before_ptr_star" default:"ignore" help:"Space before a pointer '*' in a declaration"`
	SpAfterPtrStar      IARF `opt:"sp_after_ptr_star" default:"remove" help:"Space after a pointer '*' in a declaration"`
	SpBeforeByref       IARF `opt:"sp_before_byref" default:"ignore" help:"Space before a reference '&' in a declaration"`
	SpAfterByref        IARF `opt:"sp_after_byref" default:"remove" help:"Space after a reference '&' in a declaration"`
	SpBeforeSquare      IARF `opt:"sp_before_square" default:"remove" help:"Space before '['"`
	SpInsideSquare      IARF `opt:"sp_inside_square" default:"remove" help:"Space inside '[' and ']'"`
	SpInsideBraces      IARF `opt:"sp_inside_braces" default:"ignore" help:"Space inside '{' and '}' on one line"`
	SpInsideBracesEmpty IARF `opt:"sp_inside_braces_empty" default:"ignore" help:"Space inside an empty '{}'"`
	SpBraceElse         IARF `opt:"sp_brace_else" default:"add" help:"Space between '}' and 'else'"`
	SpElseBrace         IARF `opt:"sp_else_brace" default:"add" help:"Space between 'else' and '{'"`
	SpInsideAngle       IARF `opt:"sp_inside_angle" default:"remove" help:"Space inside template angle brackets"`
	SpBeforeAngle       IARF `opt:"sp_before_angle" default:"remove" help:"Space before a template '<'"`
	SpAfterAngle        IARF `opt:"sp_after_angle" default:"add" help:"Space after a template '>' when a word follows"`
	SpMember            IARF `opt:"sp_member" default:"remove" help:"Space around '.', '->' and '::'"`
	SpCondColon         IARF `opt:"sp_cond_colon" default:"add" help:"Space around the ':' of '?:'"`
	SpCondQuestion      IARF `opt:"sp_cond_question" default:"add" help:"Space around the '?' of '?:'"`
	SpCaseLabel         IARF `opt:"sp_case_label" default:"remove" help:"Space before the ':' of a case label"`
	SpBeforeNlCont      IARF `opt:"sp_before_nl_cont" default:"add" help:"Space before a backslash-newline"`
	SpDeref             IARF `opt:"sp_deref" default:"remove" help:"Space after unary '*'"`
	SpAddr              IARF `opt:"sp_addr" default:"remove" help:"Space after unary '&'"`
	SpNot               IARF `opt:"sp_not" default:"remove" help:"Space after '!'"`
	SpInv               IARF `opt:"sp_inv" default:"remove" help:"Space after '~'"`
	SpSign              IARF `opt:"sp_sign" default:"remove" help:"Space after unary '-' and '+'"`
	SpIncdec            IARF `opt:"sp_incdec" default:"remove" help:"Space between '++'/'--' and the operand"`
	SpBeforeTrCmt       IARF `opt:"sp_before_tr_cmt" default:"ignore" help:"Space before a trailing comment: ignore keeps the original gap"`

	// alignment
	AlignVarDefSpan    int  `opt:"align_var_def_span" default:"0" help:"Line span for aligning variable definitions, 0 disables"`
	AlignVarStructSpan int  `opt:"align_var_struct_span" default:"0" help:"Line span for aligning struct members, 0 disables"`
	AlignVarDefStar    bool `opt:"align_var_def_star" default:"false" help:"Align the name instead of a leading '*' or '&'"`
	AlignAssignSpan    int  `opt:"align_assign_span" default:"0" help:"Line span for aligning '=', 0 disables"`
	AlignAssignThresh  int  `opt:"align_assign_thresh" default:"0" help:"Largest column jump an '=' may make, 0 for no limit"`
	AlignEnumEquSpan   int  `opt:"align_enum_equ_span" default:"0" help:"Line span for aligning '=' in enums, 0 disables"`
	AlignTypedefSpan   int  `opt:"align_typedef_span" default:"0" help:"Line span for aligning typedef names, 0 disables"`
	AlignTypedefGap    int  `opt:"align_typedef_gap" default:"1" help:"Minimum gap between a typedef's type and its name"`
	AlignPPDefineSpan  int  `opt:"align_pp_define_span" default:"0" help:"Line span for aligning #define values, 0 disables"`
	AlignPPDefineGap   int  `opt:"align_pp_define_gap" default:"1" help:"Minimum gap between a #define name and its value"`
	AlignRightCmtSpan  int  `opt:"align_right_cmt_span" default:"0" help:"Line span for aligning trailing comments, 0 disables"`
	AlignNlCont        bool `opt:"align_nl_cont" default:"false" help:"Align the backslashes of continued lines"`

	// brace modification
	ModFullBraceIf    IARF `opt:"mod_full_brace_if" default:"ignore" help:"Add or remove braces around single-statement if/else bodies"`
	ModFullBraceFor   IARF `opt:"mod_full_brace_for" default:"ignore" help:"Add or remove braces around single-statement for bodies"`
	ModFullBraceWhile IARF `opt:"mod_full_brace_while" default:"ignore" help:"Add or remove braces around single-statement while bodies"`
	ModFullBraceDo    IARF `opt:"mod_full_brace_do" default:"ignore" help:"Add or remove braces around single-statement do bodies"`

	// comments
	CmtIndentMulti bool `opt:"cmt_indent_multi" default:"true" help:"Shift the continuation lines of block comments with their first line"`

	// Types are extra words treated as type names.
	Types []string
}

// ContinueIndent returns the effective continuation indent.
func (c *Config) ContinueIndent() int {
	if c.IndentContinue != 0 {
		return c.IndentContinue
	}
	return c.IndentColumns
}

// HasType reports whether word was declared as a user type.
func (c *Config) HasType(word string) bool {
	for _, t := range c.Types {
		if t == word {
			return true
		}
	}
	return false
}
