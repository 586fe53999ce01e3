package token

import "reform/internal/dialect"

type keyword struct {
	kind Kind
	lang dialect.Lang
}

const (
	allLangs = dialect.All
	cLike    = dialect.C | dialect.CPP
	cppLike  = dialect.CPP | dialect.D | dialect.CS | dialect.Java
	notJava  = dialect.C | dialect.CPP | dialect.D | dialect.CS
)

var keywords = map[string]keyword{
	"if":        {If, allLangs},
	"else":      {Else, allLangs},
	"for":       {For, allLangs},
	"foreach":   {For, dialect.D | dialect.CS},
	"while":     {While, allLangs},
	"do":        {Do, allLangs},
	"switch":    {Switch, allLangs},
	"case":      {Case, allLangs},
	"default":   {Default, allLangs},
	"break":     {Break, allLangs},
	"continue":  {Continue, allLangs},
	"goto":      {Goto, notJava},
	"return":    {Return, allLangs},
	"sizeof":    {Sizeof, cLike | dialect.CS},
	"typeof":    {Sizeof, dialect.D | dialect.CS},
	"typedef":   {Typedef, cLike | dialect.D},
	"struct":    {Struct, notJava},
	"union":     {Union, cLike | dialect.D},
	"enum":      {Enum, allLangs},
	"class":     {Class, cppLike},
	"interface": {Class, dialect.D | dialect.CS | dialect.Java},
	"namespace": {Namespace, dialect.CPP | dialect.CS},
	"extern":    {Extern, cLike | dialect.D | dialect.CS},
	"using":     {Using, dialect.CPP | dialect.CS},
	"import":    {Import, dialect.D | dialect.Java},
	"package":   {Import, dialect.Java},
	"module":    {Import, dialect.D},
	"template":  {Template, dialect.CPP | dialect.D},
	"operator":  {Operator, dialect.CPP | dialect.CS},
	"try":       {Try, cppLike},
	"catch":     {Catch, cppLike},
	"finally":   {Finally, dialect.D | dialect.CS | dialect.Java},
	"throw":     {Throw, cppLike},
	"new":       {New, cppLike},
	"delete":    {Delete, dialect.CPP | dialect.D},
	"lock":      {Lock, dialect.CS},
	"this":      {This, cppLike},

	"public":    {Access, cppLike},
	"private":   {Access, cppLike},
	"protected": {Access, cppLike},
	"internal":  {Access, dialect.CS},

	"const":        {Qualifier, allLangs},
	"static":       {Qualifier, allLangs},
	"volatile":     {Qualifier, cLike | dialect.CS | dialect.Java},
	"inline":       {Qualifier, cLike},
	"register":     {Qualifier, cLike},
	"auto":         {Qualifier, cLike | dialect.D},
	"restrict":     {Qualifier, dialect.C},
	"virtual":      {Qualifier, dialect.CPP | dialect.CS},
	"mutable":      {Qualifier, dialect.CPP},
	"explicit":     {Qualifier, dialect.CPP},
	"friend":       {Qualifier, dialect.CPP},
	"constexpr":    {Qualifier, dialect.CPP},
	"final":        {Qualifier, dialect.D | dialect.Java | dialect.CPP},
	"abstract":     {Qualifier, dialect.D | dialect.CS | dialect.Java},
	"override":     {Qualifier, dialect.D | dialect.CS},
	"readonly":     {Qualifier, dialect.CS},
	"sealed":       {Qualifier, dialect.CS},
	"unsafe":       {Qualifier, dialect.CS},
	"transient":    {Qualifier, dialect.Java},
	"native":       {Qualifier, dialect.Java},
	"synchronized": {Qualifier, dialect.Java},
	"immutable":    {Qualifier, dialect.D},
	"shared":       {Qualifier, dialect.D},
	"ref":          {Qualifier, dialect.D | dialect.CS},
	"out":          {Qualifier, dialect.D | dialect.CS},
	"in":           {Qualifier, dialect.D},

	"void":     {Type, allLangs},
	"char":     {Type, allLangs},
	"short":    {Type, allLangs},
	"int":      {Type, allLangs},
	"long":     {Type, allLangs},
	"float":    {Type, allLangs},
	"double":   {Type, allLangs},
	"signed":   {Type, cLike},
	"unsigned": {Type, cLike},
	"bool":     {Type, dialect.CPP | dialect.D | dialect.CS},
	"_Bool":    {Type, dialect.C},
	"wchar_t":  {Type, cLike},
	"boolean":  {Type, dialect.Java},
	"byte":     {Type, dialect.D | dialect.CS | dialect.Java},
	"ubyte":    {Type, dialect.D},
	"sbyte":    {Type, dialect.CS},
	"ushort":   {Type, dialect.D | dialect.CS},
	"uint":     {Type, dialect.D | dialect.CS},
	"ulong":    {Type, dialect.D | dialect.CS},
	"real":     {Type, dialect.D},
	"dchar":    {Type, dialect.D},
	"wchar":    {Type, dialect.D},
	"string":   {Type, dialect.CS},
	"object":   {Type, dialect.CS},
	"decimal":  {Type, dialect.CS},
}

// synchronized is a statement in D and a qualifier in Java.
var langOverrides = map[string]keyword{
	"synchronized": {Lock, dialect.D},
}

// LookupKeyword returns the kind of ident when it is a keyword of lang.
// Keywords are case-sensitive.
func LookupKeyword(ident string, lang dialect.Lang) (Kind, bool) {
	if kw, ok := langOverrides[ident]; ok && kw.lang.Has(lang) {
		return kw.kind, true
	}
	kw, ok := keywords[ident]
	if !ok || !kw.lang.Has(lang) {
		return Invalid, false
	}
	return kw.kind, true
}

// IsTypeKeyword reports whether ident names a built-in type in lang.
func IsTypeKeyword(ident string, lang dialect.Lang) bool {
	k, ok := LookupKeyword(ident, lang)
	return ok && k == Type
}

// Directive maps a preprocessor directive name to its kind.
func Directive(name string, lang dialect.Lang) Kind {
	switch name {
	case "define", "undef":
		if lang == dialect.CS && name == "define" {
			return PpOther
		}
		return PpDefine
	case "include", "import", "include_next":
		return PpInclude
	case "if", "ifdef", "ifndef":
		return PpIf
	case "else", "elif":
		return PpElse
	case "endif":
		return PpEndif
	case "pragma":
		return PpPragma
	case "region":
		return PpRegion
	case "endregion":
		return PpEndregion
	}
	return PpOther
}
