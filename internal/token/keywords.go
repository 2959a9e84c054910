package token

var keywords = map[string]Kind{
	"import":     KwImport,
	"as":         KwAs,
	"namespace":  KwNamespace,
	"function":   KwFunction,
	"mcfunction": KwMcfunction,
	"var":        KwVar,
	"if":         KwIf,
	"else":       KwElse,
	"while":      KwWhile,
	"return":     KwReturn,
	"load":       KwLoad,
	"tick":       KwTick,
	"true":       BoolLit,
	"false":      BoolLit,
}

// LookupKeyword returns the keyword kind for an identifier lexeme.
// Keywords are case-sensitive; only lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
