package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents a lowercase-leading identifier token.
	Ident
	// TypeIdent represents a capitalized type-name token (Void, Int, String, ...).
	TypeIdent

	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwNamespace represents the 'namespace' keyword.
	KwNamespace // namespace
	// KwFunction represents the 'function' keyword.
	KwFunction // function
	// KwMcfunction represents the 'mcfunction' keyword.
	KwMcfunction // mcfunction
	// KwVar represents the 'var' keyword.
	KwVar // var
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwLoad represents the 'load' keyword.
	KwLoad // load
	// KwTick represents the 'tick' keyword.
	KwTick // tick

	// IntLit represents an integer literal without an NBT suffix.
	IntLit
	// ByteLit represents a 'B'-suffixed integer literal.
	ByteLit
	// ShortLit represents an 'S'-suffixed integer literal.
	ShortLit
	// LongLit represents an 'L'-suffixed integer literal.
	LongLit
	// FloatLit represents an 'F'-suffixed decimal literal.
	FloatLit
	// DoubleLit represents a decimal-point or 'D'-suffixed literal.
	DoubleLit
	// BoolLit represents 'true' or 'false'.
	BoolLit
	// StringLit represents a double-quoted string literal.
	StringLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Assign represents the assign operator token.
	Assign // =
	// EqEq represents the equality operator token.
	EqEq // ==
	// BangEq represents the inequality operator token.
	BangEq // !=
	// Lt represents the less-than operator token.
	Lt // <
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Gt represents the greater-than operator token.
	Gt // >
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// AndAnd represents the logical-and operator token.
	AndAnd // &&
	// OrOr represents the logical-or operator token.
	OrOr // ||
	// Colon represents the colon token.
	Colon // :
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Comma represents the comma token.
	Comma // ,
	// Dot represents the dot token.
	Dot // .
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
)

var kindNames = map[Kind]string{
	Invalid:      "invalid",
	EOF:          "eof",
	Ident:        "ident",
	TypeIdent:    "type-ident",
	KwImport:     "import",
	KwAs:         "as",
	KwNamespace:  "namespace",
	KwFunction:   "function",
	KwMcfunction: "mcfunction",
	KwVar:        "var",
	KwIf:         "if",
	KwElse:       "else",
	KwWhile:      "while",
	KwReturn:     "return",
	KwLoad:       "load",
	KwTick:       "tick",
	IntLit:       "int",
	ByteLit:      "byte",
	ShortLit:     "short",
	LongLit:      "long",
	FloatLit:     "float",
	DoubleLit:    "double",
	BoolLit:      "bool",
	StringLit:    "string",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Assign:       "=",
	EqEq:         "==",
	BangEq:       "!=",
	Lt:           "<",
	LtEq:         "<=",
	Gt:           ">",
	GtEq:         ">=",
	AndAnd:       "&&",
	OrOr:         "||",
	Colon:        ":",
	Semicolon:    ";",
	Comma:        ",",
	Dot:          ".",
	LParen:       "(",
	RParen:       ")",
	LBrace:       "{",
	RBrace:       "}",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
