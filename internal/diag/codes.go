package diag

import (
	"fmt"
)

// Code identifies one diagnostic kind. Ranges: 1000 lexical, 2000 syntax,
// 3000 semantic, 4000 I/O, 5000 linking.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexBadNumber           Code = 1003
	LexUnterminatedComment Code = 1004

	// Syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectSemicolon    Code = 2005
	SynExpectExpression   Code = 2006
	SynUnclosedBrace      Code = 2007
	SynHookOutsideFile    Code = 2008

	// Semantic
	SemaInfo                  Code = 3000
	SemaUndefinedReference    Code = 3001
	SemaArityMismatch         Code = 3002
	SemaTypeMismatch          Code = 3003
	SemaMissingReturn         Code = 3004
	SemaVoidReturnValue       Code = 3005
	SemaRedeclaredVariable    Code = 3006
	SemaUnknownType           Code = 3007
	SemaInvalidBoolContext    Code = 3008
	SemaInvalidBinaryOperands Code = 3009

	// I/O
	IOLoadFileError  Code = 4001
	IOWriteTreeError Code = 4002

	// Linking
	LinkInfo                 Code = 5000
	LinkUnresolvedImport     Code = 5001
	LinkDuplicateDeclaration Code = 5002
	LinkDuplicateHook        Code = 5003
	LinkHookNeedsNamespace   Code = 5004
)

var codeDescription = map[Code]string{
	UnknownCode:               "Unknown error",
	LexInfo:                   "Lexical information",
	LexUnknownChar:            "Unknown character",
	LexUnterminatedString:     "Unterminated string",
	LexBadNumber:              "Bad number literal",
	LexUnterminatedComment:    "Unterminated block comment",
	SynInfo:                   "Syntax information",
	SynUnexpectedToken:        "Unexpected token",
	SynUnexpectedTopLevel:     "Unexpected top-level construct",
	SynExpectIdentifier:       "Expect identifier",
	SynExpectType:             "Expect type name",
	SynExpectSemicolon:        "Expect semicolon",
	SynExpectExpression:       "Expect expression",
	SynUnclosedBrace:          "Unclosed brace",
	SynHookOutsideFile:        "Hook block not allowed here",
	SemaInfo:                  "Semantic information",
	SemaUndefinedReference:    "Undefined reference",
	SemaArityMismatch:         "Wrong number of arguments",
	SemaTypeMismatch:          "Type mismatch",
	SemaMissingReturn:         "Missing return in function",
	SemaVoidReturnValue:       "Void function returns a value",
	SemaRedeclaredVariable:    "Variable redeclared in the same scope",
	SemaUnknownType:           "Unknown type name",
	SemaInvalidBoolContext:    "Condition is not convertible to Boolean",
	SemaInvalidBinaryOperands: "Invalid operands for binary operator",
	IOLoadFileError:           "I/O load file error",
	IOWriteTreeError:          "I/O output tree error",
	LinkInfo:                  "Linker information",
	LinkUnresolvedImport:      "Unresolved import",
	LinkDuplicateDeclaration:  "Duplicate declaration in namespace",
	LinkDuplicateHook:         "Duplicate hook block for namespace",
	LinkHookNeedsNamespace:    "Hook block requires one namespace in the file",
}

// kindNames carry the taxonomy names used in CLI output
// (<file>:<line>:<col>: <kind>: <message>).
var kindNames = map[Code]string{
	LexUnknownChar:            "LexError",
	LexUnterminatedString:     "LexError",
	LexBadNumber:              "LexError",
	LexUnterminatedComment:    "LexError",
	SynUnexpectedToken:        "ParseError",
	SynUnexpectedTopLevel:     "ParseError",
	SynExpectIdentifier:       "ParseError",
	SynExpectType:             "ParseError",
	SynExpectSemicolon:        "ParseError",
	SynExpectExpression:       "ParseError",
	SynUnclosedBrace:          "ParseError",
	SynHookOutsideFile:        "ParseError",
	SemaUndefinedReference:    "UndefinedReference",
	SemaArityMismatch:         "ArityMismatch",
	SemaTypeMismatch:          "TypeMismatch",
	SemaMissingReturn:         "MissingReturn",
	SemaVoidReturnValue:       "TypeMismatch",
	SemaRedeclaredVariable:    "DuplicateDeclaration",
	SemaUnknownType:           "UndefinedReference",
	SemaInvalidBoolContext:    "TypeMismatch",
	SemaInvalidBinaryOperands: "TypeMismatch",
	IOLoadFileError:           "IOError",
	IOWriteTreeError:          "IOError",
	LinkUnresolvedImport:      "UnresolvedImport",
	LinkDuplicateDeclaration:  "DuplicateDeclaration",
	LinkDuplicateHook:         "DuplicateDeclaration",
	LinkHookNeedsNamespace:    "ParseError",
}

// ID returns the short machine identifier, e.g. "SEM3003".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("LNK%04d", ic)
	}
	return "E0000"
}

// Kind returns the CamelCase taxonomy name for CLI and editor output.
func (c Code) Kind() string {
	if k, ok := kindNames[c]; ok {
		return k
	}
	return "Error"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
