package codegen

import (
	"strings"

	"cubent/internal/token"
)

// nbtLiteral renders a literal lexeme as an NBT value. Suffixed numerics and
// strings pass through unchanged; bare doubles are normalized so the NBT
// parser sees an explicit double.
func nbtLiteral(kind token.Kind, text string) string {
	switch kind {
	case token.DoubleLit:
		return normalizeDouble(text)
	case token.BoolLit, token.StringLit,
		token.IntLit, token.ByteLit, token.ShortLit, token.LongLit, token.FloatLit:
		return text
	}
	return text
}

func normalizeDouble(text string) string {
	if strings.HasSuffix(text, "d") || strings.HasSuffix(text, "D") {
		return text
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	return text + "d"
}
