package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"cubent/internal/ast"
	"cubent/internal/source"
)

// ASTNodeOutput is the JSON shape of one syntax-tree node.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

// FormatASTPretty draws the syntax tree with box-drawing connectors.
func FormatASTPretty(w io.Writer, file *ast.File, fs *source.FileSet) error {
	fmt.Fprintf(w, "File %s (span: %s)\n", file.Path, formatSpan(file.Sp, fs))
	for i, d := range file.Decls {
		writeBranch(w, "", i == len(file.Decls)-1, func(prefix string) {
			writeDecl(w, d, fs, prefix)
		})
	}
	return nil
}

// FormatASTJSON writes the syntax tree as an indented JSON document.
func FormatASTJSON(w io.Writer, file *ast.File) error {
	out := ASTNodeOutput{
		Type: "File",
		Span: file.Sp,
		Text: file.Path,
	}
	for _, d := range file.Decls {
		out.Children = append(out.Children, declJSON(d))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// writeBranch prints the connector for one child and hands the continuation
// prefix to fn.
func writeBranch(w io.Writer, prefix string, last bool, fn func(childPrefix string)) {
	if last {
		fmt.Fprintf(w, "%s└─ ", prefix)
		fn(prefix + "   ")
	} else {
		fmt.Fprintf(w, "%s├─ ", prefix)
		fn(prefix + "│  ")
	}
}

func writeDecl(w io.Writer, d ast.Decl, fs *source.FileSet, prefix string) {
	switch d := d.(type) {
	case *ast.ImportDecl:
		if d.Alias != "" {
			fmt.Fprintf(w, "Import %s as %s (span: %s)\n", d.Path, d.Alias, formatSpan(d.Sp, fs))
		} else {
			fmt.Fprintf(w, "Import %s (span: %s)\n", d.Path, formatSpan(d.Sp, fs))
		}
	case *ast.NamespaceDecl:
		fmt.Fprintf(w, "Namespace %s (span: %s)\n", d.Name, formatSpan(d.Sp, fs))
		for i, m := range d.Decls {
			writeBranch(w, prefix, i == len(d.Decls)-1, func(p string) {
				writeDecl(w, m, fs, p)
			})
		}
	case *ast.FuncDecl:
		fmt.Fprintf(w, "Function %s%s: %s (span: %s)\n",
			d.Name, paramSig(d.Params), d.Result.Name, formatSpan(d.Sp, fs))
		writeBranch(w, prefix, true, func(p string) {
			writeStmt(w, d.Body, fs, p)
		})
	case *ast.McFuncDecl:
		fmt.Fprintf(w, "Mcfunction %q %s%s: %s (span: %s)\n",
			d.Location, d.Name, paramSig(d.Params), d.Result.Name, formatSpan(d.Sp, fs))
	case *ast.HookDecl:
		fmt.Fprintf(w, "Hook %s (span: %s)\n", d.Kind, formatSpan(d.Sp, fs))
		writeBranch(w, prefix, true, func(p string) {
			writeStmt(w, d.Body, fs, p)
		})
	default:
		fmt.Fprintf(w, "UnknownDecl (span: %s)\n", formatSpan(d.Span(), fs))
	}
}

func paramSig(params []*ast.Param) string {
	sig := "("
	for i, p := range params {
		if i > 0 {
			sig += ", "
		}
		sig += p.Name + ": " + p.Type.Name
	}
	return sig + ")"
}

func writeStmt(w io.Writer, s ast.Stmt, fs *source.FileSet, prefix string) {
	switch s := s.(type) {
	case *ast.BlockStmt:
		fmt.Fprintf(w, "Block (span: %s)\n", formatSpan(s.Sp, fs))
		for i, inner := range s.Stmts {
			writeBranch(w, prefix, i == len(s.Stmts)-1, func(p string) {
				writeStmt(w, inner, fs, p)
			})
		}
	case *ast.VarDeclStmt:
		fmt.Fprintf(w, "VarDecl %s (span: %s)\n", s.Name, formatSpan(s.Sp, fs))
		writeBranch(w, prefix, true, func(p string) {
			writeExpr(w, s.Init, fs, p)
		})
	case *ast.AssignStmt:
		fmt.Fprintf(w, "Assign %s (span: %s)\n", s.Name, formatSpan(s.Sp, fs))
		writeBranch(w, prefix, true, func(p string) {
			writeExpr(w, s.Value, fs, p)
		})
	case *ast.IfStmt:
		fmt.Fprintf(w, "If (span: %s)\n", formatSpan(s.Sp, fs))
		writeBranch(w, prefix, false, func(p string) {
			writeExpr(w, s.Cond, fs, p)
		})
		writeBranch(w, prefix, s.Else == nil, func(p string) {
			writeStmt(w, s.Then, fs, p)
		})
		if s.Else != nil {
			writeBranch(w, prefix, true, func(p string) {
				writeStmt(w, s.Else, fs, p)
			})
		}
	case *ast.WhileStmt:
		fmt.Fprintf(w, "While (span: %s)\n", formatSpan(s.Sp, fs))
		writeBranch(w, prefix, false, func(p string) {
			writeExpr(w, s.Cond, fs, p)
		})
		writeBranch(w, prefix, true, func(p string) {
			writeStmt(w, s.Body, fs, p)
		})
	case *ast.ReturnStmt:
		fmt.Fprintf(w, "Return (span: %s)\n", formatSpan(s.Sp, fs))
		if s.Value != nil {
			writeBranch(w, prefix, true, func(p string) {
				writeExpr(w, s.Value, fs, p)
			})
		}
	case *ast.ExprStmt:
		fmt.Fprintf(w, "ExprStmt (span: %s)\n", formatSpan(s.Sp, fs))
		writeBranch(w, prefix, true, func(p string) {
			writeExpr(w, s.X, fs, p)
		})
	default:
		fmt.Fprintf(w, "UnknownStmt (span: %s)\n", formatSpan(s.Span(), fs))
	}
}

func writeExpr(w io.Writer, e ast.Expr, fs *source.FileSet, prefix string) {
	switch e := e.(type) {
	case *ast.Ident:
		fmt.Fprintf(w, "Ident %s (span: %s)\n", e.Name, formatSpan(e.Sp, fs))
	case *ast.Literal:
		fmt.Fprintf(w, "Literal %s %q (span: %s)\n", e.Kind, e.Text, formatSpan(e.Sp, fs))
	case *ast.BinaryExpr:
		fmt.Fprintf(w, "Binary %s (span: %s)\n", e.Op, formatSpan(e.Sp, fs))
		writeBranch(w, prefix, false, func(p string) {
			writeExpr(w, e.X, fs, p)
		})
		writeBranch(w, prefix, true, func(p string) {
			writeExpr(w, e.Y, fs, p)
		})
	case *ast.CallExpr:
		fmt.Fprintf(w, "Call %s (span: %s)\n", calleeName(e), formatSpan(e.Sp, fs))
		for i, arg := range e.Args {
			writeBranch(w, prefix, i == len(e.Args)-1, func(p string) {
				writeExpr(w, arg, fs, p)
			})
		}
	default:
		fmt.Fprintf(w, "UnknownExpr (span: %s)\n", formatSpan(e.Span(), fs))
	}
}

func calleeName(e *ast.CallExpr) string {
	if e.Alias != "" {
		return e.Alias + "." + e.Name
	}
	return e.Name
}

func declJSON(d ast.Decl) ASTNodeOutput {
	switch d := d.(type) {
	case *ast.ImportDecl:
		out := ASTNodeOutput{Type: "Import", Span: d.Sp, Text: d.Path}
		if d.Alias != "" {
			out.Fields = map[string]any{"alias": d.Alias}
		}
		return out
	case *ast.NamespaceDecl:
		out := ASTNodeOutput{Type: "Namespace", Span: d.Sp, Text: d.Name}
		for _, m := range d.Decls {
			out.Children = append(out.Children, declJSON(m))
		}
		return out
	case *ast.FuncDecl:
		out := ASTNodeOutput{
			Type:   "Function",
			Span:   d.Sp,
			Text:   d.Name,
			Fields: signatureFields(d.Params, d.Result),
		}
		out.Children = append(out.Children, stmtJSON(d.Body))
		return out
	case *ast.McFuncDecl:
		fields := signatureFields(d.Params, d.Result)
		fields["location"] = d.Location
		return ASTNodeOutput{Type: "Mcfunction", Span: d.Sp, Text: d.Name, Fields: fields}
	case *ast.HookDecl:
		out := ASTNodeOutput{Type: "Hook", Span: d.Sp, Text: d.Kind.String()}
		out.Children = append(out.Children, stmtJSON(d.Body))
		return out
	default:
		return ASTNodeOutput{Type: "UnknownDecl", Span: d.Span()}
	}
}

func signatureFields(params []*ast.Param, result *ast.TypeRef) map[string]any {
	sig := make([]map[string]string, 0, len(params))
	for _, p := range params {
		sig = append(sig, map[string]string{"name": p.Name, "type": p.Type.Name})
	}
	return map[string]any{"params": sig, "result": result.Name}
}

func stmtJSON(s ast.Stmt) ASTNodeOutput {
	switch s := s.(type) {
	case *ast.BlockStmt:
		out := ASTNodeOutput{Type: "Block", Span: s.Sp}
		for _, inner := range s.Stmts {
			out.Children = append(out.Children, stmtJSON(inner))
		}
		return out
	case *ast.VarDeclStmt:
		return ASTNodeOutput{
			Type: "VarDecl", Span: s.Sp, Text: s.Name,
			Children: []ASTNodeOutput{exprJSON(s.Init)},
		}
	case *ast.AssignStmt:
		return ASTNodeOutput{
			Type: "Assign", Span: s.Sp, Text: s.Name,
			Children: []ASTNodeOutput{exprJSON(s.Value)},
		}
	case *ast.IfStmt:
		out := ASTNodeOutput{Type: "If", Span: s.Sp}
		out.Children = append(out.Children, exprJSON(s.Cond), stmtJSON(s.Then))
		if s.Else != nil {
			out.Children = append(out.Children, stmtJSON(s.Else))
		}
		return out
	case *ast.WhileStmt:
		return ASTNodeOutput{
			Type: "While", Span: s.Sp,
			Children: []ASTNodeOutput{exprJSON(s.Cond), stmtJSON(s.Body)},
		}
	case *ast.ReturnStmt:
		out := ASTNodeOutput{Type: "Return", Span: s.Sp}
		if s.Value != nil {
			out.Children = append(out.Children, exprJSON(s.Value))
		}
		return out
	case *ast.ExprStmt:
		return ASTNodeOutput{
			Type: "ExprStmt", Span: s.Sp,
			Children: []ASTNodeOutput{exprJSON(s.X)},
		}
	default:
		return ASTNodeOutput{Type: "UnknownStmt", Span: s.Span()}
	}
}

func exprJSON(e ast.Expr) ASTNodeOutput {
	switch e := e.(type) {
	case *ast.Ident:
		return ASTNodeOutput{Type: "Ident", Span: e.Sp, Text: e.Name}
	case *ast.Literal:
		return ASTNodeOutput{
			Type: "Literal", Span: e.Sp, Text: e.Text,
			Fields: map[string]any{"kind": e.Kind.String()},
		}
	case *ast.BinaryExpr:
		return ASTNodeOutput{
			Type: "Binary", Span: e.Sp, Text: e.Op.String(),
			Children: []ASTNodeOutput{exprJSON(e.X), exprJSON(e.Y)},
		}
	case *ast.CallExpr:
		out := ASTNodeOutput{Type: "Call", Span: e.Sp, Text: calleeName(e)}
		for _, arg := range e.Args {
			out.Children = append(out.Children, exprJSON(arg))
		}
		return out
	default:
		return ASTNodeOutput{Type: "UnknownExpr", Span: e.Span()}
	}
}
