// Package format renders tokens and expression trees for people and tools.
package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/graeme-hill/lang-go/lib"
)

var ErrUnknownFormat = errors.New("unknown output format")

type Format string

const (
	FormatSExpr Format = "sexpr"
	FormatTree  Format = "tree"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatSExpr, FormatTree, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Write renders expr to w followed by a newline.
func Write(w io.Writer, expr lib.Expr, f Format) error {
	switch f {
	case FormatSExpr:
		_, err := fmt.Fprintln(w, SExpr(expr))
		return err
	case FormatTree:
		_, err := io.WriteString(w, Tree(expr))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Dump(expr))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Dump(expr)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

var tokenTemplate = template.Must(template.New("tokens").Parse(
	`{{range .}}{{printf "%-7s" (printf "%d:%d" .Location.Line .Location.Col)}} {{printf "%-13s" .Type.String}} {{printf "%q" .Lexeme}}{{if eq .Type.String "String"}} value={{printf "%q" .Value}}{{end}}{{if eq .Type.String "Number"}} value={{.Number}}{{end}}
{{end}}`))

// Tokens writes one line per token: location, type, lexeme and any value.
func Tokens(w io.Writer, tokens []lib.Token) error {
	return tokenTemplate.Execute(w, tokens)
}

// SExpr renders expr as a parenthesised prefix expression, e.g.
// (+ 2 (* 3 4)).
func SExpr(expr lib.Expr) string {
	switch e := expr.(type) {
	case lib.NumberLiteral:
		return fmt.Sprintf("%d", e.Value)
	case lib.StringLiteral:
		return fmt.Sprintf("%q", e.Value)
	case lib.BoolLiteral:
		return fmt.Sprintf("%t", e.Value)
	case lib.UnaryExpression:
		return fmt.Sprintf("(%s %s)", e.Op, SExpr(e.Operand))
	case lib.BinaryExpression:
		return fmt.Sprintf("(%s %s %s)", e.Op, SExpr(e.Left), SExpr(e.Right))
	case lib.Grouping:
		return fmt.Sprintf("(group %s)", SExpr(e.Inner))
	default:
		return "?"
	}
}

// Tree renders expr one node per line, children indented by two spaces.
func Tree(expr lib.Expr) string {
	var b strings.Builder
	writeTree(&b, expr, 0)
	return b.String()
}

func writeTree(b *strings.Builder, expr lib.Expr, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	switch e := expr.(type) {
	case lib.NumberLiteral:
		fmt.Fprintf(b, "Number %d\n", e.Value)
	case lib.StringLiteral:
		fmt.Fprintf(b, "String %q\n", e.Value)
	case lib.BoolLiteral:
		fmt.Fprintf(b, "Bool %t\n", e.Value)
	case lib.UnaryExpression:
		fmt.Fprintf(b, "Unary %s\n", e.Op)
		writeTree(b, e.Operand, depth+1)
	case lib.BinaryExpression:
		fmt.Fprintf(b, "Binary %s\n", e.Op)
		writeTree(b, e.Left, depth+1)
		writeTree(b, e.Right, depth+1)
	case lib.Grouping:
		b.WriteString("Grouping\n")
		writeTree(b, e.Inner, depth+1)
	default:
		b.WriteString("?\n")
	}
}

// Dump converts expr into maps and scalars suitable for JSON or YAML
// encoding.
func Dump(expr lib.Expr) map[string]interface{} {
	switch e := expr.(type) {
	case lib.NumberLiteral:
		return map[string]interface{}{"type": "number", "value": e.Value}
	case lib.StringLiteral:
		return map[string]interface{}{"type": "string", "value": e.Value}
	case lib.BoolLiteral:
		return map[string]interface{}{"type": "bool", "value": e.Value}
	case lib.UnaryExpression:
		return map[string]interface{}{
			"type":    "unary",
			"op":      e.Op.String(),
			"operand": Dump(e.Operand),
		}
	case lib.BinaryExpression:
		return map[string]interface{}{
			"type":  "binary",
			"op":    e.Op.String(),
			"left":  Dump(e.Left),
			"right": Dump(e.Right),
		}
	case lib.Grouping:
		return map[string]interface{}{"type": "grouping", "inner": Dump(e.Inner)}
	default:
		return map[string]interface{}{"type": "unknown"}
	}
}
