package lib

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func num(n int32) Expr {
	return NumberLiteral{Value: n}
}

func bin(left Expr, op BinaryOp, right Expr) Expr {
	return BinaryExpression{Left: left, Op: op, Right: right}
}

func parseExpr(t *testing.T, input string, opts ParseOptions) Expr {
	t.Helper()
	tokens, err := Scan(input)
	require.NoError(t, err)
	expr, err := ParseWithOptions(tokens, opts)
	require.NoError(t, err)
	return expr
}

func parseErr(t *testing.T, input string, opts ParseOptions) *SyntaxError {
	t.Helper()
	tokens, err := Scan(input)
	require.NoError(t, err)
	expr, err := ParseWithOptions(tokens, opts)
	require.Nil(t, expr)
	return requireSyntaxError(t, err)
}

func TestParseCoreGrammar(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Expr
	}{
		{"number", "42", num(42)},
		{"string", `"hi there"`, StringLiteral{Value: "hi there"}},
		{"addition", "1 + 2", bin(num(1), BinaryOpAdd, num(2))},
		{"multiplication", "3 * 4", bin(num(3), BinaryOpMul, num(4))},
		{"precedence", "2 + 3 * 4",
			bin(num(2), BinaryOpAdd, bin(num(3), BinaryOpMul, num(4)))},
		{"precedence reversed", "2 * 3 - 4",
			bin(bin(num(2), BinaryOpMul, num(3)), BinaryOpSub, num(4))},
		{"left associative add", "1 + 2 + 3",
			bin(bin(num(1), BinaryOpAdd, num(2)), BinaryOpAdd, num(3))},
		{"left associative div", "8 / 4 / 2",
			bin(bin(num(8), BinaryOpDiv, num(4)), BinaryOpDiv, num(2))},
		{"mixed term", "1 - 2 + 3",
			bin(bin(num(1), BinaryOpSub, num(2)), BinaryOpAdd, num(3))},
		{"grouping", "(1 + 2) * 3",
			bin(Grouping{Inner: bin(num(1), BinaryOpAdd, num(2))}, BinaryOpMul, num(3))},
		{"nested grouping", "((7))", Grouping{Inner: Grouping{Inner: num(7)}}},
		{"negate", "-5", UnaryExpression{Op: UnaryOpNegate, Operand: num(5)}},
		{"double negate", "--5", UnaryExpression{
			Op:      UnaryOpNegate,
			Operand: UnaryExpression{Op: UnaryOpNegate, Operand: num(5)},
		}},
		{"not string", `!"x"`, UnaryExpression{Op: UnaryOpNot, Operand: StringLiteral{Value: "x"}}},
		{"unary binds tighter", "-2 * 3",
			bin(UnaryExpression{Op: UnaryOpNegate, Operand: num(2)}, BinaryOpMul, num(3))},
		{"subtract negative", "1 - -1",
			bin(num(1), BinaryOpSub, UnaryExpression{Op: UnaryOpNegate, Operand: num(1)})},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := parseExpr(t, c.input, ParseOptions{})
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("parse %q mismatch (-want +got):\n%s", c.input, diff)
			}
		})
	}
}

func TestParseBoolTokens(t *testing.T) {
	tokens := []Token{
		{Type: TokenTypeBang, Lexeme: "!", Location: Location{Line: 1, Col: 1}},
		{Type: TokenTypeTrue, Lexeme: "true", Location: Location{Line: 1, Col: 2}},
		{Type: TokenTypeStar, Lexeme: "*", Location: Location{Line: 1, Col: 7}},
		{Type: TokenTypeFalse, Lexeme: "false", Location: Location{Line: 1, Col: 9}},
		{Type: TokenTypeEOF, Location: Location{Line: 1, Col: 13}},
	}
	expr, err := Parse(tokens)
	require.NoError(t, err)

	want := bin(UnaryExpression{Op: UnaryOpNot, Operand: BoolLiteral{Value: true}}, BinaryOpMul, BoolLiteral{Value: false})
	if diff := cmp.Diff(want, expr); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIgnoresTrailingTokens(t *testing.T) {
	require.Equal(t, num(1), parseExpr(t, "1 > 2", ParseOptions{}))
	require.Equal(t, num(3), parseExpr(t, "3 and 4", ParseOptions{}))
	require.Equal(t, bin(num(1), BinaryOpAdd, num(2)), parseExpr(t, "1 + 2 3", ParseOptions{}))
}

func TestParseRequireEOF(t *testing.T) {
	synErr := parseErr(t, "1 > 2", ParseOptions{RequireEOF: true})
	require.Equal(t, "Unexpected token after expression: Greater", synErr.Message)
	require.Equal(t, 1, synErr.Line)
	require.Equal(t, 3, synErr.Column)

	require.Equal(t, num(1), parseExpr(t, "1", ParseOptions{RequireEOF: true}))
}

func TestParseComparisons(t *testing.T) {
	opts := ParseOptions{Comparisons: true, RequireEOF: true}

	cases := []struct {
		input string
		want  Expr
	}{
		{"1 > 2", bin(num(1), BinaryOpGreater, num(2))},
		{"1 >= 2", bin(num(1), BinaryOpGreaterEqual, num(2))},
		{"1 < 2", bin(num(1), BinaryOpLess, num(2))},
		{"1 <= 2", bin(num(1), BinaryOpLessEqual, num(2))},
		{"1 != 2", bin(num(1), BinaryOpNotEqual, num(2))},
		{"1 + 2 > 3 * 4",
			bin(bin(num(1), BinaryOpAdd, num(2)), BinaryOpGreater, bin(num(3), BinaryOpMul, num(4)))},
		{"1 < 2 != 3 > 4",
			bin(bin(num(1), BinaryOpLess, num(2)), BinaryOpNotEqual, bin(num(3), BinaryOpGreater, num(4)))},
		{"1 and 2 or 3 and 4",
			bin(bin(num(1), BinaryOpAnd, num(2)), BinaryOpOr, bin(num(3), BinaryOpAnd, num(4)))},
		{"1 or 2 or 3",
			bin(bin(num(1), BinaryOpOr, num(2)), BinaryOpOr, num(3))},
		{"(1 or 2) and 3",
			bin(Grouping{Inner: bin(num(1), BinaryOpOr, num(2))}, BinaryOpAnd, num(3))},
	}

	for _, c := range cases {
		got := parseExpr(t, c.input, opts)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("parse %q mismatch (-want +got):\n%s", c.input, diff)
		}
	}
}

func TestParseComparisonsWithBools(t *testing.T) {
	tokens, err := Scan("1 < 2 and 3 > 4 or !")
	require.NoError(t, err)
	// The scanner drops the word "true", so splice the reserved token in.
	eof := tokens[len(tokens)-1]
	tokens = append(tokens[:len(tokens)-1],
		Token{Type: TokenTypeTrue, Lexeme: "true", Location: eof.Location},
		eof)

	expr, err := ParseWithOptions(tokens, ParseOptions{Comparisons: true})
	require.NoError(t, err)

	want := bin(
		bin(bin(num(1), BinaryOpLess, num(2)), BinaryOpAnd, bin(num(3), BinaryOpGreater, num(4))),
		BinaryOpOr,
		UnaryExpression{Op: UnaryOpNot, Operand: BoolLiteral{Value: true}},
	)
	if diff := cmp.Diff(want, expr); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEqualEqualToken(t *testing.T) {
	tokens := []Token{
		{Type: TokenTypeNumber, Lexeme: "1", Number: 1, Location: Location{Line: 1, Col: 1}},
		{Type: TokenTypeEqualEqual, Lexeme: "==", Location: Location{Line: 1, Col: 3}},
		{Type: TokenTypeNumber, Lexeme: "1", Number: 1, Location: Location{Line: 1, Col: 6}},
		{Type: TokenTypeEOF, Location: Location{Line: 1, Col: 6}},
	}
	expr, err := ParseWithOptions(tokens, ParseOptions{Comparisons: true})
	require.NoError(t, err)
	require.Equal(t, bin(num(1), BinaryOpEqual, num(1)), expr)
}

func TestParseMissingParen(t *testing.T) {
	synErr := parseErr(t, "(1 + 2", ParseOptions{})
	require.Contains(t, synErr.Message, "Expected ')'")
	require.Equal(t, 1, synErr.Line)
	require.Equal(t, 6, synErr.Column)

	synErr = parseErr(t, "(1 + 2 3)", ParseOptions{})
	require.Equal(t, "Expected ')' after expression", synErr.Message)
	require.Equal(t, 8, synErr.Column)
}

func TestParseUnexpectedEndOfInput(t *testing.T) {
	synErr := parseErr(t, "", ParseOptions{})
	require.Contains(t, synErr.Message, "Unexpected end of input")

	synErr = parseErr(t, "1 +\n", ParseOptions{})
	require.Equal(t, "Unexpected end of input", synErr.Message)
	require.Equal(t, 2, synErr.Line)
	require.Equal(t, 0, synErr.Column)

	synErr = parseErr(t, "--", ParseOptions{})
	require.Equal(t, "Unexpected end of input", synErr.Message)
}

func TestParseEOFOnly(t *testing.T) {
	expr, err := Parse([]Token{{Type: TokenTypeEOF, Location: Location{Line: 1, Col: 0}}})
	require.Nil(t, expr)
	synErr := requireSyntaxError(t, err)
	require.Contains(t, synErr.Message, "Unexpected end of input")
}

func TestParseUnexpectedToken(t *testing.T) {
	synErr := parseErr(t, "1 + )", ParseOptions{})
	require.Equal(t, "Unexpected token: RightParen", synErr.Message)
	require.Equal(t, 1, synErr.Line)
	require.Equal(t, 5, synErr.Column)

	synErr = parseErr(t, "* 2", ParseOptions{})
	require.Equal(t, "Unexpected token: Star", synErr.Message)

	synErr = parseErr(t, "and", ParseOptions{Comparisons: true})
	require.Equal(t, "Unexpected token: And", synErr.Message)
}

func TestParseMalformedStream(t *testing.T) {
	_, err := Parse(nil)
	synErr := requireSyntaxError(t, err)
	require.Equal(t, "Token stream must end with EOF", synErr.Message)

	_, err = Parse([]Token{{Type: TokenTypeNumber, Number: 1, Location: Location{Line: 3, Col: 2}}})
	synErr = requireSyntaxError(t, err)
	require.Equal(t, "Token stream must end with EOF", synErr.Message)
	require.Equal(t, 3, synErr.Line)
	require.Equal(t, 2, synErr.Column)
}

func TestParseDeepNesting(t *testing.T) {
	input := ""
	for i := 0; i < 500; i++ {
		input += "("
	}
	input += "1"
	for i := 0; i < 500; i++ {
		input += ")"
	}

	expr := parseExpr(t, input, ParseOptions{RequireEOF: true})
	depth := 0
	for {
		g, ok := expr.(Grouping)
		if !ok {
			break
		}
		depth++
		expr = g.Inner
	}
	require.Equal(t, 500, depth)
	require.Equal(t, num(1), expr)
}
