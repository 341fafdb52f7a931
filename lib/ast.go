package lib

type UnaryOp int

const (
	UnaryOpNegate UnaryOp = iota
	UnaryOpNot
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryOpNegate:
		return "-"
	case UnaryOpNot:
		return "!"
	default:
		return "?"
	}
}

type BinaryOp int

const (
	BinaryOpAdd BinaryOp = iota
	BinaryOpSub
	BinaryOpMul
	BinaryOpDiv
	BinaryOpLess
	BinaryOpLessEqual
	BinaryOpGreater
	BinaryOpGreaterEqual
	BinaryOpEqual
	BinaryOpNotEqual
	BinaryOpAnd
	BinaryOpOr
)

var binaryOpSymbols = map[BinaryOp]string{
	BinaryOpAdd:          "+",
	BinaryOpSub:          "-",
	BinaryOpMul:          "*",
	BinaryOpDiv:          "/",
	BinaryOpLess:         "<",
	BinaryOpLessEqual:    "<=",
	BinaryOpGreater:      ">",
	BinaryOpGreaterEqual: ">=",
	BinaryOpEqual:        "==",
	BinaryOpNotEqual:     "!=",
	BinaryOpAnd:          "and",
	BinaryOpOr:           "or",
}

func (op BinaryOp) String() string {
	sym, ok := binaryOpSymbols[op]
	if !ok {
		return "?"
	}
	return sym
}

// Expr is a node of the expression tree. Each node owns its children.
type Expr interface {
	isExpr()
}

func (n NumberLiteral) isExpr()    {}
func (s StringLiteral) isExpr()    {}
func (b BoolLiteral) isExpr()      {}
func (u UnaryExpression) isExpr()  {}
func (b BinaryExpression) isExpr() {}
func (g Grouping) isExpr()         {}

type NumberLiteral struct {
	Value int32
}

type StringLiteral struct {
	Value string
}

type BoolLiteral struct {
	Value bool
}

type UnaryExpression struct {
	Op      UnaryOp
	Operand Expr
}

type BinaryExpression struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
}

// Grouping records that the source wrapped Inner in parentheses.
type Grouping struct {
	Inner Expr
}
