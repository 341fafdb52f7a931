package lib

// ParseOptions selects grammar extensions. The zero value parses the core
// grammar only (term, factor, unary, primary) and leaves any tokens after the
// expression unread.
type ParseOptions struct {
	// Comparisons adds or, and, equality and comparison levels above term.
	Comparisons bool
	// RequireEOF makes leftover tokens after the expression an error.
	RequireEOF bool
}

// Parse builds the expression tree for tokens produced by Scan.
func Parse(tokens []Token) (Expr, error) {
	return ParseWithOptions(tokens, ParseOptions{})
}

func ParseWithOptions(tokens []Token, opts ParseOptions) (Expr, error) {
	if len(tokens) == 0 {
		return nil, newSyntaxError(Location{Line: 1}, "Token stream must end with EOF")
	}
	if last := tokens[len(tokens)-1]; !last.Is(TokenTypeEOF) {
		return nil, newSyntaxError(last.Location, "Token stream must end with EOF")
	}

	p := parser{reader: newTokenReader(tokens), opts: opts}
	expr, err := p.scanExpression()
	if err != nil {
		return nil, err
	}

	if opts.RequireEOF && !p.reader.isAtEnd() {
		return nil, p.errorf("Unexpected token after expression: %s", p.reader.peek().Type)
	}

	return expr, nil
}

type parser struct {
	reader *tokenReader
	opts   ParseOptions
}

func (p *parser) scanExpression() (Expr, error) {
	if p.opts.Comparisons {
		return p.scanOr()
	}
	return p.scanTerm()
}

func (p *parser) scanOr() (Expr, error) {
	return p.scanBinary(p.scanAnd, TokenTypeOr)
}

func (p *parser) scanAnd() (Expr, error) {
	return p.scanBinary(p.scanEquality, TokenTypeAnd)
}

func (p *parser) scanEquality() (Expr, error) {
	return p.scanBinary(p.scanComparison, TokenTypeBangEqual, TokenTypeEqualEqual)
}

func (p *parser) scanComparison() (Expr, error) {
	return p.scanBinary(p.scanTerm,
		TokenTypeGreater, TokenTypeGreaterEqual, TokenTypeLess, TokenTypeLessEqual)
}

func (p *parser) scanTerm() (Expr, error) {
	return p.scanBinary(p.scanFactor, TokenTypePlus, TokenTypeMinus)
}

func (p *parser) scanFactor() (Expr, error) {
	return p.scanBinary(p.scanUnary, TokenTypeStar, TokenTypeSlash)
}

// scanBinary parses one left-associative precedence level: an operand from
// the next level followed by any number of (operator, operand) pairs.
func (p *parser) scanBinary(operand func() (Expr, error), ops ...TokenType) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for p.reader.match(ops...) {
		op, _ := getBinaryOp(p.reader.previous())

		right, err := operand()
		if err != nil {
			return nil, err
		}

		left = BinaryExpression{
			Left:  left,
			Op:    op,
			Right: right,
		}
	}

	return left, nil
}

func (p *parser) scanUnary() (Expr, error) {
	if p.reader.match(TokenTypeMinus, TokenTypeBang) {
		op := UnaryOpNegate
		if p.reader.previous().Is(TokenTypeBang) {
			op = UnaryOpNot
		}

		operand, err := p.scanUnary()
		if err != nil {
			return nil, err
		}

		return UnaryExpression{
			Op:      op,
			Operand: operand,
		}, nil
	}

	return p.scanPrimary()
}

func (p *parser) scanPrimary() (Expr, error) {
	if p.reader.isAtEnd() {
		return nil, p.errorf("Unexpected end of input")
	}

	tok := p.reader.peek()
	switch tok.Type {
	case TokenTypeNumber:
		p.reader.advance()
		return NumberLiteral{Value: tok.Number}, nil
	case TokenTypeString:
		p.reader.advance()
		return StringLiteral{Value: tok.Value}, nil
	case TokenTypeTrue:
		p.reader.advance()
		return BoolLiteral{Value: true}, nil
	case TokenTypeFalse:
		p.reader.advance()
		return BoolLiteral{Value: false}, nil
	case TokenTypeLParen:
		return p.scanParenthetical()
	}

	return nil, p.errorf("Unexpected token: %s", tok.Type)
}

// Reads from the opening paren.
func (p *parser) scanParenthetical() (Expr, error) {
	p.reader.advance()

	inner, err := p.scanExpression()
	if err != nil {
		return nil, err
	}

	if !p.reader.match(TokenTypeRParen) {
		return nil, p.errorf("Expected ')' after expression")
	}

	return Grouping{Inner: inner}, nil
}

// errorf reports an error at the token the parser is looking at.
func (p *parser) errorf(msg string, args ...interface{}) error {
	return newSyntaxError(p.reader.peek().Location, msg, args...)
}

func getBinaryOp(tok Token) (BinaryOp, bool) {
	switch tok.Type {
	case TokenTypePlus:
		return BinaryOpAdd, true
	case TokenTypeMinus:
		return BinaryOpSub, true
	case TokenTypeStar:
		return BinaryOpMul, true
	case TokenTypeSlash:
		return BinaryOpDiv, true
	case TokenTypeLess:
		return BinaryOpLess, true
	case TokenTypeLessEqual:
		return BinaryOpLessEqual, true
	case TokenTypeGreater:
		return BinaryOpGreater, true
	case TokenTypeGreaterEqual:
		return BinaryOpGreaterEqual, true
	case TokenTypeEqualEqual:
		return BinaryOpEqual, true
	case TokenTypeBangEqual:
		return BinaryOpNotEqual, true
	case TokenTypeAnd:
		return BinaryOpAnd, true
	case TokenTypeOr:
		return BinaryOpOr, true
	}

	return 0, false
}
