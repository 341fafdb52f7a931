package lib

// tokenReader walks a scanned token slice. The slice always ends with an EOF
// token, so peek never runs off the end and advance never moves past EOF.
type tokenReader struct {
	tokens  []Token
	current int
}

func newTokenReader(tokens []Token) *tokenReader {
	return &tokenReader{tokens: tokens}
}

func (r *tokenReader) peek() Token {
	return r.tokens[r.current]
}

func (r *tokenReader) previous() Token {
	if r.current == 0 {
		return r.tokens[0]
	}
	return r.tokens[r.current-1]
}

func (r *tokenReader) isAtEnd() bool {
	return r.peek().Is(TokenTypeEOF)
}

func (r *tokenReader) advance() Token {
	if !r.isAtEnd() {
		r.current++
	}
	return r.previous()
}

// check reports whether the next token has the given type. It is always
// false at EOF.
func (r *tokenReader) check(tokType TokenType) bool {
	if r.isAtEnd() {
		return false
	}
	return r.peek().Is(tokType)
}

// match consumes the next token if it has any of the given types.
func (r *tokenReader) match(types ...TokenType) bool {
	for _, t := range types {
		if r.check(t) {
			r.advance()
			return true
		}
	}
	return false
}
