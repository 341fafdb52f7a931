package lib

import (
	"strconv"
)

const tabWidth = 4

// Scan converts source text into tokens terminated by a single EOF token. It
// stops at the first malformed construct and returns no tokens in that case.
func Scan(source string) ([]Token, error) {
	tokens := []Token{}
	err := lex(source, func(tok Token) {
		tokens = append(tokens, tok)
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func lex(source string, emit func(Token)) error {
	l := newLexer(source, emit)
	return l.scan()
}

type lexer struct {
	src              []rune
	length           int
	currentCharIndex int
	line             int
	col              int
	tokenStartIndex  int
	tokenLocation    Location
	emitCallback     func(Token)
}

func newLexer(source string, emit func(Token)) *lexer {
	src := []rune(source)
	return &lexer{
		src:           src,
		length:        len(src),
		line:          1,
		col:           0,
		tokenLocation: Location{Line: 1, Col: 1},
		emitCallback:  emit,
	}
}

func (l *lexer) peek(offset int) (rune, bool) {
	i := l.currentCharIndex + offset
	if i >= l.length {
		return 0, false
	}
	return l.src[i], true
}

func (l *lexer) advance() (rune, bool) {
	ch, ok := l.peek(0)
	if !ok {
		return 0, false
	}
	l.currentCharIndex++
	switch ch {
	case '\n':
		l.line++
		l.col = 0
	case '\t':
		l.col += tabWidth
	default:
		l.col++
	}
	return ch, true
}

// advanceIf consumes the next character only when it equals ch.
func (l *lexer) advanceIf(ch rune) bool {
	next, ok := l.peek(0)
	if !ok || next != ch {
		return false
	}
	_, _ = l.advance()
	return true
}

func (l *lexer) scan() error {
	for {
		more, err := l.next()
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	l.emitCallback(Token{
		Type:     TokenTypeEOF,
		Location: Location{Line: l.line, Col: l.col},
	})
	return nil
}

func (l *lexer) resetToken() {
	l.tokenStartIndex = l.currentCharIndex
	l.tokenLocation = Location{Line: l.line, Col: l.col + 1}
}

func (l *lexer) lexeme() string {
	return string(l.src[l.tokenStartIndex:l.currentCharIndex])
}

func (l *lexer) emit(tokType TokenType) {
	l.emitCallback(Token{
		Type:     tokType,
		Lexeme:   l.lexeme(),
		Location: l.tokenLocation,
	})
}

// either emits long when the next character is '=' and short otherwise.
func (l *lexer) either(short TokenType, long TokenType) {
	if l.advanceIf('=') {
		l.emit(long)
	} else {
		l.emit(short)
	}
}

func (l *lexer) next() (bool, error) {
	l.resetToken()

	ch, ok := l.advance()
	if !ok {
		return false, nil
	}

	switch ch {
	case '(':
		l.emit(TokenTypeLParen)
	case ')':
		l.emit(TokenTypeRParen)
	case '+':
		l.emit(TokenTypePlus)
	case '-':
		l.emit(TokenTypeMinus)
	case '*':
		l.emit(TokenTypeStar)
	case '/':
		l.emit(TokenTypeSlash)
	case '!':
		l.either(TokenTypeBang, TokenTypeBangEqual)
	case '>':
		l.either(TokenTypeGreater, TokenTypeGreaterEqual)
	case '<':
		l.either(TokenTypeLess, TokenTypeLessEqual)
	case ' ', '\r', '\t', '\n':
		// whitespace only moves the location
	case '"':
		return true, l.scanString()
	default:
		if isDigit(ch) {
			return true, l.scanNumber()
		}
		if isWordStart(ch) {
			l.scanWord()
			return true, nil
		}
		return false, l.errorf("Unexpected Token: %c", ch)
	}

	return true, nil
}

// Reads after the opening quote. Newlines inside the string are allowed.
func (l *lexer) scanString() error {
	for {
		ch, ok := l.advance()
		if !ok {
			return l.errorf("Invalid String")
		}
		if ch == '"' {
			break
		}
	}

	lexeme := l.lexeme()
	l.emitCallback(Token{
		Type:     TokenTypeString,
		Lexeme:   lexeme,
		Value:    lexeme[1 : len(lexeme)-1],
		Location: l.tokenLocation,
	})
	return nil
}

func (l *lexer) scanNumber() error {
	for {
		ch, ok := l.peek(0)
		if !ok || !isDigit(ch) {
			break
		}
		_, _ = l.advance()
	}

	lexeme := l.lexeme()
	n, err := strconv.ParseInt(lexeme, 10, 32)
	if err != nil {
		return l.errorf("Number literal out of range: %s", lexeme)
	}

	l.emitCallback(Token{
		Type:     TokenTypeNumber,
		Lexeme:   lexeme,
		Number:   int32(n),
		Location: l.tokenLocation,
	})
	return nil
}

// Words other than the logical keywords produce no token; the language has
// no identifiers yet.
func (l *lexer) scanWord() {
	for {
		ch, ok := l.peek(0)
		if !ok || !isWordChar(ch) {
			break
		}
		_, _ = l.advance()
	}

	switch l.lexeme() {
	case "and":
		l.emit(TokenTypeAnd)
	case "or":
		l.emit(TokenTypeOr)
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isWordStart(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isWordChar(ch rune) bool {
	return isWordStart(ch) || isDigit(ch)
}

func (l *lexer) errorf(msg string, args ...interface{}) error {
	return newSyntaxError(l.tokenLocation, msg, args...)
}
