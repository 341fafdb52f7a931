package lib

type TokenType int

const (
	TokenTypePlus TokenType = iota
	TokenTypeMinus
	TokenTypeStar
	TokenTypeSlash
	TokenTypeBang
	TokenTypeBangEqual
	TokenTypeEqualEqual
	TokenTypeGreater
	TokenTypeGreaterEqual
	TokenTypeLess
	TokenTypeLessEqual
	TokenTypeAnd
	TokenTypeOr
	TokenTypeString
	TokenTypeNumber
	TokenTypeTrue
	TokenTypeFalse
	TokenTypeLParen
	TokenTypeRParen
	TokenTypeEOF
)

var tokenTypeNames = map[TokenType]string{
	TokenTypePlus:         "Plus",
	TokenTypeMinus:        "Minus",
	TokenTypeStar:         "Star",
	TokenTypeSlash:        "Slash",
	TokenTypeBang:         "Bang",
	TokenTypeBangEqual:    "BangEqual",
	TokenTypeEqualEqual:   "EqualEqual",
	TokenTypeGreater:      "Greater",
	TokenTypeGreaterEqual: "GreaterEqual",
	TokenTypeLess:         "Less",
	TokenTypeLessEqual:    "LessEqual",
	TokenTypeAnd:          "And",
	TokenTypeOr:           "Or",
	TokenTypeString:       "String",
	TokenTypeNumber:       "Number",
	TokenTypeTrue:         "True",
	TokenTypeFalse:        "False",
	TokenTypeLParen:       "LeftParen",
	TokenTypeRParen:       "RightParen",
	TokenTypeEOF:          "Eof",
}

func (t TokenType) String() string {
	name, ok := tokenTypeNames[t]
	if !ok {
		return "?"
	}
	return name
}

// Location is a 1-based line and column. Tabs count as four columns.
type Location struct {
	Line int
	Col  int
}

// Token is one lexical unit. Value holds the text of a String token with the
// quotes stripped and Number holds the value of a Number token; both are zero
// for every other type.
type Token struct {
	Type     TokenType
	Lexeme   string
	Value    string
	Number   int32
	Location Location
}

// Is reports whether the token has the given type, ignoring any payload.
func (t Token) Is(tokType TokenType) bool {
	return t.Type == tokType
}
