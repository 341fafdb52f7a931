package lib

import "fmt"

// SyntaxError is returned by both Scan and Parse. Line and Column point at
// the start of the offending token.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func newSyntaxError(loc Location, msg string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Message: fmt.Sprintf(msg, args...),
		Line:    loc.Line,
		Column:  loc.Col,
	}
}
