package amrtex

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedEquation is matched by every error caused by the LaTeX input itself.
var ErrMalformedEquation = errors.New("malformed equation")

type ParseError struct {
	Errors []Error `json:"errs"`
}

// Error is a problem at a rune offset of the equation.
type Error struct {
	Pos     int    `json:"pos"`
	Message string `json:"errmsg"`
}

func (pe *ParseError) Empty() bool {
	if pe == nil {
		return true
	}
	return len(pe.Errors) == 0
}

func (pe *ParseError) Error() string {
	var sb strings.Builder
	for i, err := range pe.Errors {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

func (pe *ParseError) Is(target error) bool {
	return target == ErrMalformedEquation
}

func (e Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Pos, e.Message)
}

func errorAt(pos int, f string, v ...interface{}) *ParseError {
	return &ParseError{
		Errors: []Error{{Pos: pos, Message: fmt.Sprintf(f, v...)}},
	}
}

// ErrNoEquations is returned when there is nothing to convert.
var ErrNoEquations = errors.New("no equations")
