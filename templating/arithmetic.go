package templating

import (
	"math"
	"strconv"
)

// EvalArithmetic evaluates a chain of operands and
// operators strictly left to right, with no precedence:
// "2 + 3 * 4" is 20. Supported operators are + - * / and %
// (floating-point remainder). Evaluation starts from 0
// with an implied leading +, and stops at the first token
// that does not read as a number, returning what has been
// accumulated so far. An unknown operator consumes its
// operand without effect. Division and remainder by zero
// yield Inf or NaN.
func EvalArithmetic(expr string) float64 {
	sc := scanner{src: expr}

	result := 0.0
	op := byte('+')

	for {
		term, ok := sc.number()
		if !ok {
			return result
		}

		switch op {
		case '+':
			result += term
		case '-':
			result -= term
		case '*':
			result *= term
		case '/':
			result /= term
		case '%':
			result = math.Mod(result, term)
		}

		if next, ok := sc.operator(); ok {
			op = next
		}
	}
}

// scanner extracts whitespace-separated numbers and
// single-byte operators. Numbers are read greedily, so
// "2+3" still splits into 2, + and 3.
type scanner struct {
	src string
	pos int
}

func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.src) && isSpace(sc.src[sc.pos]) {
		sc.pos++
	}
}

// number reads [+-]digits[.digits][(e|E)[+-]digits]. A
// prefix that matches this shape but does not parse, such
// as "1e" or an out of range exponent, is a failure.
func (sc *scanner) number() (float64, bool) {
	sc.skipSpace()

	src := sc.src
	i := sc.pos

	if i < len(src) && (src[i] == '+' || src[i] == '-') {
		i++
	}

	digits := 0
	for i < len(src) && isDigit(src[i]) {
		i++
		digits++
	}

	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
			digits++
		}
	}

	if digits == 0 {
		return 0, false
	}

	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		i++
		if i < len(src) && (src[i] == '+' || src[i] == '-') {
			i++
		}

		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}

	val, err := strconv.ParseFloat(src[sc.pos:i], 64)
	if err != nil {
		return 0, false
	}

	sc.pos = i

	return val, true
}

// operator reads the next non-blank byte, whatever it is.
func (sc *scanner) operator() (byte, bool) {
	sc.skipSpace()

	if sc.pos >= len(sc.src) {
		return 0, false
	}

	op := sc.src[sc.pos]
	sc.pos++

	return op, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}
