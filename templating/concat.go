package templating

import "regexp"

// concatPattern matches two double-quoted literals joined
// by the ** operator. Blanks include \v, which \s lacks.
var concatPattern = regexp.MustCompile(
	`("[^"]*")[\t\n\v\f\r ]*\*\*[\t\n\v\f\r ]*("[^"]*")`,
)

var literalPattern = regexp.MustCompile(`^[\t\n\v\f\r ]*"([^"]*)"[\t\n\v\f\r ]*$`)

// ResolveConcat merges "a" ** "b" into "ab", left-most
// first, until no concatenation remains. Chains such as
// "a" ** "b" ** "c" collapse over successive passes.
func ResolveConcat(expr string) string {
	out, _ := resolveConcat(expr, DefaultMaxIterations)
	return out
}

// resolveConcat reports false when it stopped because of
// the iteration limit.
func resolveConcat(expr string, limit int) (string, bool) {
	for count := 0; ; count++ {
		loc := concatPattern.FindStringSubmatchIndex(expr)
		if loc == nil {
			return expr, true
		}

		if count == limit {
			return expr, false
		}

		left := expr[loc[2]+1 : loc[3]-1]
		right := expr[loc[4]+1 : loc[5]-1]

		expr = expr[:loc[0]] +
			`"` + left + right + `"` +
			expr[loc[1]:]
	}
}

// stringLiteral returns the content of expr when it is
// exactly one quoted literal, surrounding blanks aside.
func stringLiteral(expr string) (string, bool) {
	m := literalPattern.FindStringSubmatch(expr)
	if m == nil {
		return "", false
	}

	return m[1], true
}
