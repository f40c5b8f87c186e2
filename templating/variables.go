package templating

import (
	"sort"
	"strings"
)

// Variables maps variable names to their string values.
type Variables map[string]string

// Names returns the variable names in ascending byte-wise
// order, which is the order substitution applies them in.
func (vs Variables) Names() []string {
	names := make([]string, 0, len(vs))
	for name := range vs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Substitute replaces every whole-word occurrence of each
// variable name in expr with its value. Names are applied
// in ascending order and each substitution sees the output
// of the previous one, so a value containing a later name
// gets rewritten too.
func Substitute(expr string, vars map[string]string) string {
	return substitute(expr, vars, Variables(vars).Names())
}

func substitute(
	expr string,
	vars map[string]string,
	names []string,
) string {
	for _, name := range names {
		if name == "" {
			continue
		}

		expr = replaceWord(expr, name, vars[name])
	}

	return expr
}

// replaceWord replaces the non-overlapping occurrences of
// word in s that start and end on a word boundary, the
// same positions the regexp \b assertion accepts. Names
// and values are taken literally.
func replaceWord(s, word, value string) string {
	var sb strings.Builder

	last := 0

	for i := 0; i+len(word) <= len(s); {
		j := strings.Index(s[i:], word)
		if j < 0 {
			break
		}

		start := i + j
		end := start + len(word)

		if !atBoundary(s, start) || !atBoundary(s, end) {
			i = start + 1
			continue
		}

		sb.WriteString(s[last:start])
		sb.WriteString(value)

		last = end
		i = end
	}

	if last == 0 {
		return s
	}

	sb.WriteString(s[last:])

	return sb.String()
}

// atBoundary reports whether exactly one side of position
// i in s is an ASCII word character.
func atBoundary(s string, i int) bool {
	before := i > 0 && isWordChar(s[i-1])
	after := i < len(s) && isWordChar(s[i])

	return before != after
}

func isWordChar(c byte) bool {
	return c == '_' ||
		c >= '0' && c <= '9' ||
		c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z'
}
