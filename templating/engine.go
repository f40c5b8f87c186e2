package templating

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
)

// DefaultMaxIterations bounds the placeholder and
// concatenation loops when Engine.MaxIterations is unset.
const DefaultMaxIterations = 100000

// ErrIterationLimit is returned when rendering keeps
// finding placeholders after the configured number of
// replacements, which happens when evaluation results
// reintroduce placeholder markers.
var ErrIterationLimit = errors.New("iteration limit reached")

// defaultPlaceholder matches the default {{...}} tags. The
// body is non-greedy and cannot cross a line break.
var defaultPlaceholder = regexp.MustCompile(
	`\{\{([^\r\n]*?)\}\}`,
)

// Engine renders templates. The zero value is ready to use
// and behaves like the package-level Render.
type Engine struct {
	StartTag string
	EndTag   string

	// MaxIterations bounds the number of placeholder
	// replacements in one render and of concatenation
	// merges in one expression. Exceeding either is
	// reported as ErrIterationLimit.
	MaxIterations int

	// StringResults makes an expression that reduces to a
	// single quoted literal render as that literal's
	// content instead of going through arithmetic.
	StringResults bool

	// Digest makes Expand keep a <output>.digest sidecar
	// and skip rewriting outputs whose content is
	// unchanged.
	Digest bool
}

var defaultEngine = &Engine{}

// Render replaces every placeholder in tpl with the result
// of evaluating its expression against vars. It never
// fails: when the iteration bound trips, the template is
// returned as rendered so far.
func Render(tpl string, vars map[string]string) string {
	out, err := defaultEngine.Render(tpl, vars)
	if err != nil {
		slog.Warn(
			"render stopped early",
			"error", err,
		)
	}

	return out
}

// Render repeatedly finds the left-most placeholder,
// evaluates its body and splices the result in place,
// rescanning from the start after every replacement. An
// evaluation result containing a placeholder is therefore
// evaluated again.
//
// When more than MaxIterations replacements happen the
// partially rendered template is returned together with an
// error wrapping ErrIterationLimit.
func (en *Engine) Render(
	tpl string,
	vars map[string]string,
) (string, error) {
	const errCtx = "rendering template"

	pattern, err := en.placeholder()
	if err != nil {
		return tpl, fmt.Errorf("%s: %w", errCtx, err)
	}

	limit := en.maxIterations()
	names := Variables(vars).Names()
	result := tpl

	for count := 0; ; count++ {
		loc := pattern.FindStringSubmatchIndex(result)
		if loc == nil {
			return result, nil
		}

		if count == limit {
			return result, fmt.Errorf(
				"%s: %w after %d replacements",
				errCtx, ErrIterationLimit, limit,
			)
		}

		body := result[loc[2]:loc[3]]

		evaluated, err := en.evaluate(body, vars, names)
		if err != nil {
			return result, fmt.Errorf("%s: %w", errCtx, err)
		}

		slog.Debug(
			"evaluated placeholder",
			"expression", body,
			"result", evaluated,
		)

		result = result[:loc[0]] + evaluated + result[loc[1]:]
	}
}

// Evaluate evaluates a single placeholder body with the
// default engine.
func Evaluate(expression string, vars map[string]string) string {
	return defaultEngine.Evaluate(expression, vars)
}

// Evaluate runs expression through substitution,
// concatenation and arithmetic, and formats the number.
// It never fails: when the concatenation bound trips, the
// partially merged expression is evaluated as is and a
// warning is logged.
func (en *Engine) Evaluate(
	expression string,
	vars map[string]string,
) string {
	out, err := en.evaluate(
		expression, vars, Variables(vars).Names(),
	)
	if err != nil {
		slog.Warn(
			"evaluation stopped early",
			"expression", expression,
			"error", err,
		)
	}

	return out
}

// evaluate returns an error wrapping ErrIterationLimit
// when concatenation needs more than MaxIterations merges.
// The result is still the evaluation of the partially
// merged expression.
func (en *Engine) evaluate(
	expression string,
	vars map[string]string,
	names []string,
) (string, error) {
	var err error

	limit := en.maxIterations()
	expr := substitute(expression, vars, names)

	expr, done := resolveConcat(expr, limit)
	if !done {
		err = fmt.Errorf(
			"resolving concatenation: %w after %d merges",
			ErrIterationLimit, limit,
		)
	}

	if en.StringResults {
		if lit, ok := stringLiteral(expr); ok {
			return lit, err
		}
	}

	return FormatNumber(EvalArithmetic(expr)), err
}

// tags returns the configured start/end tags, falling
// back to double-brace defaults.
func (en *Engine) tags() (string, string) {
	startTag := en.StartTag
	if startTag == "" {
		startTag = "{{"
	}

	endTag := en.EndTag
	if endTag == "" {
		endTag = "}}"
	}

	return startTag, endTag
}

func (en *Engine) placeholder() (*regexp.Regexp, error) {
	startTag, endTag := en.tags()
	if startTag == "{{" && endTag == "}}" {
		return defaultPlaceholder, nil
	}

	re, err := regexp.Compile(
		regexp.QuoteMeta(startTag) +
			`([^\r\n]*?)` +
			regexp.QuoteMeta(endTag),
	)
	if err != nil {
		return nil, fmt.Errorf("compiling tags: %w", err)
	}

	return re, nil
}

func (en *Engine) maxIterations() int {
	if en.MaxIterations <= 0 {
		return DefaultMaxIterations
	}

	return en.MaxIterations
}
