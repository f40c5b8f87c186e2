// Package templating renders text templates whose {{expr}}
// placeholders hold small expressions. Each expression has
// its variables substituted on whole-word boundaries, its
// "a" ** "b" string concatenations merged, and is then
// evaluated left to right as floating-point arithmetic with
// no operator precedence. The numeric result is formatted
// with trailing zeros trimmed and spliced back in place.
//
// The Engine type holds configuration (start/end tags, the
// iteration bound and the string-result switch). Render
// renders an in-memory template; Expand reads a template
// file, renders it and writes the result.
package templating
