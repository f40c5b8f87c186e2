// Package variables assembles the variable mapping a template
// is rendered against. Values come from Bazel-style workspace
// status files ("KEY VALUE" lines), NAME=VALUE assignments,
// flat JSON or YAML files, and import files whose whole
// content becomes a value. Assignment and import values may
// reference status keys with single-brace {KEY} placeholders.
package variables
