// Package yamlrender renders {{expr}} placeholders inside the
// string scalars of multi-document YAML, such as deployment
// manifests or configuration files. Mapping keys and
// non-string scalars are left untouched and key order is
// preserved.
package yamlrender
