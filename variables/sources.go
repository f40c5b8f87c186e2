package variables

import (
	"fmt"
	"maps"
	"os"
	"strings"
)

// Sources lists where variable values come from. Load
// merges them with increasing precedence: stamps, files,
// assignments, imports.
type Sources struct {
	StampInfoFiles []string
	Files          []string
	Assignments    []string
	Imports        []string
}

// Load builds the variable mapping. Stamps are part of
// the mapping as well as the lookup table for {KEY}
// references in assignments and imports.
func (src Sources) Load() (map[string]string, error) {
	const errCtx = "loading variables"

	stamps, err := LoadStamps(src.StampInfoFiles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	vars := maps.Clone(stamps)

	for _, fp := range src.Files {
		fileVars, err := LoadFile(fp)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		maps.Copy(vars, fileVars)
	}

	assigned, err := ParseAssignments(src.Assignments, stamps)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	maps.Copy(vars, assigned)

	imported, err := LoadImports(src.Imports, stamps)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	maps.Copy(vars, imported)

	return vars, nil
}

// ParseAssignments parses NAME=VALUE pairs. Each VALUE is
// stamped before it is stored.
func ParseAssignments(
	pairs []string,
	stamps map[string]string,
) (map[string]string, error) {
	const errCtx = "parsing assignments"

	vars := make(map[string]string, len(pairs))

	for _, pr := range pairs {
		parts := strings.SplitN(pr, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf(
				"%s: variable must be NAME=VALUE, got %s",
				errCtx, pr,
			)
		}

		vars[parts[0]] = Stamp(parts[1], stamps)
	}

	return vars, nil
}

// LoadImports processes NAME=filename pairs. Each file is
// read and stamped, and its content becomes the value of
// NAME.
func LoadImports(
	pairs []string,
	stamps map[string]string,
) (map[string]string, error) {
	const errCtx = "loading imports"

	vars := make(map[string]string, len(pairs))

	for _, im := range pairs {
		parts := strings.SplitN(im, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf(
				"%s: import must be NAME=filename, got %s",
				errCtx, im,
			)
		}

		content, err := os.ReadFile(parts[1]) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: reading %s: %w",
				errCtx, parts[1], err,
			)
		}

		vars[parts[0]] = Stamp(string(content), stamps)
	}

	return vars, nil
}
