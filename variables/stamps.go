package variables

import (
	"fmt"
	"os"
	"strings"

	"github.com/valyala/fasttemplate"
)

// LoadStamps reads workspace status files and merges them
// into a single map. Each line is "KEY VALUE" with the
// first space as delimiter. Lines without a space are
// silently skipped; later files override earlier ones.
func LoadStamps(
	infoFiles []string,
) (map[string]string, error) {
	const errCtx = "loading stamps"

	stamps := make(map[string]string)

	for _, sf := range infoFiles {
		content, err := os.ReadFile(sf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		for _, line := range strings.Split(
			string(content), "\n",
		) {
			parts := strings.SplitN(line, " ", 2)
			if len(parts) == 2 {
				stamps[parts[0]] = parts[1]
			}
		}
	}

	return stamps, nil
}

// Stamp substitutes {KEY} placeholders in value with the
// matching stamps. Unknown keys are preserved as-is.
func Stamp(value string, stamps map[string]string) string {
	if len(stamps) == 0 {
		return value
	}

	m := make(map[string]interface{}, len(stamps))
	for key, val := range stamps {
		m[key] = val
	}

	return fasttemplate.ExecuteStringStd(value, "{", "}", m)
}
