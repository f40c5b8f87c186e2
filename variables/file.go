package variables

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// ErrUnsupportedFormat is returned for variable files
// whose extension is neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported variables file format")

// LoadFile reads a flat JSON (.json) or YAML (.yaml, .yml)
// object of scalar values. Numbers keep their shortest
// decimal form, booleans become "true"/"false" and null
// becomes the empty string. Nested objects and lists are
// rejected.
func LoadFile(path string) (map[string]string, error) {
	const errCtx = "loading variables file"

	content, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var raw map[string]interface{}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.UseNumber()

		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf(
				"%s: decoding json %s: %w",
				errCtx, path, err,
			)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf(
				"%s: decoding yaml %s: %w",
				errCtx, path, err,
			)
		}
	default:
		return nil, fmt.Errorf(
			"%s: %s: %w", errCtx, path, ErrUnsupportedFormat,
		)
	}

	vars := make(map[string]string, len(raw))

	for key, val := range raw {
		str, err := scalarString(val)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %s: key %q: %w",
				errCtx, path, key, err,
			)
		}

		vars[key] = str
	}

	return vars, nil
}

func scalarString(val interface{}) (string, error) {
	switch typedVal := val.(type) {
	case nil:
		return "", nil
	case string:
		return typedVal, nil
	case bool:
		return strconv.FormatBool(typedVal), nil
	case json.Number:
		return typedVal.String(), nil
	case float64:
		return strconv.FormatFloat(typedVal, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(typedVal), 'f', -1, 32), nil
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(typedVal), nil
	default:
		return "", fmt.Errorf("value of type %T is not a scalar", val)
	}
}
