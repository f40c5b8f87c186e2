package templating

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jonp92/TemplateTango/digester"
)

// Expand reads a template, renders it against vars, and
// writes the result. If tplPath is empty it reads from
// stdin; if outPath is empty it writes to stdout. If
// executable is true the output file receives mode 0777
// instead of 0666.
//
// With Digest set, an output file whose sidecar digest
// already matches the rendered content is not rewritten;
// otherwise the sidecar is refreshed after writing.
//
// Hitting the iteration limit is an error here, unlike in
// Render, and nothing is written.
func (en *Engine) Expand(
	tplPath string,
	outPath string,
	vars map[string]string,
	executable bool,
) error {
	const errCtx = "expanding template"

	tplContent, err := en.readTemplate(tplPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	rendered, err := en.Render(string(tplContent), vars)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if en.Digest && outPath != "" {
		same, err := digester.Unchanged(outPath, []byte(rendered))
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if same {
			slog.Info(
				"output unchanged, skipping write",
				"output", outPath,
			)

			return nil
		}
	}

	out, closer, err := en.openOutput(outPath, executable)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	_, err = io.WriteString(out, rendered)

	if closer != nil {
		closer()
	}

	if err != nil {
		return fmt.Errorf("%s: writing output: %w", errCtx, err)
	}

	if en.Digest && outPath != "" {
		if err := digester.SaveDigest(outPath); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	return nil
}

// readTemplate reads the template from a file path. If
// tplPath is empty it reads from stdin.
func (en *Engine) readTemplate(
	tplPath string,
) ([]byte, error) {
	const errCtx = "reading template"

	if tplPath != "" {
		content, err := os.ReadFile(tplPath) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return content, nil
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: reading stdin: %w", errCtx, err,
		)
	}

	return content, nil
}

// openOutput returns a writer for the result. When
// outPath is empty it returns stdout. The returned
// closer function must be called to finalize the file
// (may be nil for stdout).
func (en *Engine) openOutput(
	outPath string,
	executable bool,
) (io.Writer, func(), error) {
	const errCtx = "opening output"

	if outPath == "" {
		return os.Stdout, nil, nil
	}

	var perm os.FileMode = 0o666
	if executable {
		perm = 0o777
	}

	fi, err := os.OpenFile( //nolint:gosec // paths from CLI flags
		outPath,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC,
		perm,
	)
	if err != nil {
		return nil, nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return fi, func() {
		_ = fi.Close() //nolint:errcheck // best-effort close
	}, nil
}
