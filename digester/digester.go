package digester

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

const sidecarExt = ".digest"

// Sum returns the hex SHA256 digest of content.
func Sum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// CalculateDigest computes the SHA256 hex digest of the
// file at path. Returns empty string with no error if the
// file does not exist.
func CalculateDigest(path string) (result string, retErr error) {
	const errCtx = "calculating digest"

	fi, err := os.Open(path) //nolint:gosec // path is caller-provided by design
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	ha := sha256.New()

	if _, err := io.Copy(ha, fi); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return hex.EncodeToString(ha.Sum(nil)), nil
}

// GetDigest reads the digest stored in the sidecar of
// path. Returns empty string with no error if there is no
// sidecar.
func GetDigest(path string) (string, error) {
	const errCtx = "getting stored digest"

	digest, err := os.ReadFile(path + sidecarExt) //nolint:gosec // path is caller-provided by design
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return string(digest), nil
}

// Unchanged reports whether the file at path already holds
// content: the file digest, its stored sidecar digest and
// the digest of content must all agree. A missing file or
// sidecar is never unchanged.
func Unchanged(path string, content []byte) (bool, error) {
	const errCtx = "checking output digest"

	stored, err := GetDigest(path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	if stored == "" || stored != Sum(content) {
		return false, nil
	}

	calc, err := CalculateDigest(path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	return calc == stored, nil
}

// SaveDigest calculates the digest of a file and writes it
// to its sidecar.
func SaveDigest(path string) error {
	const errCtx = "saving digest"

	digest, err := CalculateDigest(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if digest == "" {
		return fmt.Errorf(
			"%s: %s: %w", errCtx, path, os.ErrNotExist,
		)
	}

	if err := os.WriteFile(path+sidecarExt, []byte(digest), 0o600); err != nil { //nolint:gosec // path is caller-provided by design
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
