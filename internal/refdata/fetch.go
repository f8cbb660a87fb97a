package refdata

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// isLocalPath reports whether a source path is a filesystem path rather than
// an http(s) URL.
func isLocalPath(source string) bool {
	return !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://")
}

// rawDatasetBytes reads a dataset from a local file or downloads it.
func rawDatasetBytes(source string) ([]byte, error) {
	if isLocalPath(source) {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local dataset file: %w", err)
		}
		return b, nil
	}

	resp, err := http.Get(source)
	if err != nil {
		return nil, fmt.Errorf("error downloading dataset: %w", err)
	}
	defer resp.Body.Close() // nolint

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading dataset: unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset response: %w", err)
	}
	return b, nil
}
