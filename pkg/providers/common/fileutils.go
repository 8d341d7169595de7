// Package common provides helpers shared by the model provider
// implementations, chiefly loading the raw model source from inline text or
// a file.
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

// ReadFileContent reads the content of a file and returns it as bytes.
// Returns the file content and any error encountered.
func ReadFileContent(filename string) ([]byte, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename cannot be empty")
	}
	// Clean the path to prevent directory traversal
	cleanFilename := filepath.Clean(filename)

	return os.ReadFile(cleanFilename)
}

// Source describes where a provider reads its model from. A non-empty File
// takes precedence over Inline.
type Source struct {
	Inline string
	File   string
}

// IsZero reports whether neither inline text nor a file is configured.
func (s Source) IsZero() bool {
	return s.File == "" && s.Inline == ""
}

// Read loads the raw model bytes. A missing file is reported as a not_found
// ModelProviderError tagged with provider.
func (s Source) Read(provider types.ProviderType) ([]byte, error) {
	if s.File == "" {
		return []byte(s.Inline), nil
	}

	data, err := ReadFileContent(s.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.NewNotFoundError(provider, fmt.Sprintf("model file %s not found", s.File)).
				WithOperation("read_source").
				WithOriginalErr(err)
		}
		return nil, types.NewModelProviderError(provider, types.ErrCodeUnknown, "failed to read model file").
			WithOperation("read_source").
			WithOriginalErr(err)
	}
	return data, nil
}

// IsBlank reports whether data holds only whitespace.
func IsBlank(data []byte) bool {
	return strings.TrimSpace(string(data)) == ""
}
