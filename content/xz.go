package content

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// extractFromXZ decompresses a single-file .xz stream. The content is named
// after the file with the .xz suffix stripped.
func extractFromXZ(r io.Reader, path string) ([]byte, string, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create xz reader: %w", err)
	}

	data, err := limitedRead(xr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress xz: %w", err)
	}

	name := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(name), ".xz") {
		name = name[:len(name)-3]
	}
	return data, name, nil
}
