// Package content loads game content for a core, transparently extracting
// compressed archives (ZIP, 7z, gzip, tar.gz, RAR, xz) unless the core
// blocks extraction.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Magic bytes for archive detection.
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
	magicXZ     = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
)

// maxContentSize caps extracted content (64MB covers arcade sets).
const maxContentSize = 64 * 1024 * 1024

// ErrNoContent is returned when no matching file is found in an archive.
var ErrNoContent = errors.New("no content file found in archive")

// ErrUnsupportedFormat is returned for unrecognized file formats.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrContentTooLarge is returned when content exceeds the size limit.
var ErrContentTooLarge = errors.New("content exceeds maximum size limit")

// formatType represents the detected file format.
type formatType int

const (
	formatUnknown formatType = iota
	formatRaw
	formatZIP
	format7z
	formatGzip
	formatRAR
	formatXZ
)

// Load reads game content from a file path. Archives are detected via magic
// bytes and the first file matching one of the given dotted extensions is
// extracted. When blockExtract is set (the core declared block_extract) the
// file bytes are returned untouched regardless of format.
//
// Returns the content bytes, the content's base filename, and any error.
func Load(path string, extensions []string, blockExtract bool) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if blockExtract {
		data, err := limitedRead(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read content: %w", err)
		}
		return data, filepath.Base(path), nil
	}

	header := make([]byte, 16)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, "", fmt.Errorf("failed to read file header: %w", err)
	}
	header = header[:n]

	format := detectFormat(header, path, extensions)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("failed to seek file: %w", err)
	}

	switch format {
	case formatRaw:
		data, err := limitedRead(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read content: %w", err)
		}
		return data, filepath.Base(path), nil

	case formatZIP:
		return extractFromZIP(path, extensions)

	case format7z:
		return extractFrom7z(path, extensions)

	case formatGzip:
		return extractFromGzip(path, extensions)

	case formatRAR:
		return extractFromRAR(path, extensions)

	case formatXZ:
		return extractFromXZ(f, path)

	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// detectFormat determines the file format from magic bytes, falling back to
// the file extension. A file matching one of the core's own extensions and
// no archive format is treated as raw content; with no declared extensions
// any non-archive file is raw.
func detectFormat(header []byte, path string, extensions []string) formatType {
	ext := strings.ToLower(filepath.Ext(path))

	if len(header) >= 4 {
		if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
			return formatZIP
		}
		if bytes.HasPrefix(header, magicRAR) {
			return formatRAR
		}
	}
	if len(header) >= 6 {
		if bytes.HasPrefix(header, magic7z) {
			return format7z
		}
		if bytes.HasPrefix(header, magicXZ) {
			return formatXZ
		}
	}
	if len(header) >= 2 && bytes.HasPrefix(header, magicGzip) {
		return formatGzip
	}

	switch ext {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRAR
	case ".xz":
		return formatXZ
	}

	if strings.HasSuffix(strings.ToLower(path), ".tar.gz") {
		return formatGzip
	}

	if len(extensions) == 0 {
		return formatRaw
	}
	for _, want := range extensions {
		if ext == strings.ToLower(want) {
			return formatRaw
		}
	}

	return formatUnknown
}

// isContentFile checks a filename against the dotted extensions
// (case-insensitive). An empty extension list matches everything.
func isContentFile(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// limitedRead reads from r up to maxContentSize bytes, erroring if exceeded.
func limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, maxContentSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > maxContentSize {
		return nil, ErrContentTooLarge
	}
	return data, nil
}
