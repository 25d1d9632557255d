package content

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
)

// testExtensions is a common set of content extensions used across tests
var testExtensions = []string{".sms"}

// createTestContentFile creates a temporary content file with the given extension and test data
func createTestContentFile(t *testing.T, data []byte, ext string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to create test content file: %v", err)
	}
	return path
}

// createTestZipFile creates a temporary .zip file containing a content file
func createTestZipFile(t *testing.T, data []byte, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zip")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	fw, err := w.Create(name)
	if err != nil {
		t.Fatalf("Failed to create file in zip: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("Failed to write to zip: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return path
}

// createTestGzipFile creates a temporary .gz file containing content data
func createTestGzipFile(t *testing.T, data []byte, ext string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+ext+".gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create gzip file: %v", err)
	}
	defer f.Close()

	w := gzip.NewWriter(f)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Failed to write to gzip: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close gzip: %v", err)
	}
	return path
}

// createTestTarGzFile creates a temporary .tar.gz file containing a content file
func createTestTarGzFile(t *testing.T, data []byte, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.tar.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create tar.gz file: %v", err)
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	hdr := &tar.Header{Name: name, Mode: 0644, Size: int64(len(data))}
	if err := tw.WriteHeader(hdr); err != nil {
		t.Fatalf("Failed to write tar header: %v", err)
	}
	if _, err := tw.Write(data); err != nil {
		t.Fatalf("Failed to write to tar: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Failed to close tar: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("Failed to close gzip: %v", err)
	}
	return path
}

// createTestXZFile creates a temporary .xz file containing content data
func createTestXZFile(t *testing.T, data []byte, ext string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+ext+".xz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create xz file: %v", err)
	}
	defer f.Close()

	w, err := xz.NewWriter(f)
	if err != nil {
		t.Fatalf("Failed to create xz writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Failed to write to xz: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close xz: %v", err)
	}
	return path
}

// TestLoad_RawContent tests loading plain content files
func TestLoad_RawContent(t *testing.T) {
	testData := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	path := createTestContentFile(t, testData, ".sms")

	data, name, err := Load(path, testExtensions, false)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !bytes.Equal(data, testData) {
		t.Errorf("Data mismatch: expected %v, got %v", testData, data)
	}
	if name != "test.sms" {
		t.Errorf("Name mismatch: expected test.sms, got %s", name)
	}
}

// TestLoad_RawContentMultipleExtensions tests loading with multiple valid extensions
func TestLoad_RawContentMultipleExtensions(t *testing.T) {
	exts := []string{".sms", ".md", ".bin"}
	testData := []byte{0x01, 0x02, 0x03}

	for _, ext := range exts {
		path := createTestContentFile(t, testData, ext)
		data, name, err := Load(path, exts, false)
		if err != nil {
			t.Fatalf("Load failed for %s: %v", ext, err)
		}
		if !bytes.Equal(data, testData) {
			t.Errorf("Data mismatch for %s", ext)
		}
		if name != "test"+ext {
			t.Errorf("Name mismatch for %s: expected test%s, got %s", ext, ext, name)
		}
	}
}

// TestLoad_NoDeclaredExtensions tests that any non-archive file loads raw
// when the core declares no extensions
func TestLoad_NoDeclaredExtensions(t *testing.T) {
	testData := []byte{0x10, 0x20}
	path := createTestContentFile(t, testData, ".whatever")

	data, _, err := Load(path, nil, false)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(data, testData) {
		t.Errorf("Data mismatch: expected %v, got %v", testData, data)
	}
}

// TestLoad_ZipArchive tests loading content from ZIP archives
func TestLoad_ZipArchive(t *testing.T) {
	testData := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	path := createTestZipFile(t, testData, "game.sms")

	data, name, err := Load(path, testExtensions, false)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(data, testData) {
		t.Errorf("Data mismatch: expected %v, got %v", testData, data)
	}
	if name != "game.sms" {
		t.Errorf("Name mismatch: expected game.sms, got %s", name)
	}
}

// TestLoad_ZipNoMatchingFile tests the error when no archive entry matches
func TestLoad_ZipNoMatchingFile(t *testing.T) {
	path := createTestZipFile(t, []byte{0x01}, "readme.txt")

	_, _, err := Load(path, testExtensions, false)
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("Expected ErrNoContent, got %v", err)
	}
}

// TestLoad_GzipFile tests loading content from plain gzip files
func TestLoad_GzipFile(t *testing.T) {
	testData := []byte{0x11, 0x22, 0x33}
	path := createTestGzipFile(t, testData, ".sms")

	data, name, err := Load(path, testExtensions, false)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(data, testData) {
		t.Errorf("Data mismatch: expected %v, got %v", testData, data)
	}
	if name != "test.sms" {
		t.Errorf("Name mismatch: expected test.sms, got %s", name)
	}
}

// TestLoad_TarGzArchive tests loading content from tar.gz archives
func TestLoad_TarGzArchive(t *testing.T) {
	testData := []byte{0x44, 0x55, 0x66}
	path := createTestTarGzFile(t, testData, "nested/game.sms")

	data, name, err := Load(path, testExtensions, false)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(data, testData) {
		t.Errorf("Data mismatch: expected %v, got %v", testData, data)
	}
	if name != "game.sms" {
		t.Errorf("Name mismatch: expected game.sms, got %s", name)
	}
}

// TestLoad_XZFile tests loading content from xz files
func TestLoad_XZFile(t *testing.T) {
	testData := []byte{0x77, 0x88, 0x99}
	path := createTestXZFile(t, testData, ".sms")

	data, name, err := Load(path, testExtensions, false)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(data, testData) {
		t.Errorf("Data mismatch: expected %v, got %v", testData, data)
	}
	if name != "test.sms" {
		t.Errorf("Name mismatch: expected test.sms, got %s", name)
	}
}

// TestLoad_BlockExtract tests that archives are passed through untouched
// when the core blocks extraction
func TestLoad_BlockExtract(t *testing.T) {
	testData := []byte{0xAA, 0xBB}
	path := createTestZipFile(t, testData, "game.sms")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read zip back: %v", err)
	}

	data, name, err := Load(path, testExtensions, true)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(data, raw) {
		t.Error("Block-extract content should be the archive bytes untouched")
	}
	if name != "test.zip" {
		t.Errorf("Name mismatch: expected test.zip, got %s", name)
	}
}

// TestLoad_UnknownFormat tests rejection of files matching neither an
// archive format nor a declared extension
func TestLoad_UnknownFormat(t *testing.T) {
	path := createTestContentFile(t, []byte{0x01, 0x02}, ".exe")

	_, _, err := Load(path, testExtensions, false)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

// TestLoad_FileNotFound tests error handling for missing files
func TestLoad_FileNotFound(t *testing.T) {
	_, _, err := Load("/nonexistent/path/test.sms", testExtensions, false)
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

// TestDetectFormat tests magic-byte and extension based format detection
func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		path   string
		exts   []string
		want   formatType
	}{
		{"zip magic", magicZIP, "game.bin", nil, formatZIP},
		{"empty zip magic", magicZIPEnd, "game.bin", nil, formatZIP},
		{"7z magic", magic7z, "game.bin", nil, format7z},
		{"gzip magic", magicGzip, "game.bin", nil, formatGzip},
		{"rar magic", magicRAR, "game.bin", nil, formatRAR},
		{"xz magic", magicXZ, "game.bin", nil, formatXZ},
		{"zip extension", []byte{0x00, 0x00, 0x00, 0x00}, "game.zip", nil, formatZIP},
		{"tar.gz extension", []byte{0x00, 0x00, 0x00, 0x00}, "game.tar.gz", nil, formatGzip},
		{"matching extension is raw", []byte{0x00, 0x00, 0x00, 0x00}, "game.sms", []string{".sms"}, formatRaw},
		{"no declared extensions is raw", []byte{0x00, 0x00, 0x00, 0x00}, "game.bin", nil, formatRaw},
		{"mismatching extension", []byte{0x00, 0x00, 0x00, 0x00}, "game.exe", []string{".sms"}, formatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFormat(tt.header, tt.path, tt.exts); got != tt.want {
				t.Errorf("detectFormat = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestIsContentFile tests extension matching for archive entries
func TestIsContentFile(t *testing.T) {
	if !isContentFile("game.sms", testExtensions) {
		t.Error("matching extension should be accepted")
	}
	if !isContentFile("GAME.SMS", testExtensions) {
		t.Error("matching should be case-insensitive")
	}
	if isContentFile("readme.txt", testExtensions) {
		t.Error("mismatching extension should be rejected")
	}
	if !isContentFile("anything.xyz", nil) {
		t.Error("empty extension list should match everything")
	}
}
