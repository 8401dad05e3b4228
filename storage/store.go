package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Store writes round attachments to a directory on local disk, picking a
// collision-free name for each file.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload folder: %w", err)
	}
	return &Store{dir: dir}, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SanitizeFilename reduces a client-supplied filename to a safe base name:
// path components are stripped and anything outside [A-Za-z0-9_.-] is
// replaced with underscores.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}

// AllowedFile reports whether the filename carries one of the allowed
// extensions. Files without an extension are never allowed.
func AllowedFile(name string, allowed []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// Save writes content under a sanitized version of filename. If that name is
// taken, a numeric suffix is appended before the extension ("photo_1.png",
// "photo_2.png", ...) until a free name is found. The stored name is returned.
func (s *Store) Save(filename string, content io.Reader) (string, error) {
	name := SanitizeFilename(filename)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidate := name
	for counter := 1; ; counter++ {
		if _, err := os.Stat(filepath.Join(s.dir, candidate)); os.IsNotExist(err) {
			break
		}
		candidate = fmt.Sprintf("%s_%d%s", base, counter, ext)
	}

	dst, err := os.Create(filepath.Join(s.dir, candidate))
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		os.Remove(filepath.Join(s.dir, candidate))
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}

	return candidate, nil
}

// Path returns the on-disk path of a stored attachment.
func (s *Store) Path(storedName string) string {
	return filepath.Join(s.dir, storedName)
}
