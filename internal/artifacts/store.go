package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists rendered artifacts and hands back a public URL.
type Store interface {
	Save(name string, data []byte) (string, error)
}

type diskStore struct {
	dir           string
	publicBaseURL string
}

// NewDiskStore writes artifacts under dir and serves them from
// publicBaseURL. The directory is created on first use.
func NewDiskStore(dir, publicBaseURL string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifacts directory: %w", err)
	}
	return &diskStore{
		dir:           dir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *diskStore) Save(name string, data []byte) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	return s.publicBaseURL + "/" + name, nil
}
