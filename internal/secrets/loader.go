// Package secrets resolves API keys and other private values from files or config.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotConfigured is returned when a source names neither a file nor a value.
var ErrNotConfigured = errors.New("not configured")

// Source describes where a secret comes from. File takes precedence over Value.
type Source struct {
	// Name is used in error messages, e.g. "firecrawl api key".
	Name  string
	Value string
	// File may start with "~/" to point into the home directory.
	File string
}

// Load returns the trimmed secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file, err := expandHome(strings.TrimSpace(src.File))
	if err != nil {
		return "", fmt.Errorf("resolving %s file: %w", name, err)
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		return "", fmt.Errorf("%s is %w", name, ErrNotConfigured)
	}
	return secret, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
