package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotty/pkg/errors"
)

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
// If both fail, it returns an error rather than using dangerous defaults.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv("HOME")
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrResolution, "unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

// ExpandHome expands a leading ~ to the user's home directory.
// Paths such as ~other/x are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path == "~" {
		return GetHomeDirectory()
	}

	if len(path) > 1 && path[0] == '~' && path[1] == filepath.Separator {
		homeDir, err := GetHomeDirectory()
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrResolution, "failed to expand home dir %s", path)
		}
		return filepath.Join(homeDir, path[2:]), nil
	}

	return path, nil
}
