// Package project locates the Unity project root a file belongs to.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNoRoot is returned when no ancestor directory contains an Assets
// folder.
var ErrNoRoot = errors.New("no project root found")

// FindRoot walks up from a file or directory until it finds a directory
// containing Assets/, the marker every project carries.
func FindRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	current := abs
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		current = filepath.Dir(abs)
	}

	for {
		assets := filepath.Join(current, "Assets")
		if info, err := os.Stat(assets); err == nil && info.IsDir() {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNoRoot
		}
		current = parent
	}
}
