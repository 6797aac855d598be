// Package filex contains small filesystem helpers shared by client and server.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureSubDir creates dirName under the working directory if needed and
// returns its absolute path. Used for local resume storage and export output.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SafeBaseName strips any directory components from a client-supplied file
// name so it cannot escape the storage directory.
func SafeBaseName(name string) string {
	return filepath.Base(filepath.Clean(name))
}
