package testutil

import (
	"os"
	"path/filepath"
	"runtime"
)

// ReadFixture returns the raw bytes of a fixture file colocated with
// this package.
func ReadFixture(filename string) ([]byte, error) {
	_, currentFile, _, _ := runtime.Caller(0)
	dir := filepath.Dir(currentFile)
	return os.ReadFile(filepath.Join(dir, filename))
}
