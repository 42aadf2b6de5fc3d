package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// importDir is the subdirectory for import CSVs.
const importDir = "import"

// processedDir is the subdirectory for processed CSVs.
const processedDir = "import/processed"

// Dir returns <workspace>/import.
func Dir(workspace string) string {
	return filepath.Join(workspace, importDir)
}

// ProcessedDir returns <workspace>/import/processed.
func ProcessedDir(workspace string) string {
	return filepath.Join(workspace, processedDir)
}

// Scan returns CSV files in <workspace>/import/, sorted by name.
func Scan(workspace string) ([]FileInfo, error) {
	dir := Dir(workspace)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(workspace, fileName string) error {
	src := filepath.Join(Dir(workspace), fileName)
	dstDir := ProcessedDir(workspace)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// Restore moves a file from import/processed/ back to import/.
func Restore(workspace, fileName string) error {
	src := filepath.Join(ProcessedDir(workspace), fileName)
	dst := filepath.Join(Dir(workspace), fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("restoring %s from processed: %w", fileName, err)
	}
	return nil
}
