// Package safety provides helpers for sandboxed dataset-file access.
package safety

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ToolError is a machine-readable error body surfaced back to the agent as JSON.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string to keep tool_result payloads small.
func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// InitDatasetRoot resolves the absolute dataset directory root. An empty root
// defaults to "datasets" under the current working directory. The directory
// is created when missing so first runs work out of the box.
func InitDatasetRoot(root string) (string, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		root = filepath.Join(cwd, "datasets")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("abs(datasetRoot): %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	// Resolve symlinks where possible so later boundary checks are reliable.
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	return abs, nil
}

// ValidatePath resolves relPath against absRoot and returns an absolute path
// inside the dataset sandbox. It rejects absolute inputs, parent traversal,
// and symlink escapes. On violation it returns a ToolError.
func ValidatePath(absRoot, relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", ToolError{Code: "ERR_PATH_OUTSIDE_DATASET_DIR", Message: "absolute paths are not allowed"}
	}

	cleaned := filepath.Clean(relPath)
	if cleaned == "" {
		cleaned = "."
	}

	candidate := filepath.Join(absRoot, cleaned)

	// Best-effort symlink resolution: resolve the whole candidate when it
	// exists, otherwise resolve the deepest existing ancestor and rejoin the
	// final segment so escapes via a symlinked parent are still revealed.
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else {
		parent := filepath.Dir(candidate)
		if resolvedParent, err2 := filepath.EvalSymlinks(parent); err2 == nil {
			candidate = filepath.Join(resolvedParent, filepath.Base(candidate))
		}
	}

	// Boundary check using filepath.Rel (robust against partial prefix matches).
	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", ToolError{Code: "ERR_PATH_OUTSIDE_DATASET_DIR", Message: "requested path resolves outside the dataset directory"}
	}

	return candidate, nil
}

// ValidateParquetPath is ValidatePath plus an extension check: dataset
// outputs must be .parquet files so the directory stays a clean registry.
func ValidateParquetPath(absRoot, relPath string) (string, error) {
	if !strings.EqualFold(filepath.Ext(relPath), ".parquet") {
		return "", ToolError{Code: "ERR_NOT_PARQUET", Message: "dataset files must use the .parquet extension"}
	}
	return ValidatePath(absRoot, relPath)
}
