package safety_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mzakany23/ncsh-agent/internal/safety"
)

func initRoot(t *testing.T) string {
	t.Helper()
	root, err := safety.InitDatasetRoot(filepath.Join(t.TempDir(), "datasets"))
	if err != nil {
		t.Fatalf("init root: %v", err)
	}
	return root
}

func TestInitDatasetRoot_CreatesDirectory(t *testing.T) {
	root := initRoot(t)
	fi, err := os.Stat(root)
	if err != nil || !fi.IsDir() {
		t.Fatalf("expected dataset dir to exist, err=%v", err)
	}
	if !filepath.IsAbs(root) {
		t.Fatalf("expected absolute root, got %q", root)
	}
}

func TestValidatePath_AllowsRelativeInside(t *testing.T) {
	root := initRoot(t)
	got, err := safety.ValidatePath(root, "key_west_fc_dataset.parquet")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.HasPrefix(got, root) {
		t.Fatalf("resolved path %q not under root %q", got, root)
	}
}

func TestValidatePath_RejectsAbsolute(t *testing.T) {
	root := initRoot(t)
	_, err := safety.ValidatePath(root, "/etc/passwd")
	assertToolError(t, err, "ERR_PATH_OUTSIDE_DATASET_DIR")
}

func TestValidatePath_RejectsTraversal(t *testing.T) {
	root := initRoot(t)
	_, err := safety.ValidatePath(root, "../escape.parquet")
	assertToolError(t, err, "ERR_PATH_OUTSIDE_DATASET_DIR")
}

func TestValidatePath_RejectsSymlinkEscape(t *testing.T) {
	root := initRoot(t)
	outside := t.TempDir()
	link := filepath.Join(root, "sneaky")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	_, err := safety.ValidatePath(root, filepath.Join("sneaky", "out.parquet"))
	assertToolError(t, err, "ERR_PATH_OUTSIDE_DATASET_DIR")
}

func TestValidateParquetPath_RejectsOtherExtensions(t *testing.T) {
	root := initRoot(t)
	_, err := safety.ValidateParquetPath(root, "notes.txt")
	assertToolError(t, err, "ERR_NOT_PARQUET")

	if _, err := safety.ValidateParquetPath(root, "ok.parquet"); err != nil {
		t.Fatalf("expected .parquet to pass: %v", err)
	}
}

func TestToolError_IsCompactJSON(t *testing.T) {
	e := safety.ToolError{Code: "ERR_X", Message: "boom"}
	s := e.Error()
	if strings.ContainsRune(s, '\n') || !strings.Contains(s, `"code":"ERR_X"`) {
		t.Fatalf("unexpected error encoding: %q", s)
	}
}

func assertToolError(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	var te safety.ToolError
	if !errors.As(err, &te) {
		t.Fatalf("expected ToolError, got %T: %v", err, err)
	}
	if te.Code != code {
		t.Fatalf("code = %q, want %q", te.Code, code)
	}
}
