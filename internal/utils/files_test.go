package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AstraForge/skyhound-cli/internal/utils"
)

func TestSafeWriteFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "artifact.csv")
	if err := utils.SafeWriteFile(p, []byte("first")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := utils.SafeWriteFile(p, []byte("second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "second" {
		t.Errorf("content: got %q", string(b))
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind")
	}
}

func TestSafeWriteFileBadDir(t *testing.T) {
	err := utils.SafeWriteFile(filepath.Join(t.TempDir(), "missing", "x"), []byte("data"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := utils.EnsureOutputDir(dir); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("dir not created: %v", err)
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := utils.PrettyJSON(map[string]int{"total": 10})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "{\n  \"total\": 10\n}" {
		t.Errorf("unexpected output: %q", string(b))
	}
}
