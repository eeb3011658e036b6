package bundle

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func collectKeys(t *testing.T, s *Scanner) []string {
	t.Helper()
	var keys []string
	err := s.Walk(func(f File) error {
		keys = append(keys, f.Key)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	return keys
}

func TestScanner_FiltersAndNormalizesKeys(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"), "{}")
	writeFile(t, filepath.Join(root, "b.json"), "{}")
	writeFile(t, filepath.Join(root, "c.txt"), "not a bundle")
	writeFile(t, filepath.Join(root, "nested", "deep", "d.json"), "{}")

	keys := collectKeys(t, NewScanner(root))
	want := []string{"a.json", "b.json", "nested/deep/d.json"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("expected keys %v, got %v", want, keys)
	}
}

func TestScanner_Restartable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"), "{}")
	writeFile(t, filepath.Join(root, "b.json"), "{}")

	s := NewScanner(root)
	first := collectKeys(t, s)
	second := collectKeys(t, s)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical walks, got %v then %v", first, second)
	}
}

func TestScanner_CheckRoot(t *testing.T) {
	root := t.TempDir()
	if err := NewScanner(root).CheckRoot(); err != nil {
		t.Fatalf("expected valid root, got %v", err)
	}

	if err := NewScanner(filepath.Join(root, "missing")).CheckRoot(); err == nil {
		t.Fatalf("expected error for missing directory")
	}

	file := filepath.Join(root, "a.json")
	writeFile(t, file, "{}")
	if err := NewScanner(file).CheckRoot(); err == nil {
		t.Fatalf("expected error for non-directory root")
	}
}
