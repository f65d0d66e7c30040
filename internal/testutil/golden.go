package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Golden compares output against testdata/<name>.golden.
// If the GOLDEN_UPDATE environment variable is set, updates the golden file.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	want := readGolden(t, name, got)
	if !bytes.Equal(got, want) {
		t.Errorf("output mismatch for %s\nWant:\n%s\nGot:\n%s", name, want, got)
	}
}

// GoldenFields is like Golden but compares each line as whitespace-separated
// fields, so column padding changes do not break the comparison.
func GoldenFields(t *testing.T, name string, got string) {
	t.Helper()

	want := string(readGolden(t, name, []byte(got)))
	if !equalFields(want, got) {
		t.Errorf("output mismatch for %s (fields)\nWant:\n%s\nGot:\n%s", name, want, got)
	}
}

// Fields splits s into lines of whitespace-separated fields, dropping blank lines.
func Fields(s string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(s, "\n") {
		if f := strings.Fields(line); len(f) > 0 {
			rows = append(rows, f)
		}
	}
	return rows
}

func equalFields(a, b string) bool {
	fa, fb := Fields(a), Fields(b)
	if len(fa) != len(fb) {
		return false
	}
	for i := range fa {
		if strings.Join(fa[i], " ") != strings.Join(fb[i], " ") {
			return false
		}
	}
	return true
}

func readGolden(t *testing.T, name string, got []byte) []byte {
	t.Helper()

	goldenPath := filepath.Join("testdata", name+".golden")

	if os.Getenv("GOLDEN_UPDATE") != "" {
		if err := os.MkdirAll("testdata", 0755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, got, 0644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return got
	}

	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nGot:\n%s", goldenPath, err, got)
	}
	return want
}
