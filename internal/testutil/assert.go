package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file does not exist.
func (v *TestVault) AssertFileExists(relPath string) {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, relPath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		v.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (v *TestVault) AssertFileNotExists(relPath string) {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, relPath)
	if _, err := os.Stat(fullPath); err == nil {
		v.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (v *TestVault) AssertFileContains(relPath, substr string) {
	v.t.Helper()
	content := v.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		v.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains the substring.
func (v *TestVault) AssertFileNotContains(relPath, substr string) {
	v.t.Helper()
	content := v.ReadFile(relPath)
	if strings.Contains(content, substr) {
		v.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertDirExists fails the test if the directory does not exist.
func (v *TestVault) AssertDirExists(relPath string) {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, relPath)
	info, err := os.Stat(fullPath)
	if os.IsNotExist(err) {
		v.t.Errorf("expected directory to exist: %s", relPath)
		return
	}
	if !info.IsDir() {
		v.t.Errorf("expected %s to be a directory, but it's a file", relPath)
	}
}

// AssertDirEntries fails the test if the directory does not hold exactly the
// given entry names.
func (v *TestVault) AssertDirEntries(relPath string, want ...string) {
	v.t.Helper()
	got := v.ListDir(relPath)
	sort.Strings(want)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		v.t.Errorf("expected %s to contain %v, got %v", relPath, want, got)
	}
}

// AssertErrorCode checks that a failed result carries the given error code.
func (r *CLIResult) AssertErrorCode(t *testing.T, code string) {
	t.Helper()
	if r.Error == nil {
		t.Errorf("expected error with code %s, got none\nRaw: %s", code, r.RawJSON)
		return
	}
	if r.Error.Code != code {
		t.Errorf("expected error code %s, got %s: %s", code, r.Error.Code, r.Error.Message)
	}
}

// AssertExitCode checks the process exit status.
func (r *CLIResult) AssertExitCode(t *testing.T, code int) {
	t.Helper()
	if r.ExitCode != code {
		t.Errorf("expected exit code %d, got %d\nstdout: %s\nstderr: %s", code, r.ExitCode, r.RawJSON, r.Stderr)
	}
}

// AssertResultCount checks that a list result has the expected count.
func (r *CLIResult) AssertResultCount(t *testing.T, key string, expected int) {
	t.Helper()
	results := r.DataList(key)
	if len(results) != expected {
		t.Errorf("expected %d %s, got %d\nRaw: %s", expected, key, len(results), r.RawJSON)
	}
}
