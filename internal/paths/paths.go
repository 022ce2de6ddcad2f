// Package paths normalizes vault-relative paths and keeps rendered paths
// inside the vault.
package paths

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrOutsideVault is returned for paths that resolve outside the vault root.
var ErrOutsideVault = errors.New("path is outside vault")

// NormalizeRel normalizes a vault-relative path-like value:
//   - converts OS separators to '/'
//   - trims leading "./" and leading "/"
//   - collapses repeated '/' and trailing '/'
func NormalizeRel(p string) string {
	p = filepath.ToSlash(strings.TrimSpace(p))
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	p = strings.TrimLeft(p, "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return strings.TrimSuffix(p, "/")
}

// Join resolves a vault-relative path against vaultPath, rejecting results
// that escape the vault. Empty rel returns the vault root.
func Join(vaultPath, rel string) (string, error) {
	full := filepath.Join(vaultPath, filepath.FromSlash(NormalizeRel(rel)))
	if err := Within(vaultPath, full); err != nil {
		return "", err
	}
	return full, nil
}

// Within checks lexically that target is vaultPath or below it.
func Within(vaultPath, target string) error {
	absVault, err := filepath.Abs(vaultPath)
	if err != nil {
		return err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	if absTarget == absVault {
		return nil
	}
	if !strings.HasPrefix(absTarget, absVault+string(filepath.Separator)) {
		return ErrOutsideVault
	}
	return nil
}

// IsPlainName reports whether name is a single path component (no separators,
// not "." or "..").
func IsPlainName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
