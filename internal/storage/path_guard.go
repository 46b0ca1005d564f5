package storage

import (
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"local-file-manager/internal/model"
)

// PathGuard decides whether a path lies inside one of the allowed roots.
// Both sides are canonicalized (absolute, symlinks resolved) before comparing,
// so a symlink inside a root that points outside of it is rejected.
type PathGuard struct {
	resolve func(string) (string, error)
}

func NewPathGuard() *PathGuard {
	return &PathGuard{resolve: filepath.EvalSymlinks}
}

// NewPathGuardWithResolver swaps symlink resolution, mostly for tests.
func NewPathGuardWithResolver(resolve func(string) (string, error)) *PathGuard {
	return &PathGuard{resolve: resolve}
}

// IsAllowed is the pure containment predicate. A path that cannot be
// canonicalized, or an empty root set, yields false.
func (g *PathGuard) IsAllowed(path string, roots []string) bool {
	candidate, err := g.canonical(path)
	if err != nil {
		return false
	}

	for _, root := range roots {
		rootCanonical, rootErr := g.canonical(root)
		if rootErr != nil {
			continue
		}
		if isWithinRoot(rootCanonical, candidate) {
			return true
		}
	}

	return false
}

// Check applies the allow-list policy: with no roots configured every
// well-formed path is accepted.
func (g *PathGuard) Check(op string, path string, roots []string) error {
	if strings.TrimSpace(path) == "" {
		return model.InvalidPath(op, path, "path cannot be empty")
	}

	if hasControlCharacters(path) {
		return model.InvalidPath(op, path, "path contains invalid characters")
	}

	if len(roots) == 0 {
		return nil
	}

	if !g.IsAllowed(path, roots) {
		return model.NotAllowed(op, path)
	}

	return nil
}

// CheckParent guards a path that does not exist yet by checking its parent
// and rejecting names that would climb out of it.
func (g *PathGuard) CheckParent(op string, path string, roots []string) error {
	base := filepath.Base(path)
	if base == ".." || base == "." {
		return model.InvalidPath(op, path, "path must name an entry")
	}
	return g.Check(op, filepath.Dir(path), roots)
}

func (g *PathGuard) canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := g.resolve(abs)
	if err != nil {
		return "", err
	}

	return filepath.Clean(resolved), nil
}

func hasControlCharacters(value string) bool {
	for _, char := range value {
		if unicode.IsControl(char) {
			return true
		}
	}

	return false
}

func isWithinRoot(rootAbs string, candidateAbs string) bool {
	if runtime.GOOS == "windows" {
		rootAbs = strings.ToLower(rootAbs)
		candidateAbs = strings.ToLower(candidateAbs)
	}

	if candidateAbs == rootAbs {
		return true
	}

	rootWithSeparator := rootAbs
	if !strings.HasSuffix(rootWithSeparator, string(filepath.Separator)) {
		rootWithSeparator += string(filepath.Separator)
	}

	return strings.HasPrefix(candidateAbs, rootWithSeparator)
}
