package allowlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type rootsFile struct {
	Roots []string `yaml:"roots"`
}

// Store holds the set of directories the engine may touch. An empty set means
// no restriction. Readers get a copy so the guard never sees a half-written
// list.
type Store struct {
	mu    sync.RWMutex
	roots []string
	file  string
}

func New(roots []string) *Store {
	return &Store{roots: normalize(roots)}
}

// Load seeds the store from envRoots and, when file is set, from a YAML file
// of the form "roots: [...]". Roots from both sources are merged. A missing
// file is not an error; it is created on the first Replace.
func Load(file string, envRoots []string) (*Store, error) {
	roots := append([]string{}, envRoots...)

	if strings.TrimSpace(file) != "" {
		data, err := os.ReadFile(file)
		switch {
		case err == nil:
			var parsed rootsFile
			if err := yaml.Unmarshal(data, &parsed); err != nil {
				return nil, fmt.Errorf("parse roots file %q: %w", file, err)
			}
			roots = append(roots, parsed.Roots...)
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("read roots file %q: %w", file, err)
		}
	}

	store := New(roots)
	store.file = file
	return store, nil
}

func (s *Store) Snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.roots))
	copy(out, s.roots)
	return out
}

// Replace swaps the whole list and persists it when the store is file backed.
func (s *Store) Replace(roots []string) error {
	normalized := normalize(roots)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != "" {
		if err := writeRootsFile(s.file, normalized); err != nil {
			return err
		}
	}

	s.roots = normalized
	return nil
}

func writeRootsFile(file string, roots []string) error {
	data, err := yaml.Marshal(rootsFile{Roots: roots})
	if err != nil {
		return fmt.Errorf("encode roots file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("prepare roots file directory: %w", err)
	}

	tmp := file + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write roots file: %w", err)
	}

	if err := os.Rename(tmp, file); err != nil {
		return fmt.Errorf("replace roots file: %w", err)
	}

	return nil
}

func normalize(roots []string) []string {
	seen := make(map[string]struct{}, len(roots))
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		trimmed := strings.TrimSpace(root)
		if trimmed == "" {
			continue
		}

		cleaned := filepath.Clean(trimmed)
		if abs, err := filepath.Abs(cleaned); err == nil {
			cleaned = abs
		}

		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}

	return out
}
