package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

const (
	// DefaultDirName is created under the user's home directory.
	DefaultDirName = ".kmzmerge"
	// FileName is the settings file inside the config directory.
	FileName = "config.toml"
)

// ConfigStore holds the decoded TOML tree and rewrites the file on every change.
type ConfigStore struct {
	mu   sync.Mutex
	path string
	tree map[string]any
}

// NewConfigStore opens dir/config.toml, creating dir when needed. An empty
// dir means ~/.kmzmerge. A missing file is an empty configuration.
func NewConfigStore(dir string) (*ConfigStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, DefaultDirName)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	s := &ConfigStore{
		path: filepath.Join(dir, FileName),
		tree: make(map[string]any),
	}
	if err := s.read(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ConfigStore) Lookup(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, leaf := s.table(key, false)
	if table == nil {
		return nil, false
	}
	v, ok := table[leaf]
	if _, nested := v.(map[string]any); nested {
		return nil, false
	}
	return v, ok
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, leaf := s.table(key, true)
	table[leaf] = value
	return s.write()
}

func (s *ConfigStore) Unset(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, leaf := s.table(key, false)
	if table == nil {
		return nil
	}
	if _, ok := table[leaf]; !ok {
		return nil
	}
	delete(table, leaf)
	return s.write()
}

func (s *ConfigStore) Path() string {
	return s.path
}

// table walks every segment of key but the last. With create set, missing
// tables are added and a scalar in the way is replaced by a table.
func (s *ConfigStore) table(key string, create bool) (map[string]any, string) {
	parts := strings.Split(key, ".")
	node := s.tree
	for _, part := range parts[:len(parts)-1] {
		next, ok := node[part].(map[string]any)
		if !ok {
			if !create {
				return nil, ""
			}
			next = make(map[string]any)
			node[part] = next
		}
		node = next
	}
	return node, parts[len(parts)-1]
}

func (s *ConfigStore) read() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	tree := make(map[string]any)
	if err := toml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	s.tree = tree
	return nil
}

// write replaces the file through a sibling temp file so a failed write
// leaves the previous settings intact.
func (s *ConfigStore) write() error {
	raw, err := toml.Marshal(s.tree)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
