// Package config implements the application configuration store: a nested
// mapping addressed by dotted key paths, persisted to a JSON or YAML
// document on demand. Operations are total; failures are logged and
// reported as boolean results so callers can fall back to defaults.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"appshell/internal/logger"
)

const (
	component = "ConfigStore"

	// Delimiter separates segments of a nested key path.
	Delimiter = "."
)

// Store holds the configuration tree. Reads and writes go through dotted
// key paths; intermediate levels are created on Set.
type Store struct {
	mu   sync.RWMutex
	k    *koanf.Koanf
	log  logger.Logger
	path string

	// savedSum is the checksum of the last content this store wrote, used
	// by the watcher to tell the store's own saves apart from external
	// edits.
	savedSum atomic.Value
}

// NewStore creates a store backed by the file at path and loads it
// immediately. A missing or corrupt file is replaced with defaults.
func NewStore(path string, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop{}
	}

	s := &Store{
		k:    koanf.New(Delimiter),
		log:  log,
		path: path,
	}
	s.Load()
	return s
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Load reads the backing file over the built-in defaults. When the file is
// missing or unparseable the defaults are written back out.
func (s *Store) Load() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := koanf.New(Delimiter)
	if err := k.Load(confmap.Provider(defaultConfig(), Delimiter), nil); err != nil {
		s.log.Error(component, err, map[string]interface{}{"stage": "defaults"})
		return false
	}

	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		s.k = k
		s.log.Info(component, "config file missing, creating defaults", map[string]interface{}{
			"path": s.path,
		})
		return s.saveLocked()
	}

	if err := k.Load(file.Provider(s.path), s.parser()); err != nil {
		s.log.Error(component, err, map[string]interface{}{"path": s.path})

		// Unparseable file: fall back to a fresh default tree and rewrite it.
		k = koanf.New(Delimiter)
		if err := k.Load(confmap.Provider(defaultConfig(), Delimiter), nil); err != nil {
			s.log.Error(component, err, map[string]interface{}{"stage": "defaults"})
			return false
		}
		s.k = k
		return s.saveLocked()
	}

	s.k = k
	s.log.Info(component, "config loaded", map[string]interface{}{"path": s.path})
	return true
}

func (s *Store) parser() koanf.Parser {
	switch filepath.Ext(s.path) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return kjson.Parser()
	}
}

// Get returns the value at the dotted key path, or def when any segment
// is missing.
func (s *Store) Get(path string, def interface{}) interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.k.Exists(path) {
		s.log.Warning(component, "config key missing", map[string]interface{}{
			"path":    path,
			"default": def,
		})
		return def
	}
	return s.k.Get(path)
}

func (s *Store) GetString(path, def string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.k.Exists(path) {
		return def
	}
	return s.k.String(path)
}

func (s *Store) GetInt(path string, def int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.k.Exists(path) {
		return def
	}
	return s.k.Int(path)
}

func (s *Store) GetBool(path string, def bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.k.Exists(path) {
		return def
	}
	return s.k.Bool(path)
}

// Set writes value at the dotted key path, creating intermediate levels.
func (s *Store) Set(path string, value interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.k.Load(confmap.Provider(map[string]interface{}{path: value}, Delimiter), nil)
	if err != nil {
		s.log.Error(component, err, map[string]interface{}{"path": path})
		return false
	}

	s.log.Debug(component, "config set", map[string]interface{}{"path": path})
	return true
}

// Remove deletes the key path and everything under it.
func (s *Store) Remove(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.k.Exists(path) {
		return false
	}
	s.k.Delete(path)
	s.log.Debug(component, "config removed", map[string]interface{}{"path": path})
	return true
}

// All returns a copy of the full configuration tree.
func (s *Store) All() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.k.Raw()
}

// Save persists the tree to the backing file, JSON or YAML by extension.
func (s *Store) Save() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() bool {
	var (
		data []byte
		err  error
	)

	switch filepath.Ext(s.path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s.k.Raw())
	default:
		data, err = json.MarshalIndent(s.k.Raw(), "", "    ")
	}
	if err != nil {
		s.log.Error(component, err, map[string]interface{}{"path": s.path})
		return false
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.log.Error(component, err, map[string]interface{}{"path": s.path})
		return false
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.log.Error(component, err, map[string]interface{}{"path": s.path})
		return false
	}

	s.savedSum.Store(checksum(data))
	s.log.Info(component, "config saved", map[string]interface{}{"path": s.path})
	return true
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// wrote reports whether data is exactly the content this store last saved.
func (s *Store) wrote(data []byte) bool {
	last, _ := s.savedSum.Load().(string)
	return last != "" && last == checksum(data)
}
