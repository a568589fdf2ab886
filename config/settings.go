// config/settings.go
package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrNotFound = errors.New("not found")

// Settings maps string labels to integer values.
type Settings struct {
	values map[string]int
}

func NewSettings() *Settings {
	return &Settings{values: map[string]int{}}
}

// Defaults returns timeout=30, retries=3, debug=1.
func Defaults() *Settings {
	s := NewSettings()
	s.Set("timeout", 30)
	s.Set("retries", 3)
	s.Set("debug", 1)
	return s
}

func (s *Settings) Set(key string, v int) { s.values[key] = v }

// Lookup reports whether key is present. An absent key yields (0, false).
func (s *Settings) Lookup(key string) (int, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Require is Lookup with an error naming the missing key.
func (s *Settings) Require(key string) (int, error) {
	v, ok := s.values[key]
	if !ok {
		return 0, fmt.Errorf("setting %q: %w", key, ErrNotFound)
	}
	return v, nil
}

func (s *Settings) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Settings) Len() int { return len(s.values) }

// Merge copies every entry of other into s, overwriting existing keys.
func (s *Settings) Merge(other map[string]int) {
	for k, v := range other {
		s.values[k] = v
	}
}
