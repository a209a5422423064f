// Package session keeps per-project view state alive across analyses so a
// re-opened view restores its expansion, selection, and zoom.
package session

import (
	"encoding/json"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"

	"github.com/codemindmap/birdview/pkg/models"
)

// DefaultMaxSize bounds how many view states are retained before the least
// recently used one is evicted.
const DefaultMaxSize = 128

// Key identifies one stored view state: a project path plus the view that
// produced it.
func Key(projectPath string, analysisType models.AnalysisType) string {
	h := blake3.New()
	h.Write([]byte(projectPath))
	h.Write([]byte{0})
	h.Write([]byte(analysisType))
	return fmt.Sprintf("%x", h.Sum(nil)[:16])
}

// Store is an in-memory LRU of serialized view states.
type Store struct {
	cache  *lru.Cache[string, []byte]
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store holding at most maxSize states. A non-positive
// size falls back to DefaultMaxSize.
func NewStore(maxSize int, opts ...Option) (*Store, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	cache, err := lru.New[string, []byte](maxSize)
	if err != nil {
		return nil, fmt.Errorf("creating session cache: %w", err)
	}
	s := &Store{cache: cache, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Save serializes and stores the state under the project/view key.
func (s *Store) Save(projectPath string, state *models.ViewState) error {
	if state == nil {
		return fmt.Errorf("nil view state")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling view state: %w", err)
	}
	s.cache.Add(Key(projectPath, state.AnalysisType), data)
	return nil
}

// Load restores a previously saved state. The second return is false when
// nothing is stored for the key or the stored bytes fail to decode; a decode
// failure also evicts the entry.
func (s *Store) Load(projectPath string, analysisType models.AnalysisType) (*models.ViewState, bool) {
	key := Key(projectPath, analysisType)
	data, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	var state models.ViewState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn("dropping corrupt session entry", "key", key, "error", err)
		s.cache.Remove(key)
		return nil, false
	}
	return &state, true
}

// Drop removes the stored state for a project/view pair.
func (s *Store) Drop(projectPath string, analysisType models.AnalysisType) {
	s.cache.Remove(Key(projectPath, analysisType))
}

// Len reports how many states are currently stored.
func (s *Store) Len() int {
	return s.cache.Len()
}
