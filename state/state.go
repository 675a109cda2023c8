// state/state.go
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrosebr1/pythonfintech/runs"
)

// ErrSessionNotFound is returned by Get for an unknown session ID.
var ErrSessionNotFound = errors.New("session not found")

// Store records the results of demo sessions.
type Store interface {
	// Record adds or replaces a session and persists the store.
	Record(s *Session) error
	// Get returns a copy of the session with the given ID.
	Get(id string) (*Session, error)
	// List returns all sessions ordered by creation time.
	List() []Session
}

// GroupingResult is the persisted outcome of one consecutive-run grouping.
type GroupingResult struct {
	Name           string       `json:"name"`
	Values         []int        `json:"values"`
	MinConsecutive int          `json:"min_consecutive"`
	Offset         int          `json:"offset"`
	Groups         []runs.Range `json:"groups"`
	Error          string       `json:"error,omitempty"`
}

// LevelResult is one projected R level.
type LevelResult struct {
	Multiple  string `json:"multiple"`
	Price     string `json:"price"`
	PnL       string `json:"pnl"`
	ReturnPct string `json:"return_pct"`
}

// TradeResult is the persisted outcome of the R-multiple calculator.
// Amounts are kept as decimal strings.
type TradeResult struct {
	Side          string        `json:"side"`
	AccountValue  string        `json:"account_value"`
	EntryPrice    string        `json:"entry_price"`
	StopPrice     string        `json:"stop_price"`
	RiskRate      string        `json:"risk_rate"`
	RiskPerShare  string        `json:"risk_per_share"`
	RiskAmount    string        `json:"risk_amount"`
	Shares        string        `json:"shares"`
	PositionValue string        `json:"position_value"`
	CapitalAtRisk string        `json:"capital_at_risk"`
	Capped        bool          `json:"capped"`
	Levels        []LevelResult `json:"levels"`
	Error         string        `json:"error,omitempty"`
}

// Session groups everything produced by one run of the program.
type Session struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Groupings []GroupingResult `json:"groupings"`
	Trade     *TradeResult     `json:"trade,omitempty"`
}

// NewSession creates an empty session with a fresh ID.
func NewSession(now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now.UTC(),
		Groupings: make([]GroupingResult, 0),
	}
}

type fileState struct {
	Sessions map[string]*Session `json:"sessions"`
}

// FileStore is the JSON file implementation of Store.
type FileStore struct {
	mu       sync.RWMutex
	filePath string
	state    *fileState
}

// NewFileStore loads the store at filePath, creating an empty one if the file does not exist.
func NewFileStore(filePath string) (*FileStore, error) {
	fs := &FileStore{
		filePath: filePath,
		state:    &fileState{Sessions: make(map[string]*Session)},
	}

	if err := fs.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load session store: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
		// Create the file up front so later saves only ever rename over it.
		if err := fs.save(); err != nil {
			return nil, fmt.Errorf("failed to create initial session store: %w", err)
		}
	}

	return fs, nil
}

// save writes the state atomically; callers hold the lock.
func (fs *FileStore) save() error {
	data, err := json.MarshalIndent(fs.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session store: %w", err)
	}

	tmpFilePath := fs.filePath + ".tmp"
	if err := os.WriteFile(tmpFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary session store: %w", err)
	}

	return os.Rename(tmpFilePath, fs.filePath)
}

func (fs *FileStore) load() error {
	data, err := os.ReadFile(fs.filePath)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil // Empty file is a valid, empty store
	}
	if err := json.Unmarshal(data, fs.state); err != nil {
		return err
	}
	if fs.state.Sessions == nil {
		fs.state.Sessions = make(map[string]*Session)
	}
	return nil
}

func (fs *FileStore) Record(s *Session) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("cannot record a session without an ID")
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	copied := copySession(s)
	fs.state.Sessions[s.ID] = &copied
	return fs.save()
}

func (fs *FileStore) Get(id string) (*Session, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	s, ok := fs.state.Sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	copied := copySession(s)
	return &copied, nil
}

func (fs *FileStore) List() []Session {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	out := make([]Session, 0, len(fs.state.Sessions))
	for _, s := range fs.state.Sessions {
		out = append(out, copySession(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// copySession returns a copy that shares no slices with s.
func copySession(s *Session) Session {
	c := *s
	c.Groupings = make([]GroupingResult, len(s.Groupings))
	for i, g := range s.Groupings {
		g.Values = append([]int(nil), g.Values...)
		g.Groups = append([]runs.Range(nil), g.Groups...)
		c.Groupings[i] = g
	}
	if s.Trade != nil {
		t := *s.Trade
		t.Levels = append([]LevelResult(nil), s.Trade.Levels...)
		c.Trade = &t
	}
	return c
}
